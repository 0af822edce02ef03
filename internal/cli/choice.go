package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned when the operator presses ctrl+c inside a
// prompt. It wraps context.Canceled so callers treat it as a stop request.
var ErrInterrupted = fmt.Errorf("prompt interrupted: %w", context.Canceled)

// Choice is one selectable answer.
type Choice struct {
	ID    string
	Label string
}

type choiceModel struct {
	title   string
	message string
	choices []Choice

	cursor      int
	chosen      string
	interrupted bool
}

func newChoiceModel(title, message string, choices []Choice) choiceModel {
	return choiceModel{title: title, message: message, choices: choices}
}

func (m choiceModel) Init() tea.Cmd {
	return nil
}

func (m choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "ctrl+c":
		m.interrupted = true
		return m, tea.Quit
	case "esc", "q":
		// Dismissed without a choice.
		m.chosen = ""
		return m, tea.Quit
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.choices)) % len(m.choices)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.choices)
	case "enter", " ":
		m.chosen = m.choices[m.cursor].ID
		return m, tea.Quit
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.choices) {
				m.cursor = i
				m.chosen = m.choices[i].ID
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m choiceModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(MessageStyle.Render(m.message))
	b.WriteString("\n")
	for i, c := range m.choices {
		line := fmt.Sprintf("%d. %s", i+1, c.Label)
		if i == m.cursor {
			b.WriteString(SelectedStyle.Render("> " + line))
		} else {
			b.WriteString(OptionStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString(HintStyle.Render("↑/↓ move • enter select • esc dismiss"))
	return BoxStyle.Render(b.String()) + "\n"
}

// Choose shows a blocking terminal prompt and returns the chosen ID, or ""
// when the prompt was dismissed.
func Choose(ctx context.Context, in io.Reader, out io.Writer, title, message string, choices []Choice) (string, error) {
	if len(choices) == 0 {
		return "", errors.New("no choices to offer")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p := tea.NewProgram(newChoiceModel(title, message, choices),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		return "", fmt.Errorf("run prompt: %w", err)
	}

	m, ok := final.(choiceModel)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model %T", final)
	}
	if m.interrupted {
		return "", ErrInterrupted
	}
	return m.chosen, nil
}
