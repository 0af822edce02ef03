package desktop

import (
	"context"
	"io"
	"os"

	"github.com/lkarlslund/screenwatch/internal/cli"
	"github.com/lkarlslund/screenwatch/internal/monitor"
)

// TerminalDialog asks the operator in the controlling terminal.
type TerminalDialog struct {
	In  io.Reader
	Out io.Writer
}

// NewTerminalDialog prompts on stdin and stdout.
func NewTerminalDialog() *TerminalDialog {
	return &TerminalDialog{In: os.Stdin, Out: os.Stdout}
}

// Confirm blocks until an option is picked or the prompt is dismissed.
func (d *TerminalDialog) Confirm(ctx context.Context, p monitor.Prompt) (string, error) {
	choices := make([]cli.Choice, len(p.Options))
	for i, o := range p.Options {
		choices[i] = cli.Choice{ID: o.ID, Label: o.Label}
	}
	return cli.Choose(ctx, d.In, d.Out, p.Title, p.Message, choices)
}

var (
	_ monitor.Dialog    = (*TerminalDialog)(nil)
	_ monitor.Notifier  = (*Notifier)(nil)
	_ monitor.Audio     = (*Player)(nil)
	_ monitor.Automator = (*Input)(nil)
)
