// Package cli provides styled terminal output and prompts using lipgloss
// and bubbletea.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#FF6B6B")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for prompt titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// MessageStyle formats the prompt body.
	MessageStyle = lipgloss.NewStyle().
			MarginBottom(1)

	// SelectedStyle highlights the option under the cursor.
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SuccessColor)

	// OptionStyle formats the other options.
	OptionStyle = lipgloss.NewStyle()

	// HintStyle formats key hints.
	HintStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginTop(1)

	// BoxStyle is used for the prompt frame.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2)
)
