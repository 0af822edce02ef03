package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/lkarlslund/screenwatch/internal/capture"
	"github.com/lkarlslund/screenwatch/internal/cli"
	"github.com/lkarlslund/screenwatch/internal/vision"
	"github.com/spf13/cobra"
)

type scoreRow struct {
	role   string
	result vision.MatchResult
	hit    bool
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Capture the screen once and print the confidence of every template",
		Long: `check captures a single frame and scores the target and control images
against it without pressing keys, clicking or alerting. Use it to tune
match_threshold.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			templates, err := loadTemplates(cfg)
			if err != nil {
				return err
			}
			defer templates.Close()

			frame, err := capture.NewScreen().Capture(cmd.Context())
			if err != nil {
				return fmt.Errorf("capture: %w", err)
			}

			var rows []scoreRow
			res, err := templates.matcher(cfg.MatchThreshold).Score(frame)
			if err != nil {
				return err
			}
			rows = append(rows, scoreRow{role: "target", result: res, hit: res.Confidence > cfg.MatchThreshold})

			for _, t := range templates.controls {
				res, err := vision.NewFinder(t, cfg.MatchThreshold).Score(frame)
				if err != nil {
					return err
				}
				rows = append(rows, scoreRow{role: "control", result: res, hit: res.Confidence >= cfg.MatchThreshold})
			}

			printScores(cmd.OutOrStdout(), frame.Bounds().Size().String(), cfg.MatchThreshold, rows)
			return nil
		},
	}
}

func printScores(w io.Writer, frameSize string, threshold float64, rows []scoreRow) {
	hit := lipgloss.NewStyle().Foreground(cli.SuccessColor).Bold(true)
	miss := lipgloss.NewStyle().Foreground(cli.SubtleColor)

	fmt.Fprintln(w, cli.TitleStyle.Render(fmt.Sprintf("Frame %s, threshold %.2f", frameSize, threshold)))
	for _, r := range rows {
		status := miss.Render("absent")
		if r.hit {
			status = hit.Render(fmt.Sprintf("found at %v", r.result.Location))
		}
		fmt.Fprintf(w, "%-8s %-32s %6.3f  %s\n", r.role, r.result.Template, r.result.Confidence, status)
	}
}
