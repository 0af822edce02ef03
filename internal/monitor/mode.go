package monitor

import (
	"context"
	"fmt"

	"github.com/lkarlslund/screenwatch/internal/common"
	"github.com/lkarlslund/screenwatch/internal/config"
)

// SelectMode asks the operator to choose between standard and aggressive
// mode, re-prompting until one is picked.
func SelectMode(ctx context.Context, dialog Dialog) (config.Mode, error) {
	prompt := Prompt{
		Title:   alertTitle,
		Message: "Select the operating mode. Aggressive mode also clicks the configured button when the target image is missing.",
		Options: []Option{
			{ID: config.ModeStandard.String(), Label: "Standard (refresh only)"},
			{ID: config.ModeAggressive.String(), Label: "Aggressive (refresh and click)"},
		},
	}

	for {
		choice, err := dialog.Confirm(ctx, prompt)
		if err != nil {
			return config.ModeStandard, fmt.Errorf("mode prompt: %w", err)
		}
		switch choice {
		case config.ModeStandard.String():
			return config.ModeStandard, nil
		case config.ModeAggressive.String():
			return config.ModeAggressive, nil
		}
		common.LogDebug("Mode prompt dismissed, prompting again", nil)
	}
}
