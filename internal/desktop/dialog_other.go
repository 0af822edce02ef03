//go:build !windows

package desktop

import (
	"github.com/lkarlslund/screenwatch/internal/monitor"
)

// NewDialog returns the terminal prompt.
func NewDialog() monitor.Dialog {
	return NewTerminalDialog()
}
