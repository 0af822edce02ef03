//go:build windows

package desktop

import (
	"testing"
	"time"

	"github.com/lkarlslund/screenwatch/internal/monitor"
	"github.com/lxn/win"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"
)

func TestMessageBoxAnswer(t *testing.T) {
	two := monitor.Prompt{Options: []monitor.Option{{ID: "continue"}, {ID: "stop"}}}
	three := monitor.Prompt{Options: []monitor.Option{{ID: "continue"}, {ID: "stop"}, {ID: "stop-sound"}}}

	assert.Equal(t, "continue", answer(two, win.IDYES))
	assert.Equal(t, "stop", answer(two, win.IDNO))
	assert.Equal(t, "", answer(two, win.IDCANCEL))
	assert.Equal(t, "stop-sound", answer(three, win.IDCANCEL))
	assert.Equal(t, "", answer(three, 0))
}

func TestMessageBoxLegend(t *testing.T) {
	p := monitor.Prompt{
		Message: "Target image not found!",
		Options: []monitor.Option{{ID: "continue", Label: "Continue monitoring"}, {ID: "stop", Label: "Stop monitoring"}},
	}
	assert.Equal(t, "Target image not found!\n\nYes: Continue monitoring\nNo: Stop monitoring", legend(p))
}

func TestMessageBoxDismissButton(t *testing.T) {
	assert.Equal(t, int32(win.IDNO), dismissButton(2))
	assert.Equal(t, int32(win.IDCANCEL), dismissButton(3))
}

func TestCloseMessageBox_ReturnsWhenAnswered(t *testing.T) {
	done := make(chan int32, 1)
	done <- win.IDNO

	title, err := windows.UTF16PtrFromString("screenwatch test box that does not exist")
	require.NoError(t, err)

	start := time.Now()
	closeMessageBox(title, win.IDNO, done)
	assert.Less(t, time.Since(start), closeTimeout)
}
