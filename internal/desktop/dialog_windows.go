//go:build windows

package desktop

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lkarlslund/screenwatch/internal/common"
	"github.com/lkarlslund/screenwatch/internal/monitor"
	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var buttonLabels = []string{"Yes", "No", "Cancel"}

// dialogClass is the window class of message boxes.
const dialogClass = "#32770"

// closeTimeout bounds how long a cancelled prompt waits for its box to go.
const closeTimeout = time.Second

// MessageBoxDialog shows a topmost Win32 message box. Options are bound to
// Yes, No and Cancel in order, and a legend is appended to the message.
type MessageBoxDialog struct{}

// NewDialog returns the native dialog.
func NewDialog() monitor.Dialog {
	return MessageBoxDialog{}
}

func (MessageBoxDialog) Confirm(ctx context.Context, p monitor.Prompt) (string, error) {
	var flags uint32 = win.MB_ICONWARNING | win.MB_TOPMOST | win.MB_SETFOREGROUND
	switch len(p.Options) {
	case 2:
		flags |= win.MB_YESNO
	case 3:
		flags |= win.MB_YESNOCANCEL
	default:
		return "", fmt.Errorf("message box cannot offer %d options", len(p.Options))
	}

	text, err := windows.UTF16PtrFromString(legend(p))
	if err != nil {
		return "", err
	}
	title, err := windows.UTF16PtrFromString(p.Title)
	if err != nil {
		return "", err
	}

	done := make(chan int32, 1)
	go func() {
		done <- win.MessageBox(0, text, title, flags)
	}()

	select {
	case <-ctx.Done():
		closeMessageBox(title, dismissButton(len(p.Options)), done)
		return "", ctx.Err()
	case id := <-done:
		return answer(p, id), nil
	}
}

// closeMessageBox presses a button of the box titled title until the
// MessageBox call returns. The box may not exist yet when this starts.
func closeMessageBox(title *uint16, button int32, done <-chan int32) {
	class, err := windows.UTF16PtrFromString(dialogClass)
	if err != nil {
		return
	}

	deadline := time.After(closeTimeout)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()

	for {
		if hwnd := win.FindWindow(class, title); hwnd != 0 {
			win.PostMessage(hwnd, win.WM_COMMAND, uintptr(button), 0)
		}
		select {
		case <-done:
			return
		case <-deadline:
			common.LogWarn("Prompt is still on screen after cancellation", nil)
			return
		case <-tick.C:
		}
	}
}

// dismissButton is the last button of the box. Its answer is discarded.
func dismissButton(options int) int32 {
	if options == 3 {
		return win.IDCANCEL
	}
	return win.IDNO
}

func legend(p monitor.Prompt) string {
	var b strings.Builder
	b.WriteString(p.Message)
	b.WriteString("\n")
	for i, o := range p.Options {
		fmt.Fprintf(&b, "\n%s: %s", buttonLabels[i], o.Label)
	}
	return b.String()
}

// answer maps a button ID to an option. Closing a two-button box yields
// IDCANCEL, which counts as dismissal.
func answer(p monitor.Prompt, id int32) string {
	var i int
	switch id {
	case win.IDYES:
		i = 0
	case win.IDNO:
		i = 1
	case win.IDCANCEL:
		i = 2
	default:
		return ""
	}
	if i >= len(p.Options) {
		return ""
	}
	return p.Options[i].ID
}
