//go:build windows

package desktop

import (
	"errors"
	"image"
	"time"
	"unsafe"

	"github.com/lxn/win"
)

// Input synthesises keyboard and mouse events with SendInput.
type Input struct {
	sleep func(time.Duration)
}

// NewInput returns the native input automator.
func NewInput() *Input {
	return &Input{sleep: time.Sleep}
}

// SendKey presses and releases a function key.
func (in *Input) SendKey(key string) error {
	n, err := functionKey(key)
	if err != nil {
		return err
	}

	vk := uint16(win.VK_F1 + n - 1)
	inputs := []win.KEYBD_INPUT{
		{Type: win.INPUT_KEYBOARD, Ki: win.KEYBDINPUT{WVk: vk}},
		{Type: win.INPUT_KEYBOARD, Ki: win.KEYBDINPUT{WVk: vk, DwFlags: win.KEYEVENTF_KEYUP}},
	}
	if sent := win.SendInput(uint32(len(inputs)), unsafe.Pointer(&inputs[0]), int32(unsafe.Sizeof(inputs[0]))); sent != uint32(len(inputs)) {
		return errors.New("SendInput rejected the key events")
	}
	return nil
}

// MoveCursor glides the pointer to the target over duration.
func (in *Input) MoveCursor(to image.Point, duration time.Duration) error {
	var cur win.POINT
	if !win.GetCursorPos(&cur) {
		return errors.New("GetCursorPos failed")
	}

	for _, p := range glidePath(image.Pt(int(cur.X), int(cur.Y)), to, duration) {
		if !win.SetCursorPos(int32(p.X), int32(p.Y)) {
			return errors.New("SetCursorPos failed")
		}
		in.sleep(moveStep)
	}
	return nil
}

// Click presses and releases the left button at a screen position.
func (in *Input) Click(at image.Point) error {
	if !win.SetCursorPos(int32(at.X), int32(at.Y)) {
		return errors.New("SetCursorPos failed")
	}

	inputs := []win.MOUSE_INPUT{
		{Type: win.INPUT_MOUSE, Mi: win.MOUSEINPUT{DwFlags: win.MOUSEEVENTF_LEFTDOWN}},
		{Type: win.INPUT_MOUSE, Mi: win.MOUSEINPUT{DwFlags: win.MOUSEEVENTF_LEFTUP}},
	}
	if sent := win.SendInput(uint32(len(inputs)), unsafe.Pointer(&inputs[0]), int32(unsafe.Sizeof(inputs[0]))); sent != uint32(len(inputs)) {
		return errors.New("SendInput rejected the mouse events")
	}
	return nil
}
