// Package monitor runs the detection and decision loop: capture a frame,
// score it, refresh or alert, and wait a jittered interval.
package monitor

import (
	"context"
	"image"
	"time"
)

// Capturer grabs the current display.
type Capturer interface {
	Capture(ctx context.Context) (image.Image, error)
}

// Detector decides whether the watched content is on screen.
type Detector interface {
	Present(frame image.Image) (confidence float64, found bool, err error)
}

// Locator finds a clickable control. Not finding it is not an error.
type Locator interface {
	Name() string
	Locate(frame image.Image) (image.Rectangle, bool, error)
}

// Automator injects synthetic input.
type Automator interface {
	SendKey(key string) error
	MoveCursor(to image.Point, duration time.Duration) error
	Click(at image.Point) error
}

// Notifier shows a fire-and-forget toast.
type Notifier interface {
	Notify(title, message string) error
}

// Dialog shows a blocking prompt and returns the ID of the chosen option,
// or "" when the prompt was dismissed without a choice.
type Dialog interface {
	Confirm(ctx context.Context, prompt Prompt) (string, error)
}

// Audio plays the alert sound.
type Audio interface {
	Play(path string) error
	Stop()
	IsPlaying() bool
}

// Prompt is the content of a dialog.
type Prompt struct {
	Title   string
	Message string
	Options []Option
}

// Option is one button of a prompt.
type Option struct {
	ID    string
	Label string
}
