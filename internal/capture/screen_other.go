//go:build !windows

package capture

import (
	"image"

	"github.com/vova616/screenshot"
)

func grab() (image.Image, error) {
	return screenshot.CaptureScreen()
}
