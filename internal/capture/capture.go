// Package capture grabs the full display as an image.
package capture

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/gift"
)

// Screen captures the primary display.
type Screen struct{}

// NewScreen returns a full-display capture provider.
func NewScreen() *Screen {
	return &Screen{}
}

// Capture grabs one frame. The returned image is always an *image.RGBA with
// a top-left origin at (0,0).
func (s *Screen) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := grab()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}

	return Normalize(img), nil
}

// Normalize copies img into an RGBA buffer whose bounds start at (0,0).
func Normalize(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}

	g := gift.New()
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}
