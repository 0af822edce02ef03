// Package vision scores screen frames against bitmap templates using
// normalized cross-correlation.
package vision

import (
	"fmt"
	"image"
	_ "image/jpeg" // template formats
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
)

// Template is an immutable bitmap loaded once at startup.
type Template struct {
	Name string
	Path string

	mat  gocv.Mat
	size image.Point
}

// LoadTemplate decodes an image file into a template. The template is named
// after the file without its extension.
func LoadTemplate(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("template %s: decode: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t, err := NewTemplate(name, img)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	t.Path = path

	return t, nil
}

// NewTemplate wraps an in-memory image. Frames are converted with the same
// routine so both sides share channel order.
func NewTemplate(name string, img image.Image) (*Template, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("empty template image")
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert template: %w", err)
	}

	return &Template{
		Name: name,
		mat:  mat,
		size: b.Size(),
	}, nil
}

// Size returns the template width and height.
func (t *Template) Size() image.Point {
	return t.size
}

// Close releases the native buffer.
func (t *Template) Close() error {
	return t.mat.Close()
}
