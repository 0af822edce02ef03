package vision

import (
	"errors"
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedScorer struct {
	result MatchResult
	err    error
}

func (s fixedScorer) Score(image.Image, *Template) (MatchResult, error) {
	return s.result, s.err
}

func TestMatcher_PresentIsStrict(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		want       bool
	}{
		{"well above", 0.95, true},
		{"just above", 0.8000001, true},
		{"equal is absent", 0.8, false},
		{"below", 0.4, false},
		{"anti-correlated", -0.7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Matcher{
				scorer:    fixedScorer{result: MatchResult{Confidence: tt.confidence}},
				template:  &Template{Name: "target"},
				threshold: 0.8,
			}

			confidence, found, err := m.Present(image.NewRGBA(image.Rect(0, 0, 1, 1)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, found)
			assert.InDelta(t, tt.confidence, confidence, 1e-12)
		})
	}
}

func TestMatcher_ScoreErrorIsReturned(t *testing.T) {
	boom := errors.New("boom")
	m := &Matcher{scorer: fixedScorer{err: boom}, template: &Template{}, threshold: 0.5}

	_, found, err := m.Present(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	assert.ErrorIs(t, err, boom)
	assert.False(t, found)
}

func TestFinder_LocateIncludesThreshold(t *testing.T) {
	rect := image.Rect(40, 50, 60, 70)
	tests := []struct {
		name       string
		confidence float64
		want       bool
	}{
		{"above", 0.9, true},
		{"equal is found", 0.8, true},
		{"below", 0.79, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Finder{
				scorer:    fixedScorer{result: MatchResult{Confidence: tt.confidence, Rect: rect}},
				template:  &Template{Name: "button"},
				threshold: 0.8,
			}

			got, ok, err := f.Locate(image.NewRGBA(image.Rect(0, 0, 1, 1)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, rect, got)
			} else {
				assert.Equal(t, image.Rectangle{}, got)
			}
		})
	}
}

func TestClampConfidence(t *testing.T) {
	assert.Equal(t, 1.0, clampConfidence(1.0000002))
	assert.Equal(t, -1.0, clampConfidence(-3))
	assert.Equal(t, 0.25, clampConfidence(0.25))
}

// noise builds a deterministic random image so that any sub-rectangle has
// a unique texture.
func noise(w, h int, seed uint64) *image.RGBA {
	r := rand.New(rand.NewPCG(seed, seed+1))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256)), 255})
		}
	}
	return img
}

func TestScorer_FindsCroppedRegion(t *testing.T) {
	frame := noise(200, 150, 7)
	want := image.Rect(120, 40, 150, 64)

	crop := image.NewRGBA(image.Rect(0, 0, want.Dx(), want.Dy()))
	for y := 0; y < want.Dy(); y++ {
		for x := 0; x < want.Dx(); x++ {
			crop.Set(x, y, frame.At(want.Min.X+x, want.Min.Y+y))
		}
	}

	tmpl, err := NewTemplate("crop", crop)
	require.NoError(t, err)
	defer tmpl.Close()

	res, err := Scorer{}.Score(frame, tmpl)
	require.NoError(t, err)
	assert.Greater(t, res.Confidence, 0.99)
	assert.Equal(t, want.Min, res.Location)
	assert.Equal(t, want, res.Rect)

	m := NewMatcher(tmpl, 0.8)
	_, found, err := m.Present(frame)
	require.NoError(t, err)
	assert.True(t, found)

	// A different texture of the same size does not contain the crop.
	_, found, err = m.Present(noise(200, 150, 99))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestScorer_FrameSmallerThanTemplate(t *testing.T) {
	tmpl, err := NewTemplate("big", noise(50, 50, 1))
	require.NoError(t, err)
	defer tmpl.Close()

	res, err := Scorer{}.Score(noise(20, 20, 2), tmpl)
	require.NoError(t, err)
	assert.Equal(t, -1.0, res.Confidence)
}

func TestNewTemplate_Empty(t *testing.T) {
	_, err := NewTemplate("empty", image.NewRGBA(image.Rectangle{}))
	assert.Error(t, err)
}

func TestLoadTemplate_MissingFile(t *testing.T) {
	_, err := LoadTemplate("does-not-exist.png")
	assert.Error(t, err)
}
