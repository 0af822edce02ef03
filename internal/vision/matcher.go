package vision

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// MatchResult is produced fresh for every scoring call.
type MatchResult struct {
	Template   string
	Confidence float64
	// Location is the top-left corner of the best match.
	Location image.Point
	Rect     image.Rectangle
}

type scorer interface {
	Score(frame image.Image, t *Template) (MatchResult, error)
}

// Scorer runs gocv template matching in TM_CCOEFF_NORMED mode, so
// confidences fall in [-1,1].
type Scorer struct{}

// Score finds the best alignment of t inside frame. A frame smaller than
// the template cannot contain it and scores -1.
func (Scorer) Score(frame image.Image, t *Template) (MatchResult, error) {
	res := MatchResult{Template: t.Name, Confidence: -1}

	fs := frame.Bounds().Size()
	if fs.X < t.size.X || fs.Y < t.size.Y {
		return res, nil
	}

	screenmat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return res, fmt.Errorf("convert frame: %w", err)
	}
	defer screenmat.Close()

	resultmat := gocv.NewMat()
	defer resultmat.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	gocv.MatchTemplate(screenmat, t.mat, &resultmat, gocv.TmCcoeffNormed, mask)
	_, confidence, _, loc := gocv.MinMaxLoc(resultmat)

	res.Confidence = clampConfidence(float64(confidence))
	res.Location = loc
	res.Rect = image.Rectangle{Min: loc, Max: loc.Add(t.size)}

	return res, nil
}

// flat regions make the normalization divide by zero
func clampConfidence(c float64) float64 {
	switch {
	case math.IsNaN(c):
		return -1
	case c > 1:
		return 1
	case c < -1:
		return -1
	}
	return c
}

// Matcher decides whether the reference template is on screen.
type Matcher struct {
	scorer    scorer
	template  *Template
	threshold float64
}

// NewMatcher creates a matcher for the reference template.
func NewMatcher(t *Template, threshold float64) *Matcher {
	return &Matcher{scorer: Scorer{}, template: t, threshold: threshold}
}

// Present scores frame and reports whether the confidence is strictly
// above the threshold. A confidence equal to the threshold is absent.
func (m *Matcher) Present(frame image.Image) (float64, bool, error) {
	res, err := m.scorer.Score(frame, m.template)
	if err != nil {
		return res.Confidence, false, err
	}
	return res.Confidence, res.Confidence > m.threshold, nil
}

// Score exposes the raw result, used by the check command.
func (m *Matcher) Score(frame image.Image) (MatchResult, error) {
	return m.scorer.Score(frame, m.template)
}

// Finder locates a clickable control on screen.
type Finder struct {
	scorer    scorer
	template  *Template
	threshold float64
}

// NewFinder creates a finder for a control template.
func NewFinder(t *Template, threshold float64) *Finder {
	return &Finder{scorer: Scorer{}, template: t, threshold: threshold}
}

// Name returns the control template name.
func (f *Finder) Name() string {
	return f.template.Name
}

// Locate returns the matched rectangle when the confidence reaches the
// threshold. Not finding the control is not an error.
func (f *Finder) Locate(frame image.Image) (image.Rectangle, bool, error) {
	res, err := f.scorer.Score(frame, f.template)
	if err != nil {
		return image.Rectangle{}, false, err
	}
	if res.Confidence < f.threshold {
		return image.Rectangle{}, false, nil
	}
	return res.Rect, true, nil
}

// Score exposes the raw result, used by the check command.
func (f *Finder) Score(frame image.Image) (MatchResult, error) {
	return f.scorer.Score(frame, f.template)
}
