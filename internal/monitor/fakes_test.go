package monitor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"time"
)

// recorder collects the observable side effects of all fakes in order.
type recorder struct {
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

type fakeAutomator struct {
	rec *recorder
	err error
}

func (f *fakeAutomator) SendKey(key string) error {
	f.rec.add("key:%s", key)
	return f.err
}

func (f *fakeAutomator) MoveCursor(to image.Point, d time.Duration) error {
	f.rec.add("move:%d,%d:%s", to.X, to.Y, d)
	return f.err
}

func (f *fakeAutomator) Click(at image.Point) error {
	f.rec.add("click:%d,%d", at.X, at.Y)
	return f.err
}

type fakeNotifier struct {
	rec *recorder
	err error
}

func (f *fakeNotifier) Notify(_, message string) error {
	f.rec.add("toast:%s", message)
	return f.err
}

// scriptedDialog answers prompts from a fixed script and remembers every
// prompt it was shown.
type scriptedDialog struct {
	rec     *recorder
	answers []string
	prompts []Prompt
	err     error
}

func (d *scriptedDialog) Confirm(ctx context.Context, p Prompt) (string, error) {
	d.rec.add("prompt")
	d.prompts = append(d.prompts, p)
	if d.err != nil {
		return "", d.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(d.answers) == 0 {
		return "", errors.New("dialog script exhausted")
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	return answer, nil
}

type fakeAudio struct {
	rec     *recorder
	playing bool
	err     error
}

func (a *fakeAudio) Play(path string) error {
	a.rec.add("play:%s", path)
	if a.err != nil {
		return a.err
	}
	a.playing = true
	return nil
}

func (a *fakeAudio) Stop() {
	a.rec.add("stop-sound")
	a.playing = false
}

func (a *fakeAudio) IsPlaying() bool {
	return a.playing
}

// sequenceDetector returns scripted confidences against a threshold.
type sequenceDetector struct {
	threshold   float64
	confidences []float64
	calls       int
	err         error
}

func (d *sequenceDetector) Present(image.Image) (float64, bool, error) {
	if d.err != nil {
		return 0, false, d.err
	}
	c := d.confidences[d.calls%len(d.confidences)]
	d.calls++
	return c, c > d.threshold, nil
}

// sequenceCapturer returns frames until limit captures have happened, then
// cancels the run.
type sequenceCapturer struct {
	rec    *recorder
	limit  int
	cancel context.CancelFunc
	errs   map[int]error
	calls  int
}

func (c *sequenceCapturer) Capture(ctx context.Context) (image.Image, error) {
	if c.calls >= c.limit {
		c.cancel()
		return nil, ctx.Err()
	}
	c.calls++
	c.rec.add("capture")
	if err, ok := c.errs[c.calls]; ok {
		return nil, err
	}
	return image.NewRGBA(image.Rect(0, 0, 64, 48)), nil
}

type fakeLocator struct {
	name  string
	rect  image.Rectangle
	found bool
	err   error
	calls int
}

func (l *fakeLocator) Name() string { return l.name }

func (l *fakeLocator) Locate(image.Image) (image.Rectangle, bool, error) {
	l.calls++
	return l.rect, l.found, l.err
}

// newTestScheduler returns a seeded scheduler whose waits only record.
func newTestScheduler(rec *recorder) *Scheduler {
	s := NewScheduler(rand.New(rand.NewPCG(1, 2)))
	s.sleep = func(ctx context.Context, d time.Duration) error {
		rec.add("wait:%s", d)
		return ctx.Err()
	}
	return s
}
