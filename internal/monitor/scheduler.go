package monitor

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// Jitter bounds around the nominal interval.
const (
	jitterLow  = 0.7
	jitterHigh = 1.3
)

// Scheduler computes jittered delays and performs cancellable waits.
type Scheduler struct {
	rng   *rand.Rand
	sleep func(ctx context.Context, d time.Duration) error
}

// NewScheduler returns a scheduler backed by rng. A nil rng is seeded from
// the runtime.
func NewScheduler(rng *rand.Rand) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Scheduler{rng: rng, sleep: Sleep}
}

// NextDelay draws a whole number of seconds uniformly from
// [round(0.7n), round(1.3n)]. Each call is independent.
func (s *Scheduler) NextDelay(nominal time.Duration) time.Duration {
	n := nominal.Seconds()
	lo := int(math.Round(jitterLow * n))
	hi := int(math.Round(jitterHigh * n))
	if lo < 0 {
		lo = 0
	}
	if hi < lo {
		hi = lo
	}

	return time.Duration(lo+s.rng.IntN(hi-lo+1)) * time.Second
}

// Wait suspends the caller for d or until ctx is done.
func (s *Scheduler) Wait(ctx context.Context, d time.Duration) error {
	return s.sleep(ctx, d)
}

// Sleep waits for d, returning ctx.Err() if ctx ends first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
