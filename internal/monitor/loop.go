package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lkarlslund/screenwatch/internal/common"
	"github.com/lkarlslund/screenwatch/internal/config"
)

// LoopState is the top-level state of the monitor.
type LoopState int

const (
	LoopSelectingMode LoopState = iota
	LoopStarting
	LoopRunning
	LoopStopped
)

func (s LoopState) String() string {
	switch s {
	case LoopSelectingMode:
		return "selecting-mode"
	case LoopStarting:
		return "starting"
	case LoopRunning:
		return "running"
	case LoopStopped:
		return "stopped"
	default:
		return fmt.Sprintf("loop(%d)", int(s))
	}
}

// Options are the run-wide loop settings.
type Options struct {
	// Mode may be config.ModeAsk, in which case the operator is prompted
	// before starting.
	Mode          config.Mode
	Interval      time.Duration
	StartupDelay  time.Duration
	ErrorCooldown time.Duration
	OnError       config.ErrorPolicy
}

// Deps are the collaborators of the loop.
type Deps struct {
	Capturer   Capturer
	Detector   Detector
	Alerts     *AlertCoordinator
	Dispatcher *Dispatcher
	Scheduler  *Scheduler
	Dialog     Dialog
	Notifier   Notifier
}

// Loop orchestrates capture, detection, dispatch, alerting and pacing.
// Exactly one cycle is in flight at any time.
type Loop struct {
	opts Options
	deps Deps

	mode   config.Mode
	state  LoopState
	cycles int
}

// NewLoop creates a loop in the selecting-mode state.
func NewLoop(opts Options, deps Deps) *Loop {
	return &Loop{opts: opts, deps: deps, mode: opts.Mode}
}

// State returns the current loop state.
func (l *Loop) State() LoopState {
	return l.state
}

// Mode returns the operating mode in effect.
func (l *Loop) Mode() config.Mode {
	return l.mode
}

// Cycles returns how many cycles have started.
func (l *Loop) Cycles() int {
	return l.cycles
}

// Run monitors until the operator stops it or ctx is cancelled, both of
// which return nil. An error is returned only when a cycle fails and the
// error policy is abort.
func (l *Loop) Run(ctx context.Context) error {
	l.state = LoopSelectingMode
	if l.mode == config.ModeAsk {
		mode, err := SelectMode(ctx, l.deps.Dialog)
		if err != nil {
			if isCancel(ctx, err) {
				return l.stopByUser()
			}
			l.state = LoopStopped
			return err
		}
		l.mode = mode
	}

	l.state = LoopStarting
	common.LogInfo("Starting desktop monitoring", common.Fields{
		"mode":     l.mode.String(),
		"interval": l.opts.Interval.String(),
	})
	if l.opts.StartupDelay > 0 {
		l.notify(fmt.Sprintf("Will start monitoring in %d seconds", int(l.opts.StartupDelay.Seconds())))
	}
	if err := l.deps.Scheduler.Wait(ctx, l.opts.StartupDelay); err != nil {
		return l.stopByUser()
	}

	l.state = LoopRunning
	for {
		if ctx.Err() != nil {
			return l.stopByUser()
		}

		l.cycles++
		stop, err := l.cycle(ctx)
		if err != nil {
			if isCancel(ctx, err) {
				return l.stopByUser()
			}
			if l.opts.OnError == config.ErrorAbort {
				l.state = LoopStopped
				return fmt.Errorf("cycle %d: %w", l.cycles, err)
			}

			common.LogError(err, "An error occurred", common.Fields{
				"cycle":    l.cycles,
				"cooldown": l.opts.ErrorCooldown.String(),
			})
			if err := l.deps.Scheduler.Wait(ctx, l.opts.ErrorCooldown); err != nil {
				return l.stopByUser()
			}
			continue
		}

		if stop {
			l.state = LoopStopped
			common.LogInfo("Monitoring stopped", common.Fields{"cycles": l.cycles})
			return nil
		}

		delay := l.deps.Scheduler.NextDelay(l.opts.Interval)
		common.LogInfo(fmt.Sprintf("Waiting for %d seconds", int(delay.Seconds())), nil)
		if err := l.deps.Scheduler.Wait(ctx, delay); err != nil {
			return l.stopByUser()
		}
	}
}

// cycle runs one capture-decide-act pass and reports whether the operator
// asked to stop.
func (l *Loop) cycle(ctx context.Context) (bool, error) {
	frame, err := l.deps.Capturer.Capture(ctx)
	if err != nil {
		return false, fmt.Errorf("capture: %w", err)
	}

	confidence, found, err := l.deps.Detector.Present(frame)
	if err != nil {
		return false, fmt.Errorf("match: %w", err)
	}

	if found {
		common.LogInfo("Target image found on screen, refreshing", common.Fields{"confidence": confidence})
		l.deps.Alerts.Reset()
		if err := l.deps.Dispatcher.OnPresent(ctx, l.mode); err != nil {
			return false, fmt.Errorf("refresh: %w", err)
		}
		return false, nil
	}

	common.LogInfo("Target image not found!", common.Fields{"confidence": confidence})
	// A failed click must not keep the operator from being alerted.
	if err := l.deps.Dispatcher.OnAbsent(ctx, l.mode, frame); err != nil {
		if isCancel(ctx, err) {
			return false, err
		}
		common.LogError(err, "Failed to click control", common.Fields{"mode": l.mode.String()})
	}

	res, err := l.deps.Alerts.Raise(ctx)
	if err != nil {
		return false, err
	}
	return res == ResolutionStop, nil
}

func (l *Loop) stopByUser() error {
	l.state = LoopStopped
	common.LogInfo("Monitoring stopped by user", common.Fields{"cycles": l.cycles})
	return nil
}

func (l *Loop) notify(message string) {
	if l.deps.Notifier == nil {
		return
	}
	if err := l.deps.Notifier.Notify(toastTitle, message); err != nil {
		common.LogError(err, "Failed to show notification", common.Fields{"message": message})
	}
}

func isCancel(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}
