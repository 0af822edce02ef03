package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/lkarlslund/screenwatch/internal/common"
)

// AlertState is the escalation state of the alert coordinator.
type AlertState int

const (
	// AlertIdle means the content was last seen, or no alert has been raised.
	AlertIdle AlertState = iota
	// AlertAlerting means the operator prompt is showing.
	AlertAlerting
	// AlertResumed means the operator chose to keep monitoring.
	AlertResumed
	// AlertStopped means the operator chose to stop.
	AlertStopped
)

func (s AlertState) String() string {
	switch s {
	case AlertIdle:
		return "idle"
	case AlertAlerting:
		return "alerting"
	case AlertResumed:
		return "resumed"
	case AlertStopped:
		return "stopped"
	default:
		return fmt.Sprintf("alert(%d)", int(s))
	}
}

// Resolution is the outcome of raising an alert.
type Resolution int

const (
	// ResolutionContinue keeps the loop running.
	ResolutionContinue Resolution = iota
	// ResolutionStop ends the loop.
	ResolutionStop
	// ResolutionSuppressed means no prompt was shown because a previous
	// alert was already acknowledged.
	ResolutionSuppressed
)

// Dialog option IDs.
const (
	OptionContinue  = "continue"
	OptionStop      = "stop"
	OptionStopSound = "stop-sound"
)

const (
	alertTitle   = "Desktop Monitor"
	alertMessage = "Target image not found! Do you want to continue monitoring?"
	toastTitle   = "Auto Refresh"
)

// Waiter performs cancellable waits.
type Waiter interface {
	Wait(ctx context.Context, d time.Duration) error
}

// AlertConfig holds the run-wide alert settings.
type AlertConfig struct {
	// SoundPath is played when an alert is raised. Empty disables sound.
	SoundPath string
	// ResumeDelay is the grace period after the operator chooses to continue.
	ResumeDelay time.Duration
	// SuppressRepeats withholds further prompts after an acknowledged alert
	// until the content is seen again.
	SuppressRepeats bool
}

// AlertCoordinator owns the escalation state machine. It is only touched by
// the loop goroutine.
type AlertCoordinator struct {
	cfg      AlertConfig
	dialog   Dialog
	audio    Audio
	notifier Notifier
	waiter   Waiter

	state      AlertState
	suppressed bool
}

// NewAlertCoordinator creates a coordinator in the idle state. audio and
// notifier may be nil.
func NewAlertCoordinator(cfg AlertConfig, dialog Dialog, audio Audio, notifier Notifier, waiter Waiter) *AlertCoordinator {
	return &AlertCoordinator{
		cfg:      cfg,
		dialog:   dialog,
		audio:    audio,
		notifier: notifier,
		waiter:   waiter,
	}
}

// State returns the current escalation state.
func (a *AlertCoordinator) State() AlertState {
	return a.state
}

// Suppressed reports whether repeat alerts are currently withheld.
func (a *AlertCoordinator) Suppressed() bool {
	return a.suppressed
}

// Reset is called whenever the content is detected.
func (a *AlertCoordinator) Reset() {
	if a.state != AlertIdle || a.suppressed {
		common.LogDebug("Alert state reset", common.Fields{"from": a.state.String()})
	}
	a.state = AlertIdle
	a.suppressed = false
}

// Raise alerts the operator that the content is missing and blocks until
// they decide. Dismissing the prompt, or asking to stop the sound, shows it
// again.
func (a *AlertCoordinator) Raise(ctx context.Context) (Resolution, error) {
	if a.suppressed && a.cfg.SuppressRepeats {
		common.LogInfo("Alert already acknowledged, not prompting again", nil)
		return ResolutionSuppressed, nil
	}

	common.LogInfo("Raising alert", common.Fields{"sound": a.cfg.SoundPath})
	a.playSound()
	a.state = AlertAlerting

	for {
		choice, err := a.dialog.Confirm(ctx, a.prompt())
		if err != nil {
			a.stopSound()
			return ResolutionContinue, fmt.Errorf("alert prompt: %w", err)
		}

		switch choice {
		case OptionContinue:
			a.stopSound()
			a.state = AlertResumed
			a.suppressed = true
			common.LogInfo("User chose to continue monitoring.", nil)
			a.notify(fmt.Sprintf("Will start monitoring again in %d seconds", int(a.cfg.ResumeDelay.Seconds())))
			if err := a.waiter.Wait(ctx, a.cfg.ResumeDelay); err != nil {
				return ResolutionContinue, err
			}
			return ResolutionContinue, nil

		case OptionStop:
			a.stopSound()
			a.state = AlertStopped
			common.LogInfo("User chose to stop monitoring.", nil)
			return ResolutionStop, nil

		case OptionStopSound:
			a.stopSound()
			common.LogDebug("Alert sound stopped, prompting again", nil)

		default:
			common.LogDebug("Prompt dismissed without a choice, prompting again", common.Fields{"choice": choice})
		}
	}
}

// prompt offers the stop-sound action only while the sound is playing.
func (a *AlertCoordinator) prompt() Prompt {
	p := Prompt{
		Title:   alertTitle,
		Message: alertMessage,
		Options: []Option{
			{ID: OptionContinue, Label: "Continue monitoring"},
			{ID: OptionStop, Label: "Stop monitoring"},
		},
	}
	if a.audio != nil && a.audio.IsPlaying() {
		p.Options = append(p.Options, Option{ID: OptionStopSound, Label: "Stop alert sound"})
	}
	return p
}

func (a *AlertCoordinator) playSound() {
	if a.audio == nil || a.cfg.SoundPath == "" {
		return
	}
	if err := a.audio.Play(a.cfg.SoundPath); err != nil {
		common.LogError(err, "Failed to play alert sound", common.Fields{"path": a.cfg.SoundPath})
	}
}

func (a *AlertCoordinator) stopSound() {
	if a.audio != nil && a.audio.IsPlaying() {
		a.audio.Stop()
	}
}

func (a *AlertCoordinator) notify(message string) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.Notify(toastTitle, message); err != nil {
		common.LogError(err, "Failed to show notification", common.Fields{"message": message})
	}
}
