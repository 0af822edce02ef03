package monitor

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/lkarlslund/screenwatch/internal/common"
	"github.com/lkarlslund/screenwatch/internal/config"
)

// ClickOffset is added to the top-left corner of a located control to reach
// a clickable point inside it. It is clamped to the control's size. Tune it
// when a control template has a large transparent margin.
var ClickOffset = image.Pt(10, 10)

// PointerMoveDuration is how long the pointer takes to travel to a control.
const PointerMoveDuration = 250 * time.Millisecond

// DispatchConfig holds the run-wide dispatch settings.
type DispatchConfig struct {
	RefreshKey      string
	NotifyOnRefresh bool
}

// Dispatcher performs the corrective action chosen by the loop. Actions are
// fire-and-forget: the next cycle's match is the verification.
type Dispatcher struct {
	cfg       DispatchConfig
	automator Automator
	notifier  Notifier
	locators  []Locator
}

// NewDispatcher creates a dispatcher. Locators are tried in order in
// aggressive mode.
func NewDispatcher(cfg DispatchConfig, automator Automator, notifier Notifier, locators ...Locator) *Dispatcher {
	return &Dispatcher{
		cfg:       cfg,
		automator: automator,
		notifier:  notifier,
		locators:  locators,
	}
}

// OnPresent refreshes the monitored surface.
func (d *Dispatcher) OnPresent(_ context.Context, _ config.Mode) error {
	if err := d.automator.SendKey(d.cfg.RefreshKey); err != nil {
		return fmt.Errorf("send %s: %w", d.cfg.RefreshKey, err)
	}

	if d.cfg.NotifyOnRefresh && d.notifier != nil {
		if err := d.notifier.Notify(toastTitle, "Refreshed the screen."); err != nil {
			common.LogError(err, "Failed to show notification", nil)
		}
	}
	return nil
}

// OnAbsent clicks the first located control in aggressive mode. Standard
// mode never moves the pointer.
func (d *Dispatcher) OnAbsent(ctx context.Context, mode config.Mode, frame image.Image) error {
	if mode != config.ModeAggressive {
		return nil
	}

	for _, loc := range d.locators {
		if err := ctx.Err(); err != nil {
			return err
		}

		rect, found, err := loc.Locate(frame)
		if err != nil {
			return fmt.Errorf("locate %s: %w", loc.Name(), err)
		}
		if !found {
			common.LogDebug("Control not found on screen", common.Fields{"control": loc.Name()})
			continue
		}

		target := clickPoint(rect)
		common.LogInfo("Clicking control", common.Fields{"control": loc.Name(), "x": target.X, "y": target.Y})
		if err := d.automator.MoveCursor(target, PointerMoveDuration); err != nil {
			return fmt.Errorf("move pointer: %w", err)
		}
		if err := d.automator.Click(target); err != nil {
			return fmt.Errorf("click %s: %w", loc.Name(), err)
		}
		return nil
	}

	common.LogInfo("No control found to click", nil)
	return nil
}

func clickPoint(rect image.Rectangle) image.Point {
	off := ClickOffset
	if off.X >= rect.Dx() {
		off.X = rect.Dx() / 2
	}
	if off.Y >= rect.Dy() {
		off.Y = rect.Dy() / 2
	}
	return rect.Min.Add(off)
}
