//go:build !windows

package desktop

import (
	"image"
	"time"

	"github.com/lkarlslund/screenwatch/internal/common"
)

// Input logs the actions it would take. Synthetic input is only implemented
// on Windows.
type Input struct{}

// NewInput returns the dry-run automator.
func NewInput() *Input {
	common.LogWarn("Synthetic input is not supported on this platform, actions are logged only", nil)
	return &Input{}
}

func (*Input) SendKey(key string) error {
	if _, err := functionKey(key); err != nil {
		return err
	}
	common.LogInfo("Would press key", common.Fields{"key": key})
	return nil
}

func (*Input) MoveCursor(to image.Point, duration time.Duration) error {
	common.LogInfo("Would move pointer", common.Fields{"x": to.X, "y": to.Y, "duration": duration.String()})
	return nil
}

func (*Input) Click(at image.Point) error {
	common.LogInfo("Would click", common.Fields{"x": at.X, "y": at.Y})
	return nil
}
