package desktop

import (
	"fmt"
	"image"
	"time"

	"github.com/lkarlslund/screenwatch/internal/common"
	"github.com/lkarlslund/screenwatch/internal/config"
)

// moveStep is the interval between pointer positions while animating a move.
const moveStep = 10 * time.Millisecond

// functionKey validates a key name and returns its number.
func functionKey(key string) (int, error) {
	n, ok := config.FunctionKey(key)
	if !ok {
		return 0, fmt.Errorf("%w: key %q", common.ErrUnsupported, key)
	}
	return n, nil
}

// glidePath returns the intermediate pointer positions from start to end,
// ending exactly on end.
func glidePath(start, end image.Point, d time.Duration) []image.Point {
	steps := int(d / moveStep)
	if steps < 1 {
		return []image.Point{end}
	}

	points := make([]image.Point, 0, steps)
	for i := 1; i <= steps; i++ {
		points = append(points, image.Point{
			X: start.X + (end.X-start.X)*i/steps,
			Y: start.Y + (end.Y-start.Y)*i/steps,
		})
	}
	return points
}
