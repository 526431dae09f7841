package input

import (
	"time"

	"github.com/akinfelami/pico-mdr/component"
	"github.com/akinfelami/pico-mdr/parameter"
)

// StickThresholds are the 12-bit axis readings that count as a deflection
type StickThresholds struct {
	XRight int
	XLeft  int
	YHigh  int
	YLow   int
}

// DefaultStickThresholds returns the stock ADC thresholds
func DefaultStickThresholds() StickThresholds {
	return StickThresholds{
		XRight: parameter.XRightThresh,
		XLeft:  parameter.XLeftThresh,
		YHigh:  parameter.YHighThresh,
		YLow:   parameter.YLowThresh,
	}
}

// Stick turns analog readings into at most one cursor step per move window
type Stick struct {
	thresholds StickThresholds
	window     time.Duration
	lastMove   time.Time
}

func NewStick(th StickThresholds, window time.Duration) *Stick {
	return &Stick{thresholds: th, window: window}
}

// Ready reports whether the move window since the last step has elapsed
func (s *Stick) Ready(now time.Time) bool {
	return s.lastMove.IsZero() || now.Sub(s.lastMove) >= s.window
}

// Direction classifies a reading, checking right, left, up then down
// Returns DirNone inside the move window or when centred
func (s *Stick) Direction(x, y int, now time.Time) component.Direction {
	if !s.Ready(now) {
		return component.DirNone
	}

	var dir component.Direction
	switch {
	case x > s.thresholds.XRight:
		dir = component.DirRight
	case x < s.thresholds.XLeft:
		dir = component.DirLeft
	case y > s.thresholds.YHigh:
		dir = component.DirUp
	case y < s.thresholds.YLow:
		dir = component.DirDown
	default:
		return component.DirNone
	}

	s.lastMove = now
	return dir
}
