package system

import (
	"github.com/akinfelami/pico-mdr/engine"
	"github.com/akinfelami/pico-mdr/vmath"
)

// FrameSettings groups what one simulation step needs
type FrameSettings struct {
	Flock           *FlockSettings
	CollisionRadius vmath.Fix
}

// StepFrame runs reset, flocking and collision for one frame with the session locked by the caller
// Returns the touched cell count
func StepFrame(s *engine.Session, fs FrameSettings) int {
	ResetFrame(s)
	UpdateBoids(s.Boids, fs.Flock, s.RNG)
	return CheckCollisions(&s.Grid, s.Boids, s.RNG, fs.CollisionRadius)
}
