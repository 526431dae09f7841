package system

import (
	"github.com/akinfelami/pico-mdr/component"
	"github.com/akinfelami/pico-mdr/engine"
	"github.com/akinfelami/pico-mdr/parameter"
	"github.com/akinfelami/pico-mdr/vmath"
)

// CheckCollisions marks each cell overlapped by an agent this frame and returns how many were touched
// The lowest agent index wins a shared cell; touched cells jitter and bad ones enlarge
func CheckCollisions(g *engine.Grid, boids []component.Boid, rng *vmath.FastRand, radius vmath.Fix) int {
	reachX := parameter.HalfCellWidth + radius
	reachY := parameter.HalfCellHeight + radius

	touched := 0
	for row := 0; row < parameter.Rows; row++ {
		for col := 0; col < parameter.Cols; col++ {
			c := &g[row][col]
			if c.Refined() {
				continue
			}
			cx := vmath.FromInt(c.X) + parameter.HalfCellWidth
			cy := vmath.FromInt(c.Y) + parameter.HalfCellHeight

			for k := range boids {
				b := &boids[k]
				if vmath.Abs(b.X-cx) >= reachX || vmath.Abs(b.Y-cy) >= reachY {
					continue
				}

				c.Touch(k)
				c.X += vmath.ToInt(rng.Jitter())
				c.Y += vmath.ToInt(rng.Jitter())
				if c.Bad {
					c.Size = 2
				} else {
					c.Size = 1
				}
				touched++
				break
			}
		}
	}
	return touched
}
