package system

import (
	"github.com/akinfelami/pico-mdr/component"
	"github.com/akinfelami/pico-mdr/parameter"
	"github.com/akinfelami/pico-mdr/vmath"
)

// FlockSettings carries every Q17.15 flocking parameter so config can override the defaults
type FlockSettings struct {
	VisualRange    vmath.Fix
	ProtectedRange vmath.Fix

	CenteringFactor vmath.Fix
	AvoidFactor     vmath.Fix
	MatchingFactor  vmath.Fix
	TurnFactor      vmath.Fix

	MaxSpeed vmath.Fix
	MinSpeed vmath.Fix

	BiasStart     vmath.Fix
	BiasIncrement vmath.Fix
	MaxBias       vmath.Fix

	LeftMargin   vmath.Fix
	RightMargin  vmath.Fix
	TopMargin    vmath.Fix
	BottomMargin vmath.Fix
}

// DefaultFlockSettings returns the precomputed parameter values
func DefaultFlockSettings() *FlockSettings {
	return &FlockSettings{
		VisualRange:     parameter.VisualRange,
		ProtectedRange:  parameter.ProtectedRange,
		CenteringFactor: parameter.CenteringFactor,
		AvoidFactor:     parameter.AvoidFactor,
		MatchingFactor:  parameter.MatchingFactor,
		TurnFactor:      parameter.TurnFactor,
		MaxSpeed:        parameter.MaxSpeed,
		MinSpeed:        parameter.MinSpeed,
		BiasStart:       parameter.BiasStart,
		BiasIncrement:   parameter.BiasIncrement,
		MaxBias:         parameter.MaxBias,
		LeftMargin:      parameter.LeftMargin,
		RightMargin:     parameter.RightMargin,
		TopMargin:       parameter.TopMargin,
		BottomMargin:    parameter.BottomMargin,
	}
}

// SpawnBoid places an agent at screen centre with a random velocity
func SpawnBoid(b *component.Boid, group int, fs *FlockSettings, rng *vmath.FastRand) {
	b.X = vmath.FromInt(parameter.SpawnX)
	b.Y = vmath.FromInt(parameter.SpawnY)
	b.VX = rng.Jitter()
	b.VY = rng.Jitter()
	b.Group = group
	b.Bias = fs.BiasStart
}

// SpawnFlock creates n agents with alternating scout groups 0 and 1
func SpawnFlock(n int, fs *FlockSettings, rng *vmath.FastRand) []component.Boid {
	if n < 1 {
		n = 1
	}
	if n > parameter.MaxAgentCount {
		n = parameter.MaxAgentCount
	}
	boids := make([]component.Boid, n)
	for i := range boids {
		SpawnBoid(&boids[i], i%2, fs, rng)
	}
	return boids
}

// UpdateBoids advances every agent by one frame
// Agents update in place in index order, so agent i sees agents j < i already moved this frame
func UpdateBoids(boids []component.Boid, fs *FlockSettings, rng *vmath.FastRand) {
	for i := range boids {
		b := &boids[i]

		var xposAvg, yposAvg, xvelAvg, yvelAvg, neighbours vmath.Fix
		var closeDX, closeDY vmath.Fix

		for j := range boids {
			if j == i {
				continue
			}
			o := &boids[j]
			dx := b.X - o.X
			dy := b.Y - o.Y
			dist := vmath.DistanceApprox(dx, dy)

			if dist < fs.ProtectedRange {
				closeDX += dx
				closeDY += dy
			} else if dist < fs.VisualRange {
				xposAvg += o.X
				yposAvg += o.Y
				xvelAvg += o.VX
				yvelAvg += o.VY
				neighbours += vmath.One
			}
		}

		if neighbours > 0 {
			xposAvg = vmath.Div(xposAvg, neighbours)
			yposAvg = vmath.Div(yposAvg, neighbours)
			xvelAvg = vmath.Div(xvelAvg, neighbours)
			yvelAvg = vmath.Div(yvelAvg, neighbours)

			b.VX += vmath.Mul(xposAvg-b.X, fs.CenteringFactor) + vmath.Mul(xvelAvg-b.VX, fs.MatchingFactor)
			b.VY += vmath.Mul(yposAvg-b.Y, fs.CenteringFactor) + vmath.Mul(yvelAvg-b.VY, fs.MatchingFactor)
		}

		b.VX += vmath.Mul(closeDX, fs.AvoidFactor)
		b.VY += vmath.Mul(closeDY, fs.AvoidFactor)

		if b.Y < fs.TopMargin {
			b.VY += fs.TurnFactor
		}
		if b.X > fs.RightMargin {
			b.VX -= fs.TurnFactor
		}
		if b.X < fs.LeftMargin {
			b.VX += fs.TurnFactor
		}
		if b.Y > fs.BottomMargin {
			b.VY -= fs.TurnFactor
		}

		applyBias(b, fs)
		clampSpeed(b, fs, rng)

		b.X += b.VX
		b.Y += b.VY
	}
}

// applyBias ratchets the scout bias by travel direction, then blends it into vx
// Group 1 blends toward +1 and group 2 toward -1; group 2 is never spawned
func applyBias(b *component.Boid, fs *FlockSettings) {
	switch b.Group {
	case component.ScoutGroup0:
		ratchet(b, b.VX > 0, fs)
	case component.ScoutGroup1:
		ratchet(b, b.VX < 0, fs)
	}

	switch b.Group {
	case component.ScoutGroup1:
		b.VX = vmath.Mul(vmath.One-b.Bias, b.VX) + vmath.Mul(b.Bias, vmath.One)
	case component.ScoutGroup2:
		b.VX = vmath.Mul(vmath.One-b.Bias, b.VX) + vmath.Mul(b.Bias, -vmath.One)
	}
}

func ratchet(b *component.Boid, up bool, fs *FlockSettings) {
	if up {
		b.Bias += fs.BiasIncrement
	} else {
		b.Bias -= fs.BiasIncrement
	}
	b.Bias = vmath.Clamp(b.Bias, fs.BiasIncrement, fs.MaxBias)
}

// clampSpeed rescales velocity into [MinSpeed, MaxSpeed]
// A stalled agent gets a fresh random heading before rescaling
func clampSpeed(b *component.Boid, fs *FlockSettings, rng *vmath.FastRand) {
	speed := b.Speed()
	if speed > fs.MaxSpeed {
		b.VX = vmath.Mul(vmath.Div(b.VX, speed), fs.MaxSpeed)
		b.VY = vmath.Mul(vmath.Div(b.VY, speed), fs.MaxSpeed)
	} else if speed < fs.MinSpeed {
		if speed == 0 {
			speed = redrawVelocity(b, fs, rng)
		}
		b.VX = vmath.Mul(vmath.Div(b.VX, speed), fs.MinSpeed)
		b.VY = vmath.Mul(vmath.Div(b.VY, speed), fs.MinSpeed)
	}
	settleSpeed(b, fs.MinSpeed, fs.MaxSpeed)
}

// redrawVelocity draws until the speed is non-zero, falling back to a pure +x heading
func redrawVelocity(b *component.Boid, fs *FlockSettings, rng *vmath.FastRand) vmath.Fix {
	for attempt := 0; attempt < parameter.RespawnAttempts; attempt++ {
		b.VX = rng.Jitter()
		b.VY = rng.Jitter()
		if s := b.Speed(); s != 0 {
			return s
		}
	}
	b.VX, b.VY = fs.MinSpeed, 0
	return fs.MinSpeed
}

// settleSpeed removes the few ulps of rounding the rescale can leave outside [lo, hi]
// Only the dominant component moves, so each step shifts the approximated speed by exactly the error
func settleSpeed(b *component.Boid, lo, hi vmath.Fix) {
	for i := 0; i < parameter.SettleIterations; i++ {
		s := b.Speed()
		var delta vmath.Fix
		switch {
		case s > hi:
			delta = hi - s
		case s < lo:
			delta = lo - s
		default:
			return
		}
		if vmath.Abs(b.VX) >= vmath.Abs(b.VY) {
			b.VX = stretch(b.VX, delta)
		} else {
			b.VY = stretch(b.VY, delta)
		}
	}
}

// stretch changes |v| by delta, keeping the sign
func stretch(v, delta vmath.Fix) vmath.Fix {
	if v < 0 {
		return v - delta
	}
	return v + delta
}
