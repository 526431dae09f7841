package component

import "github.com/akinfelami/pico-mdr/vmath"

// Scout groups
const (
	// ScoutGroup0 ratchets bias while moving right
	ScoutGroup0 = 0
	// ScoutGroup1 ratchets bias while moving left, and its bias blends vx toward +1
	ScoutGroup1 = 1
	// ScoutGroup2 blends vx toward -1 but never ratchets; spawn never assigns it
	ScoutGroup2 = 2
)

// Boid is one flocking agent in Q17.15 pixels and pixels/frame
type Boid struct {
	X  vmath.Fix `json:"x" yaml:"x"`
	Y  vmath.Fix `json:"y" yaml:"y"`
	VX vmath.Fix `json:"vx" yaml:"vx"`
	VY vmath.Fix `json:"vy" yaml:"vy"`

	// Bias is the horizontal drift weight ratcheted by movement direction
	Bias vmath.Fix `json:"bias" yaml:"bias"`

	Group int `json:"group" yaml:"group"`
}

// Speed returns the alpha-max-plus-beta-min velocity magnitude
func (b *Boid) Speed() vmath.Fix {
	return vmath.DistanceApprox(b.VX, b.VY)
}

// Pixel returns the integer screen position
func (b *Boid) Pixel() (x, y int) {
	return vmath.ToInt(b.X), vmath.ToInt(b.Y)
}
