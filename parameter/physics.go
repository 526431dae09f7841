package parameter

import "github.com/akinfelami/pico-mdr/vmath"

// Pre-computed Q17.15 flocking constants, initialized once and used as defaults by system.FlockSettings

var (
	VisualRange    = vmath.FromFloat(VisualRangeFloat)
	ProtectedRange = vmath.FromFloat(ProtectedRangeFloat)
)

var (
	CenteringFactor = vmath.FromFloat(CenteringFactorFloat)
	AvoidFactor     = vmath.FromFloat(AvoidFactorFloat)
	MatchingFactor  = vmath.FromFloat(MatchingFactorFloat)
	TurnFactor      = vmath.FromFloat(TurnFactorFloat)
)

var (
	MaxSpeed = vmath.FromFloat(MaxSpeedFloat)
	MinSpeed = vmath.FromFloat(MinSpeedFloat)
)

var (
	BiasStart     = vmath.FromFloat(BiasStartFloat)
	BiasIncrement = vmath.FromFloat(BiasIncrementFloat)
	MaxBias       = vmath.FromFloat(MaxBiasFloat)
)

var (
	LeftMargin   = vmath.FromInt(LeftMarginPx)
	RightMargin  = vmath.FromInt(RightMarginPx)
	TopMargin    = vmath.FromInt(TopMarginPx)
	BottomMargin = vmath.FromInt(BottomMarginPx)
)

// Collision geometry
var (
	HalfCellWidth      = vmath.Div(vmath.FromInt(CellWidth), vmath.FromInt(2))
	HalfCellHeight     = vmath.Div(vmath.FromInt(CellHeight), vmath.FromInt(2))
	CollisionRadiusFix = vmath.FromInt(CollisionRadius)
)
