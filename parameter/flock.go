package parameter

// Boid Flocking (float sources, converted once in physics.go)
const (
	// VisualRangeFloat is the neighbour radius for cohesion and alignment in pixels
	VisualRangeFloat = 40.0

	// ProtectedRangeFloat is the personal space radius for separation in pixels
	ProtectedRangeFloat = 8.0

	// CenteringFactorFloat pulls an agent toward its neighbours' average position
	CenteringFactorFloat = 0.0005

	// AvoidFactorFloat scales the separation vector
	AvoidFactorFloat = 0.05

	// MatchingFactorFloat pulls an agent toward its neighbours' average velocity
	MatchingFactorFloat = 0.05

	// TurnFactorFloat is the per-frame impulse applied inside an edge margin
	TurnFactorFloat = 0.2

	// MaxSpeedFloat and MinSpeedFloat bound approximated speed in pixels/frame
	MaxSpeedFloat = 6.0
	MinSpeedFloat = 3.0

	// BiasStartFloat is the initial bias of both scout groups
	BiasStartFloat = 0.001

	// BiasIncrementFloat is the ratchet step and also the bias floor
	BiasIncrementFloat = 0.00004

	// MaxBiasFloat caps the bias ratchet
	MaxBiasFloat = 0.01
)

// Flock Size
const (
	// DefaultAgentCount is the number of agents spawned per session
	DefaultAgentCount = 2

	// MaxAgentCount bounds the O(N²) neighbour pass
	MaxAgentCount = 10

	// SettleIterations bounds the post-clamp rounding correction
	SettleIterations = 16

	// RespawnAttempts bounds redraws of a zero random velocity
	RespawnAttempts = 8
)

// Screen Margins (640x480 framebuffer)
const (
	LeftMarginPx   = 100
	RightMarginPx  = ScreenWidth - 100
	TopMarginPx    = 100
	BottomMarginPx = ScreenHeight - 100
)

// Spawn point is screen center
const (
	SpawnX = ScreenWidth / 2
	SpawnY = ScreenHeight / 2
)
