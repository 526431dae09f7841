package parameter

// Framebuffer
const (
	ScreenWidth  = 640
	ScreenHeight = 480
)

// Number Grid
const (
	Rows = 7
	Cols = 15

	// CellWidth and CellHeight are the pixel pitch of a grid slot
	CellWidth  = 40
	CellHeight = 40

	// GridStartX and GridStartY place slot (0,0)
	GridStartX = 10
	GridStartY = 80

	// CollisionRadius widens a cell's hit box on both axes, in pixels
	CollisionRadius = 10

	// BadNibbleThreshold: a draw is bad when its low nibble exceeds this
	BadNibbleThreshold = 14

	// BinCount is the number of refinement bins reachable from the grid
	BinCount = 4
)

// Meter Boxes
const (
	// BoxCount includes the fifth box that no bin feeds
	BoxCount = 5

	BoxStartX = 40
	BoxY      = 420
	BoxWidth  = 60
	BoxHeight = 10
	BoxGap    = 60

	// BoxAnimIncrement is the height change per animator tick
	BoxAnimIncrement = 5

	// BoxAnimMaxHeight is the fully grown height
	BoxAnimMaxHeight = 50
)

// Cursor
const (
	// DashLength is the marching-ants dash length in pixels
	DashLength = 4

	// MarchPeriod is the number of frames before the dash offset repeats
	MarchPeriod = 8
)

// Randomness
const (
	// SeedSalt is mixed into the time-derived session seed
	SeedSalt uint64 = 0x5D9EAB57135
)

// CellOrigin returns the pixel origin of grid slot (row, col)
func CellOrigin(row, col int) (x, y int) {
	return GridStartX + col*CellWidth, GridStartY + row*CellHeight
}

// BoxOrigin returns the pixel origin of meter box i
func BoxOrigin(i int) (x, y int) {
	return BoxStartX + (BoxWidth+BoxGap)*i, BoxY
}
