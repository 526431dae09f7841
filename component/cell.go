package component

// CellState is the per-frame refinement phase of a grid cell
type CellState uint8

const (
	// CellIdle is untouched this frame
	CellIdle CellState = iota
	// CellTouched is overlapped by the agent in Cell.Toucher this frame
	CellTouched
	// CellRefined was refined this frame and regenerates on the next
	CellRefined
)

// String returns the state name for logs and snapshots
func (s CellState) String() string {
	switch s {
	case CellIdle:
		return "idle"
	case CellTouched:
		return "touched"
	case CellRefined:
		return "refined"
	default:
		return "unknown"
	}
}

// NoGroup marks a cell outside any connected bad group
const NoGroup = -1

// Cell holds one grid slot's number and refinement state
// Position is derived from (row, col) every frame; X and Y only carry jitter for the current frame
type Cell struct {
	X      int  `json:"x" yaml:"x"`
	Y      int  `json:"y" yaml:"y"`
	Number int  `json:"number" yaml:"number"`
	Size   int  `json:"size" yaml:"size"`
	Bad    bool `json:"bad" yaml:"bad"`

	// Bin is the meter this cell feeds once refined, [0,3]
	Bin int `json:"bin" yaml:"bin"`

	// Group is the connected bad-group id when grouping is enabled, NoGroup otherwise
	Group int `json:"group" yaml:"group"`

	State CellState `json:"state" yaml:"state"`

	// Toucher is the agent index when State is CellTouched
	Toucher int `json:"toucher" yaml:"toucher"`
}

// TouchedBy reports whether agent k touched the cell this frame
func (c *Cell) TouchedBy(k int) bool {
	return c.State == CellTouched && c.Toucher == k
}

// Touched reports whether any agent touched the cell this frame
func (c *Cell) Touched() bool {
	return c.State == CellTouched
}

// Refined reports whether the cell was refined this frame
func (c *Cell) Refined() bool {
	return c.State == CellRefined
}

// Touch marks the cell as overlapped by agent k
func (c *Cell) Touch(k int) {
	c.State = CellTouched
	c.Toucher = k
}

// Idle clears per-frame touch state
func (c *Cell) Idle() {
	c.State = CellIdle
	c.Toucher = 0
}

// MarshalText encodes the state by name in JSON and YAML snapshots
func (s CellState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
