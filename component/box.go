package component

// AnimState is the meter box animation phase
type AnimState uint8

const (
	AnimIdle AnimState = iota
	AnimGrowing
	AnimShrinking
)

// String returns the phase name for logs and snapshots
func (s AnimState) String() string {
	switch s {
	case AnimIdle:
		return "idle"
	case AnimGrowing:
		return "growing"
	case AnimShrinking:
		return "shrinking"
	default:
		return "unknown"
	}
}

// Box is a static meter rectangle
type Box struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// Bin holds the four refinement counters of one meter
type Bin struct {
	Woe    int `json:"woe" yaml:"woe"`
	Frolic int `json:"frolic" yaml:"frolic"`
	Dread  int `json:"dread" yaml:"dread"`
	Malice int `json:"malice" yaml:"malice"`
}

// AddAll adds v to every counter
func (b *Bin) AddAll(v int) {
	b.Woe += v
	b.Frolic += v
	b.Dread += v
	b.Malice += v
}

// Percent returns the mean of the four counters capped to [0,100]
func (b *Bin) Percent() int {
	p := (b.Woe + b.Frolic + b.Dread + b.Malice) / 4
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// BoxAnim is the per-box animation record
type BoxAnim struct {
	Height int       `json:"height" yaml:"height"`
	State  AnimState `json:"state" yaml:"state"`

	// Reveal is set while the box holds fully grown and the breakdown is shown
	Reveal bool `json:"reveal" yaml:"reveal"`

	Bin Bin `json:"bin" yaml:"bin"`
}

// MarshalText encodes the phase by name in JSON and YAML snapshots
func (s AnimState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
