package component

// Direction is a single-step cursor move
type Direction uint8

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

// String returns the direction name for logs
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

// Cursor is the player's selected grid slot
type Cursor struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}
