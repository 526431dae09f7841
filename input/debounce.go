package input

// ButtonState is the debouncer phase
type ButtonState uint8

const (
	NotPressed      ButtonState = iota // Released and stable
	MaybePressed                       // One pressed sample seen
	Pressed                            // Pressed and stable
	MaybeNotPressed                    // One released sample seen while pressed
)

func (s ButtonState) String() string {
	switch s {
	case NotPressed:
		return "not_pressed"
	case MaybePressed:
		return "maybe_pressed"
	case Pressed:
		return "pressed"
	case MaybeNotPressed:
		return "maybe_not_pressed"
	default:
		return "unknown"
	}
}

// Debouncer filters a raw button level sampled once per poll
// A press needs two consecutive pressed samples, a release two consecutive released samples
type Debouncer struct {
	state ButtonState
}

// State returns the current phase
func (d *Debouncer) State() ButtonState {
	return d.state
}

// Update feeds one raw sample and reports a press edge on entering Pressed
func (d *Debouncer) Update(down bool) bool {
	switch d.state {
	case NotPressed:
		if down {
			d.state = MaybePressed
		}
	case MaybePressed:
		if down {
			d.state = Pressed
			return true
		}
		d.state = NotPressed
	case Pressed:
		if !down {
			d.state = MaybeNotPressed
		}
	case MaybeNotPressed:
		if down {
			d.state = Pressed
		} else {
			d.state = NotPressed
		}
	}
	return false
}

// Reset returns to NotPressed
func (d *Debouncer) Reset() {
	d.state = NotPressed
}
