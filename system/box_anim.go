package system

import (
	"github.com/akinfelami/pico-mdr/component"
	"github.com/akinfelami/pico-mdr/parameter"
)

// AnimSettings tunes the meter box animator
type AnimSettings struct {
	Increment int
	MaxHeight int
}

// DefaultAnimSettings returns the stock 5px step to a 50px peak
func DefaultAnimSettings() AnimSettings {
	return AnimSettings{
		Increment: parameter.BoxAnimIncrement,
		MaxHeight: parameter.BoxAnimMaxHeight,
	}
}

// TriggerBox starts or restarts growth from the current height
func TriggerBox(a *component.BoxAnim) {
	a.State = component.AnimGrowing
	a.Reveal = false
}

// TickBox advances one box by one tick and reports whether it just reached full height
func TickBox(a *component.BoxAnim, st AnimSettings) bool {
	switch a.State {
	case component.AnimGrowing:
		a.Height += st.Increment
		if a.Height >= st.MaxHeight {
			a.Height = st.MaxHeight
			a.State = component.AnimShrinking
			a.Reveal = true
			return true
		}
	case component.AnimShrinking:
		a.Reveal = false
		a.Height -= st.Increment
		if a.Height <= 0 {
			a.Height = 0
			a.State = component.AnimIdle
		}
	}
	return false
}

// TickBoxes advances every box and reports whether any reached full height
func TickBoxes(anims []component.BoxAnim, st AnimSettings) bool {
	full := false
	for i := range anims {
		if TickBox(&anims[i], st) {
			full = true
		}
	}
	return full
}

// Animating reports whether any box is mid-animation
func Animating(anims []component.BoxAnim) bool {
	for i := range anims {
		if anims[i].State != component.AnimIdle {
			return true
		}
	}
	return false
}
