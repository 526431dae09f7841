package input

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/akinfelami/pico-mdr/component"
	"github.com/akinfelami/pico-mdr/parameter"
)

// Keyboard is a Device driven by terminal key events
// Key events arrive on the terminal poll goroutine while the input task samples, so state is locked
type Keyboard struct {
	mu    sync.Mutex
	table *KeyTable

	// Axis deflection latched until the next Axes read
	x, y int

	// Remaining polls the button reads as down
	pressPolls int
}

func NewKeyboard(table *KeyTable) *Keyboard {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &Keyboard{
		table: table,
		x:     parameter.AxisCenter,
		y:     parameter.AxisCenter,
	}
}

// HandleEvent feeds a tcell event; non-key events are ignored
func (k *Keyboard) HandleEvent(ev tcell.Event) CommandType {
	kev, ok := ev.(*tcell.EventKey)
	if !ok {
		return CmdNone
	}
	return k.HandleKey(kev.Key(), kev.Rune())
}

// HandleKey applies one key press and returns a system command, or CmdNone for device keys
func (k *Keyboard) HandleKey(key tcell.Key, r rune) CommandType {
	e, ok := k.table.Lookup(key, r)
	if !ok {
		return CmdNone
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	switch e.Behavior {
	case BehaviorAxis:
		switch e.Dir {
		case component.DirRight:
			k.x = parameter.AxisMax
		case component.DirLeft:
			k.x = 0
		case component.DirUp:
			k.y = parameter.AxisMax
		case component.DirDown:
			k.y = 0
		}
	case BehaviorButton:
		k.pressPolls = parameter.KeyPressSamples
	case BehaviorSystem:
		return e.Command
	}
	return CmdNone
}

// Axes returns the latched deflection and recentres the stick
// The pump reads it only when a step may follow, so a tap inside the move window stays latched
func (k *Keyboard) Axes() (x, y int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	x, y = k.x, k.y
	k.x, k.y = parameter.AxisCenter, parameter.AxisCenter
	return x, y
}

// Button reads as down for KeyPressSamples polls after a confirm key
func (k *Keyboard) Button() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.pressPolls > 0 {
		k.pressPolls--
		return true
	}
	return false
}
