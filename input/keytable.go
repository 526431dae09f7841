package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/akinfelami/pico-mdr/component"
)

// KeyBehavior classifies how a key drives the virtual joystick
type KeyBehavior uint8

const (
	BehaviorNone   KeyBehavior = iota
	BehaviorAxis               // Deflects one axis fully for the next sample
	BehaviorButton             // Holds the button down for KeyPressSamples polls
	BehaviorSystem             // Bypasses the device and returns a Command directly
)

// KeyEntry describes a key's behavior without function pointers
type KeyEntry struct {
	Behavior KeyBehavior
	Dir      component.Direction
	Command  CommandType
}

// KeyTable maps keys to behaviors
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Enter, Esc)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings: arrows or hjkl steer, space or Enter confirm
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyUp:     {BehaviorAxis, component.DirUp, CmdNone},
			tcell.KeyDown:   {BehaviorAxis, component.DirDown, CmdNone},
			tcell.KeyLeft:   {BehaviorAxis, component.DirLeft, CmdNone},
			tcell.KeyRight:  {BehaviorAxis, component.DirRight, CmdNone},
			tcell.KeyEnter:  {BehaviorButton, component.DirNone, CmdNone},
			tcell.KeyEscape: {BehaviorSystem, component.DirNone, CmdQuit},
			tcell.KeyCtrlC:  {BehaviorSystem, component.DirNone, CmdQuit},
			tcell.KeyCtrlQ:  {BehaviorSystem, component.DirNone, CmdQuit},
		},

		Runes: map[rune]KeyEntry{
			'h': {BehaviorAxis, component.DirLeft, CmdNone},
			'j': {BehaviorAxis, component.DirDown, CmdNone},
			'k': {BehaviorAxis, component.DirUp, CmdNone},
			'l': {BehaviorAxis, component.DirRight, CmdNone},
			' ': {BehaviorButton, component.DirNone, CmdNone},
			'q': {BehaviorSystem, component.DirNone, CmdQuit},
			'a': {BehaviorSystem, component.DirNone, CmdToggleAgents},
			'm': {BehaviorSystem, component.DirNone, CmdToggleMute},
		},
	}
}

// Lookup resolves a key event to its entry; rune keys are looked up by rune
func (kt *KeyTable) Lookup(key tcell.Key, r rune) (KeyEntry, bool) {
	if key == tcell.KeyRune {
		e, ok := kt.Runes[r]
		return e, ok
	}
	e, ok := kt.SpecialKeys[key]
	return e, ok
}
