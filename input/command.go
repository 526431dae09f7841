package input

import "github.com/akinfelami/pico-mdr/component"

// CommandType discriminates what the simulation task is asked to do
type CommandType uint8

const (
	CmdNone CommandType = iota

	CmdMove  // One cursor step in Command.Dir
	CmdPress // Debounced confirm: opens the start gate, then refines

	// System commands from the keyboard, not the device
	CmdQuit         // q, Esc, Ctrl+C
	CmdToggleAgents // a: show or hide agent markers
	CmdToggleMute   // m: mute or unmute audio cues
)

// String returns the command name for logs
func (t CommandType) String() string {
	switch t {
	case CmdMove:
		return "move"
	case CmdPress:
		return "press"
	case CmdQuit:
		return "quit"
	case CmdToggleAgents:
		return "toggle_agents"
	case CmdToggleMute:
		return "toggle_mute"
	default:
		return "none"
	}
}

// Command is one message from an input source to the simulation task
type Command struct {
	Type CommandType
	Dir  component.Direction
}
