package engine

import (
	"github.com/akinfelami/pico-mdr/component"
	"github.com/akinfelami/pico-mdr/parameter"
)

// AgentView is an agent reduced to screen pixels
type AgentView struct {
	X     int `json:"x" yaml:"x"`
	Y     int `json:"y" yaml:"y"`
	Group int `json:"group" yaml:"group"`
}

// Snapshot is a value copy of what presentation and observers read
type Snapshot struct {
	Frame        uint64                                `json:"frame" yaml:"frame"`
	Play         PlayState                             `json:"play" yaml:"play"`
	Grid         Grid                                  `json:"grid" yaml:"grid"`
	Agents       []AgentView                           `json:"agents" yaml:"agents"`
	Boxes        [parameter.BoxCount]component.Box     `json:"boxes" yaml:"boxes"`
	Anims        [parameter.BoxCount]component.BoxAnim `json:"anims" yaml:"anims"`
	Cursor       component.Cursor                      `json:"cursor" yaml:"cursor"`
	March        int                                   `json:"march" yaml:"march"`
	BadRemaining int                                   `json:"bad_remaining" yaml:"bad_remaining"`
	Progress     int                                   `json:"progress" yaml:"progress"`
	Seed         uint64                                `json:"seed" yaml:"seed"`
	Metrics      map[string]any                        `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// Snapshot copies the session under its lock
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.SnapshotLocked()
}

// SnapshotLocked copies the session; caller holds the lock
func (s *Session) SnapshotLocked() Snapshot {
	agents := make([]AgentView, len(s.Boids))
	for i := range s.Boids {
		x, y := s.Boids[i].Pixel()
		agents[i] = AgentView{X: x, Y: y, Group: s.Boids[i].Group}
	}
	return Snapshot{
		Frame:        s.Frame,
		Play:         s.Play,
		Grid:         s.Grid,
		Agents:       agents,
		Boxes:        s.Boxes,
		Anims:        s.Anims,
		Cursor:       s.Cursor,
		March:        s.March,
		BadRemaining: s.BadRemaining,
		Progress:     s.Progress(),
		Seed:         s.Seed,
	}
}
