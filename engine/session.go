package engine

import (
	"sync"

	"github.com/akinfelami/pico-mdr/component"
	"github.com/akinfelami/pico-mdr/parameter"
	"github.com/akinfelami/pico-mdr/vmath"
)

// PlayState is the coarse session phase
type PlayState uint8

const (
	PlayStart PlayState = iota
	PlayPlaying
	PlayWon
)

func (p PlayState) String() string {
	switch p {
	case PlayStart:
		return "start"
	case PlayPlaying:
		return "playing"
	case PlayWon:
		return "won"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name in snapshots
func (p PlayState) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Grid is the fixed number grid, indexed [row][col]
type Grid [parameter.Rows][parameter.Cols]component.Cell

// Session owns the grid, agents and meter boxes of one play-through
// Tasks receive it by pointer and hold the lock for one step, tick or snapshot
type Session struct {
	mu sync.Mutex

	Grid  Grid
	Boids []component.Boid
	Boxes [parameter.BoxCount]component.Box
	Anims [parameter.BoxCount]component.BoxAnim

	// BadRemaining counts bad cells not yet refined; zero wins the session
	BadRemaining int
	// BadSeen counts every bad cell dealt, initial and regenerated
	BadSeen int
	// RefinedTotal counts refinements over the session
	RefinedTotal int

	Cursor component.Cursor
	Play   PlayState

	Frame uint64
	March int

	Seed uint64
	RNG  *vmath.FastRand
}

// NewSession allocates a session with its boxes placed and the RNG seeded
// Grid and agents are dealt by system.InitSession
func NewSession(seed uint64) *Session {
	s := &Session{
		Seed: seed,
		RNG:  vmath.NewFastRand(seed),
		Play: PlayStart,
	}
	for i := range s.Boxes {
		x, y := parameter.BoxOrigin(i)
		s.Boxes[i] = component.Box{X: x, Y: y, W: parameter.BoxWidth, H: parameter.BoxHeight}
	}
	return s
}

// Lock acquires exclusive access for one step
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the step lock
func (s *Session) Unlock() { s.mu.Unlock() }

// Update runs fn with the session locked
func (s *Session) Update(fn func(s *Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

// InBounds reports whether (row, col) addresses a grid slot
func InBounds(row, col int) bool {
	return row >= 0 && row < parameter.Rows && col >= 0 && col < parameter.Cols
}

// Progress returns refined bad cells as a percentage of all bad cells dealt
func (s *Session) Progress() int {
	if s.BadSeen == 0 {
		return 100
	}
	done := s.BadSeen - s.BadRemaining
	return done * 100 / s.BadSeen
}
