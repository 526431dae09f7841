package audio

import (
	"errors"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundRefine SoundType = iota // Cell refined, pitch by bin
	SoundStart                   // Start gate opened
	SoundFull                    // Meter box reached full height
	SoundWin                     // Every bad cell refined
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundRefine:
		return "refine"
	case SoundStart:
		return "start"
	case SoundFull:
		return "full"
	case SoundWin:
		return "win"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrAudioDisabled = errors.New("audio disabled")
)
