package parameter

import "time"

// Audio
const (
	AudioSampleRate   = 44100
	AudioMasterVolume = 0.6

	// Refinement chime, one note per bin
	RefineSoundDuration = 180 * time.Millisecond
	RefineSoundAttack   = 5 * time.Millisecond
	RefineSoundRelease  = 140 * time.Millisecond

	// Start gate sweep, three rising notes
	StartNoteDuration = 90 * time.Millisecond
	StartNoteAttack   = 5 * time.Millisecond
	StartNoteRelease  = 40 * time.Millisecond

	// Box reached full height
	FullSoundDuration = 260 * time.Millisecond
	FullSoundAttack   = 10 * time.Millisecond
	FullSoundRelease  = 200 * time.Millisecond

	// Win fanfare, four notes
	WinNoteDuration = 160 * time.Millisecond
	WinNoteAttack   = 8 * time.Millisecond
	WinNoteRelease  = 80 * time.Millisecond
)

// RefineNotes are the chime frequencies for bins 0-3 (C5, E5, G5, C6)
var RefineNotes = [BinCount]float64{523.25, 659.25, 783.99, 1046.50}
