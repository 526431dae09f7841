package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/akinfelami/pico-mdr/parameter"
)

// Wave maps a phase in [0, 1) to a sample in [-1, 1]
type Wave func(phase float64) float64

func Sine(p float64) float64 { return math.Sin(2 * math.Pi * p) }

func Square(p float64) float64 {
	if p < 0.5 {
		return 1
	}
	return -1
}

func Triangle(p float64) float64 { return 1 - 4*math.Abs(p-0.5) }

// Tone is one enveloped note: linear attack from silence, linear release to silence at Duration
type Tone struct {
	Freq     float64
	Wave     Wave
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
}

// Streamer renders the tone at rate
func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	return &toneStreamer{
		wave:    t.Wave,
		step:    t.Freq / float64(rate),
		total:   rate.N(t.Duration),
		attack:  rate.N(t.Attack),
		release: rate.N(t.Release),
	}
}

type toneStreamer struct {
	wave  Wave
	step  float64
	phase float64
	pos   int

	total, attack, release int
}

func (s *toneStreamer) gain() float64 {
	g := 1.0
	if s.attack > 0 && s.pos < s.attack {
		g = float64(s.pos) / float64(s.attack)
	}
	if left := s.total - s.pos; s.release > 0 && left < s.release {
		g = math.Min(g, float64(left)/float64(s.release))
	}
	return g
}

func (s *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && s.pos < s.total {
		v := s.wave(s.phase) * s.gain()
		samples[n] = [2]float64{v, v}

		s.phase += s.step
		s.phase -= math.Floor(s.phase)
		s.pos++
		n++
	}
	return n, n > 0
}

func (s *toneStreamer) Err() error { return nil }

// scaled applies a linear gain; zero and below is silent
// beep's Volume works in log2 steps and log2(0) is -Inf
func scaled(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// arpeggio plays the frequencies back to back with a shared shape
func arpeggio(rate beep.SampleRate, shape Tone, freqs ...float64) beep.Streamer {
	parts := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		shape.Freq = f
		parts[i] = shape.Streamer(rate)
	}
	return beep.Seq(parts...)
}

// CreateRefineSound is a bell-like chime pitched by bin
func CreateRefineSound(bin int, cfg *AudioConfig) beep.Streamer {
	if bin < 0 || bin >= len(parameter.RefineNotes) {
		bin = 0
	}
	rate := beep.SampleRate(cfg.SampleRate)
	base := Tone{
		Freq:     parameter.RefineNotes[bin],
		Wave:     Sine,
		Duration: parameter.RefineSoundDuration,
		Attack:   parameter.RefineSoundAttack,
		Release:  parameter.RefineSoundRelease,
	}
	octave := base
	octave.Freq *= 2
	octave.Release /= 2

	bell := beep.Mix(scaled(base.Streamer(rate), 0.7), scaled(octave.Streamer(rate), 0.3))
	return scaled(bell, cfg.volume(SoundRefine))
}

// CreateStartSound is three rising square notes
func CreateStartSound(cfg *AudioConfig) beep.Streamer {
	shape := Tone{
		Wave:     Square,
		Duration: parameter.StartNoteDuration,
		Attack:   parameter.StartNoteAttack,
		Release:  parameter.StartNoteRelease,
	}
	seq := arpeggio(beep.SampleRate(cfg.SampleRate), shape, 392.00, 523.25, 659.25)
	return scaled(seq, cfg.volume(SoundStart)*0.4)
}

// CreateFullSound is a soft triangle tone for a box reaching full height
func CreateFullSound(cfg *AudioConfig) beep.Streamer {
	t := Tone{
		Freq:     261.63,
		Wave:     Triangle,
		Duration: parameter.FullSoundDuration,
		Attack:   parameter.FullSoundAttack,
		Release:  parameter.FullSoundRelease,
	}
	return scaled(t.Streamer(beep.SampleRate(cfg.SampleRate)), cfg.volume(SoundFull))
}

// CreateWinSound is an arpeggio up to the octave, the last note held twice as long
func CreateWinSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	shape := Tone{
		Wave:     Sine,
		Duration: parameter.WinNoteDuration,
		Attack:   parameter.WinNoteAttack,
		Release:  parameter.WinNoteRelease,
	}
	top := shape
	top.Freq = 1046.50
	top.Duration *= 2
	top.Release *= 2

	seq := beep.Seq(arpeggio(rate, shape, 523.25, 659.25, 783.99), top.Streamer(rate))
	return scaled(seq, cfg.volume(SoundWin))
}

// GetSoundEffect returns the streamer for a sound; bin only applies to SoundRefine
func GetSoundEffect(soundType SoundType, bin int, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundRefine:
		return CreateRefineSound(bin, cfg)
	case SoundStart:
		return CreateStartSound(cfg)
	case SoundFull:
		return CreateFullSound(cfg)
	case SoundWin:
		return CreateWinSound(cfg)
	}
	return nil
}
