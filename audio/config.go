package audio

import "github.com/akinfelami/pico-mdr/parameter"

// AudioConfig holds playback settings, filled from the application config
type AudioConfig struct {
	Enabled       bool
	SampleRate    int
	MasterVolume  float64
	EffectVolumes [soundTypeCount]float64
}

// DefaultAudioConfig returns enabled playback at full effect volumes
func DefaultAudioConfig() *AudioConfig {
	cfg := &AudioConfig{
		Enabled:      true,
		SampleRate:   parameter.AudioSampleRate,
		MasterVolume: parameter.AudioMasterVolume,
	}
	for i := range cfg.EffectVolumes {
		cfg.EffectVolumes[i] = 1.0
	}
	cfg.EffectVolumes[SoundFull] = 0.5
	return cfg
}

// volume returns the effective gain of one effect
func (c *AudioConfig) volume(s SoundType) float64 {
	if s < 0 || s >= soundTypeCount {
		return 0
	}
	return c.EffectVolumes[s] * c.MasterVolume
}
