// Package config loads runtime settings from defaults, an optional YAML file, MDR_ environment variables and
// command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/akinfelami/pico-mdr/audio"
	"github.com/akinfelami/pico-mdr/parameter"
	"github.com/akinfelami/pico-mdr/system"
	"github.com/akinfelami/pico-mdr/vmath"
)

// EnvPrefix is prepended to every environment override, e.g. MDR_SESSION_AGENTS
const EnvPrefix = "MDR"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the full runtime configuration
type Config struct {
	// Seed fixes the session RNG; zero derives one from the clock
	Seed  uint64 `mapstructure:"seed" yaml:"seed"`
	Debug bool   `mapstructure:"debug" yaml:"debug"`

	Session  SessionConfig  `mapstructure:"session" yaml:"session"`
	Flock    FlockConfig    `mapstructure:"flock" yaml:"flock"`
	Timing   TimingConfig   `mapstructure:"timing" yaml:"timing"`
	Audio    AudioSection   `mapstructure:"audio" yaml:"audio"`
	Observer ObserverConfig `mapstructure:"observer" yaml:"observer"`
}

type SessionConfig struct {
	Agents          int  `mapstructure:"agents" yaml:"agents"`
	GroupBadNumbers bool `mapstructure:"group_bad_numbers" yaml:"group_bad_numbers"`
	ShowAgents      bool `mapstructure:"show_agents" yaml:"show_agents"`
}

// FlockConfig holds flocking parameters in float pixels; they become Q17.15 in FlockSettings
type FlockConfig struct {
	VisualRange     float64 `mapstructure:"visual_range" yaml:"visual_range"`
	ProtectedRange  float64 `mapstructure:"protected_range" yaml:"protected_range"`
	CenteringFactor float64 `mapstructure:"centering_factor" yaml:"centering_factor"`
	AvoidFactor     float64 `mapstructure:"avoid_factor" yaml:"avoid_factor"`
	MatchingFactor  float64 `mapstructure:"matching_factor" yaml:"matching_factor"`
	TurnFactor      float64 `mapstructure:"turn_factor" yaml:"turn_factor"`
	MinSpeed        float64 `mapstructure:"min_speed" yaml:"min_speed"`
	MaxSpeed        float64 `mapstructure:"max_speed" yaml:"max_speed"`
	BiasStart       float64 `mapstructure:"bias_start" yaml:"bias_start"`
	BiasIncrement   float64 `mapstructure:"bias_increment" yaml:"bias_increment"`
	MaxBias         float64 `mapstructure:"max_bias" yaml:"max_bias"`
	LeftMargin      int     `mapstructure:"left_margin" yaml:"left_margin"`
	RightMargin     int     `mapstructure:"right_margin" yaml:"right_margin"`
	TopMargin       int     `mapstructure:"top_margin" yaml:"top_margin"`
	BottomMargin    int     `mapstructure:"bottom_margin" yaml:"bottom_margin"`
	CollisionRadius int     `mapstructure:"collision_radius" yaml:"collision_radius"`
}

type TimingConfig struct {
	Frame        time.Duration `mapstructure:"frame" yaml:"frame"`
	AnimTick     time.Duration `mapstructure:"anim_tick" yaml:"anim_tick"`
	AnimHold     time.Duration `mapstructure:"anim_hold" yaml:"anim_hold"`
	Render       time.Duration `mapstructure:"render" yaml:"render"`
	InputPoll    time.Duration `mapstructure:"input_poll" yaml:"input_poll"`
	MoveInterval time.Duration `mapstructure:"move_interval" yaml:"move_interval"`
}

type AudioSection struct {
	Enabled      bool    `mapstructure:"enabled" yaml:"enabled"`
	Muted        bool    `mapstructure:"muted" yaml:"muted"`
	MasterVolume float64 `mapstructure:"master_volume" yaml:"master_volume"`
	SampleRate   int     `mapstructure:"sample_rate" yaml:"sample_rate"`
}

// ObserverConfig enables the HTTP observer when Addr is set
type ObserverConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	PublishInterval time.Duration `mapstructure:"publish_interval" yaml:"publish_interval"`
}

// Flag names registered by RegisterFlags
const (
	FlagConfig      = "config"
	FlagSeed        = "seed"
	FlagDebug       = "debug"
	FlagObserve     = "observe"
	FlagMute        = "mute"
	FlagAgents      = "agents"
	FlagPrintConfig = "print-config"
)

// flagKeys binds each override flag to its config key
var flagKeys = map[string]string{
	FlagSeed:    "seed",
	FlagDebug:   "debug",
	FlagObserve: "observer.addr",
	FlagMute:    "audio.muted",
	FlagAgents:  "session.agents",
}

// RegisterFlags adds the command-line overrides to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "path to a YAML config file")
	fs.Uint64(FlagSeed, 0, "fixed session seed (0 = time-derived)")
	fs.Bool(FlagDebug, false, "write logs to the debug log file")
	fs.String(FlagObserve, "", "serve the HTTP observer on this address, e.g. :8080")
	fs.Bool(FlagMute, false, "start with audio muted")
	fs.Int(FlagAgents, parameter.DefaultAgentCount, "number of agents (1-10)")
	fs.Bool(FlagPrintConfig, false, "print the effective config as YAML and exit")
}

func setDefaults(vp *viper.Viper) {
	vp.SetDefault("seed", uint64(0))
	vp.SetDefault("debug", false)

	vp.SetDefault("session.agents", parameter.DefaultAgentCount)
	vp.SetDefault("session.group_bad_numbers", false)
	vp.SetDefault("session.show_agents", false)

	vp.SetDefault("flock.visual_range", parameter.VisualRangeFloat)
	vp.SetDefault("flock.protected_range", parameter.ProtectedRangeFloat)
	vp.SetDefault("flock.centering_factor", parameter.CenteringFactorFloat)
	vp.SetDefault("flock.avoid_factor", parameter.AvoidFactorFloat)
	vp.SetDefault("flock.matching_factor", parameter.MatchingFactorFloat)
	vp.SetDefault("flock.turn_factor", parameter.TurnFactorFloat)
	vp.SetDefault("flock.min_speed", parameter.MinSpeedFloat)
	vp.SetDefault("flock.max_speed", parameter.MaxSpeedFloat)
	vp.SetDefault("flock.bias_start", parameter.BiasStartFloat)
	vp.SetDefault("flock.bias_increment", parameter.BiasIncrementFloat)
	vp.SetDefault("flock.max_bias", parameter.MaxBiasFloat)
	vp.SetDefault("flock.left_margin", parameter.LeftMarginPx)
	vp.SetDefault("flock.right_margin", parameter.RightMarginPx)
	vp.SetDefault("flock.top_margin", parameter.TopMarginPx)
	vp.SetDefault("flock.bottom_margin", parameter.BottomMarginPx)
	vp.SetDefault("flock.collision_radius", parameter.CollisionRadius)

	vp.SetDefault("timing.frame", parameter.FrameBudget)
	vp.SetDefault("timing.anim_tick", parameter.AnimTickInterval)
	vp.SetDefault("timing.anim_hold", parameter.AnimHoldDuration)
	vp.SetDefault("timing.render", parameter.RenderInterval)
	vp.SetDefault("timing.input_poll", parameter.InputPollInterval)
	vp.SetDefault("timing.move_interval", parameter.MoveInterval)

	vp.SetDefault("audio.enabled", true)
	vp.SetDefault("audio.muted", false)
	vp.SetDefault("audio.master_volume", parameter.AudioMasterVolume)
	vp.SetDefault("audio.sample_rate", parameter.AudioSampleRate)

	vp.SetDefault("observer.addr", "")
	vp.SetDefault("observer.publish_interval", parameter.ObserverPublishInterval)
}

// Default returns the configuration with no file, environment or flag overrides
func Default() *Config {
	cfg, err := Load("", nil)
	if err != nil {
		panic(fmt.Sprintf("config: defaults: %v", err))
	}
	return cfg
}

// Load resolves the configuration; path and flags may be empty and nil
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	vp := viper.New()
	setDefaults(vp)

	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	if path != "" {
		vp.SetConfigFile(path)
		vp.SetConfigType("yaml")
		if err := vp.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := vp.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting, wrapped in ErrInvalid
func (c *Config) Validate() error {
	if c.Session.Agents < 1 || c.Session.Agents > parameter.MaxAgentCount {
		return fmt.Errorf("%w: session.agents %d not in [1, %d]", ErrInvalid, c.Session.Agents, parameter.MaxAgentCount)
	}

	f := &c.Flock
	fixed := []struct {
		name string
		v    float64
	}{
		{"flock.visual_range", f.VisualRange},
		{"flock.protected_range", f.ProtectedRange},
		{"flock.centering_factor", f.CenteringFactor},
		{"flock.avoid_factor", f.AvoidFactor},
		{"flock.matching_factor", f.MatchingFactor},
		{"flock.turn_factor", f.TurnFactor},
		{"flock.min_speed", f.MinSpeed},
		{"flock.max_speed", f.MaxSpeed},
		{"flock.bias_start", f.BiasStart},
		{"flock.bias_increment", f.BiasIncrement},
		{"flock.max_bias", f.MaxBias},
		{"flock.left_margin", float64(f.LeftMargin)},
		{"flock.right_margin", float64(f.RightMargin)},
		{"flock.top_margin", float64(f.TopMargin)},
		{"flock.bottom_margin", float64(f.BottomMargin)},
		{"flock.collision_radius", float64(f.CollisionRadius)},
	}
	for _, fv := range fixed {
		if !vmath.FitsFix(fv.v) {
			return fmt.Errorf("%w: %s %g outside the Q17.15 range", ErrInvalid, fv.name, fv.v)
		}
	}
	// Values that round to zero in Q17.15 count as zero
	if vmath.FromFloat(f.MinSpeed) <= 0 {
		return fmt.Errorf("%w: flock.min_speed %g rounds to zero in Q17.15", ErrInvalid, f.MinSpeed)
	}
	if vmath.FromFloat(f.BiasIncrement) <= 0 {
		return fmt.Errorf("%w: flock.bias_increment %g rounds to zero in Q17.15", ErrInvalid, f.BiasIncrement)
	}
	if f.MinSpeed <= 0 || f.MinSpeed > f.MaxSpeed {
		return fmt.Errorf("%w: flock speeds need 0 < min_speed <= max_speed, got %g and %g", ErrInvalid, f.MinSpeed, f.MaxSpeed)
	}
	if f.ProtectedRange < 0 || f.VisualRange < f.ProtectedRange {
		return fmt.Errorf("%w: flock ranges need 0 <= protected_range <= visual_range", ErrInvalid)
	}
	if f.BiasIncrement <= 0 || f.MaxBias < f.BiasIncrement || f.MaxBias > 1 {
		return fmt.Errorf("%w: flock bias needs 0 < bias_increment <= max_bias <= 1", ErrInvalid)
	}
	if f.LeftMargin >= f.RightMargin || f.TopMargin >= f.BottomMargin {
		return fmt.Errorf("%w: flock margins are inverted", ErrInvalid)
	}
	if f.CollisionRadius < 0 {
		return fmt.Errorf("%w: flock.collision_radius %d is negative", ErrInvalid, f.CollisionRadius)
	}

	t := &c.Timing
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"timing.frame", t.Frame},
		{"timing.anim_tick", t.AnimTick},
		{"timing.render", t.Render},
		{"timing.input_poll", t.InputPoll},
		{"timing.move_interval", t.MoveInterval},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, d.name, d.d)
		}
	}
	if t.AnimHold < 0 {
		return fmt.Errorf("%w: timing.anim_hold is negative", ErrInvalid)
	}

	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return fmt.Errorf("%w: audio.master_volume %g not in [0, 1]", ErrInvalid, c.Audio.MasterVolume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: audio.sample_rate must be positive", ErrInvalid)
	}
	if c.Observer.Addr != "" && c.Observer.PublishInterval <= 0 {
		return fmt.Errorf("%w: observer.publish_interval must be positive", ErrInvalid)
	}
	return nil
}

// Dump writes the effective configuration as YAML
func (c *Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// FlockSettings converts the float parameters to Q17.15
func (c *Config) FlockSettings() *system.FlockSettings {
	f := &c.Flock
	return &system.FlockSettings{
		VisualRange:     vmath.FromFloat(f.VisualRange),
		ProtectedRange:  vmath.FromFloat(f.ProtectedRange),
		CenteringFactor: vmath.FromFloat(f.CenteringFactor),
		AvoidFactor:     vmath.FromFloat(f.AvoidFactor),
		MatchingFactor:  vmath.FromFloat(f.MatchingFactor),
		TurnFactor:      vmath.FromFloat(f.TurnFactor),
		MaxSpeed:        vmath.FromFloat(f.MaxSpeed),
		MinSpeed:        vmath.FromFloat(f.MinSpeed),
		BiasStart:       vmath.FromFloat(f.BiasStart),
		BiasIncrement:   vmath.FromFloat(f.BiasIncrement),
		MaxBias:         vmath.FromFloat(f.MaxBias),
		LeftMargin:      vmath.FromInt(f.LeftMargin),
		RightMargin:     vmath.FromInt(f.RightMargin),
		TopMargin:       vmath.FromInt(f.TopMargin),
		BottomMargin:    vmath.FromInt(f.BottomMargin),
	}
}

// InitOptions returns the session deal options
func (c *Config) InitOptions() system.InitOptions {
	return system.InitOptions{
		Agents:          c.Session.Agents,
		GroupBadNumbers: c.Session.GroupBadNumbers,
		Flock:           c.FlockSettings(),
	}
}

// FrameSettings returns the per-frame simulation settings
func (c *Config) FrameSettings() system.FrameSettings {
	return system.FrameSettings{
		Flock:           c.FlockSettings(),
		CollisionRadius: vmath.FromInt(c.Flock.CollisionRadius),
	}
}

// AudioConfig returns playback settings with stock per-effect volumes
func (c *Config) AudioConfig() *audio.AudioConfig {
	ac := audio.DefaultAudioConfig()
	ac.Enabled = c.Audio.Enabled
	ac.MasterVolume = c.Audio.MasterVolume
	ac.SampleRate = c.Audio.SampleRate
	return ac
}
