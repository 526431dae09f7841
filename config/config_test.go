package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/akinfelami/pico-mdr/parameter"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pico-mdr.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file, environment or flags", t, func() {
		cfg, err := Load("", nil)

		Convey("The parameter defaults are used", func() {
			So(err, ShouldBeNil)
			So(cfg.Seed, ShouldEqual, 0)
			So(cfg.Session.Agents, ShouldEqual, parameter.DefaultAgentCount)
			So(cfg.Flock.MaxSpeed, ShouldEqual, parameter.MaxSpeedFloat)
			So(cfg.Timing.Frame, ShouldEqual, parameter.FrameBudget)
			So(cfg.Audio.Enabled, ShouldBeTrue)
			So(cfg.Observer.Addr, ShouldBeEmpty)
		})

		Convey("The Q17.15 settings match the precomputed parameters", func() {
			fs := cfg.FlockSettings()
			So(fs.MaxSpeed, ShouldEqual, parameter.MaxSpeed)
			So(fs.BiasIncrement, ShouldEqual, parameter.BiasIncrement)
			So(fs.RightMargin, ShouldEqual, parameter.RightMargin)
			So(cfg.FrameSettings().CollisionRadius, ShouldEqual, parameter.CollisionRadiusFix)
		})
	})
}

func TestLoadOverrides(t *testing.T) {
	Convey("Given a YAML file", t, func() {
		path := writeConfig(t, `
seed: 42
session:
  agents: 4
  group_bad_numbers: true
timing:
  frame: 40ms
flock:
  max_speed: 5
`)

		Convey("File values override defaults", func() {
			cfg, err := Load(path, nil)
			So(err, ShouldBeNil)
			So(cfg.Seed, ShouldEqual, 42)
			So(cfg.Session.Agents, ShouldEqual, 4)
			So(cfg.Session.GroupBadNumbers, ShouldBeTrue)
			So(cfg.Timing.Frame, ShouldEqual, 40*time.Millisecond)
			So(cfg.Flock.MaxSpeed, ShouldEqual, 5.0)
			So(cfg.InitOptions().Agents, ShouldEqual, 4)
		})

		Convey("Environment overrides the file", func() {
			t.Setenv("MDR_SESSION_AGENTS", "6")
			cfg, err := Load(path, nil)
			So(err, ShouldBeNil)
			So(cfg.Session.Agents, ShouldEqual, 6)
		})

		Convey("A changed flag overrides everything", func() {
			t.Setenv("MDR_SESSION_AGENTS", "6")
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			RegisterFlags(fs)
			So(fs.Parse([]string{"--agents=8", "--observe=:9090", "--mute"}), ShouldBeNil)

			cfg, err := Load(path, fs)
			So(err, ShouldBeNil)
			So(cfg.Session.Agents, ShouldEqual, 8)
			So(cfg.Observer.Addr, ShouldEqual, ":9090")
			So(cfg.Audio.Muted, ShouldBeTrue)
			So(cfg.Seed, ShouldEqual, 42)
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
		So(err, ShouldNotBeNil)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"too few agents", func(c *Config) { c.Session.Agents = 0 }},
		{"too many agents", func(c *Config) { c.Session.Agents = parameter.MaxAgentCount + 1 }},
		{"inverted speeds", func(c *Config) { c.Flock.MinSpeed = 7 }},
		{"zero frame", func(c *Config) { c.Timing.Frame = 0 }},
		{"loud audio", func(c *Config) { c.Audio.MasterVolume = 1.5 }},
		{"inverted margins", func(c *Config) { c.Flock.LeftMargin = c.Flock.RightMargin }},
		{"min speed rounds to zero", func(c *Config) { c.Flock.MinSpeed = 0.00001 }},
		{"bias increment rounds to zero", func(c *Config) { c.Flock.BiasIncrement = 0.00001 }},
		{"max speed overflows", func(c *Config) { c.Flock.MaxSpeed = 70000 }},
		{"visual range overflows", func(c *Config) { c.Flock.VisualRange = 1e6 }},
		{"negative turn overflows", func(c *Config) { c.Flock.TurnFactor = -70000 }},
		{"margin overflows", func(c *Config) { c.Flock.BottomMargin = 70000 }},
		{"observer without interval", func(c *Config) {
			c.Observer.Addr = ":0"
			c.Observer.PublishInterval = 0
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}

	t.Run("env out of range", func(t *testing.T) {
		t.Setenv("MDR_SESSION_AGENTS", "11")
		if _, err := Load("", nil); !errors.Is(err, ErrInvalid) {
			t.Errorf("expected ErrInvalid, got %v", err)
		}
	})
}

func TestDumpReloads(t *testing.T) {
	Convey("Given a dumped config", t, func() {
		cfg := Default()
		cfg.Seed = 7
		cfg.Timing.Render = 50 * time.Millisecond

		var buf bytes.Buffer
		So(cfg.Dump(&buf), ShouldBeNil)

		Convey("It is readable YAML with named durations", func() {
			var raw map[string]any
			So(yaml.Unmarshal(buf.Bytes(), &raw), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "render: 50ms")
		})

		Convey("Loading it back yields the same config", func() {
			path := writeConfig(t, buf.String())
			back, err := Load(path, nil)
			So(err, ShouldBeNil)
			So(back, ShouldResemble, cfg)
		})
	})
}
