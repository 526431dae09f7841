// Package game wires a session to its tasks: simulation, box animator, input pump, renderer and observer.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"github.com/akinfelami/pico-mdr/config"
	"github.com/akinfelami/pico-mdr/engine"
	"github.com/akinfelami/pico-mdr/input"
	"github.com/akinfelami/pico-mdr/parameter"
	"github.com/akinfelami/pico-mdr/render"
	"github.com/akinfelami/pico-mdr/status"
	"github.com/akinfelami/pico-mdr/system"
	"github.com/akinfelami/pico-mdr/vmath"
)

// Cues is the audio collaborator; audio.SoundManager satisfies it
type Cues interface {
	PlayRefine(bin int)
	PlayStart()
	PlayFull()
	PlayWin()
	ToggleMute() bool
}

// CrashHandler receives the value recovered from a panicking task
// It runs on the panicking goroutine, so debug.Stack() inside it shows the fault
type CrashHandler func(r any)

// Options collects the collaborators of one game; only Config is required
type Options struct {
	Config *config.Config

	// Canvas receives every rendered frame; nil disables the render task
	Canvas render.Canvas

	// Device is sampled by the input pump; nil disables the pump
	Device input.Device

	// Commands carries commands from outside the pump, typically keyboard system keys
	Commands <-chan input.Command

	Cues     Cues
	Clock    engine.TimeProvider
	Registry *status.Registry
	Scene    *render.Scene
	OnCrash  CrashHandler
}

// errQuit unwinds the task group on a quit command
var errQuit = errors.New("quit requested")

// Game owns one session and the tasks that drive it
type Game struct {
	cfg     *config.Config
	session *engine.Session
	gate    *engine.Gate
	scene   *render.Scene
	reg     *status.Registry
	clock   engine.TimeProvider

	canvas   render.Canvas
	device   input.Device
	external <-chan input.Command
	cues     Cues
	onCrash  CrashHandler

	frame system.FrameSettings
	anim  system.AnimSettings

	statTouched *atomic.Int64
	statRefined *atomic.Int64
	statBatches *atomic.Int64
	statBad     *atomic.Int64
	statWon     *atomic.Bool
}

// New seeds and deals a session from the config
func New(opts Options) (*Game, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("game: %w: nil config", config.ErrInvalid)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if opts.Clock == nil {
		opts.Clock = engine.NewMonotonicTimeProvider()
	}
	if opts.Registry == nil {
		opts.Registry = status.NewRegistry()
	}
	if opts.Scene == nil {
		opts.Scene = render.NewScene()
	}
	if opts.Cues == nil {
		opts.Cues = silentCues{}
	}

	cfg := opts.Config
	seed := cfg.Seed
	if seed == 0 {
		seed = vmath.SessionSeed(opts.Clock.Now(), parameter.SeedSalt)
	}

	s := engine.NewSession(seed)
	system.InitSession(s, cfg.InitOptions())
	opts.Scene.SetShowAgents(cfg.Session.ShowAgents)

	reg := opts.Registry
	g := &Game{
		cfg:      cfg,
		session:  s,
		gate:     engine.NewGate(),
		scene:    opts.Scene,
		reg:      reg,
		clock:    opts.Clock,
		canvas:   opts.Canvas,
		device:   opts.Device,
		external: opts.Commands,
		cues:     opts.Cues,
		onCrash:  opts.OnCrash,
		frame:    cfg.FrameSettings(),
		anim:     system.DefaultAnimSettings(),

		statTouched: reg.Ints.Get(status.SimTouched),
		statRefined: reg.Ints.Get(status.RefineCount),
		statBatches: reg.Ints.Get(status.RefineBatches),
		statBad:     reg.Ints.Get(status.SessionBad),
		statWon:     reg.Bools.Get(status.SessionWon),
	}
	g.statBad.Store(int64(s.BadRemaining))
	return g, nil
}

// Session exposes the session for observers and tests
func (g *Game) Session() *engine.Session {
	return g.session
}

// Scene returns the scene shared by the renderer and observer
func (g *Game) Scene() *render.Scene {
	return g.scene
}

// Registry returns the metrics registry
func (g *Game) Registry() *status.Registry {
	return g.reg
}

// Started reports whether the start gate has opened
func (g *Game) Started() bool {
	return g.gate.IsOpen()
}

// Run drives every task until ctx ends, a quit command arrives or a task fails
// Quitting and cancellation both return nil
func (g *Game) Run(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)

	pumped := make(chan input.Command, parameter.CommandQueueSize)
	sources := []<-chan input.Command{pumped}
	if g.external != nil {
		sources = append(sources, g.external)
	}
	commands := channerics.Merge(groupCtx.Done(), sources...)

	group.Go(g.guard(groupCtx, "simulation", func(ctx context.Context) error {
		return g.simulate(ctx, commands)
	}))
	group.Go(g.guard(groupCtx, "animator", g.animate))

	if g.device != nil {
		stick := input.NewStick(input.DefaultStickThresholds(), g.cfg.Timing.MoveInterval)
		pump := input.NewPump(g.device, stick, g.clock, g.reg)
		group.Go(g.guard(groupCtx, "input", func(ctx context.Context) error {
			return pump.Run(ctx, g.cfg.Timing.InputPoll, pumped)
		}))
	}
	if g.canvas != nil {
		group.Go(g.guard(groupCtx, "render", g.render))
	}
	if addr := g.cfg.Observer.Addr; addr != "" {
		obs := newObserver(addr, g)
		group.Go(g.guard(groupCtx, "observer", func(ctx context.Context) error {
			if err := obs.Run(ctx); err != nil {
				logf("observer stopped: %v", err)
			}
			return nil
		}))
	}

	err := group.Wait()
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// guard runs a task with panic recovery
func (g *Game) guard(ctx context.Context, name string, task func(ctx context.Context) error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				if g.onCrash != nil {
					g.onCrash(r)
				}
				err = fmt.Errorf("%s task panicked: %v", name, r)
			}
		}()
		return task(ctx)
	}
}

type silentCues struct{}

func (silentCues) PlayRefine(int)   {}
func (silentCues) PlayStart()       {}
func (silentCues) PlayFull()        {}
func (silentCues) PlayWin()         {}
func (silentCues) ToggleMute() bool { return true }

func logf(format string, args ...any) {
	log.Printf("game: "+format, args...)
}
