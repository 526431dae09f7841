package game

import (
	"context"

	"github.com/akinfelami/pico-mdr/engine"
	"github.com/akinfelami/pico-mdr/input"
	"github.com/akinfelami/pico-mdr/observer"
	"github.com/akinfelami/pico-mdr/status"
	"github.com/akinfelami/pico-mdr/system"
)

// simulate shows the start screen until the first press, then steps one frame per budget
func (g *Game) simulate(ctx context.Context, commands <-chan input.Command) error {
	for !g.gate.IsOpen() {
		select {
		case <-ctx.Done():
			return nil
		case cmd, ok := <-commands:
			if !ok {
				return nil
			}
			if err := g.dispatch(cmd); err != nil {
				return err
			}
		}
	}

	loop := engine.NewFrameLoop("simulation", g.cfg.Timing.Frame, g.clock, g.reg,
		status.SimFrames, status.SimOverruns, status.SimFrameMs)
	return loop.Run(ctx, func(ctx context.Context) error {
		pressed, err := g.drain(commands)
		if err != nil {
			return err
		}
		g.Step(pressed)
		return nil
	})
}

// drain applies every queued command without blocking and reports whether a press arrived
func (g *Game) drain(commands <-chan input.Command) (pressed bool, err error) {
	for {
		select {
		case cmd, ok := <-commands:
			if !ok {
				return pressed, nil
			}
			if cmd.Type == input.CmdPress {
				pressed = true
				continue
			}
			if err := g.dispatch(cmd); err != nil {
				return pressed, err
			}
		default:
			return pressed, nil
		}
	}
}

// dispatch applies one command outside the frame step
// Only the simulation task calls it, so the cursor and play state have a single writer
func (g *Game) dispatch(cmd input.Command) error {
	switch cmd.Type {
	case input.CmdMove:
		g.session.Update(func(s *engine.Session) {
			if s.Play == engine.PlayPlaying {
				system.MoveCursor(&s.Cursor, cmd.Dir)
			}
		})
	case input.CmdPress:
		g.Start()
	case input.CmdQuit:
		logf("quit at frame %d", g.session.Snapshot().Frame)
		return errQuit
	case input.CmdToggleAgents:
		logf("agents shown: %v", g.scene.ToggleAgents())
	case input.CmdToggleMute:
		logf("audio muted: %v", g.cues.ToggleMute())
	}
	return nil
}

// Start opens the gate on the first call and moves the session to playing
func (g *Game) Start() bool {
	if !g.gate.Open() {
		return false
	}
	g.session.Update(func(s *engine.Session) {
		if s.Play == engine.PlayStart {
			s.Play = engine.PlayPlaying
		}
	})
	g.cues.PlayStart()
	logf("start gate opened")
	return true
}

// Step runs one simulation frame and, when pressed, the refinement check against this frame's touches
func (g *Game) Step(pressed bool) system.RefineResult {
	var res system.RefineResult
	var touched int
	g.session.Update(func(s *engine.Session) {
		touched = system.StepFrame(s, g.frame)
		if pressed {
			res = system.HandleCursorRefinement(s)
		}
		g.statBad.Store(int64(s.BadRemaining))
	})
	g.statTouched.Add(int64(touched))

	if res.Refined() {
		g.onRefined(res)
	}
	return res
}

// onRefined records a batch and plays its cues; runs outside the session lock
func (g *Game) onRefined(res system.RefineResult) {
	g.statRefined.Add(int64(len(res.Cells)))
	g.statBatches.Add(1)
	for _, bin := range res.Bins() {
		g.cues.PlayRefine(bin)
	}
	logf("agent %d refined %d cells", res.Agent, len(res.Cells))
	if res.Won {
		g.statWon.Store(true)
		g.cues.PlayWin()
	}
}

// animate ticks the meter boxes and pauses the animator while a full box shows its breakdown
func (g *Game) animate(ctx context.Context) error {
	if err := g.gate.Wait(ctx); err != nil {
		return nil
	}

	loop := engine.NewFrameLoop("animator", g.cfg.Timing.AnimTick, g.clock, g.reg,
		status.AnimTicks, status.AnimOverruns, "")
	return loop.Run(ctx, func(ctx context.Context) error {
		if !g.TickAnimations() {
			return nil
		}
		g.cues.PlayFull()
		_ = engine.Hold(ctx, g.cfg.Timing.AnimHold)
		return nil
	})
}

// TickAnimations advances every box once and reports whether one reached full height
func (g *Game) TickAnimations() bool {
	var full bool
	g.session.Update(func(s *engine.Session) {
		full = system.TickBoxes(s.Anims[:], g.anim)
	})
	return full
}

// render draws the latest snapshot at the render interval, start screen included
func (g *Game) render(ctx context.Context) error {
	loop := engine.NewFrameLoop("render", g.cfg.Timing.Render, g.clock, g.reg,
		status.RenderFrames, status.RenderOverruns, "")
	return loop.Run(ctx, func(ctx context.Context) error {
		snap := g.session.Snapshot()
		g.scene.Draw(&snap, g.canvas)
		return nil
	})
}

func newObserver(addr string, g *Game) *observer.Server {
	return observer.NewServer(addr, g.session, g.scene, g.reg, g.cfg.Observer.PublishInterval)
}
