package input

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akinfelami/pico-mdr/component"
	"github.com/akinfelami/pico-mdr/engine"
	"github.com/akinfelami/pico-mdr/status"
)

// Pump samples a Device on a fixed poll and emits Commands
// It is the only reader of the device; the simulation task is the only consumer of its output
type Pump struct {
	dev   Device
	stick *Stick
	deb   Debouncer
	clock engine.TimeProvider

	buf []Command
	reg *status.Registry

	statMoves   *atomic.Int64
	statPresses *atomic.Int64
}

func NewPump(dev Device, stick *Stick, clock engine.TimeProvider, reg *status.Registry) *Pump {
	if clock == nil {
		clock = engine.NewMonotonicTimeProvider()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Pump{
		dev:         dev,
		stick:       stick,
		clock:       clock,
		buf:         make([]Command, 0, 2),
		reg:         reg,
		statMoves:   reg.Ints.Get(status.InputMoves),
		statPresses: reg.Ints.Get(status.InputPresses),
	}
}

// Poll takes one sample and returns the resulting commands
// The slice is reused by the next Poll
func (p *Pump) Poll() []Command {
	p.buf = p.buf[:0]

	// The axes are left unread while the move window is open, so a latched deflection waits for it
	if now := p.clock.Now(); p.stick.Ready(now) {
		x, y := p.dev.Axes()
		if dir := p.stick.Direction(x, y, now); dir != component.DirNone {
			p.buf = append(p.buf, Command{Type: CmdMove, Dir: dir})
			p.statMoves.Add(1)
		}
	}

	if p.deb.Update(p.dev.Button()) {
		p.buf = append(p.buf, Command{Type: CmdPress})
		p.statPresses.Add(1)
	}
	return p.buf
}

// Run polls every interval and sends commands to out until ctx ends
func (p *Pump) Run(ctx context.Context, interval time.Duration, out chan<- Command) error {
	loop := engine.NewFrameLoop("input", interval, p.clock, p.reg, status.InputPolls, status.InputOverruns, "")
	return loop.Run(ctx, func(ctx context.Context) error {
		for _, cmd := range p.Poll() {
			select {
			case out <- cmd:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})
}
