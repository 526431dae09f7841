package engine

import (
	"context"
	"sync"
)

// Gate is a one-shot start signal; the simulation blocks on it until the first press
type Gate struct {
	once sync.Once
	ch   chan struct{}
}

func NewGate() *Gate {
	return &Gate{ch: make(chan struct{})}
}

// Open releases waiters; returns true only for the call that opened it
func (g *Gate) Open() bool {
	opened := false
	g.once.Do(func() {
		close(g.ch)
		opened = true
	})
	return opened
}

// IsOpen reports whether Open has been called
func (g *Gate) IsOpen() bool {
	select {
	case <-g.ch:
		return true
	default:
		return false
	}
}

// Wait blocks until the gate opens or ctx ends
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done exposes the gate for select statements
func (g *Gate) Done() <-chan struct{} {
	return g.ch
}
