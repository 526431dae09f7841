package engine

import (
	"testing"
	"time"
)

func TestMonotonicTimeProviderAdvances(t *testing.T) {
	p := NewMonotonicTimeProvider()
	a := p.Now()
	time.Sleep(time.Millisecond)
	if !p.Now().After(a) {
		t.Error("expected time to advance")
	}
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Unix(1000, 0)
	m := NewMockTimeProvider(start)
	if !m.Now().Equal(start) {
		t.Fatal("expected start time")
	}
	m.Advance(5 * time.Second)
	if got := m.Now().Sub(start); got != 5*time.Second {
		t.Errorf("expected 5s, got %v", got)
	}

	m.SetStep(time.Millisecond)
	a := m.Now()
	b := m.Now()
	if b.Sub(a) != time.Millisecond {
		t.Errorf("expected step of 1ms, got %v", b.Sub(a))
	}
}
