package vmath

import (
	"testing"
	"time"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		name string
		in   int
	}{
		{"zero", 0},
		{"positive", 320},
		{"negative", -100},
		{"screen width", 640},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToInt(FromInt(tt.in)); got != tt.in {
				t.Errorf("ToInt(FromInt(%d)) = %d", tt.in, got)
			}
		})
	}

	if FromFloat(0.5) != Half {
		t.Errorf("FromFloat(0.5) = %d, want %d", FromFloat(0.5), Half)
	}
	if ToFloat(FromInt(3)) != 3.0 {
		t.Errorf("ToFloat(3.0) = %f", ToFloat(FromInt(3)))
	}
	// Floor semantics on negative fractions
	if ToInt(FromFloat(-0.5)) != -1 {
		t.Errorf("ToInt(-0.5) = %d, want -1", ToInt(FromFloat(-0.5)))
	}
}

func TestFitsFix(t *testing.T) {
	tests := []struct {
		in   float64
		want bool
	}{
		{0, true},
		{65535.5, true},
		{-65536, true},
		{65536, false},
		{-65537, false},
		{70000, false},
	}
	for _, tt := range tests {
		if got := FitsFix(tt.in); got != tt.want {
			t.Errorf("FitsFix(%g) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMul(t *testing.T) {
	tests := []struct {
		a, b, want Fix
	}{
		{FromInt(2), FromInt(3), FromInt(6)},
		{FromInt(-2), FromInt(3), FromInt(-6)},
		{FromFloat(0.5), FromFloat(0.5), FromFloat(0.25)},
		{FromInt(640), FromInt(40), FromInt(25600)},
		{0, FromInt(100), 0},
	}
	for _, tt := range tests {
		if got := Mul(tt.a, tt.b); got != tt.want {
			t.Errorf("Mul(%v, %v) = %v, want %v", ToFloat(tt.a), ToFloat(tt.b), ToFloat(got), ToFloat(tt.want))
		}
	}
}

func TestDiv(t *testing.T) {
	tests := []struct {
		a, b, want Fix
	}{
		{FromInt(6), FromInt(3), FromInt(2)},
		{FromInt(1), FromInt(2), Half},
		{FromInt(-6), FromInt(4), FromFloat(-1.5)},
		{FromInt(640), FromInt(2), FromInt(320)},
	}
	for _, tt := range tests {
		if got := Div(tt.a, tt.b); got != tt.want {
			t.Errorf("Div(%v, %v) = %v, want %v", ToFloat(tt.a), ToFloat(tt.b), ToFloat(got), ToFloat(tt.want))
		}
	}

	// Truncates toward zero rather than flooring
	if got := Div(-1, FromInt(2)); got != 0 {
		t.Errorf("Div(-1ulp, 2) = %d, want 0", got)
	}
	if got := Div(FromInt(5), 0); got != 0 {
		t.Errorf("Div by zero = %d, want 0", got)
	}
}

func TestAbsSignClamp(t *testing.T) {
	if Abs(FromInt(-4)) != FromInt(4) || Abs(FromInt(4)) != FromInt(4) {
		t.Error("Abs mismatch")
	}
	if Sign(FromInt(-9)) != -One || Sign(0) != 0 || Sign(1) != One {
		t.Error("Sign mismatch")
	}
	if Clamp(FromInt(7), FromInt(3), FromInt(6)) != FromInt(6) {
		t.Error("Clamp high mismatch")
	}
	if Clamp(FromInt(1), FromInt(3), FromInt(6)) != FromInt(3) {
		t.Error("Clamp low mismatch")
	}
}

func TestDistanceApprox(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy Fix
		want   Fix
	}{
		{"axis x", FromInt(8), 0, FromInt(8)},
		{"axis y", 0, FromInt(-8), FromInt(8)},
		{"diagonal", FromInt(4), FromInt(4), FromInt(5)},
		{"mixed sign", FromInt(-12), FromInt(4), FromInt(13)},
		{"zero", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DistanceApprox(tt.dx, tt.dy); got != tt.want {
				t.Errorf("DistanceApprox = %v, want %v", ToFloat(got), ToFloat(tt.want))
			}
			if DistanceApprox(tt.dx, tt.dy) != DistanceApprox(tt.dy, tt.dx) {
				t.Error("DistanceApprox must be symmetric")
			}
		})
	}
}

func TestFastRandDeterministic(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("sequences diverged at draw %d", i)
		}
	}

	r := NewFastRand(0)
	if r.Next() == 0 {
		t.Error("zero seed must not produce a stuck generator")
	}
}

func TestFastRandRanges(t *testing.T) {
	r := NewFastRand(7)
	for i := 0; i < 1000; i++ {
		if v := r.Rand(); v < 0 || v > 0x7FFFFFFF {
			t.Fatalf("Rand out of range: %d", v)
		}
		if v := r.Intn(10); v < 0 || v >= 10 {
			t.Fatalf("Intn out of range: %d", v)
		}
		if j := r.Jitter(); j < FromInt(-3) || j >= FromInt(3) {
			t.Fatalf("Jitter out of range: %v", ToFloat(j))
		}
	}
	if r.Intn(0) != 0 {
		t.Error("Intn(0) should be 0")
	}
}

func TestSessionSeedSalted(t *testing.T) {
	now := time.Unix(1700000000, 0)
	if SessionSeed(now, 0xA5A5) == SessionSeed(now, 0) {
		t.Error("salt must change the seed")
	}
}
