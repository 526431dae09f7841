package vmath

import "math"

// Q17.15 Fixed Point constants
const (
	Shift = 15
	Scale = 1 << Shift
	Mask  = Scale - 1
	Half  = 1 << (Shift - 1)
)

// Fix is a signed Q17.15 fixed-point value
// Mixing with plain ints requires FromInt/ToInt
type Fix int32

// One is 1.0 in Q17.15
const One Fix = Scale

// --- Conversion ---

func FromInt(i int) Fix { return Fix(int32(i) << Shift) }
func ToInt(f Fix) int   { return int(f >> Shift) }

// FromFloat is intended for constant initialisation only, never per-frame math
func FromFloat(f float64) Fix { return Fix(f * Scale) }
func ToFloat(f Fix) float64   { return float64(f) / Scale }

// FitsFix reports whether f converts to Q17.15 without overflowing int32
func FitsFix(f float64) bool {
	v := f * Scale
	return v >= math.MinInt32 && v <= math.MaxInt32
}

// --- Arithmetic ---

// Mul widens to 64 bits, multiplies, and shifts back down
func Mul(a, b Fix) Fix {
	return Fix((int64(a) * int64(b)) >> Shift)
}

// Div widens the numerator by Shift bits before dividing, truncating toward zero
// A zero divisor yields 0; callers are expected to guard
func Div(a, b Fix) Fix {
	if b == 0 {
		return 0
	}
	q := (int64(a) << Shift) / int64(b)
	if q > math.MaxInt32 {
		return math.MaxInt32
	}
	if q < math.MinInt32 {
		return math.MinInt32
	}
	return Fix(q)
}

// Abs returns absolute value
func Abs(x Fix) Fix {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -One, 0, or One
func Sign(x Fix) Fix {
	if x < 0 {
		return -One
	}
	if x > 0 {
		return One
	}
	return 0
}

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi Fix) Fix {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// --- Fast Approximations ---

// DistanceApprox uses Alpha max plus beta min with beta = 1/4
// Stands in for Euclidean distance and speed magnitude alike, no square root
func DistanceApprox(dx, dy Fix) Fix {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx < dy {
		dx, dy = dy, dx
	}
	return dx + (dy >> 2)
}
