package vmath

import "time"

// FastRand is a xorshift64 generator
// Every random draw of a session comes from one instance, so call order defines the sequence
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

// Seed resets the generator state
func (r *FastRand) Seed(seed uint64) {
	if seed == 0 {
		seed = 1
	}
	r.state = seed
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Rand returns a non-negative 31-bit value
func (r *FastRand) Rand() int {
	return int(r.Next() >> 33)
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Jitter returns a value in [-3.0, 3.0) built from the low 16 bits of a draw
func (r *FastRand) Jitter() Fix {
	return Fix(r.Rand()&0xFFFF)*3 - FromInt(3)
}

// SessionSeed combines a time reading with a fixed salt
func SessionSeed(now time.Time, salt uint64) uint64 {
	return uint64(now.UnixNano()) ^ salt
}
