package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat stores a float64 as bits; zero value is 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Smooth blends val into the stored value with weight alpha, returning the result
func (f *AtomicFloat) Smooth(val, alpha float64) float64 {
	for {
		old := f.bits.Load()
		cur := math.Float64frombits(old)
		next := cur + alpha*(val-cur)
		if cur == 0 {
			next = val
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
