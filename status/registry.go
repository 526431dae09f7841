package status

import "sync/atomic"

// Metric keys
const (
	SimFrames       = "sim.frames"
	SimOverruns     = "sim.overruns"
	SimFrameMs      = "sim.frame_ms"
	SimTouched      = "sim.touched"
	AnimTicks       = "anim.ticks"
	AnimOverruns    = "anim.overruns"
	RenderFrames    = "render.frames"
	RenderOverruns  = "render.overruns"
	InputPolls      = "input.polls"
	InputOverruns   = "input.overruns"
	InputMoves      = "input.moves"
	InputPresses    = "input.presses"
	RefineCount     = "refine.count"
	RefineBatches   = "refine.batches"
	SessionBad      = "session.bad_remaining"
	SessionWon      = "session.won"
	ObserverClients = "observer.clients"
	AudioEnabled    = "audio.enabled"
)

// Registry is the metrics facade shared by all tasks
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// Export flattens current values into a map for JSON and YAML encoding
func (r *Registry) Export() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Get() })
	return out
}
