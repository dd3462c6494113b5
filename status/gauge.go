package status

import (
	"math"
	"sync/atomic"
)

// Gauge holds a float64 behind atomic bit conversion
// Zero value is ready to use
type Gauge struct {
	bits atomic.Uint64
}

// Set stores v
func (g *Gauge) Set(v float64) {
	g.bits.Store(math.Float64bits(v))
}

// Get loads the current value
func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Observe folds v into an exponential moving average with weight alpha, seeding on first use
func (g *Gauge) Observe(v, alpha float64) float64 {
	for {
		old := g.bits.Load()
		cur := math.Float64frombits(old)
		next := v
		if old != 0 {
			next = cur + alpha*(v-cur)
		}
		if g.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
