package status

import (
	"sync/atomic"
)

// Registry is the central metrics facade shared by the pathfinding worker, the world and the front ends
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Gauge]
	Flags    *MetricMap[atomic.Bool]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Gauge](),
		Flags:    NewMetricMap[atomic.Bool](),
	}
}

// Sample is one metric value captured by Snapshot
type Sample struct {
	Name  string  `json:"name"`
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
}

// Snapshot captures every metric, counters first, then gauges, then flags, each in key order
func (r *Registry) Snapshot() []Sample {
	out := make([]Sample, 0, r.Counters.Count()+r.Gauges.Count()+r.Flags.Count())
	r.Counters.Range(func(key string, v *atomic.Int64) {
		out = append(out, Sample{Name: key, Kind: "counter", Value: float64(v.Load())})
	})
	r.Gauges.Range(func(key string, v *Gauge) {
		out = append(out, Sample{Name: key, Kind: "gauge", Value: v.Get()})
	})
	r.Flags.Range(func(key string, v *atomic.Bool) {
		val := 0.0
		if v.Load() {
			val = 1
		}
		out = append(out, Sample{Name: key, Kind: "flag", Value: val})
	})
	return out
}
