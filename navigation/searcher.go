package navigation

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/mission/core"
	"github.com/lixenwraith/mission/status"
)

// Metric names published by both coworkers
const (
	MetricRequests  = "nav.requests"
	MetricCoalesced = "nav.coalesced"
	MetricSearches  = "nav.searches"
	MetricNotFound  = "nav.not_found"
	MetricPanics    = "nav.panics"
	MetricExpanded  = "nav.expanded"
	MetricSearchMs  = "nav.search_ms"
	MetricRunning   = "nav.running"
)

// searchMsAlpha weights the search duration moving average
const searchMsAlpha = 0.2

// searcher runs the engine on behalf of a coworker and records metrics
type searcher struct {
	engine *AStar

	requests  *atomic.Int64
	coalesced *atomic.Int64
	searches  *atomic.Int64
	notFound  *atomic.Int64
	panics    *atomic.Int64
	expanded  *atomic.Int64
	searchMs  *status.Gauge
	running   *atomic.Bool
}

func newSearcher(width, height int, reg *status.Registry) searcher {
	s := searcher{engine: NewAStar(width, height)}
	s.bind(reg)
	return s
}

// bind caches metric pointers from reg
func (s *searcher) bind(reg *status.Registry) {
	s.requests = reg.Counters.Get(MetricRequests)
	s.coalesced = reg.Counters.Get(MetricCoalesced)
	s.searches = reg.Counters.Get(MetricSearches)
	s.notFound = reg.Counters.Get(MetricNotFound)
	s.panics = reg.Counters.Get(MetricPanics)
	s.expanded = reg.Counters.Get(MetricExpanded)
	s.searchMs = reg.Gauges.Get(MetricSearchMs)
	s.running = reg.Flags.Get(MetricRunning)
}

// run searches for an offset path, converting a panic inside the map into an empty result
func (s *searcher) run(m Obstacles, start, finish core.Point) (path Path) {
	defer func() {
		if r := recover(); r != nil {
			s.panics.Add(1)
			log.Printf("navigation: search %v -> %v panicked: %v", start, finish, r)
			path = Path{}
		}
	}()

	began := time.Now()
	path, ok := s.engine.SearchOffsets(m, start, finish)
	s.searchMs.Observe(float64(time.Since(began).Microseconds())/1000, searchMsAlpha)
	s.searches.Add(1)
	s.expanded.Add(int64(s.engine.Expanded()))
	if !ok {
		s.notFound.Add(1)
		return Path{}
	}
	return path
}
