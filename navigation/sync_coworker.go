package navigation

import (
	"github.com/lixenwraith/mission/core"
	"github.com/lixenwraith/mission/status"
)

// SyncCoworker answers every request inline on the caller's goroutine
// Same surface as Coworker; Ready is always true
type SyncCoworker struct {
	search searcher
	result Path
}

// NewSyncCoworker creates an inline coworker for a width x height grid
// reg may be nil
func NewSyncCoworker(width, height int, reg *status.Registry) *SyncCoworker {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &SyncCoworker{
		search: newSearcher(width, height, reg),
		result: Path{},
	}
}

// Request searches immediately and always accepts
func (s *SyncCoworker) Request(m Obstacles, start, finish core.Point) bool {
	s.search.requests.Add(1)
	s.result = s.search.run(m, start, finish)
	return true
}

// Ready implements PathService
func (s *SyncCoworker) Ready() bool { return true }

// Read returns the last result
func (s *SyncCoworker) Read() Path { return s.result }
