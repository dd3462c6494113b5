package navigation

import (
	"iter"
	"slices"

	"github.com/lixenwraith/mission/core"
)

// Path is a sequence of grid points
// SearchOffsets produces unit steps in goal-to-start order; Search produces absolute cells in travel order
type Path []core.Point

// Cost sums the step costs of an offset path
func (p Path) Cost() int {
	total := 0
	for _, step := range p {
		total += StepCost(step)
	}
	return total
}

// Absolute converts an offset path into cells in travel order, starting after start
func (p Path) Absolute(start core.Point) Path {
	out := make(Path, 0, len(p))
	pos := start
	for step := range p.Steps() {
		pos = pos.Add(step)
		out = append(out, pos)
	}
	return out
}

// Steps yields the offsets of a goal-to-start path in travel order
func (p Path) Steps() iter.Seq[core.Point] {
	return func(yield func(core.Point) bool) {
		for i := len(p) - 1; i >= 0; i-- {
			if !yield(p[i]) {
				return
			}
		}
	}
}

// Clone returns an independent copy
func (p Path) Clone() Path {
	return slices.Clone(p)
}
