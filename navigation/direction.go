package navigation

import "github.com/lixenwraith/mission/core"

// Direction indices into DirVectors: N=0, NE=1, E=2, SE=3, S=4, SW=5, W=6, NW=7
const (
	DirNone   int8 = -1 // Blocked or unreachable
	DirTarget int8 = -2 // At target cell
	DirCount  int8 = 8
)

// DirVectors holds the unit step for each direction, y grows downward
var DirVectors = [DirCount]core.Point{
	{X: 0, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1},
	{X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 0}, {X: -1, Y: -1},
}

// Edge costs: cardinal = 10, diagonal = 14 (10·√2 rounded)
const (
	CostCardinal    = 10
	CostDiagonal    = 14
	costUnreachable = 1<<30 - 1
)

// Per-direction costs matching DirVectors order
var dirCosts = [DirCount]int{
	CostCardinal, CostDiagonal, CostCardinal, CostDiagonal,
	CostCardinal, CostDiagonal, CostCardinal, CostDiagonal,
}

// StepCost returns the cost of a single unit step
func StepCost(step core.Point) int {
	if step.IsDiagonal() {
		return CostDiagonal
	}
	return CostCardinal
}
