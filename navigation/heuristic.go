package navigation

import (
	"math"

	"github.com/lixenwraith/mission/core"
)

// heuristicScale2 is (CostDiagonal/√2)² = 98, the squared cost per unit of straight-line distance
// Scaling by the diagonal ratio keeps a pure diagonal estimate at exactly CostDiagonal per step,
// where 10×Euclidean would give 14.14 and overestimate
const heuristicScale2 = CostDiagonal * CostDiagonal / 2

// heuristic estimates remaining cost as floor(√(98·(dx²+dy²)))
// Admissible and consistent for the 10/14 movement model
func heuristic(from, to core.Point) int {
	dx := from.X - to.X
	dy := from.Y - to.Y
	return isqrt(heuristicScale2 * (dx*dx + dy*dy))
}

// isqrt returns floor(√n) for n >= 0, exact past float rounding
func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
