package navigation

import (
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/mission/core"
)

// testGrid is a row-major obstacle grid, '#' marks a wall
type testGrid struct {
	w, h  int
	walls []bool
}

func gridFromRows(rows ...string) *testGrid {
	g := &testGrid{w: len(rows[0]), h: len(rows)}
	g.walls = make([]bool, g.w*g.h)
	for y, row := range rows {
		for x, c := range row {
			g.walls[y*g.w+x] = c == '#'
		}
	}
	return g
}

func randomGrid(rng *rand.Rand, w, h int, density float64) *testGrid {
	g := &testGrid{w: w, h: h, walls: make([]bool, w*h)}
	for i := range g.walls {
		g.walls[i] = rng.Float64() < density
	}
	return g
}

func (g *testGrid) IsObstacle(x, y int) bool {
	return g.walls[y*g.w+x]
}

func (g *testGrid) randomFree(rng *rand.Rand) (core.Point, bool) {
	for range 64 {
		p := core.Point{X: rng.IntN(g.w), Y: rng.IntN(g.h)}
		if !g.IsObstacle(p.X, p.Y) {
			return p, true
		}
	}
	return core.Point{}, false
}

// checkWalk verifies an absolute travel-order path is a connected obstacle-free walk
func checkWalk(t *testing.T, g *testGrid, start, finish core.Point, path Path) {
	t.Helper()
	prev := start
	for i, p := range path {
		d := p.Sub(prev)
		if d.X < -1 || d.X > 1 || d.Y < -1 || d.Y > 1 || d == (core.Point{}) {
			t.Fatalf("step %d from %v to %v is not a unit move", i, prev, p)
		}
		if !p.In(g.w, g.h) {
			t.Fatalf("step %d leaves grid at %v", i, p)
		}
		if g.IsObstacle(p.X, p.Y) {
			t.Fatalf("step %d enters obstacle at %v", i, p)
		}
		prev = p
	}
	if prev != finish {
		t.Fatalf("path ends at %v, want %v", prev, finish)
	}
}
