package navigation

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/lixenwraith/mission/core"
)

var (
	stepE  = core.Point{X: 1, Y: 0}
	stepSE = core.Point{X: 1, Y: 1}
)

func TestSearch_OpenGridDiagonal(t *testing.T) {
	g := gridFromRows(".....", ".....", ".....", ".....", ".....")
	a := NewAStar(5, 5)

	offsets, ok := a.SearchOffsets(g, core.Point{X: 0, Y: 0}, core.Point{X: 4, Y: 4})
	if !ok {
		t.Fatal("expected a path")
	}
	if !slices.Equal(offsets, Path{stepSE, stepSE, stepSE, stepSE}) {
		t.Errorf("offsets = %v, want 4 SE steps", offsets)
	}
	if offsets.Cost() != 56 {
		t.Errorf("cost = %d, want 56", offsets.Cost())
	}

	path, ok := a.Search(g, core.Point{X: 0, Y: 0}, core.Point{X: 4, Y: 4})
	if !ok {
		t.Fatal("expected a path")
	}
	want := Path{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 4}}
	if !slices.Equal(path, want) {
		t.Errorf("path = %v, want %v", path, want)
	}
}

func TestSearch_ThroughGap(t *testing.T) {
	g := gridFromRows(
		"..#..",
		"..#..",
		".....",
		"..#..",
		"..#..",
	)
	a := NewAStar(5, 5)
	start, finish := core.Point{X: 0, Y: 2}, core.Point{X: 4, Y: 2}

	offsets, ok := a.SearchOffsets(g, start, finish)
	if !ok {
		t.Fatal("expected a path through the gap")
	}
	if offsets.Cost() != 40 {
		t.Errorf("cost = %d, want 40", offsets.Cost())
	}
	if !slices.Equal(offsets, Path{stepE, stepE, stepE, stepE}) {
		t.Errorf("offsets = %v, want 4 E steps", offsets)
	}

	path, _ := a.Search(g, start, finish)
	checkWalk(t, g, start, finish, path)
	if !slices.Contains(path, core.Point{X: 2, Y: 2}) {
		t.Errorf("path %v does not cross the gap", path)
	}
}

func TestSearch_NoPath(t *testing.T) {
	g := gridFromRows(
		".....",
		".###.",
		".#.#.",
		".###.",
		".....",
	)
	a := NewAStar(5, 5)

	tests := []struct {
		name          string
		start, finish core.Point
	}{
		{"boxed start", core.Point{X: 2, Y: 2}, core.Point{X: 0, Y: 0}},
		{"boxed finish", core.Point{X: 0, Y: 0}, core.Point{X: 2, Y: 2}},
		{"obstacle finish", core.Point{X: 0, Y: 0}, core.Point{X: 1, Y: 1}},
		{"start out of bounds", core.Point{X: -1, Y: 0}, core.Point{X: 4, Y: 4}},
		{"finish out of bounds", core.Point{X: 0, Y: 0}, core.Point{X: 5, Y: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := a.SearchOffsets(g, tt.start, tt.finish)
			if ok || path != nil {
				t.Errorf("expected no path, got %v (ok=%v)", path, ok)
			}
		})
	}
}

func TestSearch_SameCell(t *testing.T) {
	g := gridFromRows("...", "...", "...")
	a := NewAStar(3, 3)
	p := core.Point{X: 1, Y: 1}

	path, ok := a.Search(g, p, p)
	if !ok {
		t.Fatal("start == finish must succeed")
	}
	if len(path) != 0 {
		t.Errorf("expected empty path, got %v", path)
	}
}

func TestSearch_ObstacleStart(t *testing.T) {
	g := gridFromRows("#..", "...", "...")
	a := NewAStar(3, 3)

	path, ok := a.Search(g, core.Point{X: 0, Y: 0}, core.Point{X: 2, Y: 0})
	if !ok {
		t.Fatal("search from an obstacle cell should still run")
	}
	checkWalk(t, g, core.Point{X: 0, Y: 0}, core.Point{X: 2, Y: 0}, path)
}

func TestSearch_CornerCutting(t *testing.T) {
	g := gridFromRows(
		".#",
		"#.",
	)
	a := NewAStar(2, 2)
	offsets, ok := a.SearchOffsets(g, core.Point{X: 0, Y: 0}, core.Point{X: 1, Y: 1})
	if !ok || !slices.Equal(offsets, Path{stepSE}) {
		t.Errorf("expected single diagonal squeeze, got %v (ok=%v)", offsets, ok)
	}
}

// Dijkstra over the same movement model is the reference optimum
func TestSearch_OptimalAgainstFlowField(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	a := NewAStar(5, 5)
	ff := NewFlowField(5, 5)

	checked := 0
	for trial := 0; trial < 500; trial++ {
		g := randomGrid(rng, 5, 5, 0.3)
		start, ok1 := g.randomFree(rng)
		finish, ok2 := g.randomFree(rng)
		if !ok1 || !ok2 {
			continue
		}

		ff.Compute(finish, g)
		want := ff.Distance(start)

		offsets, ok := a.SearchOffsets(g, start, finish)
		if want < 0 {
			if ok {
				t.Fatalf("trial %d: found %v but oracle says unreachable", trial, offsets)
			}
			continue
		}
		if !ok {
			t.Fatalf("trial %d: no path, oracle cost %d", trial, want)
		}
		if got := offsets.Cost(); got != want {
			t.Fatalf("trial %d: cost %d, optimal %d", trial, got, want)
		}
		checkWalk(t, g, start, finish, offsets.Absolute(start))
		checked++
	}
	if checked == 0 {
		t.Fatal("no trials produced reachable pairs")
	}
}

func TestSearch_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	g := randomGrid(rng, 12, 12, 0.25)
	g.walls[0] = false
	g.walls[len(g.walls)-1] = false

	a := NewAStar(12, 12)
	start, finish := core.Point{X: 0, Y: 0}, core.Point{X: 11, Y: 11}
	first, ok1 := a.SearchOffsets(g, start, finish)
	first = first.Clone()

	// Dirty the attribute array with an unrelated search
	a.SearchOffsets(gridFromRows(
		"............", "............", "............", "............",
		"............", "............", "............", "............",
		"............", "............", "............", "............",
	), core.Point{X: 11, Y: 0}, core.Point{X: 0, Y: 11})

	second, ok2 := a.SearchOffsets(g, start, finish)
	if ok1 != ok2 || !slices.Equal(first, second) {
		t.Errorf("repeated search differs: %v vs %v", first, second)
	}
}

func TestSearch_ExpandedCount(t *testing.T) {
	g := gridFromRows(".....", ".....", ".....", ".....", ".....")
	a := NewAStar(5, 5)
	a.SearchOffsets(g, core.Point{X: 0, Y: 0}, core.Point{X: 4, Y: 4})
	// Admissible and tight on the diagonal: only the diagonal is closed
	if a.Expanded() != 5 {
		t.Errorf("expanded = %d, want 5", a.Expanded())
	}
}

func TestHeuristic_Values(t *testing.T) {
	origin := core.Point{}
	tests := []struct {
		to   core.Point
		want int
	}{
		{core.Point{X: 1, Y: 0}, 9},
		{core.Point{X: 1, Y: 1}, 14},
		{core.Point{X: 4, Y: 4}, 56},
		{core.Point{X: 4, Y: 0}, 39},
		{core.Point{X: -3, Y: 0}, 29},
	}
	for _, tt := range tests {
		if got := heuristic(origin, tt.to); got != tt.want {
			t.Errorf("heuristic(%v) = %d, want %d", tt.to, got, tt.want)
		}
	}
}

// A squared-distance estimate overshoots on this grid; ours must stay below every true cost
func TestHeuristic_Admissible(t *testing.T) {
	g := gridFromRows(
		".......",
		".#####.",
		".....#.",
		"####.#.",
		".....#.",
		".#####.",
		".......",
	)
	squared := func(a, b core.Point) int {
		dx, dy := a.X-b.X, a.Y-b.Y
		return CostCardinal * (dx*dx + dy*dy)
	}

	ff := NewFlowField(g.w, g.h)
	squaredOvershoots := false
	for ty := 0; ty < g.h; ty++ {
		for tx := 0; tx < g.w; tx++ {
			target := core.Point{X: tx, Y: ty}
			if g.IsObstacle(tx, ty) {
				continue
			}
			ff.Compute(target, g)
			for y := 0; y < g.h; y++ {
				for x := 0; x < g.w; x++ {
					p := core.Point{X: x, Y: y}
					d := ff.Distance(p)
					if d < 0 {
						continue
					}
					if h := heuristic(p, target); h > d {
						t.Fatalf("heuristic %v -> %v = %d exceeds true cost %d", p, target, h, d)
					}
					if squared(p, target) > d {
						squaredOvershoots = true
					}
				}
			}
		}
	}
	if !squaredOvershoots {
		t.Fatal("grid does not expose the squared-distance estimate")
	}
}

// Searching with the squared estimate returns routes that cost more than the optimum
func TestSearch_SquaredEstimateIsSuboptimal(t *testing.T) {
	squared := func(a, b core.Point) int {
		dx, dy := a.X-b.X, a.Y-b.Y
		return CostCardinal * (dx*dx + dy*dy)
	}

	rng := rand.New(rand.NewPCG(5, 8))
	exact := NewAStar(8, 8)
	greedy := NewAStar(8, 8)
	greedy.estimate = squared
	ff := NewFlowField(8, 8)

	worse := 0
	for trial := 0; trial < 50; trial++ {
		g := randomGrid(rng, 8, 8, 0.3)
		for ty := 0; ty < g.h; ty++ {
			for tx := 0; tx < g.w; tx++ {
				if g.IsObstacle(tx, ty) {
					continue
				}
				finish := core.Point{X: tx, Y: ty}
				ff.Compute(finish, g)
				for i := range g.walls {
					start := core.Point{X: i % g.w, Y: i / g.w}
					want := ff.Distance(start)
					if g.walls[i] || want < 0 {
						continue
					}
					if p, _ := exact.SearchOffsets(g, start, finish); p.Cost() != want {
						t.Fatalf("%v -> %v: cost %d, optimal %d", start, finish, p.Cost(), want)
					}
					p, ok := greedy.SearchOffsets(g, start, finish)
					if !ok {
						t.Fatalf("%v -> %v: squared estimate found no route", start, finish)
					}
					if p.Cost() > want {
						worse++
					}
				}
			}
		}
	}
	if worse == 0 {
		t.Fatal("squared estimate never lost optimality")
	}
}

func TestIsqrt(t *testing.T) {
	for n := 0; n < 20000; n++ {
		r := isqrt(n)
		if r*r > n || (r+1)*(r+1) <= n {
			t.Fatalf("isqrt(%d) = %d", n, r)
		}
	}
}
