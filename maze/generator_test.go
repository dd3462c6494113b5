package maze

import (
	"slices"
	"testing"

	"github.com/lixenwraith/mission/core"
)

// connected reports whether every free cell is 4-reachable from the first one
func connected(l Layout) bool {
	free := l.FreeCells()
	if len(free) == 0 {
		return true
	}
	seen := map[core.Point]bool{free[0]: true}
	queue := []core.Point{free[0]}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range ortho {
			n := cur.Add(d)
			if !l.Wall(n) && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(seen) == len(free)
}

func deadEnds(l Layout) int {
	n := 0
	for _, p := range l.FreeCells() {
		exits := 0
		for _, d := range ortho {
			if !l.Wall(p.Add(d)) {
				exits++
			}
		}
		if exits == 1 {
			n++
		}
	}
	return n
}

func TestGenerate_SizeAndDeterminism(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"odd", Config{Width: 21, Height: 15, Seed: 3}},
		{"even", Config{Width: 30, Height: 30, Seed: 3}},
		{"open even", Config{Width: 30, Height: 20, OpenBorder: true, Braid: 0.5, Seed: 11}},
		{"tiny", Config{Width: 2, Height: 2, Seed: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Generate(tt.cfg)
			b := Generate(tt.cfg)
			if a.Width != tt.cfg.Width || a.Height != tt.cfg.Height || len(a.Walls) != a.Width*a.Height {
				t.Fatalf("layout %dx%d (%d cells), want %dx%d", a.Width, a.Height, len(a.Walls), tt.cfg.Width, tt.cfg.Height)
			}
			if !slices.Equal(a.Walls, b.Walls) {
				t.Error("same seed produced different layouts")
			}
		})
	}
}

func TestGenerate_Connected(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		for _, open := range []bool{false, true} {
			l := Generate(Config{Width: 30, Height: 30, Braid: 0.3, OpenBorder: open, Seed: seed})
			if !connected(l) {
				t.Fatalf("seed %d open=%v: disconnected layout", seed, open)
			}
		}
	}
}

func TestGenerate_OpenBorder(t *testing.T) {
	l := Generate(Config{Width: 30, Height: 30, OpenBorder: true, Seed: 5})
	corners := []core.Point{{X: 0, Y: 0}, {X: 29, Y: 0}, {X: 0, Y: 29}, {X: 29, Y: 29}}
	for _, c := range corners {
		if l.Wall(c) {
			t.Errorf("corner %v is a wall", c)
		}
	}

	closed := Generate(Config{Width: 31, Height: 31, Seed: 5})
	for x := 0; x < 31; x++ {
		if !closed.Wall(core.Point{X: x, Y: 0}) || !closed.Wall(core.Point{X: x, Y: 30}) {
			t.Fatalf("closed border open at column %d", x)
		}
	}
}

func TestGenerate_BraidRemovesDeadEnds(t *testing.T) {
	perfect, braided := 0, 0
	for seed := uint64(1); seed <= 10; seed++ {
		perfect += deadEnds(Generate(Config{Width: 31, Height: 31, Seed: seed}))
		braided += deadEnds(Generate(Config{Width: 31, Height: 31, Braid: 1, Seed: seed}))
	}
	if braided >= perfect {
		t.Errorf("braiding did not reduce dead ends: %d vs %d", braided, perfect)
	}
}

func TestGenerate_NoPlazas(t *testing.T) {
	l := Generate(Config{Width: 41, Height: 41, Braid: 1, Seed: 17})
	for y := 1; y < l.Height-2; y++ {
		for x := 1; x < l.Width-2; x++ {
			p := core.Point{X: x, Y: y}
			if !l.Wall(p) && !l.Wall(p.Add(core.Point{X: 1})) &&
				!l.Wall(p.Add(core.Point{Y: 1})) && !l.Wall(p.Add(core.Point{X: 1, Y: 1})) {
				t.Fatalf("2x2 plaza at %v", p)
			}
		}
	}
}

func TestGenerate_TimeSeed(t *testing.T) {
	l := Generate(Config{Width: 11, Height: 11})
	if l.Seed == 0 {
		t.Error("zero seed should be replaced")
	}
	again := Generate(Config{Width: 11, Height: 11, Seed: l.Seed})
	if !slices.Equal(l.Walls, again.Walls) {
		t.Error("reported seed does not reproduce the layout")
	}
}
