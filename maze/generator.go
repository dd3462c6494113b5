package maze

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/mission/core"
)

// Config controls layout generation
type Config struct {
	Width, Height int

	// Braid is the chance in [0,1] that a dead end is joined to a neighbor corridor
	// 0 yields a perfect maze; plazas and pillars are never created
	Braid float64

	// OpenBorder turns the outer ring into a corridor so every edge cell is walkable
	OpenBorder bool

	Seed uint64 // 0 = time based
}

// Layout is a row-major wall grid of exactly Width x Height cells
type Layout struct {
	Width, Height int
	Walls         []bool
	Seed          uint64
}

// IsObstacle implements navigation.Obstacles
func (l *Layout) IsObstacle(x, y int) bool {
	return l.Walls[y*l.Width+x]
}

// Wall reports whether p is a wall, true off the grid
func (l *Layout) Wall(p core.Point) bool {
	if !p.In(l.Width, l.Height) {
		return true
	}
	return l.Walls[p.Y*l.Width+p.X]
}

// FreeCells returns every walkable cell, row by row
func (l *Layout) FreeCells() []core.Point {
	var cells []core.Point
	for i, wall := range l.Walls {
		if !wall {
			cells = append(cells, core.Point{X: i % l.Width, Y: i / l.Width})
		}
	}
	return cells
}

var (
	jumps = [4]core.Point{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}
	ortho = [4]core.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}
)

// grid is the working representation, odd-sized so rooms sit on odd coordinates
type grid struct {
	rows, cols int
	wall       []bool
}

func (g *grid) at(x, y int) bool     { return g.wall[y*g.cols+x] }
func (g *grid) set(x, y int, w bool) { g.wall[y*g.cols+x] = w }
func (g *grid) in(x, y int) bool     { return x >= 0 && y >= 0 && x < g.cols && y < g.rows }

// passage reports an open in-bounds cell
func (g *grid) passage(x, y int) bool {
	return g.in(x, y) && !g.at(x, y)
}

// Generate carves a maze with a recursive backtracker, optionally braids it, then pads it to
// the requested size
func Generate(cfg Config) Layout {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	g := &grid{rows: ensureOdd(cfg.Height), cols: ensureOdd(cfg.Width)}
	g.wall = make([]bool, g.rows*g.cols)
	for i := range g.wall {
		g.wall[i] = true
	}

	carve(g, core.Point{X: 1, Y: 1}, rng)

	// Strip before braiding so edge rooms see their outside connection
	if cfg.OpenBorder {
		stripBorder(g)
	}
	if cfg.Braid > 0 {
		braid(g, cfg.Braid, rng)
	}

	return pad(g, cfg, seed)
}

// carve runs the recursive backtracker, producing a uniform spanning tree of rooms
func carve(g *grid, start core.Point, rng *rand.Rand) {
	stack := []core.Point{start}
	g.set(start.X, start.Y, false)

	candidates := make([]core.Point, 0, 4)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		candidates = candidates[:0]

		for _, d := range jumps {
			nx, ny := cur.X+d.X, cur.Y+d.Y
			if nx > 0 && nx < g.cols-1 && ny > 0 && ny < g.rows-1 && g.at(nx, ny) {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := candidates[rng.IntN(len(candidates))]
		g.set(cur.X+d.X/2, cur.Y+d.Y/2, false)
		next := cur.Add(d)
		g.set(next.X, next.Y, false)
		stack = append(stack, next)
	}
}

// braid joins dead-end rooms to an adjacent corridor with the given probability
func braid(g *grid, probability float64, rng *rand.Rand) {
	candidates := make([]core.Point, 0, 4)
	for y := 1; y < g.rows-1; y += 2 {
		for x := 1; x < g.cols-1; x += 2 {
			if g.at(x, y) {
				continue
			}

			exits := 0
			for _, d := range ortho {
				if g.passage(x+d.X, y+d.Y) {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates = candidates[:0]
			for _, d := range jumps {
				nx, ny := x+d.X, y+d.Y
				wx, wy := x+d.X/2, y+d.Y/2
				if g.passage(nx, ny) && g.at(wx, wy) && safeToOpen(g, wx, wy) {
					candidates = append(candidates, core.Point{X: wx, Y: wy})
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.IntN(len(candidates))]
				g.set(c.X, c.Y, false)
			}
		}
	}
}

// safeToOpen rejects openings that would create a 2x2 plaza or leave a wall pillar
func safeToOpen(g *grid, x, y int) bool {
	p := g.passage
	if (p(x-1, y-1) && p(x, y-1) && p(x-1, y)) ||
		(p(x, y-1) && p(x+1, y-1) && p(x+1, y)) ||
		(p(x-1, y) && p(x-1, y+1) && p(x, y+1)) ||
		(p(x+1, y) && p(x, y+1) && p(x+1, y+1)) {
		return false
	}

	for _, d := range ortho {
		nx, ny := x+d.X, y+d.Y
		if !g.in(nx, ny) || !g.at(nx, ny) {
			continue
		}
		links := 0
		for _, d2 := range ortho {
			mx, my := nx+d2.X, ny+d2.Y
			if mx == x && my == y {
				continue
			}
			if g.in(mx, my) && g.at(mx, my) {
				links++
			}
		}
		if links == 0 {
			return false
		}
	}
	return true
}

func stripBorder(g *grid) {
	for x := 0; x < g.cols; x++ {
		g.set(x, 0, false)
		g.set(x, g.rows-1, false)
	}
	for y := 0; y < g.rows; y++ {
		g.set(0, y, false)
		g.set(g.cols-1, y, false)
	}
}

// pad copies the odd working grid into the requested size
// A padded even edge mirrors the border: open with OpenBorder, wall otherwise
func pad(g *grid, cfg Config, seed uint64) Layout {
	w, h := max(cfg.Width, 1), max(cfg.Height, 1)
	l := Layout{Width: w, Height: h, Walls: make([]bool, w*h), Seed: seed}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			wall := !cfg.OpenBorder
			if x < g.cols && y < g.rows {
				wall = g.at(x, y)
			}
			l.Walls[y*w+x] = wall
		}
	}
	return l
}

// ensureOdd rounds down to an odd size of at least 3
func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
