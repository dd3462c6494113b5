package navigation

import "github.com/lixenwraith/mission/core"

// Obstacles is the map capability consumed by the search engine
// Bounds are implicit: 0 <= x < width, 0 <= y < height of the engine
type Obstacles interface {
	IsObstacle(x, y int) bool
}

// ObstacleFunc adapts a plain function to Obstacles
type ObstacleFunc func(x, y int) bool

// IsObstacle implements Obstacles
func (f ObstacleFunc) IsObstacle(x, y int) bool { return f(x, y) }

type cellState uint8

const (
	stateUnvisited cellState = iota
	stateOpen
	stateClosed
)

// attributes is the per-cell search record, zeroed at the start of every search
// step is the move taken from the parent into this cell
type attributes struct {
	f, g  int
	stepX int8
	stepY int8
	state cellState
}

// AStar is an 8-directional grid search engine with one attribute record per cell
// Not safe for concurrent use; the Coworker confines it to its worker goroutine
type AStar struct {
	width, height int
	attrs         []attributes
	open          openSet
	expanded      int

	estimate func(from, to core.Point) int
}

// NewAStar allocates an engine for a width x height grid
func NewAStar(width, height int) *AStar {
	size := width * height
	return &AStar{
		width:    width,
		height:   height,
		attrs:    make([]attributes, size),
		open:     newOpenSet(size / 4),
		estimate: heuristic,
	}
}

// Width returns the grid width the engine was built for
func (a *AStar) Width() int { return a.width }

// Height returns the grid height the engine was built for
func (a *AStar) Height() int { return a.height }

// Expanded returns the number of cells closed by the last search
func (a *AStar) Expanded() int { return a.expanded }

// Search finds a shortest path and returns it as absolute cells in travel order,
// excluding start and ending at finish
func (a *AStar) Search(m Obstacles, start, finish core.Point) (Path, bool) {
	offsets, ok := a.SearchOffsets(m, start, finish)
	if !ok {
		return nil, false
	}
	return offsets.Absolute(start), true
}

// SearchOffsets finds a shortest path and returns its unit steps in goal-to-start order
// Each element is the step taken into the corresponding node, so the last element is the first move
// start == finish yields an empty path; out-of-bounds endpoints and an obstacle finish yield false
func (a *AStar) SearchOffsets(m Obstacles, start, finish core.Point) (Path, bool) {
	a.expanded = 0
	if !start.In(a.width, a.height) || !finish.In(a.width, a.height) {
		return nil, false
	}
	if m.IsObstacle(finish.X, finish.Y) {
		return nil, false
	}
	if start == finish {
		return Path{}, true
	}

	clear(a.attrs)
	a.open.reset()

	w := a.width
	startIdx := start.Y*w + start.X
	finishIdx := finish.Y*w + finish.X

	h := a.estimate(start, finish)
	a.attrs[startIdx] = attributes{f: h, state: stateOpen}
	a.open.add(startIdx, h)

	for a.open.len() > 0 {
		cur := a.open.pop().idx
		node := &a.attrs[cur]
		node.state = stateClosed
		a.expanded++

		if cur == finishIdx {
			return a.reconstruct(startIdx, finishIdx), true
		}

		cx, cy := cur%w, cur/w
		for dir := int8(0); dir < DirCount; dir++ {
			step := DirVectors[dir]
			nx, ny := cx+step.X, cy+step.Y
			if nx < 0 || ny < 0 || nx >= a.width || ny >= a.height {
				continue
			}
			if m.IsObstacle(nx, ny) {
				continue
			}

			nIdx := ny*w + nx
			next := &a.attrs[nIdx]
			if next.state == stateClosed {
				continue
			}

			g := node.g + dirCosts[dir]
			switch next.state {
			case stateUnvisited:
				f := g + a.estimate(core.Point{X: nx, Y: ny}, finish)
				*next = attributes{f: f, g: g, stepX: int8(step.X), stepY: int8(step.Y), state: stateOpen}
				a.open.add(nIdx, f)
			case stateOpen:
				if g >= next.g {
					continue
				}
				next.f -= next.g - g
				next.g = g
				next.stepX, next.stepY = int8(step.X), int8(step.Y)
				a.open.rearrange(nIdx, next.f)
			}
		}
	}

	return nil, false
}

// reconstruct walks parent steps back from finish, emitting goal-to-start offsets
func (a *AStar) reconstruct(startIdx, finishIdx int) Path {
	var path Path
	w := a.width
	for idx := finishIdx; idx != startIdx; {
		at := &a.attrs[idx]
		step := core.Point{X: int(at.stepX), Y: int(at.stepY)}
		path = append(path, step)
		x, y := idx%w-step.X, idx/w-step.Y
		idx = y*w + x
	}
	return path
}
