package navigation

import "github.com/lixenwraith/mission/core"

type heapEntry struct {
	idx  int // flat grid index (y*width + x)
	dist int // weighted distance from target
}

type minHeap []heapEntry

func (h *minHeap) push(e heapEntry) {
	*h = append(*h, e)
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if (*h)[parent].dist <= (*h)[i].dist {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *minHeap) pop() heapEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].dist < (*h)[left].dist {
			smallest = right
		}
		if (*h)[i].dist <= (*h)[smallest].dist {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

// FlowField is a full weighted Dijkstra distance field toward one target
// Uses the same 8-direction 10/14 movement model as AStar, so Distance(start) is the optimal
// A* cost from start to the target
type FlowField struct {
	Width, Height int
	Directions    []int8 // per-cell direction toward target, DirNone if unreachable
	Distances     []int  // weighted distance to target

	Target core.Point
	Valid  bool

	heap minHeap
}

// NewFlowField creates an empty field for the given dimensions
func NewFlowField(width, height int) *FlowField {
	size := width * height
	return &FlowField{
		Width:      width,
		Height:     height,
		Directions: make([]int8, size),
		Distances:  make([]int, size),
		Target:     core.Point{X: -1, Y: -1},
		heap:       make(minHeap, 0, size/4),
	}
}

// Direction returns the next step index toward the target, DirNone if invalid or unreachable
func (f *FlowField) Direction(p core.Point) int8 {
	if !f.Valid || !p.In(f.Width, f.Height) {
		return DirNone
	}
	return f.Directions[p.Y*f.Width+p.X]
}

// Distance returns the weighted distance to the target, -1 if unreachable
func (f *FlowField) Distance(p core.Point) int {
	if !f.Valid || !p.In(f.Width, f.Height) {
		return -1
	}
	d := f.Distances[p.Y*f.Width+p.X]
	if d >= costUnreachable {
		return -1
	}
	return d
}

// Reachable reports whether p has a route to the target
func (f *FlowField) Reachable(p core.Point) bool {
	return f.Distance(p) >= 0
}

// Compute runs Dijkstra outward from target, then points every reached cell at its
// lowest-distance neighbor
// Edges are symmetric, so distances outward equal distances inward
func (f *FlowField) Compute(target core.Point, m Obstacles) {
	if !target.In(f.Width, f.Height) || m.IsObstacle(target.X, target.Y) {
		f.Valid = false
		return
	}

	size := f.Width * f.Height
	w := f.Width

	for i := 0; i < size; i++ {
		f.Directions[i] = DirNone
		f.Distances[i] = costUnreachable
	}

	targetIdx := target.Y*w + target.X
	f.Distances[targetIdx] = 0

	f.heap = f.heap[:0]
	f.heap.push(heapEntry{idx: targetIdx, dist: 0})

	for len(f.heap) > 0 {
		entry := f.heap.pop()
		if entry.dist > f.Distances[entry.idx] {
			continue // stale
		}

		cx, cy := entry.idx%w, entry.idx/w
		for dir := int8(0); dir < DirCount; dir++ {
			nx := cx + DirVectors[dir].X
			ny := cy + DirVectors[dir].Y
			if nx < 0 || ny < 0 || nx >= f.Width || ny >= f.Height {
				continue
			}
			if m.IsObstacle(nx, ny) {
				continue
			}

			nIdx := ny*w + nx
			newDist := entry.dist + dirCosts[dir]
			if newDist < f.Distances[nIdx] {
				f.Distances[nIdx] = newDist
				f.heap.push(heapEntry{idx: nIdx, dist: newDist})
			}
		}
	}

	f.Directions[targetIdx] = DirTarget
	for y := 0; y < f.Height; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			dist := f.Distances[idx]
			if dist >= costUnreachable || dist == 0 {
				continue
			}

			bestDir := DirNone
			bestDist := dist
			for dir := int8(0); dir < DirCount; dir++ {
				nx := x + DirVectors[dir].X
				ny := y + DirVectors[dir].Y
				if nx < 0 || ny < 0 || nx >= w || ny >= f.Height {
					continue
				}
				if nDist := f.Distances[ny*w+nx]; nDist < bestDist {
					bestDist = nDist
					bestDir = dir
				}
			}
			f.Directions[idx] = bestDir
		}
	}

	f.Target = target
	f.Valid = true
}

// Walk follows directions from start to the target, returning absolute cells in travel order
// Returns false if start is unreachable
func (f *FlowField) Walk(start core.Point) (Path, bool) {
	if !f.Reachable(start) {
		return nil, false
	}
	var path Path
	pos := start
	for pos != f.Target {
		pos = pos.Add(DirVectors[f.Direction(pos)])
		path = append(path, pos)
	}
	return path, true
}
