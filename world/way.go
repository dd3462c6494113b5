package world

import (
	"github.com/lixenwraith/mission/core"
	"github.com/lixenwraith/mission/navigation"
)

// Way is the character's progress along an offset path
// Path is in goal-to-start order and is consumed from its tail
type Way struct {
	Target    core.Point
	Neighbour core.Point // cell currently being entered
	Path      navigation.Path
	Stage     int
}

// Active reports whether there are steps left to walk
func (w *Way) Active() bool {
	return len(w.Path) > 0
}

// Remaining returns the cells still ahead in travel order, starting with Neighbour
func (w *Way) Remaining() []core.Point {
	if !w.Active() {
		return nil
	}
	cells := []core.Point{w.Neighbour}
	pos := w.Neighbour
	for i := len(w.Path) - w.Stage - 2; i >= 0; i-- {
		pos = pos.Add(w.Path[i])
		cells = append(cells, pos)
	}
	return cells
}

// begin starts walking path from cell
func (w *Way) begin(from core.Point, path navigation.Path) {
	w.Path = path
	w.Stage = 0
	w.Neighbour = from.Add(path[len(path)-1])
}

// advance moves to the next stage, false when the last step was taken
func (w *Way) advance() bool {
	if w.Stage >= len(w.Path)-1 {
		return false
	}
	w.Stage++
	w.Neighbour = w.Neighbour.Add(w.Path[len(w.Path)-w.Stage-1])
	return true
}

func (w *Way) clear(at core.Point) {
	w.Path = nil
	w.Stage = 0
	w.Target = at
	w.Neighbour = at
}
