package world

import (
	"errors"
	"fmt"
	"iter"

	"github.com/lixenwraith/mission/core"
)

// ErrOutOfBounds is returned for coordinates outside the field
var ErrOutOfBounds = errors.New("world: position out of bounds")

// Attributes is the per-cell bit set
type Attributes uint8

const (
	AttrObstacle      Attributes = 1 << iota // blocks movement and search
	AttrExit                                 // level exit
	AttrGuardForward                         // guards turn toward +x
	AttrGuardBackward                        // guards turn toward -x
)

// Has reports whether every bit of a is set
func (a Attributes) Has(mask Attributes) bool {
	return a&mask == mask
}

// Field is a fixed width x height grid of cell attributes
type Field struct {
	width, height int
	cells         []Attributes
}

// NewField creates an empty field
func NewField(width, height int) *Field {
	return &Field{
		width:  width,
		height: height,
		cells:  make([]Attributes, width*height),
	}
}

// Width returns the column count
func (f *Field) Width() int { return f.width }

// Height returns the row count
func (f *Field) Height() int { return f.height }

// Contains reports whether p lies on the field
func (f *Field) Contains(p core.Point) bool {
	return p.In(f.width, f.height)
}

func (f *Field) index(p core.Point) (int, error) {
	if !f.Contains(p) {
		return 0, fmt.Errorf("%w: %v on %dx%d", ErrOutOfBounds, p, f.width, f.height)
	}
	return p.Y*f.width + p.X, nil
}

// Get returns the attributes of a cell
func (f *Field) Get(p core.Point) (Attributes, error) {
	i, err := f.index(p)
	if err != nil {
		return 0, err
	}
	return f.cells[i], nil
}

// Set replaces the attributes of a cell
func (f *Field) Set(p core.Point, a Attributes) error {
	i, err := f.index(p)
	if err != nil {
		return err
	}
	f.cells[i] = a
	return nil
}

// Mark sets bits on a cell
func (f *Field) Mark(p core.Point, a Attributes) error {
	i, err := f.index(p)
	if err != nil {
		return err
	}
	f.cells[i] |= a
	return nil
}

// Unmark clears bits on a cell
func (f *Field) Unmark(p core.Point, a Attributes) error {
	i, err := f.index(p)
	if err != nil {
		return err
	}
	f.cells[i] &^= a
	return nil
}

// Has reports whether a cell carries every bit of a, false off the field
func (f *Field) Has(p core.Point, a Attributes) bool {
	i, err := f.index(p)
	if err != nil {
		return false
	}
	return f.cells[i].Has(a)
}

// IsObstacle implements navigation.Obstacles
// The caller guarantees bounds
func (f *Field) IsObstacle(x, y int) bool {
	return f.cells[y*f.width+x]&AttrObstacle != 0
}

// Cells yields every position carrying all bits of a, row by row
func (f *Field) Cells(a Attributes) iter.Seq[core.Point] {
	return func(yield func(core.Point) bool) {
		for i, c := range f.cells {
			if c.Has(a) && !yield(core.Point{X: i % f.width, Y: i / f.width}) {
				return
			}
		}
	}
}

// Reset clears every cell
func (f *Field) Reset() {
	clear(f.cells)
}

// LoadWalls replaces obstacle bits from a row-major wall grid of the same size, keeping other bits
func (f *Field) LoadWalls(walls []bool) error {
	if len(walls) != len(f.cells) {
		return fmt.Errorf("world: wall grid has %d cells, field has %d", len(walls), len(f.cells))
	}
	for i, wall := range walls {
		if wall {
			f.cells[i] |= AttrObstacle
		} else {
			f.cells[i] &^= AttrObstacle
		}
	}
	return nil
}
