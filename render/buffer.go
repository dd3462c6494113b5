package render

import "github.com/gdamore/tcell/v2"

// Cell is one terminal character with its style
type Cell struct {
	Rune  rune
	Style tcell.Style
}

var blank = Cell{Rune: ' ', Style: tcell.StyleDefault}

// Buffer is an off-screen frame composed before being flushed to a tcell.Screen
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a cleared buffer
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts dimensions, reallocating only if capacity is insufficient
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear blanks every cell using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = blank
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Size returns the buffer dimensions
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes a cell, clipping silently
func (b *Buffer) Set(x, y int, r rune, style tcell.Style) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Style: style}
}

// Get returns the cell at x, y, blank when outside
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return blank
	}
	return b.cells[y*b.width+x]
}

// Text writes s starting at x, y and returns the column after the last rune
func (b *Buffer) Text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		b.Set(x, y, r, style)
		x++
	}
	return x
}

// Row returns the runes of line y as a string
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	out := make([]rune, b.width)
	for x := range out {
		out[x] = b.cells[y*b.width+x].Rune
	}
	return string(out)
}

// Flush copies the buffer to screen and shows it
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			screen.SetContent(x, y, c.Rune, nil, c.Style)
		}
	}
	screen.Show()
}
