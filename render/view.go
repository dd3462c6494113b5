package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/mission/core"
	"github.com/lixenwraith/mission/status"
	"github.com/lixenwraith/mission/world"
)

// hudRows is the number of status lines drawn under the field
const hudRows = 3

// View maps a World onto terminal cells; field origin is the top-left corner
type View struct {
	buf    *Buffer
	origin core.Point
	cursor core.Point
	dim    core.Point

	buttons tcell.ButtonMask
}

// NewView creates a view sized for a terminal of width x height
func NewView(width, height int) *View {
	return &View{
		buf:    NewBuffer(width, height),
		origin: core.Point{X: 1, Y: 1},
	}
}

// Buffer exposes the composed frame
func (v *View) Buffer() *Buffer {
	return v.buf
}

// Resize follows terminal size changes
func (v *View) Resize(width, height int) {
	v.buf.Resize(width, height)
}

// Cursor returns the keyboard cursor cell
func (v *View) Cursor() core.Point {
	return v.cursor
}

// MoveCursor shifts the keyboard cursor, clamped to the last drawn field
func (v *View) MoveCursor(d core.Point) {
	c := v.cursor.Add(d)
	c.X = max(0, min(c.X, v.dim.X-1))
	c.Y = max(0, min(c.Y, v.dim.Y-1))
	v.cursor = c
}

// ScreenToCell converts terminal coordinates to a field cell
// The result may lie outside the field
func (v *View) ScreenToCell(x, y int) core.Point {
	dx := x - v.origin.X
	cx := dx / cellWidth
	if dx < 0 {
		cx = (dx - cellWidth + 1) / cellWidth
	}
	return core.Point{X: cx, Y: y - v.origin.Y}
}

func (v *View) put(p core.Point, r rune, style tcell.Style) {
	x := v.origin.X + p.X*cellWidth
	y := v.origin.Y + p.Y
	v.buf.Set(x, y, r, style)
	v.buf.Set(x+1, y, ' ', style)
}

// Draw composes field, way, units, cursor and HUD into the buffer
func (v *View) Draw(w *world.World, samples []status.Sample) {
	v.buf.Clear()
	f := w.Field
	v.dim = core.Point{X: f.Width(), Y: f.Height()}

	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			p := core.Point{X: x, Y: y}
			a, _ := f.Get(p)
			switch {
			case a.Has(world.AttrObstacle):
				v.put(p, glyphWall, styleWall)
				v.buf.Set(v.origin.X+x*cellWidth+1, v.origin.Y+y, glyphWall, styleWall)
			case a.Has(world.AttrExit):
				v.put(p, glyphExit, styleExit)
			case a.Has(world.AttrGuardForward), a.Has(world.AttrGuardBackward):
				v.put(p, glyphMarker, styleMarker)
			default:
				v.put(p, glyphFloor, styleFloor)
			}
		}
	}

	if cells := w.Way.Remaining(); len(cells) > 0 {
		for _, p := range cells[:len(cells)-1] {
			v.put(p, glyphPath, stylePath)
		}
		v.put(cells[len(cells)-1], glyphTarget, styleTarget)
	}

	for u := range w.Units.All() {
		p := u.Cell()
		if !f.Contains(p) {
			continue
		}
		switch u.Kind {
		case world.KindCharacter:
			v.put(p, glyphCharacter, styleCharacter)
		case world.KindGuard:
			v.put(p, glyphGuard, styleGuard)
		case world.KindFireball:
			v.put(p, glyphFireball, styleFireball)
		}
	}

	cx := v.origin.X + v.cursor.X*cellWidth
	cy := v.origin.Y + v.cursor.Y
	v.buf.Set(cx+1, cy, glyphCursor, styleCursor)

	v.drawHUD(w, samples, v.origin.Y+f.Height()+1)
}

func (v *View) drawHUD(w *world.World, samples []status.Sample, row int) {
	state := "idle"
	switch {
	case w.Pending():
		state = "searching"
	case w.Way.Active():
		state = fmt.Sprintf("walking to %d,%d", w.Way.Target.X, w.Way.Target.Y)
	case w.AtExit():
		state = "at exit"
	}
	x := v.buf.Text(v.origin.X, row, "state ", styleHUD)
	x = v.buf.Text(x, row, state, styleHUDValue)
	x = v.buf.Text(x+2, row, "units ", styleHUD)
	v.buf.Text(x, row, fmt.Sprintf("%d/%d", w.Units.Len(), w.Units.Cap()), styleHUDValue)

	line := row + 1
	x = v.origin.X
	width, _ := v.buf.Size()
	for _, s := range samples {
		if line >= row+hudRows {
			break
		}
		entry := fmt.Sprintf("%s=%s", s.Name, formatSample(s))
		if x+len(entry) >= width && x > v.origin.X {
			line++
			x = v.origin.X
			if line >= row+hudRows {
				break
			}
		}
		x = v.buf.Text(x, line, entry, styleHUD) + 2
	}
}

func formatSample(s status.Sample) string {
	if s.Kind == "gauge" {
		return fmt.Sprintf("%.2f", s.Value)
	}
	return fmt.Sprintf("%d", int64(s.Value))
}
