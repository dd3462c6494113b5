package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/mission/core"
)

// ActionKind is what the player asked for
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionMove   // walk to Cell
	ActionToggle // flip obstacle at Cell
	ActionMute
	ActionResize
)

// Action is a decoded input event
type Action struct {
	Kind ActionKind
	Cell core.Point
}

var cursorKeys = map[tcell.Key]core.Point{
	tcell.KeyUp:    {X: 0, Y: -1},
	tcell.KeyDown:  {X: 0, Y: 1},
	tcell.KeyLeft:  {X: -1, Y: 0},
	tcell.KeyRight: {X: 1, Y: 0},
}

// Translate decodes a tcell event
// Left click walks, right or middle click toggles; arrows move the cursor, Enter walks, space toggles
func (v *View) Translate(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return Action{Kind: ActionQuit}
		case tcell.KeyEnter:
			return Action{Kind: ActionMove, Cell: v.cursor}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return Action{Kind: ActionQuit}
			case 'm':
				return Action{Kind: ActionMute}
			case ' ':
				return Action{Kind: ActionToggle, Cell: v.cursor}
			}
		default:
			if d, ok := cursorKeys[ev.Key()]; ok {
				v.MoveCursor(d)
			}
		}

	case *tcell.EventMouse:
		// Act on press edges only; drag and hold report the same buttons repeatedly
		btn := ev.Buttons()
		pressed := btn &^ v.buttons
		v.buttons = btn

		x, y := ev.Position()
		cell := v.ScreenToCell(x, y)
		switch {
		case pressed&tcell.Button1 != 0:
			return Action{Kind: ActionMove, Cell: cell}
		case pressed&(tcell.Button2|tcell.Button3) != 0:
			return Action{Kind: ActionToggle, Cell: cell}
		}

	case *tcell.EventResize:
		w, h := ev.Size()
		v.Resize(w, h)
		return Action{Kind: ActionResize}
	}
	return Action{Kind: ActionNone}
}
