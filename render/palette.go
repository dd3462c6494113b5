package render

import "github.com/gdamore/tcell/v2"

// Glyphs, each field cell spans cellWidth columns
const (
	cellWidth      = 2
	glyphWall      = '█'
	glyphFloor     = '·'
	glyphExit      = '⌂'
	glyphMarker    = '¦'
	glyphPath      = '•'
	glyphTarget    = '×'
	glyphCharacter = '@'
	glyphGuard     = 'G'
	glyphFireball  = '*'
	glyphCursor    = '▒'
)

var (
	styleWall      = tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	styleFloor     = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	styleExit      = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleMarker    = tcell.StyleDefault.Foreground(tcell.ColorDarkKhaki)
	stylePath      = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleTarget    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleCharacter = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleGuard     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleFireball  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleCursor    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleHUD       = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleHUDValue  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)
