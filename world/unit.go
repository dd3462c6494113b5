package world

import (
	"math"

	"github.com/lixenwraith/mission/core"
)

// Kind selects the behavior of a Unit
type Kind uint8

const (
	KindCharacter Kind = iota + 1
	KindGuard
	KindFireball
)

func (k Kind) String() string {
	switch k {
	case KindCharacter:
		return "character"
	case KindGuard:
		return "guard"
	case KindFireball:
		return "fireball"
	default:
		return "none"
	}
}

// Vec is a continuous position or velocity in cell units, cell centers sit on integers
type Vec struct {
	X, Y float64
}

// VecOf returns the center of a cell
func VecOf(p core.Point) Vec {
	return Vec{X: float64(p.X), Y: float64(p.Y)}
}

func (v Vec) Add(o Vec) Vec       { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec) Scale(s float64) Vec { return Vec{X: v.X * s, Y: v.Y * s} }
func (v Vec) Dot(o Vec) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }

// Cell returns the grid cell containing v
func (v Vec) Cell() core.Point {
	return core.Point{X: int(math.Floor(v.X + 0.5)), Y: int(math.Floor(v.Y + 0.5))}
}

// Unit is a pooled game entity; Kind decides how it moves
type Unit struct {
	Kind   Kind
	Pos    Vec
	Vel    Vec
	Radius float64
}

// Cell returns the grid cell the unit stands on
func (u *Unit) Cell() core.Point {
	return u.Pos.Cell()
}
