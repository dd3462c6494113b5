package navigation

import (
	"slices"
	"testing"

	"github.com/lixenwraith/mission/core"
)

func TestPath_Cost(t *testing.T) {
	p := Path{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: -1}, {X: -1, Y: -1}}
	if got := p.Cost(); got != 48 {
		t.Errorf("cost = %d, want 48", got)
	}
	if (Path{}).Cost() != 0 {
		t.Error("empty path should cost 0")
	}
}

func TestPath_StepsReverseOrder(t *testing.T) {
	// Goal-to-start: last element is the first move
	p := Path{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	got := slices.Collect(p.Steps())
	want := []core.Point{{X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	if !slices.Equal(got, want) {
		t.Errorf("steps = %v, want %v", got, want)
	}

	var first []core.Point
	for s := range p.Steps() {
		first = append(first, s)
		break
	}
	if len(first) != 1 {
		t.Error("early break not honored")
	}
}

func TestPath_Absolute(t *testing.T) {
	p := Path{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	got := p.Absolute(core.Point{X: 2, Y: 2})
	want := Path{{X: 3, Y: 3}, {X: 4, Y: 3}, {X: 4, Y: 4}}
	if !slices.Equal(got, want) {
		t.Errorf("absolute = %v, want %v", got, want)
	}
}

func TestPath_Clone(t *testing.T) {
	p := Path{{X: 1, Y: 0}}
	c := p.Clone()
	c[0].X = 9
	if p[0].X != 1 {
		t.Error("clone shares backing array")
	}
}
