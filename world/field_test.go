package world

import (
	"errors"
	"slices"
	"testing"

	"github.com/lixenwraith/mission/core"
)

func TestField_Attributes(t *testing.T) {
	f := NewField(4, 3)
	p := core.Point{X: 2, Y: 1}

	if err := f.Mark(p, AttrObstacle|AttrExit); err != nil {
		t.Fatal(err)
	}
	if !f.Has(p, AttrObstacle) || !f.Has(p, AttrExit) {
		t.Error("marked bits missing")
	}
	if !f.IsObstacle(2, 1) {
		t.Error("IsObstacle disagrees with Has")
	}

	f.Unmark(p, AttrObstacle)
	a, err := f.Get(p)
	if err != nil {
		t.Fatal(err)
	}
	if a != AttrExit {
		t.Errorf("attributes = %b, want exit only", a)
	}

	f.Set(p, AttrGuardForward)
	if f.Has(p, AttrExit) {
		t.Error("Set should replace bits")
	}
}

func TestField_OutOfBounds(t *testing.T) {
	f := NewField(3, 3)
	outside := []core.Point{{X: -1, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}, {X: 0, Y: -1}}

	for _, p := range outside {
		if _, err := f.Get(p); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Get(%v) err = %v", p, err)
		}
		if err := f.Mark(p, AttrObstacle); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Mark(%v) err = %v", p, err)
		}
		if f.Has(p, AttrObstacle) {
			t.Errorf("Has(%v) true off the field", p)
		}
	}
}

func TestField_CellsAndWalls(t *testing.T) {
	f := NewField(3, 2)
	walls := []bool{
		true, false, true,
		false, true, false,
	}
	if err := f.LoadWalls(walls); err != nil {
		t.Fatal(err)
	}
	f.Mark(core.Point{X: 0, Y: 0}, AttrExit)

	got := slices.Collect(f.Cells(AttrObstacle))
	want := []core.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}}
	if !slices.Equal(got, want) {
		t.Errorf("obstacles = %v, want %v", got, want)
	}

	// Reloading keeps non-obstacle bits
	f.LoadWalls(make([]bool, 6))
	if !f.Has(core.Point{}, AttrExit) || f.Has(core.Point{}, AttrObstacle) {
		t.Error("LoadWalls touched the wrong bits")
	}

	if err := f.LoadWalls(make([]bool, 5)); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestVec_Cell(t *testing.T) {
	tests := []struct {
		v    Vec
		want core.Point
	}{
		{Vec{0, 0}, core.Point{}},
		{Vec{0.49, 1.51}, core.Point{X: 0, Y: 2}},
		{Vec{-0.4, 2.5}, core.Point{X: 0, Y: 3}},
		{Vec{-0.6, 0}, core.Point{X: -1, Y: 0}},
	}
	for _, tt := range tests {
		if got := tt.v.Cell(); got != tt.want {
			t.Errorf("%v.Cell() = %v, want %v", tt.v, got, tt.want)
		}
	}
}
