package world

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/lixenwraith/mission/core"
	"github.com/lixenwraith/mission/navigation"
	"github.com/lixenwraith/mission/status"
	"github.com/lixenwraith/mission/storage"
)

// Speeds in cells per second, radii in cells
const (
	CharacterSpeed  = 2.0
	GuardSpeed      = 2.0
	UnitRadius      = 0.33
	GuardRadius     = UnitRadius * 1.5
	guardPatrolRow  = 2
	soundQueueLimit = 64
)

// World owns the field, the unit pool and the character's way
// Not safe for concurrent use; the simulation goroutine drives it
type World struct {
	Field *Field
	Units *storage.Pool[Unit]
	Way   Way

	character *Unit
	paths     navigation.PathService
	requested bool
	sounds    []core.SoundType

	spawned *atomic.Int64
	culled  *atomic.Int64
	live    *status.Gauge
}

// New builds a world on field: exit and guard markers are placed, the character spawns
// bottom-left and one guard patrols row 2
// The unit pool holds width·height/2 units
func New(field *Field, paths navigation.PathService, reg *status.Registry) (*World, error) {
	if field.Width() < 2 || field.Height() <= guardPatrolRow+1 {
		return nil, fmt.Errorf("world: field %dx%d too small", field.Width(), field.Height())
	}
	units, err := storage.NewPool[Unit](field.Width() * field.Height() / 2)
	if err != nil {
		return nil, fmt.Errorf("world: unit pool: %w", err)
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	w := &World{
		Field:   field,
		Units:   units,
		paths:   paths,
		spawned: reg.Counters.Get("world.spawned"),
		culled:  reg.Counters.Get("world.culled"),
		live:    reg.Gauges.Get("world.units"),
	}
	if err := w.mark(); err != nil {
		return nil, fmt.Errorf("world: place markers: %w", err)
	}

	home := core.Point{X: 0, Y: field.Height() - 1}
	if err := field.Unmark(home, AttrObstacle); err != nil {
		return nil, err
	}
	w.character, err = w.Spawn(KindCharacter, VecOf(home), Vec{})
	if err != nil {
		return nil, err
	}
	w.Way.clear(home)

	if _, err := w.Spawn(KindGuard, VecOf(core.Point{X: 0, Y: guardPatrolRow}), Vec{X: GuardSpeed}); err != nil {
		return nil, err
	}
	return w, nil
}

// mark places the exit and guard turn markers and clears the patrol row
func (w *World) mark() error {
	f := w.Field
	last := f.Width() - 1
	exit := core.Point{X: last, Y: 0}
	if err := f.Mark(exit, AttrExit); err != nil {
		return err
	}
	if err := f.Unmark(exit, AttrObstacle); err != nil {
		return err
	}
	for x := 0; x <= last; x++ {
		if err := f.Unmark(core.Point{X: x, Y: guardPatrolRow}, AttrObstacle); err != nil {
			return err
		}
	}
	if err := f.Mark(core.Point{X: 0, Y: guardPatrolRow}, AttrGuardForward); err != nil {
		return err
	}
	return f.Mark(core.Point{X: last, Y: guardPatrolRow}, AttrGuardBackward)
}

// Character returns the player unit
func (w *World) Character() *Unit {
	return w.character
}

// Pending reports whether a path request is awaiting its result
func (w *World) Pending() bool {
	return w.requested
}

// Spawn allocates a unit of kind at pos moving with vel
// Returns storage.ErrPoolExhausted when the pool is full; the caller drops the spawn
func (w *World) Spawn(kind Kind, pos, vel Vec) (*Unit, error) {
	u, err := w.Units.Allocate()
	if err != nil {
		return nil, fmt.Errorf("world: spawn %s: %w", kind, err)
	}
	u.Kind = kind
	u.Pos = pos
	u.Vel = vel
	u.Radius = UnitRadius
	if kind == KindGuard {
		u.Radius = GuardRadius
	}
	w.spawned.Add(1)
	w.live.Set(float64(w.Units.Len()))
	if kind != KindCharacter {
		w.emit(core.SoundSpawn)
	}
	return u, nil
}

// Despawn returns a unit to the pool; the character cannot be removed
func (w *World) Despawn(u *Unit) {
	if u == w.character {
		return
	}
	w.Units.Deallocate(u)
	w.live.Set(float64(w.Units.Len()))
}

// RequestWay asks for a path from the character's cell to target
// Returns false without side effects while an earlier request is unanswered
func (w *World) RequestWay(target core.Point) (bool, error) {
	if !w.Field.Contains(target) {
		return false, fmt.Errorf("world: way target: %w", ErrOutOfBounds)
	}
	if w.requested || !w.paths.Ready() {
		return false, nil
	}

	w.character.Vel = Vec{}
	w.Way.Target = target
	w.Way.Path = nil
	w.requested = w.paths.Request(w.Field, w.character.Cell(), target)
	return w.requested, nil
}

// ToggleObstacle flips the obstacle bit of a cell and replans an active way
// Refused while a search may be reading the field, and on the character's own cell
func (w *World) ToggleObstacle(p core.Point) (bool, error) {
	if !w.Field.Contains(p) {
		return false, fmt.Errorf("world: toggle: %w", ErrOutOfBounds)
	}
	if w.requested || !w.paths.Ready() || p == w.character.Cell() {
		return false, nil
	}

	if w.Field.Has(p, AttrObstacle) {
		w.Field.Unmark(p, AttrObstacle)
	} else {
		w.Field.Mark(p, AttrObstacle)
	}

	if w.Way.Active() {
		if _, err := w.RequestWay(w.Way.Target); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Tick advances the simulation by dt seconds
// A ready path result is consumed first, then every unit moves and units leaving the field are culled
func (w *World) Tick(dt float64) {
	if w.requested && w.paths.Ready() {
		w.requested = false
		w.takeWay()
	}

	for u := range w.Units.All() {
		w.move(u, dt)
		if u != w.character && w.outside(u.Pos) {
			w.Units.Deallocate(u)
			w.culled.Add(1)
		}
	}
	w.live.Set(float64(w.Units.Len()))
}

// DrainSounds returns queued sound events and empties the queue
func (w *World) DrainSounds() []core.SoundType {
	out := w.sounds
	w.sounds = nil
	return out
}

// AtExit reports whether the character stands on an exit cell
func (w *World) AtExit() bool {
	return w.Field.Has(w.character.Cell(), AttrExit)
}

func (w *World) emit(s core.SoundType) {
	if len(w.sounds) >= soundQueueLimit {
		return
	}
	w.sounds = append(w.sounds, s)
}

func (w *World) outside(p Vec) bool {
	return p.X < -0.5 || p.Y < -0.5 ||
		p.X >= float64(w.Field.Width())-0.5 || p.Y >= float64(w.Field.Height())-0.5
}

// takeWay consumes the published path; an empty one means stay put
func (w *World) takeWay() {
	path := w.paths.Read()
	here := w.character.Cell()
	if len(path) == 0 {
		target := w.Way.Target
		w.Way.clear(here)
		w.character.Vel = Vec{}
		if target != here {
			w.emit(core.SoundNoRoute)
		}
		return
	}
	w.Way.begin(here, path.Clone())
	w.steer()
	w.emit(core.SoundPathReady)
}

// steer points the character at the cell being entered
func (w *World) steer() {
	c := w.character
	if !w.Way.Active() {
		c.Vel = Vec{}
		return
	}
	d := VecOf(w.Way.Neighbour).Sub(c.Pos)
	l := d.Len()
	if l < 1e-9 {
		c.Vel = Vec{}
		return
	}
	c.Vel = d.Scale(CharacterSpeed / l)
}

func (w *World) move(u *Unit, dt float64) {
	switch u.Kind {
	case KindCharacter:
		w.moveCharacter(u, dt)
	case KindGuard:
		w.moveGuard(u, dt)
	case KindFireball:
		u.Pos = u.Pos.Add(u.Vel.Scale(dt))
	}
}

// moveCharacter walks toward Neighbour, snapping on arrival and taking the next stage
func (w *World) moveCharacter(u *Unit, dt float64) {
	if !w.Way.Active() {
		return
	}
	u.Pos = u.Pos.Add(u.Vel.Scale(dt))

	goal := VecOf(w.Way.Neighbour)
	if goal.Sub(u.Pos).Dot(u.Vel) > 0 {
		return
	}
	u.Pos = goal
	if !w.Way.advance() {
		w.Way.clear(w.Way.Neighbour)
		u.Vel = Vec{}
		w.emit(core.SoundArrive)
		return
	}
	w.steer()
}

// moveGuard bounces horizontally between turn markers
func (w *World) moveGuard(u *Unit, dt float64) {
	u.Pos = u.Pos.Add(u.Vel.Scale(dt))
	cell := u.Cell()
	if w.Field.Has(cell, AttrGuardBackward) {
		u.Vel.X = -math.Abs(u.Vel.X)
	}
	if w.Field.Has(cell, AttrGuardForward) {
		u.Vel.X = math.Abs(u.Vel.X)
	}
}
