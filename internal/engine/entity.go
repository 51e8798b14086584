package engine

import (
	"math"

	"github.com/vovakirdan/procgen-arcade/internal/savestate"
)

// Entity is a free-moving object with a centre, half-extents and velocity.
type Entity struct {
	X, Y   float64 // centre
	VX, VY float64
	RX, RY float64 // half width, half height
	Kind   Tag
	Theme  int  // which of the kind's assets to draw
	Facing int  // -1 facing left, +1 facing right
	Erase  bool // removed at the end of the step
}

// NewEntity creates an entity at (x, y) with velocity (vx, vy) and radius r.
func NewEntity(x, y, vx, vy, r float64, kind Tag) Entity {
	facing := 1
	if vx < 0 {
		facing = -1
	}
	return Entity{X: x, Y: y, VX: vx, VY: vy, RX: r, RY: r, Kind: kind, Facing: facing}
}

// Advance moves the entity by its velocity.
func (e *Entity) Advance() {
	e.X += e.VX
	e.Y += e.VY
}

// Overlaps reports whether the two bounding boxes intersect.
func (e *Entity) Overlaps(o *Entity) bool {
	return math.Abs(e.X-o.X) < e.RX+o.RX && math.Abs(e.Y-o.Y) < e.RY+o.RY
}

// Cell returns the grid cell containing the entity's centre.
func (e *Entity) Cell() (x, y int) {
	return int(math.Floor(e.X)), int(math.Floor(e.Y))
}

// Outside reports whether the entity lies entirely outside a w×h area.
func (e *Entity) Outside(w, h float64) bool {
	return e.X+e.RX < 0 || e.X-e.RX > w || e.Y+e.RY < 0 || e.Y-e.RY > h
}

// Save appends the entity to w.
func (e *Entity) Save(w *savestate.Writer) {
	w.WriteFloat(e.X)
	w.WriteFloat(e.Y)
	w.WriteFloat(e.VX)
	w.WriteFloat(e.VY)
	w.WriteFloat(e.RX)
	w.WriteFloat(e.RY)
	w.WriteInt(int(e.Kind))
	w.WriteInt(e.Theme)
	w.WriteInt(e.Facing)
	w.WriteBool(e.Erase)
}

// LoadEntity reads an entity written by Save. Check r.Err afterwards.
func LoadEntity(r *savestate.Reader) Entity {
	return Entity{
		X:      r.ReadFloat(),
		Y:      r.ReadFloat(),
		VX:     r.ReadFloat(),
		VY:     r.ReadFloat(),
		RX:     r.ReadFloat(),
		RY:     r.ReadFloat(),
		Kind:   Tag(r.ReadInt()),
		Theme:  r.ReadInt(),
		Facing: r.ReadInt(),
		Erase:  r.ReadBool(),
	}
}
