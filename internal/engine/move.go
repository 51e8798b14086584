package engine

import "github.com/vovakirdan/procgen-arcade/internal/core"

// NumCombos is the size of the discrete action space.
const NumCombos = 15

// Move is a per-step movement intent. DY is +1 for up.
type Move struct {
	DX, DY int
}

// combos maps each discrete action to a movement. Entries 9-14 are the
// special buttons (D, A, W, S, Q, E) which no game here uses.
var combos = [NumCombos]Move{
	{-1, -1}, // LEFT + DOWN
	{-1, 0},  // LEFT
	{-1, 1},  // LEFT + UP
	{0, -1},  // DOWN
	{0, 0},   // no-op
	{0, 1},   // UP
	{1, -1},  // RIGHT + DOWN
	{1, 0},   // RIGHT
	{1, 1},   // RIGHT + UP
}

// MoveFromCombo returns the movement for a discrete action.
// Out-of-range values are treated as no-ops.
func MoveFromCombo(n int) Move {
	if n < 0 || n >= NumCombos {
		return Move{}
	}
	return combos[n]
}

// MoveFromInput collapses an input frame into a movement.
func MoveFromInput(in core.InputFrame) Move {
	dx, dy := in.Direction()
	return Move{DX: dx, DY: dy}
}

// IsZero reports whether the move does nothing.
func (m Move) IsZero() bool {
	return m.DX == 0 && m.DY == 0
}
