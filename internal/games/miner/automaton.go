package miner

import "github.com/vovakirdan/procgen-arcade/internal/engine"

// TickResult is the outcome of one automaton pass.
type TickResult struct {
	Diamonds int  // cells holding a diamond in either form after the pass
	Crushed  bool // a falling object landed on the agent
}

// Tick advances every boulder and diamond by one step.
//
// Cells are visited once in ascending index order, so an object that falls
// lands in a row that has already been visited and cannot move twice.
// Objects that roll sideways are written in their resting form; an object
// that rolls right may be visited again in the same pass.
// agent is the flat index of the agent's cell.
func Tick(g *engine.Grid, agent int) TickResult {
	var res TickResult
	free := func(idx int) bool {
		return g.Get(idx) == engine.Space && idx != agent
	}

	for idx := 0; idx < g.Area(); idx++ {
		obj := g.Get(idx)
		if !IsRound(obj) {
			continue
		}

		x := idx % g.W
		below := idx - g.W
		under := g.Get(below)
		rest := StationaryOf(obj)

		switch {
		case under == engine.Space && below != agent:
			g.Set(idx, engine.Space)
			g.Set(below, MovingOf(obj))
		case below == agent && IsMoving(obj):
			// The object stays where it is; the episode ends.
			res.Crushed = true
		case IsRound(under) && x > 0 && free(idx-1) && free(below-1):
			g.Set(idx, engine.Space)
			g.Set(idx-1, rest)
		case IsRound(under) && x < g.W-1 && free(idx+1) && free(below+1):
			g.Set(idx, engine.Space)
			g.Set(idx+1, rest)
		default:
			g.Set(idx, rest)
		}
	}

	res.Diamonds = CountDiamonds(g)
	return res
}

// CountDiamonds returns the number of cells holding a diamond in either form.
func CountDiamonds(g *engine.Grid) int {
	return g.Count(func(t engine.Tag) bool { return StationaryOf(t) == Diamond })
}

// CountRound returns the number of boulders and diamonds in any form.
func CountRound(g *engine.Grid) int {
	return g.Count(IsRound)
}
