package miner

import (
	"errors"

	"github.com/vovakirdan/procgen-arcade/internal/config"
	"github.com/vovakirdan/procgen-arcade/internal/engine"
	"github.com/vovakirdan/procgen-arcade/internal/rng"
)

// ErrNoExitCandidate is returned when a layout leaves no cell the exit can
// be placed in. Callers retry with a different seed.
var ErrNoExitCandidate = errors.New("miner: no exit candidate")

// Level is a freshly generated board.
type Level struct {
	Grid           *engine.Grid
	AgentX, AgentY int
	ExitX, ExitY   int
}

// Build generates a level. Random draws happen in a fixed order: one
// SimpleChoose for agent, diamonds and boulders, then one Randn for the exit.
func Build(cfg config.MinerConfig, r *rng.Source) (Level, error) {
	w, h := cfg.Board.Width, cfg.Board.Height
	area := w * h
	numDiamonds := area * cfg.Placement.DiamondsPer400 / 400
	numBoulders := area * cfg.Placement.BouldersPer400 / 400

	g := engine.NewGrid(w, h, OutOfBounds)
	g.Fill(Dirt)

	picks := r.SimpleChoose(area, numDiamonds+numBoulders+1)
	agent := picks[0]
	for _, cell := range picks[1 : 1+numDiamonds] {
		g.Set(cell, Diamond)
	}
	for _, cell := range picks[1+numDiamonds:] {
		g.Set(cell, Boulder)
	}

	// Recorded before the agent's cell is cleared, so the start cell
	// itself can become the exit.
	dirtCells := g.CellsWith(Dirt)

	ax, ay := g.XY(agent)
	g.Set(agent, engine.Space)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if g.GetXY(ax+dx, ay+dy) == Boulder {
				g.SetXY(ax+dx, ay+dy, Dirt)
			}
		}
	}

	candidates := ExitCandidates(g, dirtCells)
	if len(candidates) == 0 {
		return Level{}, ErrNoExitCandidate
	}
	exit := candidates[r.Randn(len(candidates))]
	g.Set(exit, engine.Space)
	ex, ey := g.XY(exit)

	return Level{Grid: g, AgentX: ax, AgentY: ay, ExitX: ex, ExitY: ey}, nil
}

// ExitCandidates filters cells to those whose cell directly above holds dirt
// or lies outside the board.
func ExitCandidates(g *engine.Grid, cells []int) []int {
	var out []int
	for _, cell := range cells {
		above := g.Get(cell + g.W)
		if above == Dirt || above == OutOfBounds {
			out = append(out, cell)
		}
	}
	return out
}
