package bigfish

import (
	"math"

	"github.com/vovakirdan/procgen-arcade/internal/engine"
)

// moveFish advances every fish and drops the ones that swam off the board.
func (g *Game) moveFish() {
	kept := g.fish[:0]
	for _, f := range g.fish {
		f.Advance()
		if f.Outside(g.cfg.World.Width, g.cfg.World.Height) {
			continue
		}
		kept = append(kept, f)
	}
	g.fish = kept
}

// collide resolves contact between the agent and every fish it overlaps.
// A strictly larger fish ahead of the agent (to its right) ends the episode;
// any other fish is eaten, including fish touched after that in the same step.
func (g *Game) collide() {
	for i := range g.fish {
		f := &g.fish[i]
		if !g.agent.Overlaps(f) {
			continue
		}
		if f.RX > g.agent.RX && f.X > g.agent.X {
			g.episode.Finish(engine.EndEaten)
			continue
		}
		g.episode.Add(g.cfg.Rewards.Collect)
		f.Erase = true
		g.agent.RX += g.rInc
		g.agent.RY += g.rInc
		g.fishEaten++
	}

	kept := g.fish[:0]
	for _, f := range g.fish {
		if !f.Erase {
			kept = append(kept, f)
		}
	}
	g.fish = kept
}

// maybeSpawn adds a fish at the left or right edge with probability
// 1/spawn_one_in. Draw order: size, height, direction, speed, theme.
func (g *Game) maybeSpawn() {
	sp := g.cfg.Fish
	if g.rng.Randn(sp.SpawnOneIn) != 1 {
		return
	}

	r := (sp.MaxRadius-sp.MinRadius)*math.Pow(g.rng.Rand01(), sp.SizeExponent) + sp.MinRadius
	y := g.rng.Rand01() * (g.cfg.World.Height - 2*r)
	movesRight := g.rng.Rand01() < .5
	vx := sp.MinSpeed + g.rng.Rand01()*sp.SpeedRange
	x := -r
	if !movesRight {
		vx = -vx
		x = g.cfg.World.Width + r
	}

	f := engine.NewEntity(x, y, vx, 0, r, Fish)
	f.Theme = g.rng.Randn(sp.Themes)
	g.fish = append(g.fish, f)
}

// Swimmers returns a copy of the fish currently in the water.
func (g *Game) Swimmers() []engine.Entity {
	out := make([]engine.Entity, len(g.fish))
	copy(out, g.fish)
	return out
}
