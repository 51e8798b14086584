package rollout

import (
	"github.com/vovakirdan/procgen-arcade/internal/engine"
	"github.com/vovakirdan/procgen-arcade/internal/registry"
	"github.com/vovakirdan/procgen-arcade/internal/rng"
)

// Policy picks the movement intent for the next simulation step.
type Policy interface {
	Choose(env registry.Env) engine.Move
}

// RandomPolicy draws uniformly from the action combos.
// It owns its own random stream so it never perturbs level generation.
type RandomPolicy struct {
	rng *rng.Source
}

// NewRandomPolicy returns a random policy seeded with seed.
func NewRandomPolicy(seed int64) *RandomPolicy {
	return &RandomPolicy{rng: rng.New(seed)}
}

// Choose ignores the environment and returns a random combo.
func (p *RandomPolicy) Choose(registry.Env) engine.Move {
	return engine.MoveFromCombo(p.rng.Randn(engine.NumCombos))
}

// ScriptedPolicy replays a fixed list of combos, then idles.
type ScriptedPolicy struct {
	Combos []int
	next   int
}

func (p *ScriptedPolicy) Choose(registry.Env) engine.Move {
	if p.next >= len(p.Combos) {
		return engine.Move{}
	}
	c := p.Combos[p.next]
	p.next++
	return engine.MoveFromCombo(c)
}
