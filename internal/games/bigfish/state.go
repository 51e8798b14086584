package bigfish

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/procgen-arcade/internal/engine"
	"github.com/vovakirdan/procgen-arcade/internal/rng"
	"github.com/vovakirdan/procgen-arcade/internal/savestate"
)

var errNotReset = errors.New("bigfish: game has not been reset")

// maxFish bounds the fish count accepted from a save.
const maxFish = 1 << 16

// Save serializes the simulation: variant id, rng state, agent, fish,
// episode, then fish eaten and growth per fish.
func (g *Game) Save() ([]byte, error) {
	if !g.ready {
		return nil, errNotReset
	}
	rs, err := g.rng.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("bigfish: save rng: %w", err)
	}

	w := savestate.NewWriter()
	w.WriteString(g.ID())
	w.WriteBytes(rs)
	g.agent.Save(w)
	w.WriteInt(len(g.fish))
	for i := range g.fish {
		g.fish[i].Save(w)
	}
	g.episode.Save(w)
	w.WriteInt(g.fishEaten)
	w.WriteFloat(g.rInc)
	return w.Bytes(), nil
}

// Load restores a state written by Save. On error the game is unchanged.
func (g *Game) Load(data []byte) error {
	r := savestate.NewReader(data)
	if id := r.ReadString(); r.Err() != nil || id != g.ID() {
		return fmt.Errorf("bigfish: load: not a bigfish save (%q)", id)
	}

	src := rng.New(0)
	if err := src.UnmarshalBinary(r.ReadBytes()); err != nil {
		return fmt.Errorf("bigfish: load rng: %w", err)
	}
	agent := engine.LoadEntity(r)
	n := r.ReadInt()
	if n < 0 || n > maxFish {
		return fmt.Errorf("bigfish: load: bad fish count %d", n)
	}
	fish := make([]engine.Entity, 0, n)
	for range n {
		fish = append(fish, engine.LoadEntity(r))
	}
	episode, err := engine.LoadEpisode(r)
	if err != nil {
		return fmt.Errorf("bigfish: load: %w", err)
	}
	eaten := r.ReadInt()
	rInc := r.ReadFloat()
	if err := r.Err(); err != nil {
		return fmt.Errorf("bigfish: load: %w", err)
	}

	g.rng = src
	g.agent = agent
	g.fish = fish
	g.episode = episode
	g.fishEaten = eaten
	g.rInc = rInc
	g.ready = true
	g.pending = engine.Move{}
	g.resetErr = nil
	return nil
}
