package miner

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/procgen-arcade/internal/engine"
	"github.com/vovakirdan/procgen-arcade/internal/rng"
	"github.com/vovakirdan/procgen-arcade/internal/savestate"
)

var errNotReset = errors.New("miner: game has not been reset")

// Save serializes the simulation: variant id, rng state, board, agent,
// exit, episode, then the remaining-diamond count.
func (g *Game) Save() ([]byte, error) {
	if g.grid == nil {
		return nil, errNotReset
	}
	rs, err := g.rng.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("miner: save rng: %w", err)
	}

	w := savestate.NewWriter()
	w.WriteString(g.ID())
	w.WriteBytes(rs)
	g.grid.Save(w)
	g.agent.Save(w)
	g.exit.Save(w)
	g.episode.Save(w)
	w.WriteInt(g.diamonds)
	return w.Bytes(), nil
}

// Load restores a state written by Save. On error the game is unchanged.
func (g *Game) Load(data []byte) error {
	r := savestate.NewReader(data)
	if id := r.ReadString(); r.Err() != nil || id != g.ID() {
		return fmt.Errorf("miner: load: not a miner save (%q)", id)
	}

	src := rng.New(0)
	if err := src.UnmarshalBinary(r.ReadBytes()); err != nil {
		return fmt.Errorf("miner: load rng: %w", err)
	}
	grid, err := engine.LoadGrid(r)
	if err != nil {
		return fmt.Errorf("miner: load: %w", err)
	}
	agent := engine.LoadEntity(r)
	exit := engine.LoadEntity(r)
	episode, err := engine.LoadEpisode(r)
	if err != nil {
		return fmt.Errorf("miner: load: %w", err)
	}
	diamonds := r.ReadInt()
	if err := r.Err(); err != nil {
		return fmt.Errorf("miner: load: %w", err)
	}

	g.rng = src
	g.grid = grid
	g.agent = agent
	g.exit = exit
	g.episode = episode
	g.diamonds = diamonds
	g.pending = engine.Move{}
	g.resetErr = nil
	return nil
}
