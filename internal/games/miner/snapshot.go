package miner

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Steps         int
	AgentX        int
	AgentY        int
	ExitX         int
	ExitY         int
	Diamonds      int
	Total         float64
	Done          bool
	LevelComplete bool
	End           string
	GridHash      uint64
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.grid == nil {
		return Snapshot{}
	}
	ax, ay := g.agent.Cell()
	ex, ey := g.exit.Cell()
	return Snapshot{
		Steps:         g.episode.Steps,
		AgentX:        ax,
		AgentY:        ay,
		ExitX:         ex,
		ExitY:         ey,
		Diamonds:      g.diamonds,
		Total:         g.episode.Total,
		Done:          g.episode.Done,
		LevelComplete: g.episode.LevelComplete,
		End:           g.episode.End.String(),
		GridHash:      g.grid.Hash(),
	}
}
