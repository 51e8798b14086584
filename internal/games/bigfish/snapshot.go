package bigfish

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Steps         int
	AgentX        float64
	AgentY        float64
	AgentR        float64
	FishCount     int
	FishEaten     int
	Total         float64
	Done          bool
	LevelComplete bool
	End           string
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Steps:         g.episode.Steps,
		AgentX:        g.agent.X,
		AgentY:        g.agent.Y,
		AgentR:        g.agent.RX,
		FishCount:     len(g.fish),
		FishEaten:     g.fishEaten,
		Total:         g.episode.Total,
		Done:          g.episode.Done,
		LevelComplete: g.episode.LevelComplete,
		End:           g.episode.End.String(),
	}
}
