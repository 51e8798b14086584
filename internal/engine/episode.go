package engine

import (
	"fmt"

	"github.com/vovakirdan/procgen-arcade/internal/savestate"
)

// EndReason records why an episode finished.
type EndReason int

const (
	EndNone EndReason = iota
	EndCrushed
	EndEaten
	EndCompleted
	EndTimeout
)

func (r EndReason) String() string {
	switch r {
	case EndCrushed:
		return "crushed"
	case EndEaten:
		return "eaten"
	case EndCompleted:
		return "completed"
	case EndTimeout:
		return "timeout"
	default:
		return "none"
	}
}

// ParseEndReason is the inverse of EndReason.String.
func ParseEndReason(s string) EndReason {
	for r := EndCrushed; r <= EndTimeout; r++ {
		if r.String() == s {
			return r
		}
	}
	return EndNone
}

// Episode tracks per-episode bookkeeping common to all variants.
// Reward is the reward produced by the most recent step only.
type Episode struct {
	Steps         int
	Timeout       int
	Reward        float64
	Total         float64
	Done          bool
	LevelComplete bool
	End           EndReason
}

// NewEpisode starts an episode with the given step budget.
func NewEpisode(timeout int) Episode {
	return Episode{Timeout: timeout}
}

// BeginStep clears the per-step reward.
func (e *Episode) BeginStep() {
	e.Reward = 0
}

// Add credits reward to the current step.
func (e *Episode) Add(r float64) {
	e.Reward += r
	e.Total += r
}

// Finish marks the episode done. The first reason recorded wins.
func (e *Episode) Finish(reason EndReason) {
	if e.Done {
		return
	}
	e.Done = true
	e.End = reason
}

// Complete awards the completion bonus and finishes the episode.
// It has no effect once the episode is done, so the bonus is paid at most once.
func (e *Episode) Complete(bonus float64) {
	if e.Done {
		return
	}
	e.Add(bonus)
	e.LevelComplete = true
	e.Finish(EndCompleted)
}

// EndStep counts the step and applies the step budget.
func (e *Episode) EndStep() {
	e.Steps++
	if e.Timeout > 0 && e.Steps >= e.Timeout {
		e.Finish(EndTimeout)
	}
}

// Save appends the episode to w.
func (e *Episode) Save(w *savestate.Writer) {
	w.WriteInt(e.Steps)
	w.WriteInt(e.Timeout)
	w.WriteFloat(e.Reward)
	w.WriteFloat(e.Total)
	w.WriteBool(e.Done)
	w.WriteBool(e.LevelComplete)
	w.WriteInt(int(e.End))
}

// LoadEpisode reads an episode written by Save.
func LoadEpisode(r *savestate.Reader) (Episode, error) {
	e := Episode{
		Steps:         r.ReadInt(),
		Timeout:       r.ReadInt(),
		Reward:        r.ReadFloat(),
		Total:         r.ReadFloat(),
		Done:          r.ReadBool(),
		LevelComplete: r.ReadBool(),
		End:           EndReason(r.ReadInt()),
	}
	if err := r.Err(); err != nil {
		return Episode{}, fmt.Errorf("engine: load episode: %w", err)
	}
	return e, nil
}
