// Package rollout drives rule variants headlessly: a policy picks one move
// per simulation step until the episode ends.
package rollout

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/procgen-arcade/internal/engine"
	"github.com/vovakirdan/procgen-arcade/internal/registry"
	"github.com/vovakirdan/procgen-arcade/internal/storage"
)

// EndTruncated marks an episode stopped by the runner's own step cap.
const EndTruncated = "truncated"

// Frame is one simulation step as seen by spectators.
type Frame struct {
	RunID   string  `json:"run_id"`
	Game    string  `json:"game"`
	Episode int     `json:"episode"`
	Seed    int64   `json:"seed"`
	Step    int     `json:"step"`
	Reward  float64 `json:"reward"`
	Total   float64 `json:"total"`
	Done    bool    `json:"done"`
	End     string  `json:"end,omitempty"`
	Board   string  `json:"board"`
}

// FrameSink receives every frame of a rollout. Publish must not block.
type FrameSink interface {
	Publish(f Frame)
}

// Recorder persists finished episodes. *storage.Store satisfies it.
type Recorder interface {
	SaveEpisode(rec storage.EpisodeRecord) (string, error)
}

// Summary describes one finished episode.
type Summary struct {
	ID            string
	Game          string
	Mode          string
	Seed          int64
	Steps         int
	Reward        float64
	LevelComplete bool
	End           string
}

// Runner plays episodes of one environment.
type Runner struct {
	Env      registry.Env
	Policy   Policy
	Mode     string
	MaxSteps int // 0 keeps the environment's own step budget

	// StepDelay pauses after every step so spectators can follow along.
	StepDelay time.Duration

	Sink     FrameSink // optional
	Recorder Recorder  // optional
	Logger   *log.Logger

	episodes int
}

// NewRunner returns a runner with a silent logger.
func NewRunner(env registry.Env, policy Policy) *Runner {
	return &Runner{
		Env:    env,
		Policy: policy,
		Logger: log.New(io.Discard),
	}
}

// Run resets the environment with seed and steps it until the episode is
// done, the step cap is hit or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, seed int64) (Summary, error) {
	if r.Env == nil || r.Policy == nil {
		return Summary{}, fmt.Errorf("rollout: runner needs an env and a policy")
	}
	if err := r.Env.ResetSeed(seed); err != nil {
		return Summary{}, fmt.Errorf("rollout: reset seed %d: %w", seed, err)
	}

	r.episodes++
	game := r.Env.Variant().String()
	sum := Summary{
		ID:   uuid.NewString(),
		Game: game,
		Mode: r.Mode,
		Seed: seed,
	}
	r.logger().Debug("episode started", "id", sum.ID, "game", game, "seed", seed)

	var ep engine.Episode
	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		ep = r.Env.Act(r.Policy.Choose(r.Env))
		sum.Steps = ep.Steps
		sum.Reward = ep.Total

		truncated := !ep.Done && r.MaxSteps > 0 && ep.Steps >= r.MaxSteps
		switch {
		case ep.Done:
			sum.End = ep.End.String()
		case truncated:
			sum.End = EndTruncated
		}
		r.publish(sum, ep)

		if ep.Done || truncated {
			break
		}
		if r.StepDelay > 0 {
			select {
			case <-ctx.Done():
				return sum, ctx.Err()
			case <-time.After(r.StepDelay):
			}
		}
	}
	sum.LevelComplete = ep.LevelComplete

	if r.Recorder != nil {
		if _, err := r.Recorder.SaveEpisode(sum.record()); err != nil {
			return sum, fmt.Errorf("rollout: record episode: %w", err)
		}
	}

	r.logger().Info("episode finished",
		"game", game, "seed", seed, "steps", sum.Steps,
		"reward", sum.Reward, "end", sum.End)
	return sum, nil
}

// RunMany plays n episodes with seeds seed, seed+1, ...
func (r *Runner) RunMany(ctx context.Context, seed int64, n int) ([]Summary, error) {
	if n < 0 {
		return nil, fmt.Errorf("rollout: negative episode count %d", n)
	}
	out := make([]Summary, 0, n)
	for i := range n {
		sum, err := r.Run(ctx, seed+int64(i))
		if err != nil {
			return out, err
		}
		out = append(out, sum)
	}
	return out, nil
}

func (r *Runner) publish(sum Summary, ep engine.Episode) {
	if r.Sink == nil {
		return
	}
	r.Sink.Publish(Frame{
		RunID:   sum.ID,
		Game:    sum.Game,
		Episode: r.episodes,
		Seed:    sum.Seed,
		Step:    ep.Steps,
		Reward:  ep.Reward,
		Total:   ep.Total,
		Done:    sum.End != "",
		End:     sum.End,
		Board:   r.Env.Board(),
	})
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		r.Logger = log.New(io.Discard)
	}
	return r.Logger
}

func (s Summary) record() storage.EpisodeRecord {
	return storage.EpisodeRecord{
		ID:            s.ID,
		GameID:        s.Game,
		Mode:          s.Mode,
		Seed:          s.Seed,
		Steps:         s.Steps,
		Reward:        s.Reward,
		LevelComplete: s.LevelComplete,
		EndReason:     s.End,
	}
}

// Totals sums a batch of summaries.
type Totals struct {
	Episodes  int
	Completed int
	Steps     int
	Reward    float64
}

// Tally aggregates summaries.
func Tally(sums []Summary) Totals {
	var t Totals
	for _, s := range sums {
		t.Episodes++
		t.Steps += s.Steps
		t.Reward += s.Reward
		if s.LevelComplete {
			t.Completed++
		}
	}
	return t
}
