package rollout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/procgen-arcade/internal/config"
	"github.com/vovakirdan/procgen-arcade/internal/engine"
	"github.com/vovakirdan/procgen-arcade/internal/games/bigfish"
	"github.com/vovakirdan/procgen-arcade/internal/games/miner"
	"github.com/vovakirdan/procgen-arcade/internal/rollout"
	"github.com/vovakirdan/procgen-arcade/internal/storage"
)

type frameLog struct {
	frames []rollout.Frame
}

func (f *frameLog) Publish(fr rollout.Frame) {
	f.frames = append(f.frames, fr)
}

type memRecorder struct {
	recs []storage.EpisodeRecord
	err  error
}

func (m *memRecorder) SaveEpisode(rec storage.EpisodeRecord) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.recs = append(m.recs, rec)
	return rec.ID, nil
}

func TestRandomPolicyDeterministic(t *testing.T) {
	a := rollout.NewRandomPolicy(11)
	b := rollout.NewRandomPolicy(11)

	seen := map[engine.Move]bool{}
	for i := range 200 {
		ma, mb := a.Choose(nil), b.Choose(nil)
		if ma != mb {
			t.Fatalf("step %d: %+v != %+v", i, ma, mb)
		}
		seen[ma] = true
	}
	// Eight directions plus the idle move.
	if len(seen) != 9 {
		t.Errorf("distinct moves = %d, want 9", len(seen))
	}
}

func TestScriptedPolicy(t *testing.T) {
	p := &rollout.ScriptedPolicy{Combos: []int{7, 1}}

	want := []engine.Move{{DX: 1}, {DX: -1}, {}, {}}
	for i, w := range want {
		if got := p.Choose(nil); got != w {
			t.Errorf("move %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestRunUntilDone(t *testing.T) {
	for _, mk := range []func() rollout.Summary{
		func() rollout.Summary {
			r := rollout.NewRunner(miner.NewWithConfig(config.DefaultMinerConfig()), rollout.NewRandomPolicy(3))
			sum, err := r.Run(context.Background(), 42)
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}
			return sum
		},
		func() rollout.Summary {
			r := rollout.NewRunner(bigfish.NewWithConfig(config.DefaultBigFishConfig()), rollout.NewRandomPolicy(3))
			sum, err := r.Run(context.Background(), 42)
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}
			return sum
		},
	} {
		sum := mk()
		if sum.End == "" || sum.End == rollout.EndTruncated {
			t.Errorf("%s: end = %q", sum.Game, sum.End)
		}
		if sum.Steps <= 0 {
			t.Errorf("%s: steps = %d", sum.Game, sum.Steps)
		}
		if sum.ID == "" {
			t.Errorf("%s: empty id", sum.Game)
		}
		if sum.LevelComplete != (sum.End == engine.EndCompleted.String()) {
			t.Errorf("%s: level complete %v with end %q", sum.Game, sum.LevelComplete, sum.End)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	run := func() rollout.Summary {
		r := rollout.NewRunner(miner.NewWithConfig(config.DefaultMinerConfig()), rollout.NewRandomPolicy(9))
		sum, err := r.Run(context.Background(), 5)
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
		sum.ID = ""
		return sum
	}

	if a, b := run(), run(); a != b {
		t.Errorf("runs differ:\n%+v\n%+v", a, b)
	}
}

func TestRunTruncatesAndStreams(t *testing.T) {
	sink := &frameLog{}
	rec := &memRecorder{}

	// An idle miner never completes or gets crushed.
	r := rollout.NewRunner(miner.NewWithConfig(config.DefaultMinerConfig()), &rollout.ScriptedPolicy{})
	r.MaxSteps = 5
	r.Mode = "hard"
	r.Sink = sink
	r.Recorder = rec

	sum, err := r.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if sum.Steps != 5 || sum.End != rollout.EndTruncated {
		t.Errorf("summary = %+v", sum)
	}

	if len(sink.frames) != 5 {
		t.Fatalf("frames = %d, want 5", len(sink.frames))
	}
	for i, f := range sink.frames {
		if f.Step != i+1 {
			t.Errorf("frame %d step = %d", i, f.Step)
		}
		if f.Board == "" || f.Game != "miner" || f.RunID != sum.ID {
			t.Errorf("frame %d = %+v", i, f)
		}
		if f.Done != (i == 4) {
			t.Errorf("frame %d done = %v", i, f.Done)
		}
	}

	if len(rec.recs) != 1 {
		t.Fatalf("records = %d, want 1", len(rec.recs))
	}
	got := rec.recs[0]
	if got.ID != sum.ID || got.GameID != "miner" || got.Mode != "hard" || got.Seed != 1 || got.Steps != 5 {
		t.Errorf("record = %+v", got)
	}
}

func TestRunMany(t *testing.T) {
	r := rollout.NewRunner(miner.NewWithConfig(config.DefaultMinerConfig()), &rollout.ScriptedPolicy{})
	r.MaxSteps = 3

	sums, err := r.RunMany(context.Background(), 10, 4)
	if err != nil {
		t.Fatalf("RunMany() failed: %v", err)
	}
	if len(sums) != 4 {
		t.Fatalf("summaries = %d", len(sums))
	}
	for i, s := range sums {
		if s.Seed != int64(10+i) {
			t.Errorf("summary %d seed = %d", i, s.Seed)
		}
	}

	tot := rollout.Tally(sums)
	if tot.Episodes != 4 || tot.Steps != 12 || tot.Completed != 0 {
		t.Errorf("totals = %+v", tot)
	}
}

func TestRunManyEpisodeCount(t *testing.T) {
	r := rollout.NewRunner(miner.NewWithConfig(config.DefaultMinerConfig()), &rollout.ScriptedPolicy{})
	r.MaxSteps = 1

	if sums, err := r.RunMany(context.Background(), 1, 0); err != nil || len(sums) != 0 {
		t.Errorf("RunMany(0) = %d summaries, %v", len(sums), err)
	}
	if _, err := r.RunMany(context.Background(), 1, -3); err == nil {
		t.Error("RunMany(-3) should fail")
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := (&rollout.Runner{}).Run(context.Background(), 1); err == nil {
		t.Error("Run() without env should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := rollout.NewRunner(miner.NewWithConfig(config.DefaultMinerConfig()), &rollout.ScriptedPolicy{})
	if _, err := r.Run(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled Run() err = %v", err)
	}

	bad := config.DefaultMinerConfig()
	bad.Board.Width = 1
	r = rollout.NewRunner(miner.NewWithConfig(bad), &rollout.ScriptedPolicy{})
	if _, err := r.Run(context.Background(), 1); err == nil {
		t.Error("Run() with invalid config should fail")
	}

	boom := errors.New("disk full")
	r = rollout.NewRunner(miner.NewWithConfig(config.DefaultMinerConfig()), &rollout.ScriptedPolicy{})
	r.MaxSteps = 1
	r.Recorder = &memRecorder{err: boom}
	if _, err := r.Run(context.Background(), 1); !errors.Is(err, boom) {
		t.Errorf("recorder err = %v", err)
	}
}
