package engine_test

import (
	"testing"

	"github.com/vovakirdan/procgen-arcade/internal/core"
	"github.com/vovakirdan/procgen-arcade/internal/engine"
	"github.com/vovakirdan/procgen-arcade/internal/savestate"
)

func TestMoveFromCombo(t *testing.T) {
	testCases := []struct {
		combo int
		want  engine.Move
	}{
		{0, engine.Move{DX: -1, DY: -1}},
		{1, engine.Move{DX: -1}},
		{4, engine.Move{}},
		{5, engine.Move{DY: 1}},
		{7, engine.Move{DX: 1}},
		{8, engine.Move{DX: 1, DY: 1}},
		{9, engine.Move{}},
		{14, engine.Move{}},
		{15, engine.Move{}},
		{-1, engine.Move{}},
	}

	for _, tc := range testCases {
		if got := engine.MoveFromCombo(tc.combo); got != tc.want {
			t.Errorf("MoveFromCombo(%d) = %+v, want %+v", tc.combo, got, tc.want)
		}
	}
}

func TestMoveFromInput(t *testing.T) {
	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	in.Set(core.ActionUp)

	m := engine.MoveFromInput(in)
	if m.DX != -1 || m.DY != 1 {
		t.Errorf("got %+v, want {-1 1}", m)
	}
	if engine.MoveFromInput(core.NewInputFrame()).IsZero() != true {
		t.Error("empty frame should be a zero move")
	}
}

func TestEntityOverlap(t *testing.T) {
	a := engine.NewEntity(5, 5, 0, 0, 1, engine.Player)

	testCases := []struct {
		name string
		x, y float64
		r    float64
		want bool
	}{
		{"same spot", 5, 5, 1, true},
		{"touching edges", 7, 5, 1, false},
		{"slightly inside", 6.9, 5, 1, true},
		{"far", 20, 20, 1, false},
		{"vertical overlap only", 5, 8, 1, false},
	}

	for _, tc := range testCases {
		b := engine.NewEntity(tc.x, tc.y, 0, 0, tc.r, tagRock)
		if got := a.Overlaps(&b); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestEntityAdvanceAndOutside(t *testing.T) {
	e := engine.NewEntity(-0.5, 3, 0.25, 0, 0.5, tagRock)
	if e.Facing != 1 {
		t.Errorf("facing = %d, want 1", e.Facing)
	}
	e.Advance()
	if e.X != -0.25 {
		t.Errorf("X = %v, want -0.25", e.X)
	}
	if e.Outside(10, 10) {
		t.Error("entity still overlaps the board")
	}

	gone := engine.NewEntity(11, 3, 0, 0, 0.5, tagRock)
	if !gone.Outside(10, 10) {
		t.Error("entity past the right edge should be outside")
	}
}

func TestEntitySaveLoad(t *testing.T) {
	e := engine.NewEntity(1.125, 2.5, -0.3, 0, 0.75, tagRock)
	e.Theme = 2
	e.Erase = true

	w := savestate.NewWriter()
	e.Save(w)
	r := savestate.NewReader(w.Bytes())
	got := engine.LoadEntity(r)
	if err := r.Err(); err != nil {
		t.Fatalf("LoadEntity: %v", err)
	}
	if got != e {
		t.Errorf("got %+v, want %+v", got, e)
	}
}

func TestEpisodeLifecycle(t *testing.T) {
	ep := engine.NewEpisode(3)

	ep.BeginStep()
	ep.Add(1)
	ep.EndStep()
	if ep.Done || ep.Steps != 1 || ep.Reward != 1 {
		t.Fatalf("after step 1: %+v", ep)
	}

	ep.BeginStep()
	ep.Complete(10)
	ep.Complete(10)
	ep.EndStep()
	if !ep.Done || !ep.LevelComplete || ep.End != engine.EndCompleted {
		t.Fatalf("expected completion, got %+v", ep)
	}
	if ep.Reward != 10 || ep.Total != 11 {
		t.Errorf("bonus paid more than once: reward=%v total=%v", ep.Reward, ep.Total)
	}
}

func TestEpisodeTimeout(t *testing.T) {
	ep := engine.NewEpisode(2)
	for i := 0; i < 2; i++ {
		ep.BeginStep()
		ep.EndStep()
	}
	if !ep.Done || ep.End != engine.EndTimeout || ep.LevelComplete {
		t.Errorf("expected timeout, got %+v", ep)
	}
}

func TestEpisodeFirstReasonWins(t *testing.T) {
	ep := engine.NewEpisode(1)
	ep.BeginStep()
	ep.Finish(engine.EndCrushed)
	ep.EndStep()
	if ep.End != engine.EndCrushed {
		t.Errorf("End = %v, want crushed", ep.End)
	}
}

func TestEndReasonRoundTrip(t *testing.T) {
	for _, r := range []engine.EndReason{engine.EndCrushed, engine.EndEaten, engine.EndCompleted, engine.EndTimeout} {
		if got := engine.ParseEndReason(r.String()); got != r {
			t.Errorf("ParseEndReason(%q) = %v", r.String(), got)
		}
	}
	if engine.ParseEndReason("bogus") != engine.EndNone {
		t.Error("unknown reason should parse to none")
	}
}

func TestEpisodeSaveLoad(t *testing.T) {
	ep := engine.NewEpisode(1000)
	ep.BeginStep()
	ep.Add(1)
	ep.EndStep()

	w := savestate.NewWriter()
	ep.Save(w)
	got, err := engine.LoadEpisode(savestate.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("LoadEpisode: %v", err)
	}
	if got != ep {
		t.Errorf("got %+v, want %+v", got, ep)
	}
}

func TestViewportSmallWorldCentred(t *testing.T) {
	vp := engine.Fit(40, 12, 2, 2, 10, 10, 0, 0)

	if vp.Cols != 20 || vp.Rows != 10 {
		t.Fatalf("view = %dx%d, want 20x10", vp.Cols, vp.Rows)
	}
	if vp.OriginX != -5 || vp.OriginY != 0 {
		t.Errorf("origin = (%d,%d), want (-5,0)", vp.OriginX, vp.OriginY)
	}

	sx, sy, ok := vp.ToScreen(0, 0)
	if !ok || sx != 10 || sy != 11 {
		t.Errorf("ToScreen(0,0) = (%d,%d,%v), want (10,11,true)", sx, sy, ok)
	}
	sx, sy, ok = vp.ToScreen(0, 9)
	if !ok || sx != 10 || sy != 2 {
		t.Errorf("ToScreen(0,9) = (%d,%d,%v), want (10,2,true)", sx, sy, ok)
	}
}

func TestViewportFollowsFocus(t *testing.T) {
	vp := engine.Fit(20, 10, 0, 2, 35, 35, 34, 0)

	if vp.OriginX != 25 {
		t.Errorf("OriginX = %d, want 25 (clamped to the right edge)", vp.OriginX)
	}
	if vp.OriginY != 0 {
		t.Errorf("OriginY = %d, want 0", vp.OriginY)
	}
	if _, _, ok := vp.ToScreen(24, 0); ok {
		t.Error("cell left of the view should not be visible")
	}

	n := 0
	vp.Each(func(_, _ int) { n++ })
	if n != vp.Cols*vp.Rows {
		t.Errorf("Each visited %d cells, want %d", n, vp.Cols*vp.Rows)
	}
}
