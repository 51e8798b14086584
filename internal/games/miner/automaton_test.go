package miner_test

import (
	"testing"

	"github.com/vovakirdan/procgen-arcade/internal/engine"
	"github.com/vovakirdan/procgen-arcade/internal/games/miner"
	"github.com/vovakirdan/procgen-arcade/internal/rng"
)

// noAgent is an index no cell or neighbour lookup can reach.
const noAgent = -1 << 20

// parseGrid builds a grid from rows given top row first.
// ' ' space, '.' dirt, 'o' boulder, 'O' falling boulder, '*' diamond,
// '+' falling diamond, 'A' agent (on space).
func parseGrid(t *testing.T, rows ...string) (*engine.Grid, int) {
	t.Helper()
	h := len(rows)
	w := len([]rune(rows[0]))
	g := engine.NewGrid(w, h, miner.OutOfBounds)
	agent := noAgent

	for i, row := range rows {
		y := h - 1 - i
		for x, c := range []rune(row) {
			var tag engine.Tag
			switch c {
			case ' ':
				tag = engine.Space
			case '.':
				tag = miner.Dirt
			case 'o':
				tag = miner.Boulder
			case 'O':
				tag = miner.MovingBoulder
			case '*':
				tag = miner.Diamond
			case '+':
				tag = miner.MovingDiamond
			case 'A':
				agent = g.Index(x, y)
			default:
				t.Fatalf("unknown cell %q", c)
			}
			g.SetXY(x, y, tag)
		}
	}
	return g, agent
}

func TestTickSingleBoulderFalls(t *testing.T) {
	g, agent := parseGrid(t,
		" o ",
		"   ",
		"   ",
	)

	miner.Tick(g, agent)
	if got := g.GetXY(1, 1); got != miner.MovingBoulder {
		t.Fatalf("after tick 1: (1,1) = %d, want falling boulder", got)
	}
	if g.GetXY(1, 2) != engine.Space {
		t.Error("after tick 1: start cell should be empty")
	}

	miner.Tick(g, agent)
	if got := g.GetXY(1, 0); got != miner.MovingBoulder {
		t.Fatalf("after tick 2: (1,0) = %d, want falling boulder", got)
	}
	if g.GetXY(1, 1) != engine.Space {
		t.Error("after tick 2: boulder moved more than one cell or left a copy")
	}

	miner.Tick(g, agent)
	if got := g.GetXY(1, 0); got != miner.Boulder {
		t.Errorf("after tick 3: (1,0) = %d, want resting boulder", got)
	}
}

func TestTickStackFallsOneCellPerTick(t *testing.T) {
	g, agent := parseGrid(t,
		"*",
		"o",
		" ",
		" ",
		" ",
	)

	miner.Tick(g, agent)
	want := []engine.Tag{engine.Space, miner.MovingDiamond, miner.MovingBoulder, engine.Space, engine.Space}
	for y := 4; y >= 0; y-- {
		if got := g.GetXY(0, y); got != want[4-y] {
			t.Errorf("row %d = %d, want %d", y, got, want[4-y])
		}
	}
}

func TestTickCrushNeedsFallingObject(t *testing.T) {
	testCases := []struct {
		name    string
		rows    []string
		crushed bool
	}{
		{"falling boulder onto agent", []string{" O ", " A "}, true},
		{"falling diamond onto agent", []string{" + ", " A "}, true},
		{"resting boulder above agent", []string{" o ", " A "}, false},
		{"falling boulder beside agent", []string{"O  ", " A "}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, agent := parseGrid(t, tc.rows...)
			res := miner.Tick(g, agent)
			if res.Crushed != tc.crushed {
				t.Errorf("Crushed = %v, want %v", res.Crushed, tc.crushed)
			}
		})
	}
}

func TestTickCrushLeavesObjectFalling(t *testing.T) {
	g, agent := parseGrid(t,
		" O ",
		" A ",
	)
	miner.Tick(g, agent)
	if got := g.GetXY(1, 1); got != miner.MovingBoulder {
		t.Errorf("crushing boulder = %d, want it to stay falling", got)
	}
}

func TestTickRollPrefersLeft(t *testing.T) {
	g, agent := parseGrid(t,
		" o ",
		" o ",
	)
	miner.Tick(g, agent)

	if g.GetXY(0, 1) != miner.Boulder {
		t.Errorf("boulder should roll left and rest, got (0,1) = %d", g.GetXY(0, 1))
	}
	if g.GetXY(2, 1) != engine.Space || g.GetXY(1, 1) != engine.Space {
		t.Error("only the left side should be taken")
	}
}

func TestTickRollRightWhenLeftBlocked(t *testing.T) {
	testCases := []struct {
		name   string
		rows   []string
		startX int
	}{
		{"dirt on the left", []string{".o ", " o "}, 1},
		{"agent on the left", []string{"Ao ", " o "}, 1},
		{"diagonal below-left filled", []string{" o ", ".o "}, 1},
		{"leftmost column", []string{"o  ", "o  "}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, agent := parseGrid(t, tc.rows...)
			before := miner.CountRound(g)
			startX := tc.startX

			miner.Tick(g, agent)

			// Rolling right lands above an empty cell, so the object keeps
			// falling when the scan reaches it again in the same pass.
			if got := g.GetXY(startX+1, 0); got != miner.MovingBoulder {
				t.Errorf("(%d,0) = %d, want falling boulder", startX+1, got)
			}
			if g.GetXY(startX, 1) != engine.Space {
				t.Error("start cell should be empty")
			}
			if miner.CountRound(g) != before {
				t.Error("round objects not conserved")
			}
		})
	}
}

func TestTickBlockedRollStaysPut(t *testing.T) {
	g, agent := parseGrid(t,
		".O.",
		" o ",
	)
	miner.Tick(g, agent)
	if got := g.GetXY(1, 1); got != miner.Boulder {
		t.Errorf("blocked falling boulder = %d, want resting boulder", got)
	}
}

func TestTickAgentIsNotFree(t *testing.T) {
	g, agent := parseGrid(t,
		" o ",
		" A ",
		"   ",
	)
	miner.Tick(g, agent)
	if g.GetXY(1, 2) != miner.Boulder {
		t.Error("a boulder must not fall into the agent's cell")
	}
}

func TestTickProperties(t *testing.T) {
	r := rng.New(7)
	tags := []engine.Tag{engine.Space, engine.Space, miner.Dirt, miner.Boulder, miner.Diamond}

	for trial := 0; trial < 50; trial++ {
		g := engine.NewGrid(8, 8, miner.OutOfBounds)
		for i := 0; i < g.Area(); i++ {
			g.Set(i, tags[r.Randn(len(tags))])
		}
		agent := r.Randn(g.Area())
		g.Set(agent, engine.Space)

		round := miner.CountRound(g)
		diamonds := miner.CountDiamonds(g)

		for tick := 0; tick < 20; tick++ {
			res := miner.Tick(g, agent)
			if got := miner.CountRound(g); got != round {
				t.Fatalf("trial %d tick %d: round objects %d, want %d", trial, tick, got, round)
			}
			if res.Diamonds != miner.CountDiamonds(g) {
				t.Fatalf("trial %d tick %d: reported %d diamonds, grid holds %d", trial, tick, res.Diamonds, miner.CountDiamonds(g))
			}
			if res.Diamonds != diamonds {
				t.Fatalf("trial %d tick %d: diamonds changed from %d to %d", trial, tick, diamonds, res.Diamonds)
			}
			if g.Get(agent) != engine.Space {
				t.Fatalf("trial %d tick %d: object moved into the agent's cell", trial, tick)
			}
		}
	}
}

func TestTickSettlesToRest(t *testing.T) {
	g, agent := parseGrid(t,
		"o*o",
		"   ",
		"   ",
	)
	for i := 0; i < 10; i++ {
		miner.Tick(g, agent)
	}
	for i := 0; i < g.Area(); i++ {
		if miner.IsMoving(g.Get(i)) {
			t.Errorf("cell %d still falling after the pile settled", i)
		}
	}
}

func TestTagConversions(t *testing.T) {
	testCases := []struct {
		tag        engine.Tag
		round      bool
		moving     bool
		stationary engine.Tag
	}{
		{miner.Boulder, true, false, miner.Boulder},
		{miner.MovingBoulder, true, true, miner.Boulder},
		{miner.Diamond, true, false, miner.Diamond},
		{miner.MovingDiamond, true, true, miner.Diamond},
		{miner.Dirt, false, false, miner.Dirt},
		{engine.Space, false, false, engine.Space},
	}

	for _, tc := range testCases {
		if miner.IsRound(tc.tag) != tc.round {
			t.Errorf("IsRound(%d) = %v", tc.tag, !tc.round)
		}
		if miner.IsMoving(tc.tag) != tc.moving {
			t.Errorf("IsMoving(%d) = %v", tc.tag, !tc.moving)
		}
		if miner.StationaryOf(tc.tag) != tc.stationary {
			t.Errorf("StationaryOf(%d) = %d, want %d", tc.tag, miner.StationaryOf(tc.tag), tc.stationary)
		}
		if tc.round && miner.StationaryOf(miner.MovingOf(tc.tag)) != tc.stationary {
			t.Errorf("MovingOf(%d) does not round-trip", tc.tag)
		}
	}
}
