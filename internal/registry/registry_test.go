package registry

import (
	"slices"
	"testing"

	"github.com/vovakirdan/procgen-arcade/internal/config"
	"github.com/vovakirdan/procgen-arcade/internal/core"
)

type stubGame struct{ id string }

func (s *stubGame) ID() string { return s.id }
func (s *stubGame) Title() string { return "Stub " + s.id }
func (s *stubGame) Reset(core.RuntimeConfig) {}
func (s *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubGame) Render(*core.Screen) {}
func (s *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })

	if !Exists("stub_a") {
		t.Fatal("stub_a should be registered")
	}

	g, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub_a" {
		t.Errorf("ID = %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub_a" && info.Title == "Stub stub_a" {
			found = true
		}
	}
	if !found {
		t.Error("List should include stub_a with its title")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}

func TestCreateEnvRejectsPlainGame(t *testing.T) {
	Register("stub_plain", func() Game { return &stubGame{id: "stub_plain"} })

	if _, err := CreateEnv("stub_plain"); err == nil {
		t.Error("a game without Env methods should not be returned as an Env")
	}
	if _, err := CreateEnv("nope"); err == nil {
		t.Error("unknown id should fail")
	}
}

func TestVariantIDs(t *testing.T) {
	for _, v := range Variants() {
		got, err := ParseVariant(v.String())
		if err != nil || got != v {
			t.Errorf("ParseVariant(%q) = %v, %v", v.String(), got, err)
		}
	}
	if VariantMiner.String() != "miner" || VariantBigFish.String() != "bigfish" {
		t.Error("variant IDs changed")
	}
	if _, err := ParseVariant("coinrun"); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestListMarksPlainGames(t *testing.T) {
	Register("stub_list", func() Game { return &stubGame{id: "stub_list"} })

	for _, info := range List() {
		if info.ID == "stub_list" && info.Env {
			t.Error("stub game should not be flagged as an Env")
		}
	}
}

type modeStub struct {
	stubGame
	mode config.DistributionMode
}

func (m *modeStub) SetMode(mode config.DistributionMode) { m.mode = mode }

func TestCreateWithMode(t *testing.T) {
	Register("stub_mode", func() Game { return &modeStub{stubGame: stubGame{id: "stub_mode"}} })

	g, err := CreateWithMode("stub_mode", config.ModeMemory)
	if err != nil {
		t.Fatalf("CreateWithMode: %v", err)
	}
	if got := g.(*modeStub).mode; got != config.ModeMemory {
		t.Errorf("mode = %q, want %q", got, config.ModeMemory)
	}

	// Games without a mode are created unchanged.
	if _, err := CreateWithMode("stub_a2", config.ModeEasy); err == nil {
		t.Error("unknown id should fail")
	}
	Register("stub_a2", func() Game { return &stubGame{id: "stub_a2"} })
	if _, err := CreateWithMode("stub_a2", config.ModeEasy); err != nil {
		t.Errorf("plain game: %v", err)
	}
}

func TestListSorted(t *testing.T) {
	Register("stub_zz", func() Game { return &stubGame{id: "stub_zz"} })
	Register("stub_00", func() Game { return &stubGame{id: "stub_00"} })

	ids := make([]string, 0)
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	if !slices.IsSorted(ids) {
		t.Errorf("List not sorted: %v", ids)
	}
}
