// Package bigfish implements Big Fish: eat smaller fish to grow and avoid
// the ones larger than you.
package bigfish

import (
	"github.com/vovakirdan/procgen-arcade/internal/config"
	"github.com/vovakirdan/procgen-arcade/internal/core"
	"github.com/vovakirdan/procgen-arcade/internal/engine"
	"github.com/vovakirdan/procgen-arcade/internal/registry"
	"github.com/vovakirdan/procgen-arcade/internal/rng"
)

// Fish is the entity kind of every non-player fish.
const Fish engine.Tag = 2

var (
	configPath       string
	distributionMode = config.ModeHard
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDistributionMode selects the starting-size preset.
func SetDistributionMode(mode config.DistributionMode) {
	distributionMode = mode
}

var _ registry.Env = (*Game)(nil)

// Game implements the Big Fish game logic.
type Game struct {
	cfg config.BigFishConfig
	rng *rng.Source

	agent     engine.Entity
	fish      []engine.Entity
	fishEaten int
	rInc      float64 // growth per fish eaten
	episode   engine.Episode
	ready     bool

	// Platform state
	runtime  core.RuntimeConfig
	uiTicks  int
	pending  engine.Move
	paused   bool
	resetErr error
}

// New creates a Big Fish game using the CLI-selected config file and mode.
func New() *Game {
	cfg, err := config.LoadBigFish(configPath)
	if err != nil {
		cfg = config.DefaultBigFishConfig()
	}
	config.ApplyBigFishPreset(&cfg, distributionMode)
	return NewWithConfig(cfg)
}

// SetMode switches the starting-size preset from the next reset on.
func (g *Game) SetMode(mode config.DistributionMode) {
	cfg, err := config.LoadBigFish(configPath)
	if err != nil {
		cfg = config.DefaultBigFishConfig()
	}
	config.ApplyBigFishPreset(&cfg, mode)
	g.cfg = cfg
}

// NewWithConfig creates a Big Fish game with an explicit configuration.
func NewWithConfig(cfg config.BigFishConfig) *Game {
	return &Game{cfg: cfg, rng: rng.New(0)}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return registry.VariantBigFish.String()
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Big Fish"
}

// Variant identifies the rule set.
func (g *Game) Variant() registry.Variant {
	return registry.VariantBigFish
}

// Reset initializes or restarts the game for the platform.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.uiTicks = 0
	g.pending = engine.Move{}
	g.paused = false
	g.resetErr = g.ResetSeed(cfg.Seed)
}

// ResetSeed starts a new episode from seed.
func (g *Game) ResetSeed(seed int64) error {
	if err := g.cfg.Validate(); err != nil {
		return err
	}
	g.rng.Seed(seed)

	startR := g.cfg.Agent.StartRadius
	g.rInc = (g.cfg.Fish.MaxRadius - startR) / float64(g.cfg.Quota)
	g.agent = engine.NewEntity(g.cfg.World.Width/2, 1+startR, 0, 0, startR, engine.Player)
	g.fish = g.fish[:0]
	g.fishEaten = 0
	g.episode = engine.NewEpisode(g.cfg.Episode.Timeout)
	g.ready = true
	return nil
}

// Act applies one movement intent and runs one simulation step.
// Acting on a finished episode does nothing.
func (g *Game) Act(m engine.Move) engine.Episode {
	if !g.ready || g.episode.Done {
		ep := g.episode
		ep.Reward = 0
		return ep
	}
	g.episode.BeginStep()

	g.moveAgent(m)
	g.moveFish()
	g.collide()
	g.maybeSpawn()

	// Reaching the quota pays out even on the step the agent is eaten.
	if g.fishEaten >= g.cfg.Quota {
		g.episode.Add(g.cfg.Rewards.Completion)
		g.episode.LevelComplete = true
		g.episode.Finish(engine.EndCompleted)
	}

	g.episode.EndStep()
	return g.episode
}

// moveAgent blends the new intent into the agent's velocity and keeps the
// agent inside the water.
func (g *Game) moveAgent(m engine.Move) {
	mix := g.cfg.Agent.MixRate
	speed := g.cfg.Agent.MaxSpeed
	a := &g.agent

	a.VX = (1-mix)*a.VX + mix*float64(m.DX)*speed
	a.VY = (1-mix)*a.VY + mix*float64(m.DY)*speed
	a.Advance()

	if x := core.Clamp(a.X, a.RX, g.cfg.World.Width-a.RX); x != a.X {
		a.X, a.VX = x, 0
	}
	if y := core.Clamp(a.Y, a.RY, g.cfg.World.Height-a.RY); y != a.Y {
		a.Y, a.VY = y, 0
	}

	if m.DX > 0 {
		a.Facing = 1
	}
	if m.DX < 0 {
		a.Facing = -1
	}
}

// Episode returns the current episode bookkeeping.
func (g *Game) Episode() engine.Episode {
	return g.episode
}

// FishEaten returns the number of fish eaten this episode.
func (g *Game) FishEaten() int {
	return g.fishEaten
}

// Step advances the platform by one UI tick. Directional input is held
// until the next simulation step.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.ready || g.episode.Done {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if m := engine.MoveFromInput(in); !m.IsZero() {
		g.pending = m
	}

	g.uiTicks++
	if g.uiTicks%max(g.cfg.Pacing.TicksPerStep, 1) != 0 {
		return core.StepResult{State: g.State()}
	}

	ep := g.Act(g.pending)
	g.pending = engine.Move{}
	return core.StepResult{State: g.State(), Reward: ep.Reward, Stepped: true}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    int(g.episode.Total),
		GameOver: g.episode.Done,
		Won:      g.episode.LevelComplete,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register(registry.VariantBigFish.String(), func() registry.Game {
		return New()
	})
}
