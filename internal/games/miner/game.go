// Package miner implements Miner: dig through dirt, collect every diamond
// and reach the exit without being crushed by a falling boulder.
package miner

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/procgen-arcade/internal/config"
	"github.com/vovakirdan/procgen-arcade/internal/core"
	"github.com/vovakirdan/procgen-arcade/internal/engine"
	"github.com/vovakirdan/procgen-arcade/internal/registry"
	"github.com/vovakirdan/procgen-arcade/internal/rng"
)

// configPath stores the custom config path set via CLI
var configPath string

// distributionMode stores the level distribution set via CLI
var distributionMode = config.ModeHard

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDistributionMode selects the board size preset.
func SetDistributionMode(mode config.DistributionMode) {
	distributionMode = mode
}

// Game implements the Miner game logic.
type Game struct {
	cfg config.MinerConfig
	rng *rng.Source

	grid     *engine.Grid
	agent    engine.Entity
	exit     engine.Entity
	diamonds int // remaining after the last automaton pass
	episode  engine.Episode

	// Platform state
	runtime  core.RuntimeConfig
	uiTicks  int
	pending  engine.Move
	paused   bool
	resetErr error
}

var _ registry.Env = (*Game)(nil)

// New creates a Miner game using the CLI-selected config file and mode.
func New() *Game {
	cfg, err := config.LoadMiner(configPath)
	if err != nil {
		cfg = config.DefaultMinerConfig()
	}
	config.ApplyMinerPreset(&cfg, distributionMode)
	return NewWithConfig(cfg)
}

// SetMode switches this game to another distribution mode. The board size
// changes at the next reset.
func (g *Game) SetMode(mode config.DistributionMode) {
	cfg, err := config.LoadMiner(configPath)
	if err != nil {
		cfg = config.DefaultMinerConfig()
	}
	config.ApplyMinerPreset(&cfg, mode)
	g.cfg = cfg
}

// NewWithConfig creates a Miner game with an explicit configuration.
func NewWithConfig(cfg config.MinerConfig) *Game {
	return &Game{cfg: cfg, rng: rng.New(0)}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return registry.VariantMiner.String()
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Miner"
}

// Variant identifies the rule set.
func (g *Game) Variant() registry.Variant {
	return registry.VariantMiner
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.MinerConfig {
	return g.cfg
}

// Reset initializes or restarts the game for the platform.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.uiTicks = 0
	g.pending = engine.Move{}
	g.paused = false
	g.resetErr = g.ResetSeed(cfg.Seed)
}

// ResetSeed builds a new level from seed. Layouts without an exit candidate
// are retried with a follow-up seed drawn from the same stream.
func (g *Game) ResetSeed(seed int64) error {
	if err := g.cfg.Validate(); err != nil {
		return err
	}

	g.rng.Seed(seed)
	attempts := max(g.cfg.Placement.BuildAttempts, 1)
	for range attempts {
		lvl, err := Build(g.cfg, g.rng)
		if errors.Is(err, ErrNoExitCandidate) {
			g.rng.Seed(g.rng.Int63())
			continue
		}
		if err != nil {
			return err
		}
		g.load(lvl)
		return nil
	}
	return fmt.Errorf("miner: seed %d: %w after %d attempts", seed, ErrNoExitCandidate, attempts)
}

func (g *Game) load(lvl Level) {
	g.grid = lvl.Grid
	g.agent = engine.NewEntity(float64(lvl.AgentX)+.5, float64(lvl.AgentY)+.5, 0, 0, .5, engine.Player)
	g.exit = engine.NewEntity(float64(lvl.ExitX)+.5, float64(lvl.ExitY)+.5, 0, 0, .5, Exit)
	g.diamonds = CountDiamonds(g.grid)
	g.episode = engine.NewEpisode(g.cfg.Episode.Timeout)
}

// agentIndex returns the flat index of the agent's cell.
func (g *Game) agentIndex() int {
	x, y := g.agent.Cell()
	return g.grid.Index(x, y)
}

// Act applies one movement intent and runs one simulation step.
// Acting on a finished episode does nothing.
func (g *Game) Act(m engine.Move) engine.Episode {
	if g.grid == nil || g.episode.Done {
		ep := g.episode
		ep.Reward = 0
		return ep
	}
	g.episode.BeginStep()

	// No diagonal moves: horizontal intent wins.
	if m.DX != 0 {
		m.DY = 0
	}
	g.moveAgent(m)

	if g.atExit() && g.diamonds == 0 {
		g.episode.Complete(g.cfg.Rewards.Completion)
	}

	g.push(m.DX)

	ax, ay := g.agent.Cell()
	switch g.grid.GetXY(ax, ay) {
	case Diamond:
		g.episode.Add(g.cfg.Rewards.Collect)
		g.grid.SetXY(ax, ay, engine.Space)
	case Dirt:
		g.grid.SetXY(ax, ay, engine.Space)
	}

	res := Tick(g.grid, g.agentIndex())
	g.diamonds = res.Diamonds
	if res.Crushed {
		g.episode.Finish(engine.EndCrushed)
	}

	g.episode.EndStep()
	return g.episode
}

// moveAgent moves the agent one cell. A blocked horizontal move leaves the
// agent with zero horizontal velocity, which is what enables a push.
func (g *Game) moveAgent(m engine.Move) {
	if m.DX != 0 {
		g.agent.Facing = m.DX
	}
	g.agent.VX, g.agent.VY = float64(m.DX), float64(m.DY)

	x, y := g.agent.Cell()
	if m.DX != 0 && blocksPlayer(g.grid.GetXY(x+m.DX, y)) {
		g.agent.VX = 0
	}
	if m.DY != 0 && blocksPlayer(g.grid.GetXY(x, y+m.DY)) {
		g.agent.VY = 0
	}
	g.agent.Advance()
}

// push shoves a resting boulder one cell sideways when the agent walked
// into it this step and the cell beyond is empty. The agent follows.
func (g *Game) push(dx int) {
	if dx == 0 || g.agent.VX != 0 {
		return
	}
	idx := g.agentIndex()
	x := idx % g.grid.W
	if dx > 0 && x >= g.grid.W-2 {
		return
	}
	if dx < 0 && x <= 1 {
		return
	}
	if g.grid.Get(idx+dx) != Boulder || g.grid.Get(idx+2*dx) != engine.Space {
		return
	}
	g.grid.Set(idx+dx, engine.Space)
	g.grid.Set(idx+2*dx, Boulder)
	g.agent.X += float64(dx)
}

func (g *Game) atExit() bool {
	ax, ay := g.agent.Cell()
	ex, ey := g.exit.Cell()
	return ax == ex && ay == ey
}

// Episode returns the current episode bookkeeping.
func (g *Game) Episode() engine.Episode {
	return g.episode
}

// DiamondsRemaining returns the diamond count from the last automaton pass.
func (g *Game) DiamondsRemaining() int {
	return g.diamonds
}

// Grid exposes the board for inspection. Callers must not modify it.
func (g *Game) Grid() *engine.Grid {
	return g.grid
}

// Step advances the platform by one UI tick. Directional input is buffered
// and applied on the next simulation step, which runs every
// ticks_per_step UI ticks.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.grid == nil || g.episode.Done {
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
	registry.Register(registry.VariantMiner.String(), func() registry.Game {
		return New()
	})
}
