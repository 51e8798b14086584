package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/procgen-arcade/internal/core"
	"github.com/vovakirdan/procgen-arcade/internal/registry"
	"github.com/vovakirdan/procgen-arcade/internal/storage"
)

// saveSlot is the slot used by the quick save and load keys.
const saveSlot = 0

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	config      core.RuntimeConfig
	mode        string
	keyMapper   *KeyMapper
	inputFrame  core.InputFrame
	gameState   core.GameState
	quitting    bool
	backToMenu  bool
	embedded    bool   // hosted by a session; back returns to its menu
	recorded    bool   // score and episode stored for the current game over
	status      string // transient message drawn on the bottom row
	statusTicks int
}

// NewModel creates a new Bubble Tea model for the given game.
// mode is recorded with finished episodes.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, mode string) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		mode:       mode,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.setStatus(m.saveScreenshot())
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// B or Esc leaves a finished or paused game.
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if !m.embedded {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	switch {
	case m.inputFrame.Has(core.ActionRestart):
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.recorded = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)

	case m.inputFrame.Has(core.ActionSave):
		m.setStatus(m.saveState())

	case m.inputFrame.Has(core.ActionLoad):
		m.setStatus(m.loadState())
		m.gameState = m.game.State()
		m.recorded = m.gameState.GameOver
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.recorded {
		m.recordGameOver()
		m.recorded = true
	}

	if m.statusTicks > 0 {
		m.statusTicks--
	}
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordGameOver stores the score and, for rule variants, the episode.
// Storage is best effort; the game continues regardless.
func (m *Model) recordGameOver() {
	if m.store == nil {
		return
	}
	if m.gameState.Score > 0 {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveScore(m.game.ID(), m.gameState.Score)
	}

	env, ok := m.game.(registry.Env)
	if !ok {
		return
	}
	ep := env.Episode()
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveEpisode(storage.EpisodeRecord{
		GameID:        m.game.ID(),
		Mode:          m.mode,
		Seed:          m.config.Seed,
		Steps:         ep.Steps,
		Reward:        ep.Total,
		LevelComplete: ep.LevelComplete,
		EndReason:     ep.End.String(),
	})
}

func (m *Model) saveState() string {
	env, ok := m.game.(registry.Env)
	if !ok || m.store == nil {
		return "Saving is not available"
	}
	data, err := env.Save()
	if err != nil {
		return fmt.Sprintf("Save failed: %v", err)
	}
	if _, err := m.store.SaveState(m.game.ID(), saveSlot, data); err != nil {
		return fmt.Sprintf("Save failed: %v", err)
	}
	return "Saved"
}

func (m *Model) loadState() string {
	env, ok := m.game.(registry.Env)
	if !ok || m.store == nil {
		return "Loading is not available"
	}
	slot, err := m.store.LoadLatestState(m.game.ID(), saveSlot)
	if errors.Is(err, storage.ErrNoSave) {
		return "No save to load"
	}
	if err != nil {
		return fmt.Sprintf("Load failed: %v", err)
	}
	if err := env.Load(slot.Data); err != nil {
		return fmt.Sprintf("Load failed: %v", err)
	}
	return "Loaded save from " + slot.CreatedAt.Local().Format("15:04:05")
}

// setStatus shows msg for two seconds.
func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusTicks = 2 * m.config.TickRate
}

// saveScreenshot writes the current frame as plain text under
// ~/.arcade/screenshots and returns a status line.
func (m *Model) saveScreenshot() string {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "Screenshot failed: " + err.Error()
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "Screenshot failed: " + err.Error()
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		return "Screenshot failed: " + err.Error()
	}
	return "Saved " + name
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.statusTicks > 0 && m.status != "" {
		m.screen.DrawTextColored(0, m.screen.Height()-1, m.status, core.ColorBrightYellow)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, mode string) error {
	p := tea.NewProgram(
		NewModel(game, store, cfg, mode),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
