// arcade plays procedurally generated arcade levels in the terminal and
// runs them headlessly for agents.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores and episode stats for a game
//	arcade run <game>        - Play episodes headlessly with a random policy
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible levels
//	--db <path>      - Set database path (default: ~/.arcade/scores.db)
//	--mode <mode>    - Level distribution: easy, hard or memory
//	--config <path>  - Custom game config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"golang.org/x/term"

	"github.com/vovakirdan/procgen-arcade/internal/config"
	"github.com/vovakirdan/procgen-arcade/internal/core"
	"github.com/vovakirdan/procgen-arcade/internal/games/bigfish"
	"github.com/vovakirdan/procgen-arcade/internal/games/miner"
	"github.com/vovakirdan/procgen-arcade/internal/registry"
	"github.com/vovakirdan/procgen-arcade/internal/storage"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagMode   string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Procgen Arcade - procedurally generated levels in your terminal",
	Long: `Procgen Arcade plays procedurally generated arcade levels in the
terminal, locally or over SSH, and runs them headlessly for agents.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and episode stats
  run      - Headless rollouts with a random policy

Examples:
  arcade list
  arcade play miner --mode easy
  arcade menu
  arcade serve --ssh :2222
  arcade run bigfish --episodes 10 --record`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Level seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "hard", "Level distribution: easy, hard, memory")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(runCmd)
}

// configureGames applies --config to gameID, or to every game when gameID
// is empty, and the distribution mode to every variant. Must run before
// the game is created.
func configureGames(gameID string, mode config.DistributionMode) {
	miner.SetDistributionMode(mode)
	bigfish.SetDistributionMode(mode)

	if gameID == "" || gameID == registry.VariantMiner.String() {
		miner.SetConfigPath(flagConfig)
	}
	if gameID == "" || gameID == registry.VariantBigFish.String() {
		bigfish.SetConfigPath(flagConfig)
	}
}

// parseModeFlag exits on an unknown --mode value.
func parseModeFlag() config.DistributionMode {
	mode, err := config.ParseMode(flagMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return mode
}

// requireGame exits when gameID is not registered.
func requireGame(gameID string) {
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
}

// terminalConfig sizes the runtime to the current terminal, 80x24 when
// stdout is not a terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: flagSeed}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	return cfg
}

// openStore opens --db. Games stay playable without it, so a failure is
// only a warning and the returned store is nil.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
