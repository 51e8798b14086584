package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/procgen-arcade/internal/platform/tui"
	"github.com/vovakirdan/procgen-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD/HJKL  - Move
  P                 - Pause
  R                 - Restart with a new level
  F2 / F3           - Save / load the quick save slot
  B/Esc             - Leave (when paused or finished)
  Q/Ctrl+C          - Quit

Modes:
  easy    - Small boards, bigger starting fish
  hard    - The default distribution
  memory  - Large boards that do not fit on screen

Examples:
  arcade play miner
  arcade play miner --mode memory --seed 42
  arcade play bigfish --mode easy
  arcade play miner --config ./my-miner.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	mode := parseModeFlag()
	configureGames(gameID, mode)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	runErr := tui.Run(game, store, terminalConfig(), string(mode))
	if store != nil {
		store.Close() //nolint:errcheck
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
