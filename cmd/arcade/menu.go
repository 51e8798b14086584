package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/procgen-arcade/internal/platform/tui"
	"github.com/vovakirdan/procgen-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use Up/Down to pick a game and Left/Right to pick the level distribution.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k     - Choose game
  Left/Right/h/l  - Choose mode
  Enter/Space     - Play
  Tab             - Episode board
  Q               - Quit

Examples:
  arcade menu
  arcade menu --mode easy
  arcade menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	mode := parseModeFlag()
	cfg := terminalConfig()

	store := openStore()
	if store != nil {
		defer store.Close() //nolint:errcheck
	}

	for {
		res, err := tui.RunMenu(store, cfg, mode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg, mode = res.Config, res.Mode

		switch {
		case res.Quit:
			return
		case res.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !back {
				return
			}
			continue
		case res.GameID == "":
			return
		}

		configureGames(res.GameID, mode)
		game, err := registry.Create(res.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		// A fixed --seed replays the same level; otherwise every game is new.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, cfg, string(mode)); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
