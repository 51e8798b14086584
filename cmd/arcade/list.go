package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/procgen-arcade/internal/config"
	"github.com/vovakirdan/procgen-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Title", "Headless")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "-----", "--------")

	for _, g := range games {
		headless := "no"
		if g.Env {
			headless = "yes"
		}
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, g.ID, g.Title, headless)
	}

	modes := make([]string, len(config.Modes))
	for i, m := range config.Modes {
		modes[i] = string(m)
	}

	fmt.Println()
	fmt.Printf("Modes: %s\n", strings.Join(modes, ", "))
	fmt.Println("Run 'arcade play <id>' to play a game or 'arcade run <id>' for headless episodes.")
}
