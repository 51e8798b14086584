package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/procgen-arcade/internal/registry"
	"github.com/vovakirdan/procgen-arcade/internal/storage"
)

var flagRecent int

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores and episode stats for a game",
	Long: `Display the top 10 high scores, aggregate episode statistics and the
most recent recorded episodes for the specified game.

Examples:
  arcade scores miner
  arcade scores bigfish --recent 20`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent episodes to show")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := printScores(store, gameID, game.Title()); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

func printScores(store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}
	stats, err := store.GetEpisodeStats(gameID)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	fmt.Println()
	if stats.Episodes == 0 {
		fmt.Printf("No episodes recorded. Try 'arcade run %s --record'.\n", gameID)
		return nil
	}

	fmt.Printf("Episodes: %d  Cleared: %d (%.1f%%)  Best: %.1f  Avg reward: %.2f  Avg steps: %.1f\n",
		stats.Episodes, stats.Completed, stats.CompletionRate()*100,
		stats.BestReward, stats.AvgReward, stats.AvgSteps)

	recent, err := store.RecentEpisodes(gameID, flagRecent)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("  %-8s  %-6s  %-20s  %-6s  %-7s  %s\n", "ID", "Mode", "Seed", "Steps", "Reward", "End")
	for _, e := range recent {
		fmt.Printf("  %-8s  %-6s  %-20d  %-6d  %-7.1f  %s\n", e.ID[:min(8, len(e.ID))], e.Mode, e.Seed, e.Steps, e.Reward, e.EndReason)
	}
	return nil
}
