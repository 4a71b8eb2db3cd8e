package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/recall/internal/registry"
	"github.com/vovakirdan/recall/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best runs for a mode",
	Long: `Display the best runs for the specified mode (recall by default),
ranked by level reached, then rounds completed.

Examples:
  recall scores
  recall scores recall_endless --limit 20
  recall scores recall --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "recall"
	if len(args) == 1 {
		gameID = args[0]
	}

	info, ok := registry.Info(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'recall list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		appLogger.Info("runs cleared", "game", gameID)
		fmt.Printf("Cleared all runs for %s.\n", info.Title)
		return
	}

	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Best Runs - %s\n", info.Title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'recall play %s' to set the first one!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-12s  %-5s  %-6s  %-7s  %s\n", "Rank", "Player", "Level", "Rounds", "Longest", "Date")
	fmt.Printf("  %-4s  %-12s  %-5s  %-6s  %-7s  %s\n", "----", "------", "-----", "------", "-------", "----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-12s  %-5d  %-6d  %-7d  %s\n",
			i+1, player, r.Level, r.Rounds, r.LongestPattern, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games: %d  Best level: %d  Avg rounds: %.1f\n", stats.GamesCount, stats.BestLevel, stats.AvgRounds)
	}
}
