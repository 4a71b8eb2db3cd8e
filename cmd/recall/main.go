// recall is a terminal memory game: watch a pattern of tiles light up,
// then repeat it from memory.
//
// Usage:
//
//	recall list              - List available modes
//	recall play [mode]       - Play a mode (default: recall)
//	recall menu              - Start menu to pick a mode interactively
//	recall serve             - Start SSH server for remote play
//	recall scores [mode]     - Show best runs for a mode
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible patterns
//	--db <path>          - Set database path (default: ~/.recall/scores.db)
//	--config <path>      - Custom game config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-file <path>    - Write logs to a file (discarded by default)
//	--log-level <level>  - Log level (default: info)
//	--player <name>      - Name recorded with finished runs (default: $USER)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/recall/internal/config"
	"github.com/vovakirdan/recall/internal/games/recall"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
	flagPlayer     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Recall - a memory pattern game for your terminal",
	Long: `Recall shows a pattern of tiles one at a time, then asks you to
repeat it. Each round the pattern grows by one tile, and every few
levels the board grows too.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View best runs

Examples:
  recall play
  recall play recall_endless --difficulty hard
  recall menu
  recall serve --ssh :2222
  recall scores`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		logger, err := newLogger(flagLogFile, flagLogLevel)
		if err != nil {
			return err
		}
		recall.SetConfigPath(flagConfig)
		recall.SetDifficultyPreset(flagDifficulty)
		recall.SetLogger(logger)
		appLogger = logger
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeLogger()
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.recall/scores.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Name recorded with finished runs (default: $USER)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
