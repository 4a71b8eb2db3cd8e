package config

import (
	_ "embed"
)

//go:embed defaults/recall.yaml
var defaultRecallYAML []byte

// DefaultRecallConfig returns the hard-coded Recall configuration.
// It mirrors defaults/recall.yaml and is used when the embedded file cannot be parsed.
func DefaultRecallConfig() RecallConfig {
	return RecallConfig{
		Grid: RecallGrid{
			InitialWidth:  4,
			InitialHeight: 4,
			MaxSize:       6,
			GrowEvery:     3,
			GrowBy:        1,
		},
		Lives: RecallLives{
			Max:           3,
			RefillOnRetry: true,
		},
		Timing: RecallTiming{
			Settle:        0.5,
			Display:       1.5,
			Pause:         0.3,
			BetweenRounds: 2.0,
			RetryDelay:    2.0,
		},
		Progression: RecallProgression{
			RoundsPerLevel: 5,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "recall", "recall_endless":
		return defaultRecallYAML
	default:
		return nil
	}
}
