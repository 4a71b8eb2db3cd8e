// Package config provides YAML-based game configuration loading, difficulty
// presets and environment parsing for the recall platform.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// MaxGridSize is the largest grid dimension any config may request.
const MaxGridSize = 10

// RecallConfig contains all configuration for the Recall game.
type RecallConfig struct {
	Grid        RecallGrid        `yaml:"grid"`
	Lives       RecallLives       `yaml:"lives"`
	Timing      RecallTiming      `yaml:"timing"`
	Progression RecallProgression `yaml:"progression"`
}

// RecallGrid defines the board size and how it grows.
type RecallGrid struct {
	InitialWidth  int `yaml:"initial_width"`
	InitialHeight int `yaml:"initial_height"`
	MaxSize       int `yaml:"max_size"`
	GrowEvery     int `yaml:"grow_every"` // 0 disables growth
	GrowBy        int `yaml:"grow_by"`
}

// RecallLives defines the lives budget.
type RecallLives struct {
	Max           int  `yaml:"max"`
	RefillOnRetry bool `yaml:"refill_on_retry"`
}

// RecallTiming defines reveal pacing, in seconds.
type RecallTiming struct {
	Settle        float64 `yaml:"settle"`
	Display       float64 `yaml:"display"`
	Pause         float64 `yaml:"pause"`
	BetweenRounds float64 `yaml:"between_rounds"`
	RetryDelay    float64 `yaml:"retry_delay"`
}

// RecallProgression defines when a level is finished.
type RecallProgression struct {
	RoundsPerLevel int `yaml:"rounds_per_level"` // 0 = never advance automatically
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", ErrInvalid, s)
	}
}
