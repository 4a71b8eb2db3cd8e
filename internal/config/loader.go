package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadRecall loads Recall configuration.
// Search order: customPath -> ~/.recall/configs/recall.yaml -> ./configs/recall.yaml -> embedded default.
// Files only need to set the keys they override; everything else keeps its default.
func LoadRecall(customPath string) (RecallConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RecallConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseRecall(data)
		if err != nil {
			return RecallConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("recall.yaml"), filepath.Join("configs", "recall.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseRecall(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseRecall(GetDefaultYAML("recall"))
	if err != nil {
		return DefaultRecallConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseRecall overlays data on the hard-coded defaults and validates the result.
func parseRecall(data []byte) (RecallConfig, error) {
	cfg := DefaultRecallConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RecallConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RecallConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".recall", "configs", filename)
}

// ApplyRecallPreset modifies the config based on a difficulty preset.
func ApplyRecallPreset(cfg *RecallConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Lives.Max = 5
		cfg.Lives.RefillOnRetry = true
		cfg.Timing.Display = 2.0
		cfg.Progression.RoundsPerLevel = 4
	case DifficultyHard:
		cfg.Lives.Max = 2
		cfg.Lives.RefillOnRetry = false
		cfg.Timing.Display = 1.0
		cfg.Timing.Pause = 0.2
		cfg.Grid.MaxSize = max(cfg.Grid.MaxSize, 7)
	case DifficultyFixed:
		cfg.Grid.GrowEvery = 0
	}
}

// Validate reports the first value that falls outside its allowed range.
func (c RecallConfig) Validate() error {
	g := c.Grid
	switch {
	case g.MaxSize < 1 || g.MaxSize > MaxGridSize:
		return fmt.Errorf("%w: grid.max_size %d not in 1..%d", ErrInvalid, g.MaxSize, MaxGridSize)
	case g.InitialWidth < 1 || g.InitialWidth > g.MaxSize:
		return fmt.Errorf("%w: grid.initial_width %d not in 1..%d", ErrInvalid, g.InitialWidth, g.MaxSize)
	case g.InitialHeight < 1 || g.InitialHeight > g.MaxSize:
		return fmt.Errorf("%w: grid.initial_height %d not in 1..%d", ErrInvalid, g.InitialHeight, g.MaxSize)
	case g.GrowEvery < 0:
		return fmt.Errorf("%w: grid.grow_every %d is negative", ErrInvalid, g.GrowEvery)
	case g.GrowBy < 0:
		return fmt.Errorf("%w: grid.grow_by %d is negative", ErrInvalid, g.GrowBy)
	case c.Lives.Max < 1:
		return fmt.Errorf("%w: lives.max %d must be at least 1", ErrInvalid, c.Lives.Max)
	case c.Progression.RoundsPerLevel < 0:
		return fmt.Errorf("%w: progression.rounds_per_level %d is negative", ErrInvalid, c.Progression.RoundsPerLevel)
	}

	t := c.Timing
	for _, d := range []struct {
		name string
		v    float64
	}{
		{"settle", t.Settle},
		{"display", t.Display},
		{"pause", t.Pause},
		{"between_rounds", t.BetweenRounds},
		{"retry_delay", t.RetryDelay},
	} {
		if d.v < 0 {
			return fmt.Errorf("%w: timing.%s %.2f is negative", ErrInvalid, d.name, d.v)
		}
	}
	return nil
}

// Seconds converts a config duration to a time.Duration.
func Seconds(v float64) time.Duration {
	return time.Duration(math.Round(v * float64(time.Second)))
}
