package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerEnv holds SSH server settings read from the environment.
// Command-line flags take precedence over these values.
type ServerEnv struct {
	Address     string        `env:"RECALL_SSH_ADDR"     envDefault:":23234"`
	HostKeyPath string        `env:"RECALL_HOST_KEY"`
	DBPath      string        `env:"RECALL_DB"           envDefault:"~/.recall/scores.db"`
	IdleTimeout time.Duration `env:"RECALL_IDLE_TIMEOUT" envDefault:"30m"`
	LogLevel    string        `env:"RECALL_LOG_LEVEL"    envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServerEnv parses ServerEnv from the process environment.
func LoadServerEnv() (ServerEnv, error) {
	var cfg ServerEnv
	if err := ParseEnv(&cfg); err != nil {
		return ServerEnv{}, err
	}
	if cfg.IdleTimeout < 0 {
		return ServerEnv{}, fmt.Errorf("%w: RECALL_IDLE_TIMEOUT %s is negative", ErrInvalid, cfg.IdleTimeout)
	}
	return cfg, nil
}
