package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// appLogger is set by the root command before any subcommand runs.
var appLogger = log.New(io.Discard)

var logFile *os.File

// newLogger builds the process logger. The TUI owns the terminal, so logs
// go to a file or nowhere.
func newLogger(path, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	if path == "" {
		return log.New(io.Discard), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f

	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "recall",
		Level:           lvl,
	}), nil
}

func closeLogger() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
