package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/recall/internal/config"
	"github.com/vovakirdan/recall/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recall SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a mode picker menu.
Runs are stored per-server, so all users share the same board.

Settings come from the environment and can be overridden by flags:
  RECALL_SSH_ADDR       Listen address (default :23234)
  RECALL_HOST_KEY       Host key path (default ~/.recall/host_key)
  RECALL_DB             Run database path
  RECALL_IDLE_TIMEOUT   Idle timeout, e.g. 30m
  RECALL_LOG_LEVEL      Server log level (default info)

Examples:
  recall serve                           # Listen on :23234 with auto-generated key
  recall serve --ssh :2222               # Listen on port 2222
  recall serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Idle timeout before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadServerEnv()
	if err != nil {
		return err
	}

	// Flags win over the environment only when set explicitly
	if cmd.Flags().Changed("ssh") {
		env.Address = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		env.HostKeyPath = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		env.IdleTimeout = flagIdleTimeout
	}
	if cmd.Flags().Changed("db") {
		env.DBPath = flagDBPath
	}
	if cmd.Flags().Changed("log-level") {
		env.LogLevel = flagLogLevel
	}

	level, err := log.ParseLevel(env.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", env.LogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "recall-ssh",
		Level:           level,
	})

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     env.Address,
		HostKeyPath: env.HostKeyPath,
		DBPath:      env.DBPath,
		IdleTimeout: env.IdleTimeout,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	fmt.Printf("Starting recall SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
