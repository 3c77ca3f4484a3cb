package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
	"github.com/vovakirdan/tui-snake/internal/web"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH and HTTP servers",
	Long: `Start an SSH server that lets users connect and play, and an HTTP
server with the leaderboard and replay API.

Each SSH connection plays its own game. Scores are shared by all users;
settings toggled in game are stored per SSH user.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

HTTP endpoints:
  GET /healthz
  GET /api/scores?limit=10&wrap=false
  GET /api/replay?seed=42&moves=3:down,8:left&ticks=500
  GET /api/replay.png?seed=42&scale=4&theme=dark

Pass an empty address to disable a server.

Examples:
  snake serve                           # SSH on :23234, HTTP on :8080
  snake serve --ssh :2222 --http ""     # SSH only, on port 2222
  snake serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "snake-serve")

	if flagSSHAddr == "" && flagHTTPAddr == "" {
		fmt.Fprintln(os.Stderr, "Error: both servers are disabled")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	defaults, err := config.Load("")
	if err != nil {
		logger.Warn("could not load settings, using defaults", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	running := 0

	if flagSSHAddr != "" {
		cfg := tui.DefaultSSHServerConfig()
		cfg.Address = flagSSHAddr
		cfg.HostKeyPath = flagHostKey
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		cfg.Defaults = defaults

		sshServer, sshErr := tui.NewSSHServer(cfg, store, logger.WithPrefix("ssh"))
		if sshErr != nil {
			logger.Error("could not create SSH server", "error", sshErr)
			os.Exit(1)
		}
		running++
		go func() { errCh <- sshServer.ListenAndServe(ctx) }()
	}

	if flagHTTPAddr != "" {
		var scores web.Scores
		if store != nil {
			scores = store
		}
		httpServer := web.New(scores, logger.WithPrefix("http"))
		running++
		go func() { errCh <- httpServer.ListenAndServe(ctx, flagHTTPAddr) }()
	}

	logger.Info("Press Ctrl+C to stop")

	// The first failure stops everything.
	failed := false
	for range running {
		if err := <-errCh; err != nil {
			logger.Error("server error", "error", err)
			failed = true
			stop()
		}
	}
	if failed {
		os.Exit(1)
	}
}
