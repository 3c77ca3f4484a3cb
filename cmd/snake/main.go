// snake is a deterministic snake game for the terminal.
//
// Usage:
//
//	snake play               - Play in the terminal
//	snake serve              - Start the SSH and HTTP servers
//	snake scores             - Show the leaderboard
//	snake replay <file>      - Replay a recorded game
//	snake settings show      - Show the current settings
//
// Global flags:
//
//	--db <path>          - Set database path (default: ~/.snake/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - a deterministic snake game for your terminal",
	Long: `Snake is a classic snake game with power-ups, levels and seeded,
replayable games. Play locally, host it over SSH, or replay any game
from its seed and moves.

Available commands:
  play      - Play in the terminal
  serve     - Start the SSH and HTTP servers
  scores    - View high scores
  replay    - Replay a recorded game
  settings  - Show or change settings

Examples:
  snake play
  snake play --seed 42 --wrap
  snake serve --ssh :2222 --http :8080
  snake replay --seed 42 --moves "3:down,8:left" --png board.png`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(settingsCmd)
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger logs to ~/.snake/snake.log so messages do not draw over the
// game. The returned func closes the file.
func fileLogger() (*log.Logger, func()) {
	dir := config.UserDir()
	if dir == "" {
		return log.New(io.Discard), func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "snake.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, "snake"), func() { f.Close() }
}
