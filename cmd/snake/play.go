package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagSeed       int64
	flagConfig     string
	flagGrid       int
	flagSpeed      float64
	flagWrap       bool
	flagNoPowerups bool
	flagSound      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in the terminal",
	Long: `Start a game of snake.

Controls:
  Arrows/WASD/HJKL  - Steer (the first turn starts the game)
  Space/P           - Pause
  R                 - Restart with a new seed
  Ctrl+S            - Save a share card PNG
  E                 - Save a replay of the current game
  T / C / M         - Theme, contrast, mute
  ?                 - More help
  Q/Ctrl+C          - Quit

Flags override the settings file for this game only. Edits to the
settings file apply while playing.

Examples:
  snake play
  snake play --seed 42
  snake play --grid 16 --speed 10 --wrap
  snake play --config ./my-snake.yaml --sound`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	playCmd.Flags().IntVar(&flagGrid, "grid", 0, "Grid size in cells")
	playCmd.Flags().Float64Var(&flagSpeed, "speed", 0, "Base speed in ticks per second")
	playCmd.Flags().BoolVar(&flagWrap, "wrap", false, "Wrap around the walls")
	playCmd.Flags().BoolVar(&flagNoPowerups, "no-powerups", false, "Disable power-ups")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound through the default output device")
}

func runPlay(cmd *cobra.Command, _ []string) {
	logger, closeLog := fileLogger()
	defer closeLog()

	settings, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}

	if cmd.Flags().Changed("grid") {
		settings.Game.GridSize = flagGrid
	}
	if cmd.Flags().Changed("speed") {
		settings.Game.BaseSpeed = flagSpeed
	}
	if cmd.Flags().Changed("wrap") {
		settings.Game.Wrap = flagWrap
	}
	if flagNoPowerups {
		settings.Game.Powerups = false
	}
	settings = settings.Sanitize()

	// Toggles are saved to the file in use, or to the user file.
	settingsPath := config.Resolve(flagConfig)
	if settingsPath == "" || settingsPath == config.LocalSettingsPath {
		settingsPath = config.UserSettingsPath()
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	var player *audio.Player
	if flagSound {
		player = audio.Open(settings.Audio, logger)
	} else {
		player = audio.NewPlayer(settings.Audio)
	}

	logger.Info("starting game", "seed", flagSeed, "grid", settings.Game.GridSize, "wrap", settings.Game.Wrap)
	runErr := tui.Run(tui.Options{
		Settings: settings,
		Runtime: core.RuntimeConfig{
			ScreenW:   width,
			ScreenH:   height,
			FrameRate: settings.Loop.FrameRate,
			Seed:      flagSeed,
		},
		Store:        store,
		Player:       player,
		SettingsPath: settingsPath,
		Logger:       logger,
	})

	player.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
