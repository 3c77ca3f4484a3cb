package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/share"
)

var (
	flagReplaySeed     int64
	flagReplayMoves    string
	flagReplayTicks    uint64
	flagReplayGrid     int
	flagReplaySpeed    float64
	flagReplayWrap     bool
	flagReplayNoPowers bool
	flagReplayPNG      string
	flagReplaySave     string
)

var replayCmd = &cobra.Command{
	Use:   "replay [file.yaml]",
	Short: "Replay a recorded game",
	Long: `Replay a game from a recording file (saved with E while playing) or
from a seed and a move list, and print the final state.

Moves are tick:direction pairs in tick order. A move is applied right
before its tick runs.

Examples:
  snake replay ~/.snake/replays/snake_20250101_120000_42.yaml
  snake replay --seed 42 --moves "3:down,8:left" --ticks 50
  snake replay --seed 42 --moves "3:down" --png board.png
  snake replay --seed 42 --moves "3:down" --save game.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplay,
}

func init() {
	def := config.DefaultSettings()
	replayCmd.Flags().Int64Var(&flagReplaySeed, "seed", 0, "RNG seed of the game")
	replayCmd.Flags().StringVar(&flagReplayMoves, "moves", "", `Moves, e.g. "3:down,8:left"`)
	replayCmd.Flags().Uint64Var(&flagReplayTicks, "ticks", 500, "Ticks to run (the game may end sooner)")
	replayCmd.Flags().IntVar(&flagReplayGrid, "grid", def.Game.GridSize, "Grid size in cells")
	replayCmd.Flags().Float64Var(&flagReplaySpeed, "speed", def.Game.BaseSpeed, "Base speed in ticks per second")
	replayCmd.Flags().BoolVar(&flagReplayWrap, "wrap", def.Game.Wrap, "Wrap around the walls")
	replayCmd.Flags().BoolVar(&flagReplayNoPowers, "no-powerups", false, "Disable power-ups")
	replayCmd.Flags().StringVar(&flagReplayPNG, "png", "", "Write a share card of the final board")
	replayCmd.Flags().StringVar(&flagReplaySave, "save", "", "Write the recording as YAML")
}

func runReplay(cmd *cobra.Command, args []string) {
	var rec snake.Recording
	if len(args) == 1 {
		loaded, err := snake.LoadRecording(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		rec = loaded
		if cmd.Flags().Changed("ticks") {
			rec.Ticks = flagReplayTicks
		}
	} else {
		inputs, err := snake.ParseMoves(flagReplayMoves)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		settings := config.DefaultSettings()
		settings.Game = config.GameSettings{
			GridSize:  flagReplayGrid,
			BaseSpeed: flagReplaySpeed,
			Wrap:      flagReplayWrap,
			Powerups:  !flagReplayNoPowers,
		}
		rec = snake.Recording{
			Seed:    flagReplaySeed,
			Options: settings.Sanitize().GameOptions(),
			Inputs:  inputs,
			Ticks:   flagReplayTicks,
		}
	}

	e := snake.Replay(rec)
	snap := e.Snapshot()

	status := "alive"
	if snap.Dead {
		status = "dead"
	}
	fmt.Printf("Seed %d  Grid %d  Wrap %t  Power-ups %t\n",
		rec.Seed, rec.Options.Grid, rec.Options.Wrap, rec.Options.Powerups)
	fmt.Printf("Score %d  Level %d  Speed %g  Length %d  (%s)\n",
		snap.Score, snap.Level, snap.Speed, len(snap.Snake), status)
	fmt.Printf("Head (%d,%d) heading %s  Food (%d,%d)\n",
		e.Head().X, e.Head().Y, snap.Dir, snap.Food.X, snap.Food.Y)
	if snap.Active != snake.PowerupNone {
		fmt.Printf("Power-up %s, %.1fs left\n", snap.Active, snap.PowerLeft)
	}

	if flagReplaySave != "" {
		if err := rec.Save(flagReplaySave); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Recording saved to %s\n", flagReplaySave)
	}

	if flagReplayPNG != "" {
		settings, _ := config.Load("")
		img := share.Card(snap, rec.Seed, share.OptionsFrom(settings.Display))
		if err := share.SavePNG(flagReplayPNG, img); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Share card saved to %s\n", flagReplayPNG)
		fmt.Println(share.Text(snap.Score))
	}
}
