package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var flagSettingsFile string

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Show or change the settings file.

Settings are read from --file if given, otherwise from
~/.snake/settings.yaml, then ./configs/snake.yaml, then built-in defaults.
'settings set' writes to --file or ~/.snake/settings.yaml.

Examples:
  snake settings show
  snake settings set game.grid_size 16
  snake settings set display.theme dark
  snake settings path
  snake settings init`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		settings, err := config.Load(flagSettingsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		data, err := yaml.Marshal(settings)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(data))
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		path := flagSettingsFile
		if path == "" {
			path = config.UserSettingsPath()
		}
		if path == "" {
			fmt.Fprintln(os.Stderr, "Error: cannot find home directory, use --file")
			os.Exit(1)
		}

		// Start from what is in effect so the first set keeps other values.
		settings, err := config.Load(flagSettingsFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		settings, err = settings.Set(args[0], args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if errors.Is(err, config.ErrInvalidSetting) {
				fmt.Fprintf(os.Stderr, "Valid keys: %v\n", config.Keys())
			}
			os.Exit(1)
		}
		if err := config.Save(path, settings); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		value, _ := settings.Get(args[0])
		fmt.Printf("%s = %s (%s)\n", args[0], value, path)
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file in use",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		if path := config.Resolve(flagSettingsFile); path != "" {
			fmt.Println(path)
			return
		}
		fmt.Println("(built-in defaults)")
	},
}

var flagForce bool

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings file",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		path := flagSettingsFile
		if path == "" {
			path = config.UserSettingsPath()
		}
		if path == "" {
			fmt.Fprintln(os.Stderr, "Error: cannot find home directory, use --file")
			os.Exit(1)
		}
		if _, err := os.Stat(path); err == nil && !flagForce {
			fmt.Fprintf(os.Stderr, "Error: %s already exists, use --force to overwrite\n", path)
			os.Exit(1)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(path)
	},
}

func init() {
	settingsInitCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")
	settingsCmd.PersistentFlags().StringVar(&flagSettingsFile, "file", "", "Path to settings YAML")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsInitCmd)
}
