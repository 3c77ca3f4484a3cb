// Package config provides YAML-based settings loading, validation and
// hot reload for the snake game.
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// ErrInvalidSetting is returned by Set for unknown keys and unparsable values.
var ErrInvalidSetting = errors.New("invalid setting")

// Settings contains every player-tunable option.
type Settings struct {
	Game    GameSettings    `yaml:"game"`
	Loop    LoopSettings    `yaml:"loop"`
	Audio   AudioSettings   `yaml:"audio"`
	Display DisplaySettings `yaml:"display"`
}

// GameSettings are the rules handed to the engine.
type GameSettings struct {
	GridSize  int     `yaml:"grid_size"`
	BaseSpeed float64 `yaml:"base_speed"`
	Wrap      bool    `yaml:"wrap"`
	Powerups  bool    `yaml:"powerups"`
}

// LoopSettings tune the fixed-step scheduler.
type LoopSettings struct {
	FrameRate int `yaml:"frame_rate"`
	MaxSteps  int `yaml:"max_steps"`
}

// AudioSettings control sound cues.
type AudioSettings struct {
	Volume float64 `yaml:"volume"`
	Muted  bool    `yaml:"muted"`
}

// DisplaySettings control colors and animation.
type DisplaySettings struct {
	Theme        string `yaml:"theme"`    // light | dark
	Contrast     string `yaml:"contrast"` // normal | high
	ReduceMotion bool   `yaml:"reduce_motion"`
}

// Display values.
const (
	ThemeLight     = "light"
	ThemeDark      = "dark"
	ContrastNormal = "normal"
	ContrastHigh   = "high"
)

// Limits applied by Sanitize.
const (
	MinGridSize  = 8
	MaxGridSize  = 40
	MinBaseSpeed = 4.0
	MaxBaseSpeed = 20.0
	MinFrameRate = 10
	MaxFrameRate = 120
	MinMaxSteps  = 1
	MaxMaxSteps  = 10
)

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Game: GameSettings{
			GridSize:  22,
			BaseSpeed: 8,
			Wrap:      false,
			Powerups:  true,
		},
		Loop: LoopSettings{
			FrameRate: 60,
			MaxSteps:  5,
		},
		Audio: AudioSettings{
			Volume: 0.6,
			Muted:  false,
		},
		Display: DisplaySettings{
			Theme:        ThemeLight,
			Contrast:     ContrastNormal,
			ReduceMotion: false,
		},
	}
}

// Sanitize clamps numeric values into range and replaces unknown display
// values with defaults. Zero values fall back to defaults.
func (s Settings) Sanitize() Settings {
	def := DefaultSettings()

	if s.Game.GridSize == 0 {
		s.Game.GridSize = def.Game.GridSize
	}
	s.Game.GridSize = core.Clamp(s.Game.GridSize, MinGridSize, MaxGridSize)

	if s.Game.BaseSpeed == 0 || math.IsNaN(s.Game.BaseSpeed) {
		s.Game.BaseSpeed = def.Game.BaseSpeed
	}
	s.Game.BaseSpeed = core.ClampF(s.Game.BaseSpeed, MinBaseSpeed, MaxBaseSpeed)

	if s.Loop.FrameRate == 0 {
		s.Loop.FrameRate = def.Loop.FrameRate
	}
	s.Loop.FrameRate = core.Clamp(s.Loop.FrameRate, MinFrameRate, MaxFrameRate)

	if s.Loop.MaxSteps == 0 {
		s.Loop.MaxSteps = def.Loop.MaxSteps
	}
	s.Loop.MaxSteps = core.Clamp(s.Loop.MaxSteps, MinMaxSteps, MaxMaxSteps)

	s.Audio.Volume = SanitizeVolume(s.Audio.Volume)

	switch s.Display.Theme {
	case ThemeLight, ThemeDark:
	default:
		s.Display.Theme = def.Display.Theme
	}
	switch s.Display.Contrast {
	case ContrastNormal, ContrastHigh:
	default:
		s.Display.Contrast = def.Display.Contrast
	}
	return s
}

// SanitizeVolume clamps v into [0, 1]. NaN is silence.
func SanitizeVolume(v float64) float64 {
	return core.ClampF(v, 0, 1)
}

// GameOptions converts the game section into engine rules.
func (s Settings) GameOptions() snake.Options {
	return snake.Options{
		Grid:      s.Game.GridSize,
		BaseSpeed: s.Game.BaseSpeed,
		Wrap:      s.Game.Wrap,
		Powerups:  s.Game.Powerups,
	}
}

// HighContrast reports whether the high contrast palette is selected.
func (s Settings) HighContrast() bool {
	return s.Display.Contrast == ContrastHigh
}

// Keys lists the keys accepted by Get and Set in file order.
func Keys() []string {
	return []string{
		"game.grid_size",
		"game.base_speed",
		"game.wrap",
		"game.powerups",
		"loop.frame_rate",
		"loop.max_steps",
		"audio.volume",
		"audio.muted",
		"display.theme",
		"display.contrast",
		"display.reduce_motion",
	}
}

// Get returns the value of a dotted key as text.
func (s Settings) Get(key string) (string, error) {
	switch key {
	case "game.grid_size":
		return strconv.Itoa(s.Game.GridSize), nil
	case "game.base_speed":
		return strconv.FormatFloat(s.Game.BaseSpeed, 'g', -1, 64), nil
	case "game.wrap":
		return strconv.FormatBool(s.Game.Wrap), nil
	case "game.powerups":
		return strconv.FormatBool(s.Game.Powerups), nil
	case "loop.frame_rate":
		return strconv.Itoa(s.Loop.FrameRate), nil
	case "loop.max_steps":
		return strconv.Itoa(s.Loop.MaxSteps), nil
	case "audio.volume":
		return strconv.FormatFloat(s.Audio.Volume, 'g', -1, 64), nil
	case "audio.muted":
		return strconv.FormatBool(s.Audio.Muted), nil
	case "display.theme":
		return s.Display.Theme, nil
	case "display.contrast":
		return s.Display.Contrast, nil
	case "display.reduce_motion":
		return strconv.FormatBool(s.Display.ReduceMotion), nil
	}
	return "", fmt.Errorf("%w: unknown key %q", ErrInvalidSetting, key)
}

// Set parses value into the dotted key and returns the sanitized result.
func (s Settings) Set(key, value string) (Settings, error) {
	value = strings.TrimSpace(value)
	var err error
	switch key {
	case "game.grid_size":
		s.Game.GridSize, err = strconv.Atoi(value)
	case "game.base_speed":
		s.Game.BaseSpeed, err = strconv.ParseFloat(value, 64)
	case "game.wrap":
		s.Game.Wrap, err = strconv.ParseBool(value)
	case "game.powerups":
		s.Game.Powerups, err = strconv.ParseBool(value)
	case "loop.frame_rate":
		s.Loop.FrameRate, err = strconv.Atoi(value)
	case "loop.max_steps":
		s.Loop.MaxSteps, err = strconv.Atoi(value)
	case "audio.volume":
		s.Audio.Volume, err = strconv.ParseFloat(value, 64)
	case "audio.muted":
		s.Audio.Muted, err = strconv.ParseBool(value)
	case "display.theme":
		if value != ThemeLight && value != ThemeDark {
			err = fmt.Errorf("theme must be %s or %s", ThemeLight, ThemeDark)
		}
		s.Display.Theme = value
	case "display.contrast":
		if value != ContrastNormal && value != ContrastHigh {
			err = fmt.Errorf("contrast must be %s or %s", ContrastNormal, ContrastHigh)
		}
		s.Display.Contrast = value
	case "display.reduce_motion":
		s.Display.ReduceMotion, err = strconv.ParseBool(value)
	default:
		return s, fmt.Errorf("%w: unknown key %q", ErrInvalidSetting, key)
	}
	if err != nil {
		return s, fmt.Errorf("%w: %s=%q: %v", ErrInvalidSetting, key, value, err)
	}
	if !finite(s.Game.BaseSpeed) || !finite(s.Audio.Volume) {
		return s, fmt.Errorf("%w: %s=%q: not a finite number", ErrInvalidSetting, key, value)
	}
	return s.Sanitize(), nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
