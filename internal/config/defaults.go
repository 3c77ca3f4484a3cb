package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSettingsYAML []byte

// DefaultYAML returns the embedded default settings file, comments included.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultSettingsYAML))
	copy(out, defaultSettingsYAML)
	return out
}
