package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// LocalSettingsPath is the project-local override checked after the user file.
const LocalSettingsPath = "configs/snake.yaml"

// Load loads the snake settings.
// Search order: customPath -> ~/.snake/settings.yaml -> ./configs/snake.yaml -> embedded default
func Load(customPath string) (Settings, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readFile(customPath)
		if err != nil {
			return DefaultSettings(), err
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{UserSettingsPath(), LocalSettingsPath} {
		if path == "" {
			continue
		}
		if cfg, err := readFile(path); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultSettingsYAML)
	if err != nil {
		return DefaultSettings(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Resolve returns the file Load would read for customPath, or "" when the
// embedded defaults would be used.
func Resolve(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range []string{UserSettingsPath(), LocalSettingsPath} {
		if path == "" {
			continue
		}
		if _, err := readFile(path); err == nil {
			return path
		}
	}
	return ""
}

// Save writes settings to path as YAML, creating parent directories.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s.Sanitize())
	if err != nil {
		return fmt.Errorf("config: cannot encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: cannot create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return nil
}

// UserSettingsPath returns ~/.snake/settings.yaml, or empty if home is unavailable.
func UserSettingsPath() string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "settings.yaml")
}

// UserDir returns ~/.snake, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake")
}

func readFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("config: cannot parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults and sanitizes it.
func Parse(data []byte) (Settings, error) {
	return parse(data)
}

func parse(data []byte) (Settings, error) {
	// Missing sections keep their defaults.
	cfg := DefaultSettings()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, err
	}
	return cfg.Sanitize(), nil
}

// Watch reloads path whenever it is written or replaced and passes the
// new settings to onChange. Parse errors are logged and the previous
// settings stay in effect. Watch returns once the watcher is set up; it
// stops when ctx is done.
func Watch(ctx context.Context, path string, logger *log.Logger, onChange func(Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: cannot create watcher: %w", err)
	}

	// Editors often replace files instead of writing them, so watch the
	// directory and filter by name.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("config: cannot watch %s: %w", dir, err)
	}
	target := filepath.Clean(path)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := readFile(path)
				if err != nil {
					logger.Warn("settings reload failed", "path", path, "error", err)
					continue
				}
				logger.Info("settings reloaded", "path", path)
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("settings watcher error", "error", err)
			}
		}
	}()
	return nil
}
