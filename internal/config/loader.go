package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const balloonFile = "balloonpop.yaml"

// LoadBalloon loads Balloon Pop configuration.
// Search order: customPath -> ~/.balloons/configs/balloonpop.yaml ->
// ./configs/balloonpop.yaml -> embedded default.
// Fields missing from a file keep their default values.
func LoadBalloon(customPath string) (BalloonConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BalloonConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseBalloon(data)
		if err != nil {
			return BalloonConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(balloonFile), filepath.Join("configs", balloonFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parseBalloon(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parseBalloon(defaultBalloonYAML)
	if err != nil {
		return DefaultBalloonConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseBalloon decodes data over the defaults and validates the result.
func parseBalloon(data []byte) (BalloonConfig, error) {
	cfg := DefaultBalloonConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BalloonConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BalloonConfig{}, err
	}
	return cfg, nil
}

// ApplyBalloonPreset sets the board size from a difficulty preset.
// Presets missing from the config leave the board unchanged.
func ApplyBalloonPreset(cfg *BalloonConfig, preset DifficultyPreset) {
	size, ok := cfg.Presets[preset]
	if !ok {
		return
	}
	cfg.Board.Rows = size.Rows
	cfg.Board.Cols = size.Cols
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".balloons", "configs", filename)
}
