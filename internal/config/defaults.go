package config

import (
	_ "embed"
)

//go:embed defaults/balloonpop.yaml
var defaultBalloonYAML []byte

// DefaultBalloonConfig returns the built-in Balloon Pop configuration.
// It matches defaults/balloonpop.yaml.
func DefaultBalloonConfig() BalloonConfig {
	return BalloonConfig{
		Board: BoardConfig{
			Rows:    10,
			Cols:    16,
			MaxRows: 40,
			MaxCols: 40,
		},
		Animation: AnimationConfig{
			FloatEveryTicks: 2,
			ClearedTicks:    60,
		},
		Presets: map[DifficultyPreset]BoardSize{
			DifficultyEasy:   {Rows: 6, Cols: 8},
			DifficultyNormal: {Rows: 10, Cols: 16},
			DifficultyHard:   {Rows: 16, Cols: 30},
		},
		Layouts: LayoutsConfig{
			Dir: "~/.balloons/layouts",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "balloonpop":
		return defaultBalloonYAML
	default:
		return nil
	}
}
