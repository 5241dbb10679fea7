// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// BalloonConfig contains all configuration for Balloon Pop.
type BalloonConfig struct {
	Board     BoardConfig                    `yaml:"board"`
	Animation AnimationConfig                `yaml:"animation"`
	Presets   map[DifficultyPreset]BoardSize `yaml:"presets"`
	Layouts   LayoutsConfig                  `yaml:"layouts"`
}

// BoardConfig defines the random board size and the hard limits.
type BoardConfig struct {
	Rows    int `yaml:"rows"`
	Cols    int `yaml:"cols"`
	MaxRows int `yaml:"max_rows"`
	MaxCols int `yaml:"max_cols"`
}

// AnimationConfig defines tick timings of the gravity animation.
type AnimationConfig struct {
	FloatEveryTicks int `yaml:"float_every_ticks"` // 0 = compact instantly
	ClearedTicks    int `yaml:"cleared_ticks"`
}

// BoardSize is a rows x cols pair.
type BoardSize struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// LayoutsConfig points at extra layout files.
type LayoutsConfig struct {
	Dir string `yaml:"dir"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset parses a preset name. An empty name means normal.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// Validate checks that sizes are positive and within the limits.
func (c BalloonConfig) Validate() error {
	b := c.Board
	if b.MaxRows <= 0 || b.MaxCols <= 0 {
		return fmt.Errorf("%w: max board size %dx%d", ErrInvalidConfig, b.MaxRows, b.MaxCols)
	}
	if err := c.checkSize("board", BoardSize{Rows: b.Rows, Cols: b.Cols}); err != nil {
		return err
	}
	for name, size := range c.Presets {
		if err := c.checkSize("preset "+string(name), size); err != nil {
			return err
		}
	}
	if c.Animation.FloatEveryTicks < 0 || c.Animation.ClearedTicks < 0 {
		return fmt.Errorf("%w: negative animation ticks", ErrInvalidConfig)
	}
	return nil
}

func (c BalloonConfig) checkSize(what string, s BoardSize) error {
	if s.Rows <= 0 || s.Cols <= 0 || s.Rows > c.Board.MaxRows || s.Cols > c.Board.MaxCols {
		return fmt.Errorf("%w: %s size %dx%d outside 1x1..%dx%d",
			ErrInvalidConfig, what, s.Rows, s.Cols, c.Board.MaxRows, c.Board.MaxCols)
	}
	return nil
}
