// Package config provides YAML-based configuration loading and scoring rules
// for the mahjong game.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

// MahjongConfig contains all configuration for the mahjong game.
type MahjongConfig struct {
	Game    GameConfig    `yaml:"game"`
	Layouts LayoutsConfig `yaml:"layouts"`
	Scoring ScoringConfig `yaml:"scoring"`
	Display DisplayConfig `yaml:"display"`
}

// GameConfig selects difficulty and how layouts are chosen.
type GameConfig struct {
	Difficulty       string `yaml:"difficulty"`        // easy, medium or hard
	LayoutMode       string `yaml:"layout_mode"`       // fixed, random or progressive
	FixedLayout      string `yaml:"fixed_layout"`      // layout id for fixed mode
	ProgressiveIndex int    `yaml:"progressive_index"` // starting index for progressive mode
}

// LayoutsConfig points at extra layout files.
type LayoutsConfig struct {
	Dir string `yaml:"dir"` // directory of *.yaml layouts, "~" is expanded
}

// ScoringConfig defines how points are awarded.
type ScoringConfig struct {
	PairPoints      int `yaml:"pair_points"`        // points per removed pair, before the difficulty multiplier
	HintPenalty     int `yaml:"hint_penalty"`       // points lost per hint
	ParSeconds      int `yaml:"par_seconds"`        // a win faster than this earns a time bonus
	TimeBonusPerSec int `yaml:"time_bonus_per_sec"` // bonus per second under par
	MinScore        int `yaml:"min_score"`
}

// DisplayConfig controls rendering options.
type DisplayConfig struct {
	HighlightFree bool   `yaml:"highlight_free"` // draw playable tiles brighter
	ShowHUD       bool   `yaml:"show_hud"`
	Theme         string `yaml:"theme"` // default or jade
}

// SessionConfig converts the game section to a core.Config.
// Unknown values fall back to medium difficulty and random layouts.
func (c MahjongConfig) SessionConfig() core.Config {
	difficulty, _ := core.ParseDifficulty(c.Game.Difficulty)
	mode, _ := core.ParseLayoutMode(c.Game.LayoutMode)
	return core.Config{
		Difficulty:       difficulty,
		LayoutMode:       mode,
		FixedLayoutID:    c.Game.FixedLayout,
		ProgressiveIndex: max(0, c.Game.ProgressiveIndex),
	}
}

// LayoutsDir returns the layouts directory with "~" expanded.
func (c MahjongConfig) LayoutsDir() string {
	return ExpandHome(c.Layouts.Dir)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
