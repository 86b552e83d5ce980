package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

//go:embed defaults/mahjong.yaml
var defaultMahjongYAML []byte

// DefaultMahjongConfig returns the default configuration.
// It matches defaults/mahjong.yaml.
func DefaultMahjongConfig() MahjongConfig {
	return MahjongConfig{
		Game: GameConfig{
			Difficulty: string(core.DifficultyMedium),
			LayoutMode: string(core.ModeRandom),
		},
		Layouts: LayoutsConfig{
			Dir: "~/.mahjong/layouts",
		},
		Scoring: ScoringConfig{
			PairPoints:      10,
			HintPenalty:     15,
			ParSeconds:      600,
			TimeBonusPerSec: 1,
			MinScore:        0,
		},
		Display: DisplayConfig{
			HighlightFree: true,
			ShowHUD:       true,
			Theme:         "default",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultMahjongYAML
}
