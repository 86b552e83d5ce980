package config

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

// DifficultyPreset is a named difficulty level accepted on the command line.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyMedium DifficultyPreset = "medium"
	DifficultyHard   DifficultyPreset = "hard"
)

// ApplyDifficultyPreset sets the difficulty of cfg. Unknown presets leave it
// unchanged.
func ApplyDifficultyPreset(cfg *MahjongConfig, preset DifficultyPreset) {
	if d, ok := core.ParseDifficulty(string(preset)); ok {
		cfg.Game.Difficulty = string(d)
	}
}

// MultiplierForDifficulty returns the score multiplier for a difficulty.
func MultiplierForDifficulty(d core.Difficulty) float64 {
	switch d {
	case core.DifficultyEasy:
		return 1.0
	case core.DifficultyHard:
		return 2.0
	default:
		return 1.5
	}
}

// Scorer computes game scores from the scoring rules.
type Scorer struct {
	cfg        ScoringConfig
	multiplier float64
}

// NewScorer creates a scorer for the given rules and difficulty.
func NewScorer(cfg ScoringConfig, d core.Difficulty) *Scorer {
	return &Scorer{cfg: cfg, multiplier: MultiplierForDifficulty(d)}
}

// Score returns the points for a game with the given number of removed pairs
// and hints. Won games earn a bonus for every second under par.
func (s *Scorer) Score(pairs, hints int, elapsed time.Duration, won bool) int {
	points := float64(pairs*s.cfg.PairPoints) * s.multiplier
	points -= float64(hints * s.cfg.HintPenalty)

	if won && s.cfg.ParSeconds > 0 {
		under := float64(s.cfg.ParSeconds) - elapsed.Seconds()
		points += clampF(under, 0, float64(s.cfg.ParSeconds)) * float64(s.cfg.TimeBonusPerSec)
	}

	return max(s.cfg.MinScore, int(math.Round(points)))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
