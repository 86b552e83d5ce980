package core

import "strings"

// Difficulty selects how boards are generated.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty converts a string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	default:
		return DifficultyMedium, false
	}
}

// SolvableThreshold is the nominal share of a board a player should be able
// to clear at this difficulty. The setup menu shows it as the target;
// generation always accepts boards at SolvableRate.
func (d Difficulty) SolvableThreshold() float64 {
	switch d {
	case DifficultyEasy:
		return 0.7
	case DifficultyHard:
		return 1.0
	default:
		return 0.85
	}
}

// usesSolvableGeneration reports whether boards are filtered by the simulator.
func (d Difficulty) usesSolvableGeneration() bool {
	return d != DifficultyHard
}

// LayoutMode selects which layout the next game is played on.
type LayoutMode string

const (
	ModeFixed       LayoutMode = "fixed"
	ModeRandom      LayoutMode = "random"
	ModeProgressive LayoutMode = "progressive"
)

// ParseLayoutMode converts a string to a LayoutMode.
func ParseLayoutMode(s string) (LayoutMode, bool) {
	switch m := LayoutMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeFixed, ModeRandom, ModeProgressive:
		return m, true
	default:
		return ModeRandom, false
	}
}

// Config holds the session settings that persist between games.
type Config struct {
	Difficulty       Difficulty
	LayoutMode       LayoutMode
	FixedLayoutID    string
	ProgressiveIndex int
}

// DefaultConfig returns medium difficulty with random layouts.
func DefaultConfig() Config {
	return Config{
		Difficulty: DifficultyMedium,
		LayoutMode: ModeRandom,
	}
}

// AdvanceProgressive moves progressive play to the next layout.
func (c *Config) AdvanceProgressive() {
	c.ProgressiveIndex++
}
