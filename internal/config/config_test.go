package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

func TestEmbeddedDefaultsMatchCode(t *testing.T) {
	var cfg MahjongConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if want := DefaultMahjongConfig(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded defaults = %+v, want %+v", cfg, want)
	}
}

func TestLoadMahjongCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `
game:
  difficulty: hard
  layout_mode: progressive
scoring:
  pair_points: 20
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMahjong(path)
	if err != nil {
		t.Fatalf("LoadMahjong() error = %v", err)
	}
	if cfg.Game.Difficulty != "hard" || cfg.Game.LayoutMode != "progressive" {
		t.Errorf("game = %+v", cfg.Game)
	}
	if cfg.Scoring.PairPoints != 20 {
		t.Errorf("PairPoints = %d, want 20", cfg.Scoring.PairPoints)
	}
	// Keys not in the file keep their defaults.
	if cfg.Scoring.HintPenalty != DefaultMahjongConfig().Scoring.HintPenalty {
		t.Errorf("HintPenalty = %d, want default", cfg.Scoring.HintPenalty)
	}
	if !cfg.Display.ShowHUD {
		t.Error("ShowHUD should keep its default")
	}
}

func TestLoadMahjongErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadMahjong(filepath.Join(dir, "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config") {
		t.Errorf("missing file error = %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("game: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadMahjong(bad)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("bad yaml error = %v", err)
	}
}

func TestSessionConfig(t *testing.T) {
	tests := []struct {
		name string
		game GameConfig
		want core.Config
	}{
		{
			name: "defaults",
			game: DefaultMahjongConfig().Game,
			want: core.Config{Difficulty: core.DifficultyMedium, LayoutMode: core.ModeRandom},
		},
		{
			name: "fixed hard",
			game: GameConfig{Difficulty: "HARD", LayoutMode: "fixed", FixedLayout: "turtle"},
			want: core.Config{Difficulty: core.DifficultyHard, LayoutMode: core.ModeFixed, FixedLayoutID: "turtle"},
		},
		{
			name: "garbage falls back",
			game: GameConfig{Difficulty: "insane", LayoutMode: "shuffle", ProgressiveIndex: -4},
			want: core.Config{Difficulty: core.DifficultyMedium, LayoutMode: core.ModeRandom},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := MahjongConfig{Game: tc.game}
			if got := cfg.SessionConfig(); got != tc.want {
				t.Errorf("SessionConfig() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestApplyDifficultyPreset(t *testing.T) {
	cfg := DefaultMahjongConfig()
	ApplyDifficultyPreset(&cfg, DifficultyEasy)
	if cfg.Game.Difficulty != "easy" {
		t.Errorf("Difficulty = %q, want easy", cfg.Game.Difficulty)
	}
	ApplyDifficultyPreset(&cfg, DifficultyPreset("nightmare"))
	if cfg.Game.Difficulty != "easy" {
		t.Errorf("unknown preset changed difficulty to %q", cfg.Game.Difficulty)
	}
}

func TestScorer(t *testing.T) {
	rules := ScoringConfig{PairPoints: 10, HintPenalty: 15, ParSeconds: 100, TimeBonusPerSec: 2}

	tests := []struct {
		name    string
		d       core.Difficulty
		pairs   int
		hints   int
		elapsed time.Duration
		won     bool
		want    int
	}{
		{"easy no bonus", core.DifficultyEasy, 5, 0, 0, false, 50},
		{"medium multiplier", core.DifficultyMedium, 4, 0, 0, false, 60},
		{"hard with hint", core.DifficultyHard, 3, 1, 0, false, 45},
		{"win under par", core.DifficultyEasy, 2, 0, 60 * time.Second, true, 100},
		{"win over par", core.DifficultyEasy, 2, 0, 300 * time.Second, true, 20},
		{"never negative", core.DifficultyEasy, 0, 3, 0, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewScorer(rules, tc.d).Score(tc.pairs, tc.hints, tc.elapsed, tc.won)
			if got != tc.want {
				t.Errorf("Score() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/layouts"); got != filepath.Join(home, "layouts") {
		t.Errorf("ExpandHome(~/layouts) = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome(/abs/path) = %q", got)
	}
	if got := ExpandHome("~other/x"); got != "~other/x" {
		t.Errorf("ExpandHome(~other/x) = %q", got)
	}
}
