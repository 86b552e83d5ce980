package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

func TestAllTileTypes(t *testing.T) {
	types := core.AllTileTypes()
	if len(types) != 42 {
		t.Fatalf("AllTileTypes() returned %d types, want 42", len(types))
	}

	bySuit := make(map[core.Suit]int)
	for _, typ := range types {
		bySuit[typ.Suit()]++
	}
	want := map[core.Suit]int{
		core.SuitCharacter: 9,
		core.SuitBamboo:    9,
		core.SuitCircle:    9,
		core.SuitWind:      4,
		core.SuitDragon:    3,
		core.SuitFlower:    4,
		core.SuitSeason:    4,
	}
	for suit, n := range want {
		if bySuit[suit] != n {
			t.Errorf("suit %s has %d types, want %d", suit, bySuit[suit], n)
		}
	}
}

func TestCanMatchSymmetricAndReflexive(t *testing.T) {
	for _, a := range core.AllTileTypes() {
		if !core.CanMatch(a, a) {
			t.Errorf("CanMatch(%s, %s) = false, want true", a, a)
		}
		for _, b := range core.AllTileTypes() {
			if core.CanMatch(a, b) != core.CanMatch(b, a) {
				t.Errorf("CanMatch(%s, %s) is not symmetric", a, b)
			}
		}
	}
}

func TestCanMatchClasses(t *testing.T) {
	for _, a := range core.AllTileTypes() {
		for _, b := range core.AllTileTypes() {
			got := core.CanMatch(a, b)
			var want bool
			switch {
			case a.IsFlower() && b.IsFlower():
				want = true
			case a.IsSeason() && b.IsSeason():
				want = true
			default:
				want = a == b
			}
			if got != want {
				t.Errorf("CanMatch(%s, %s) = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestCanMatchExamples(t *testing.T) {
	tests := []struct {
		name string
		a, b core.TileType
		want bool
	}{
		{"same character", core.Character1, core.Character1, true},
		{"different rank", core.Character1, core.Character2, false},
		{"same rank different suit", core.Bamboo5, core.Circle5, false},
		{"different winds", core.WindEast, core.WindWest, false},
		{"same dragon", core.DragonRed, core.DragonRed, true},
		{"two flowers", core.FlowerPlum, core.FlowerOrchid, true},
		{"two seasons", core.SeasonSpring, core.SeasonWinter, true},
		{"flower and season", core.FlowerPlum, core.SeasonSpring, false},
		{"flower and character", core.FlowerBamboo, core.Bamboo1, false},
		{"season and wind", core.SeasonSummer, core.WindSouth, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := core.CanMatch(tc.a, tc.b); got != tc.want {
				t.Errorf("CanMatch(%s, %s) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestTileTypeNames(t *testing.T) {
	tests := []struct {
		typ  core.TileType
		name string
		rank int
	}{
		{core.Character1, "CHARACTER_1", 1},
		{core.Bamboo9, "BAMBOO_9", 9},
		{core.Circle3, "CIRCLE_3", 3},
		{core.WindNorth, "WIND_NORTH", 1},
		{core.WindWest, "WIND_WEST", 4},
		{core.DragonWhite, "DRAGON_WHITE", 3},
		{core.FlowerChrysanthemum, "FLOWER_CHRYSANTHEMUM", 3},
		{core.SeasonAutumn, "SEASON_AUTUMN", 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.typ.String(); got != tc.name {
				t.Errorf("String() = %q, want %q", got, tc.name)
			}
			if got := tc.typ.Rank(); got != tc.rank {
				t.Errorf("Rank() = %d, want %d", got, tc.rank)
			}
		})
	}

	if got := core.TileTypeCount.String(); got != "UNKNOWN" {
		t.Errorf("invalid type String() = %q, want UNKNOWN", got)
	}
}

func TestParseTileType(t *testing.T) {
	for _, typ := range core.AllTileTypes() {
		got, ok := core.ParseTileType(typ.String())
		if !ok || got != typ {
			t.Errorf("ParseTileType(%q) = %v, %v", typ.String(), got, ok)
		}
	}

	if got, ok := core.ParseTileType("  flower_plum "); !ok || got != core.FlowerPlum {
		t.Errorf("ParseTileType should be case-insensitive, got %v, %v", got, ok)
	}
	if _, ok := core.ParseTileType("JOKER"); ok {
		t.Error("ParseTileType(JOKER) should fail")
	}
}

func TestGlyphsAreDistinct(t *testing.T) {
	seen := make(map[string]core.TileType)
	for _, typ := range core.AllTileTypes() {
		g := typ.Glyph()
		if len(g) != 2 {
			t.Errorf("%s.Glyph() = %q, want two characters", typ, g)
		}
		if other, dup := seen[g]; dup {
			t.Errorf("%s and %s share glyph %q", typ, other, g)
		}
		seen[g] = typ
	}
}
