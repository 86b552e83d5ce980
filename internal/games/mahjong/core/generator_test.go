package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

// spreadLayout places n tiles two columns apart so that every tile is free.
func spreadLayout(id string, n int) core.Layout {
	positions := make([]core.Position, n)
	for i := range positions {
		positions[i] = core.P(i*2, 0, 0)
	}
	return core.Layout{ID: id, Name: id, Difficulty: 1, Positions: positions}
}

// pyramidLayout is a small three-layer shape with blocked tiles.
func pyramidLayout() core.Layout {
	var positions []core.Position
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			positions = append(positions, core.P(x, y, 0))
		}
	}
	for y := 1; y < 3; y++ {
		for x := 1; x < 5; x++ {
			positions = append(positions, core.P(x, y, 1))
		}
	}
	positions = append(positions, core.P(2, 1, 2), core.P(3, 2, 2))
	return core.Layout{ID: "pyramid", Name: "Pyramid", Difficulty: 3, Positions: positions}
}

func TestGenerateBoardParity(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"even", 12, 12},
		{"odd drops last", 7, 6},
		{"single", 1, 0},
		{"empty", 0, 0},
	}

	gen := core.NewGenerator(42)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := gen.GenerateBoard(spreadLayout("s", tc.n), core.DifficultyMedium)
			if b.Len() != tc.want {
				t.Errorf("Len() = %d, want %d", b.Len(), tc.want)
			}
			if b.Len()%2 != 0 {
				t.Errorf("Len() = %d, want even", b.Len())
			}
		})
	}
}

func TestGenerateBoardFollowsLayout(t *testing.T) {
	layout := pyramidLayout()
	b := core.NewGenerator(7).GenerateBoard(layout, core.DifficultyEasy)

	if b.LayoutID() != layout.ID {
		t.Errorf("LayoutID() = %q, want %q", b.LayoutID(), layout.ID)
	}
	for i, tile := range b.Tiles() {
		if tile.ID != i {
			t.Errorf("tile %d has id %d, want sequential ids", i, tile.ID)
		}
		if tile.Pos != layout.Positions[i] {
			t.Errorf("tile %d at %s, want %s", i, tile.Pos, layout.Positions[i])
		}
		if tile.Removed || tile.Selected {
			t.Errorf("tile %d should start unflagged", i)
		}
	}
}

func TestDistributionPairs(t *testing.T) {
	gen := core.NewGenerator(99)
	for _, n := range []int{2, 8, 36, 72, 144, 336} {
		types := gen.Distribution(n, core.DifficultyMedium)
		if len(types) != n {
			t.Fatalf("Distribution(%d) returned %d types", n, len(types))
		}

		counts := make(map[core.TileType]int)
		for _, typ := range types {
			counts[typ]++
		}
		for typ, c := range counts {
			if c%2 != 0 {
				t.Errorf("n=%d: %s appears %d times, want even", n, typ, c)
			}
			if c > 8 {
				t.Errorf("n=%d: %s appears in %d pairs, want at most 4", n, typ, c/2)
			}
		}
	}
}

func TestDistributionOddCount(t *testing.T) {
	types := core.NewGenerator(1).Distribution(9, core.DifficultyHard)
	if len(types) != 8 {
		t.Errorf("Distribution(9) returned %d types, want 8", len(types))
	}
	if got := core.NewGenerator(1).Distribution(0, core.DifficultyHard); len(got) != 0 {
		t.Errorf("Distribution(0) returned %d types, want 0", len(got))
	}
}

func TestGeneratorDeterminism(t *testing.T) {
	layout := pyramidLayout()
	for _, d := range []core.Difficulty{core.DifficultyEasy, core.DifficultyHard} {
		a := core.NewGenerator(12345).GenerateSolvableBoard(layout, d)
		b := core.NewGenerator(12345).GenerateSolvableBoard(layout, d)

		if a.Len() != b.Len() {
			t.Fatalf("boards differ in size: %d vs %d", a.Len(), b.Len())
		}
		for i := range a.Tiles() {
			ta, tb := a.Tiles()[i], b.Tiles()[i]
			if ta.Type != tb.Type || ta.Pos != tb.Pos {
				t.Errorf("difficulty %s: tile %d differs: %s vs %s", d, i, ta, tb)
			}
		}
	}
}

func TestGeneratorSameSeedSameAttempts(t *testing.T) {
	layout := pyramidLayout()
	g1 := core.NewGenerator(2024)
	g2 := core.NewGenerator(2024)
	for i := 0; i < 5; i++ {
		g1.GenerateSolvableBoard(layout, core.DifficultyMedium)
		g2.GenerateSolvableBoard(layout, core.DifficultyMedium)
		if g1.LastAttempts() != g2.LastAttempts() {
			t.Fatalf("round %d: attempts %d vs %d", i, g1.LastAttempts(), g2.LastAttempts())
		}
	}
}

func TestGeneratorZeroSeed(t *testing.T) {
	a := core.NewGenerator(0).Distribution(36, core.DifficultyMedium)
	b := core.NewGenerator(0).Distribution(36, core.DifficultyMedium)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seed 0 dealt %s and %s at %d", a[i], b[i], i)
		}
	}

	la := core.NewGenerator(0).GenerateBoard(pyramidLayout(), core.DifficultyEasy)
	lb := core.NewGenerator(0).GenerateBoard(pyramidLayout(), core.DifficultyEasy)
	for i := range la.Tiles() {
		if la.Tiles()[i].Type != lb.Tiles()[i].Type {
			t.Fatalf("seed 0 boards differ at tile %d", i)
		}
	}
}

func TestGenerateSolvableBoard(t *testing.T) {
	t.Run("open layout is accepted first time", func(t *testing.T) {
		gen := core.NewGenerator(3)
		b := gen.GenerateSolvableBoard(spreadLayout("open", 40), core.DifficultyEasy)
		if b.Len() != 40 {
			t.Errorf("Len() = %d, want 40", b.Len())
		}
		if gen.LastAttempts() != 1 {
			t.Errorf("LastAttempts() = %d, want 1", gen.LastAttempts())
		}
		if !core.Solvable(b) {
			t.Error("accepted board should be judged solvable")
		}
	})

	t.Run("hopeless layout falls back", func(t *testing.T) {
		// A single column: only the top tile is ever free.
		layout := core.Layout{ID: "tower"}
		for z := 0; z < 10; z++ {
			layout.Positions = append(layout.Positions, core.P(0, 0, z))
		}
		gen := core.NewGenerator(3)
		b := gen.GenerateSolvableBoard(layout, core.DifficultyMedium)
		if b == nil || b.Len() != 10 {
			t.Fatalf("fallback board missing or wrong size")
		}
		if gen.LastAttempts() != core.MaxGenerateAttempts {
			t.Errorf("LastAttempts() = %d, want %d", gen.LastAttempts(), core.MaxGenerateAttempts)
		}

		gen.GenerateBoard(layout, core.DifficultyHard)
		if gen.LastAttempts() != 1 {
			t.Errorf("LastAttempts() after a plain deal = %d, want 1", gen.LastAttempts())
		}
	})
}
