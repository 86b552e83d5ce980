package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

func TestSimulateOpenBoard(t *testing.T) {
	b := newBoard(
		placement{core.Circle1, 0, 0, 0},
		placement{core.Circle2, 2, 0, 0},
		placement{core.Circle1, 4, 0, 0},
		placement{core.Circle2, 6, 0, 0},
		placement{core.FlowerPlum, 8, 0, 0},
		placement{core.FlowerBamboo, 10, 0, 0},
		placement{core.SeasonSpring, 12, 0, 0},
		placement{core.SeasonWinter, 14, 0, 0},
	)

	res := core.Simulate(b)
	if res.Removed != 8 || res.Total != 8 || res.Steps != 4 {
		t.Errorf("Simulate() = %+v, want all 8 tiles in 4 steps", res)
	}
	if res.Rate != 1 {
		t.Errorf("Rate = %v, want 1", res.Rate)
	}
	if !core.Solvable(b) {
		t.Error("open board should be solvable")
	}

	for _, tile := range b.Tiles() {
		if tile.Removed {
			t.Fatal("Simulate must not mutate the board")
		}
	}
}

func TestSimulateStuckBoard(t *testing.T) {
	// Each pair is stacked, so neither tile of a pair is free with its partner.
	b := newBoard(
		placement{core.Bamboo1, 0, 0, 0},
		placement{core.Bamboo1, 0, 0, 1},
		placement{core.Bamboo2, 4, 0, 0},
		placement{core.Bamboo2, 4, 0, 1},
	)

	res := core.Simulate(b)
	if res.Steps != 0 || res.Removed != 0 {
		t.Errorf("Simulate() = %+v, want no progress", res)
	}
	if core.Solvable(b) {
		t.Error("stuck board should not be solvable")
	}
}

func TestSimulatePartialBoardBelowThreshold(t *testing.T) {
	// One removable pair out of six tiles.
	b := newBoard(
		placement{core.Bamboo1, 0, 0, 0},
		placement{core.Bamboo1, 4, 0, 0},
		placement{core.Bamboo2, 8, 0, 0},
		placement{core.Bamboo2, 8, 0, 1},
		placement{core.Bamboo3, 12, 0, 0},
		placement{core.Bamboo3, 12, 0, 1},
	)

	res := core.Simulate(b)
	if res.Removed != 2 {
		t.Errorf("Removed = %d, want 2", res.Removed)
	}
	if core.Solvable(b) {
		t.Errorf("rate %.2f should be below %.2f", res.Rate, core.SolvableRate)
	}
}

func TestSimulateUnblocksLowerLayers(t *testing.T) {
	b := newBoard(
		placement{core.DragonGreen, 0, 0, 0},
		placement{core.DragonGreen, 4, 0, 0},
		placement{core.WindEast, 0, 0, 1},
		placement{core.WindEast, 4, 0, 1},
	)
	res := core.Simulate(b)
	if res.Removed != 4 {
		t.Errorf("Removed = %d, want 4", res.Removed)
	}
}

func TestSimulateEmptyBoard(t *testing.T) {
	b := core.NewBoard("empty", nil)
	if !core.Solvable(b) {
		t.Error("empty board should be solvable")
	}
}
