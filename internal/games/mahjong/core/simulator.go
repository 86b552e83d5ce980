package core

const (
	// MaxSimSteps bounds the number of pairs the simulator tries to remove.
	MaxSimSteps = 100

	// SolvableRate is the share of tiles the simulator must clear for a
	// board to be accepted.
	SolvableRate = 0.8
)

// SimResult describes a greedy playout.
type SimResult struct {
	Steps   int     // pairs removed by the playout
	Removed int     // tiles removed at the end, including any removed before
	Total   int     // tiles on the board
	Rate    float64 // Removed / Total, 1 for an empty board
}

// Solvable reports whether a greedy playout clears at least SolvableRate of b.
// It is a heuristic: it never looks ahead or backtracks.
func Solvable(b *Board) bool {
	return Simulate(b).Rate >= SolvableRate
}

// Simulate plays b greedily without touching its tiles. Each step removes the
// first exact-type pair among the free tiles, then falls back to a pair of
// flowers and then a pair of seasons. The playout stops when no pair is found
// or after MaxSimSteps steps.
func Simulate(b *Board) SimResult {
	removed := make(map[int]bool, b.Len())
	for _, t := range b.tiles {
		if t.Removed {
			removed[t.ID] = true
		}
	}
	gone := func(t *Tile) bool { return removed[t.ID] }

	steps := 0
	for steps < MaxSimSteps {
		free := b.freeTiles(gone)
		if len(free) == 0 {
			break
		}
		a, c, ok := greedyPair(free)
		if !ok {
			break
		}
		removed[a.ID] = true
		removed[c.ID] = true
		steps++
	}

	res := SimResult{Steps: steps, Removed: len(removed), Total: b.Len(), Rate: 1}
	if res.Total > 0 {
		res.Rate = float64(res.Removed) / float64(res.Total)
	}
	return res
}

// greedyPair picks the pair the simulator removes next from free tiles.
func greedyPair(free []*Tile) (*Tile, *Tile, bool) {
	// Exact types, in order of first appearance.
	first := make(map[TileType]*Tile)
	var order []TileType
	second := make(map[TileType]*Tile)
	for _, t := range free {
		if f, ok := first[t.Type]; !ok {
			first[t.Type] = t
			order = append(order, t.Type)
		} else if second[t.Type] == nil && f != t {
			second[t.Type] = t
		}
	}
	for _, typ := range order {
		if second[typ] != nil {
			return first[typ], second[typ], true
		}
	}

	// Wildcard classes, flowers before seasons.
	for _, class := range []TileType{matchClass(FlowerPlum), matchClass(SeasonSpring)} {
		var pool []*Tile
		for _, t := range free {
			if matchClass(t.Type) == class {
				pool = append(pool, t)
				if len(pool) == 2 {
					return pool[0], pool[1], true
				}
			}
		}
	}
	return nil, nil, false
}
