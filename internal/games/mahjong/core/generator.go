package core

import "math/rand"

const (
	// MaxGenerateAttempts bounds the retries of GenerateSolvableBoard.
	MaxGenerateAttempts = 100

	// maxPairsPerType is how many pairs of one type are dealt before the
	// next type is used.
	maxPairsPerType = 4
)

// Generator deals tile types onto layouts. It owns its random source, so two
// generators with the same seed produce identical boards.
type Generator struct {
	rng          *rand.Rand
	lastAttempts int
}

// NewGenerator creates a generator seeded with seed. Zero is a seed like any
// other; callers that want a fresh game pass a seed from the clock.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a pseudo-random number in [0, n) from the generator's source.
// It returns 0 when n <= 0.
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.rng.Intn(n)
}

// LastAttempts returns how many boards the last deal took: 1 after
// GenerateBoard, up to MaxGenerateAttempts after GenerateSolvableBoard.
func (g *Generator) LastAttempts() int {
	return g.lastAttempts
}

// GenerateBoard deals a board for layout. An odd trailing position is dropped
// so that every tile has a partner. Tile ids follow position order from 0.
//
// The difficulty does not change the deal itself; callers pick between
// GenerateBoard and GenerateSolvableBoard based on it.
func (g *Generator) GenerateBoard(layout Layout, difficulty Difficulty) *Board {
	g.lastAttempts = 1
	return g.deal(layout, difficulty)
}

func (g *Generator) deal(layout Layout, difficulty Difficulty) *Board {
	positions := make([]Position, len(layout.Positions))
	copy(positions, layout.Positions)
	if len(positions)%2 != 0 {
		positions = positions[:len(positions)-1]
	}

	types := g.Distribution(len(positions), difficulty)
	tiles := make([]*Tile, len(positions))
	for i, pos := range positions {
		tiles[i] = NewTile(i, types[i], pos)
	}
	return NewBoard(layout.ID, tiles)
}

// GenerateSolvableBoard deals boards until the solvability simulator accepts
// one, up to MaxGenerateAttempts. When none is accepted the last board is
// returned anyway.
func (g *Generator) GenerateSolvableBoard(layout Layout, difficulty Difficulty) *Board {
	var board *Board
	for attempt := 1; attempt <= MaxGenerateAttempts; attempt++ {
		board = g.deal(layout, difficulty)
		if Solvable(board) {
			g.lastAttempts = attempt
			return board
		}
	}
	g.lastAttempts = MaxGenerateAttempts
	return board
}

// Distribution returns tileCount/2 pairs of tile types in shuffled order.
// Types are taken from a shuffled list of all variants, four pairs each,
// wrapping around when the list runs out.
func (g *Generator) Distribution(tileCount int, difficulty Difficulty) []TileType {
	pairCount := tileCount / 2
	if pairCount <= 0 {
		return []TileType{}
	}

	candidates := AllTileTypes()
	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	types := make([]TileType, 0, pairCount*2)
	next, pairs := 0, 0
	for range pairCount {
		typ := candidates[next%len(candidates)]
		types = append(types, typ, typ)
		pairs++
		if pairs == maxPairsPerType {
			next++
			pairs = 0
		}
	}

	g.rng.Shuffle(len(types), func(i, j int) {
		types[i], types[j] = types[j], types[i]
	})
	return types
}
