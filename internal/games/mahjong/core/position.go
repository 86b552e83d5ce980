// Package core implements the mahjong solitaire rules: tile types and matching,
// the stacked board and its freedom model, board generation with a greedy
// solvability check, and the session state machine.
//
// The package has no I/O and no third-party dependencies. Hosts drive it from a
// single goroutine or guard it with their own lock.
package core

import "fmt"

// Position is a cell in the stacked grid.
// X is the column, Y the row and Z the layer; higher Z sits on top.
type Position struct {
	X int
	Y int
	Z int
}

// P is a convenience constructor for Position.
func P(x, y, z int) Position {
	return Position{X: x, Y: y, Z: z}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Add returns a new Position offset by (dx, dy, dz).
func (p Position) Add(dx, dy, dz int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}
