package core

import (
	"strconv"
	"strings"
)

// Board holds the tiles of one game. Tile order is creation order and never
// changes; the position index is built once because tiles do not move.
type Board struct {
	layoutID string
	tiles    []*Tile
	index    map[Position]*Tile
	byID     map[int]*Tile
	selected *Tile
}

// NewBoard creates a board over the given tiles. If two tiles share a
// position, the first one owns the cell.
func NewBoard(layoutID string, tiles []*Tile) *Board {
	b := &Board{
		layoutID: layoutID,
		tiles:    tiles,
		index:    make(map[Position]*Tile, len(tiles)),
		byID:     make(map[int]*Tile, len(tiles)),
	}
	for _, t := range tiles {
		if _, ok := b.index[t.Pos]; !ok {
			b.index[t.Pos] = t
		}
		if _, ok := b.byID[t.ID]; !ok {
			b.byID[t.ID] = t
		}
		if t.Selected && b.selected == nil {
			b.selected = t
		}
	}
	return b
}

// LayoutID returns the id of the layout the board was generated from.
func (b *Board) LayoutID() string {
	return b.layoutID
}

// Tiles returns all tiles, including removed ones, in creation order.
// The slice is shared with the board and must not be modified.
func (b *Board) Tiles() []*Tile {
	return b.tiles
}

// Len returns the total number of tiles, removed or not.
func (b *Board) Len() int {
	return len(b.tiles)
}

// TileAt returns the tile occupying pos, or nil. Removed tiles are returned too.
func (b *Board) TileAt(pos Position) *Tile {
	return b.index[pos]
}

// TileByID returns the tile with the given id, or nil.
func (b *Board) TileByID(id int) *Tile {
	return b.byID[id]
}

// Selected returns the currently selected tile, or nil.
func (b *Board) Selected() *Tile {
	return b.selected
}

// SetSelected makes t the selected tile, clearing the flag on the previous one.
// A nil tile clears the selection.
func (b *Board) SetSelected(t *Tile) {
	if b.selected != nil {
		b.selected.Selected = false
	}
	b.selected = t
	if t != nil {
		t.Selected = true
	}
}

// IsTileFree reports whether t can be played: nothing rests on any of the
// nine cells above it and at least one horizontal side is open.
func (b *Board) IsTileFree(t *Tile) bool {
	return b.free(t, removedFlag)
}

// FreeTiles returns every playable tile in board order.
func (b *Board) FreeTiles() []*Tile {
	return b.freeTiles(removedFlag)
}

// RemovePair removes a and b if both are free, distinct and matching.
// It returns false and leaves the board untouched otherwise.
func (b *Board) RemovePair(a, c *Tile) bool {
	if a == nil || c == nil || a.ID == c.ID {
		return false
	}
	if !CanMatch(a.Type, c.Type) {
		return false
	}
	if !b.IsTileFree(a) || !b.IsTileFree(c) {
		return false
	}

	if b.selected != nil && (b.selected.Same(a) || b.selected.Same(c)) {
		b.SetSelected(nil)
	}
	a.Removed, c.Removed = true, true
	a.Selected, c.Selected = false, false
	return true
}

// IsGameWon reports whether every tile has been removed.
func (b *Board) IsGameWon() bool {
	for _, t := range b.tiles {
		if !t.Removed {
			return false
		}
	}
	return true
}

// IsGameStuck reports whether no two free tiles can be matched.
func (b *Board) IsGameStuck() bool {
	counts := make(map[TileType]int)
	for _, t := range b.FreeTiles() {
		class := matchClass(t.Type)
		counts[class]++
		if counts[class] >= 2 {
			return false
		}
	}
	return true
}

// RemainingCount returns the number of tiles not yet removed.
func (b *Board) RemainingCount() int {
	n := 0
	for _, t := range b.tiles {
		if !t.Removed {
			n++
		}
	}
	return n
}

// Bounds returns the smallest and largest coordinates used by any tile.
// An empty board yields two zero positions.
func (b *Board) Bounds() (lo, hi Position) {
	for i, t := range b.tiles {
		p := t.Pos
		if i == 0 {
			lo, hi = p, p
			continue
		}
		lo = Position{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = Position{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	return lo, hi
}

// String renders each layer as a grid of type glyphs, top layer last.
// Removed tiles and empty cells are shown as dots.
func (b *Board) String() string {
	if len(b.tiles) == 0 {
		return "(empty board)"
	}
	lo, hi := b.Bounds()
	var sb strings.Builder
	for z := lo.Z; z <= hi.Z; z++ {
		if z > lo.Z {
			sb.WriteByte('\n')
		}
		sb.WriteString("z=")
		sb.WriteString(strconv.Itoa(z))
		sb.WriteByte('\n')
		for y := lo.Y; y <= hi.Y; y++ {
			for x := lo.X; x <= hi.X; x++ {
				t := b.index[P(x, y, z)]
				if t == nil || t.Removed {
					sb.WriteString(" ..")
					continue
				}
				sb.WriteByte(' ')
				sb.WriteString(t.Type.Glyph())
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// removedFlag is the gone-predicate of a live board.
func removedFlag(t *Tile) bool {
	return t.Removed
}

// free is the freedom rule, parameterised by what counts as gone so that the
// solvability simulator can apply it to its own removal set.
func (b *Board) free(t *Tile, gone func(*Tile) bool) bool {
	if t == nil || gone(t) {
		return false
	}
	occupied := func(p Position) bool {
		o := b.index[p]
		return o != nil && o != t && !gone(o)
	}

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if occupied(t.Pos.Add(dx, dy, 1)) {
				return false
			}
		}
	}

	leftOpen, rightOpen := true, true
	for dy := -1; dy <= 1; dy++ {
		if occupied(t.Pos.Add(-1, dy, 0)) {
			leftOpen = false
		}
		if occupied(t.Pos.Add(1, dy, 0)) {
			rightOpen = false
		}
	}
	return leftOpen || rightOpen
}

func (b *Board) freeTiles(gone func(*Tile) bool) []*Tile {
	free := make([]*Tile, 0, len(b.tiles))
	for _, t := range b.tiles {
		if b.free(t, gone) {
			free = append(free, t)
		}
	}
	return free
}
