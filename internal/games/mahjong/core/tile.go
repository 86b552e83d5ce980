package core

import "fmt"

// Tile is a single tile on a board. Tiles are never deleted; a removed tile
// keeps its id and position and only carries the Removed flag.
type Tile struct {
	ID       int
	Type     TileType
	Pos      Position
	Selected bool
	Removed  bool
}

// NewTile creates a tile at the given position.
func NewTile(id int, typ TileType, pos Position) *Tile {
	return &Tile{ID: id, Type: typ, Pos: pos}
}

// CanMatch reports whether t and other can be removed together.
// Removed tiles never match.
func (t *Tile) CanMatch(other *Tile) bool {
	if t == nil || other == nil || t.Removed || other.Removed {
		return false
	}
	return CanMatch(t.Type, other.Type)
}

// Same reports whether t and other are the same tile by id.
func (t *Tile) Same(other *Tile) bool {
	return t != nil && other != nil && t.ID == other.ID
}

func (t *Tile) String() string {
	if t == nil {
		return "<nil>"
	}
	return fmt.Sprintf("#%d %s@%s", t.ID, t.Type, t.Pos)
}
