package core

import (
	"errors"
	"fmt"
)

// Snapshot errors.
var (
	ErrEmptySnapshot   = errors.New("snapshot has no tiles")
	ErrUnknownTileType = errors.New("unknown tile type")
	ErrDuplicateTileID = errors.New("duplicate tile id")
)

// TileState is the persisted form of one tile.
type TileState struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Z       int    `json:"z"`
	Removed bool   `json:"removed"`
}

// Snapshot is the persisted form of a game in progress.
type Snapshot struct {
	LayoutID       string      `json:"layout_id"`
	Tiles          []TileState `json:"tiles"`
	SelectedTileID int         `json:"selected_tile_id"` // -1 when nothing is selected
	ElapsedMs      int64       `json:"elapsed_ms"`
	StartTimeMs    int64       `json:"start_time_ms"`
}

// Remaining returns the number of tiles not yet removed.
func (s Snapshot) Remaining() int {
	n := 0
	for _, ts := range s.Tiles {
		if !ts.Removed {
			n++
		}
	}
	return n
}

// SnapshotBoard captures the tiles of b.
func SnapshotBoard(b *Board) []TileState {
	states := make([]TileState, len(b.tiles))
	for i, t := range b.tiles {
		states[i] = TileState{
			ID:      t.ID,
			Type:    t.Type.String(),
			X:       t.Pos.X,
			Y:       t.Pos.Y,
			Z:       t.Pos.Z,
			Removed: t.Removed,
		}
	}
	return states
}

// BoardFromSnapshot rebuilds a board from a snapshot, including the removed
// flags and the selection.
func BoardFromSnapshot(s Snapshot) (*Board, error) {
	if len(s.Tiles) == 0 {
		return nil, ErrEmptySnapshot
	}

	tiles := make([]*Tile, 0, len(s.Tiles))
	seen := make(map[int]bool, len(s.Tiles))
	for _, ts := range s.Tiles {
		typ, ok := ParseTileType(ts.Type)
		if !ok {
			return nil, fmt.Errorf("tile %d: %w: %q", ts.ID, ErrUnknownTileType, ts.Type)
		}
		if seen[ts.ID] {
			return nil, fmt.Errorf("tile %d: %w", ts.ID, ErrDuplicateTileID)
		}
		seen[ts.ID] = true

		t := NewTile(ts.ID, typ, P(ts.X, ts.Y, ts.Z))
		t.Removed = ts.Removed
		tiles = append(tiles, t)
	}

	b := NewBoard(s.LayoutID, tiles)
	if sel := b.TileByID(s.SelectedTileID); s.SelectedTileID >= 0 && sel != nil && !sel.Removed {
		b.SetSelected(sel)
	}
	return b, nil
}
