package core

import "time"

// Listener receives session events. Callbacks run synchronously inside the
// Session call that triggered them.
type Listener interface {
	OnGameStarted(board *Board)
	OnGameWon(board *Board, elapsed time.Duration)
	OnGameLost(board *Board)
	// OnTileSelected receives nil when the selection is cleared.
	OnTileSelected(tile *Tile)
	OnTilesRemoved(a, b *Tile)
	OnLayoutChanged(layout Layout)
}

// NopListener ignores every event. Embed it to implement only some callbacks.
type NopListener struct{}

func (NopListener) OnGameStarted(*Board)            {}
func (NopListener) OnGameWon(*Board, time.Duration) {}
func (NopListener) OnGameLost(*Board)               {}
func (NopListener) OnTileSelected(*Tile)            {}
func (NopListener) OnTilesRemoved(*Tile, *Tile)     {}
func (NopListener) OnLayoutChanged(Layout)          {}

// Listeners fans events out to several listeners in order.
type Listeners []Listener

func (ls Listeners) OnGameStarted(board *Board) {
	for _, l := range ls {
		l.OnGameStarted(board)
	}
}

func (ls Listeners) OnGameWon(board *Board, elapsed time.Duration) {
	for _, l := range ls {
		l.OnGameWon(board, elapsed)
	}
}

func (ls Listeners) OnGameLost(board *Board) {
	for _, l := range ls {
		l.OnGameLost(board)
	}
}

func (ls Listeners) OnTileSelected(tile *Tile) {
	for _, l := range ls {
		l.OnTileSelected(tile)
	}
}

func (ls Listeners) OnTilesRemoved(a, b *Tile) {
	for _, l := range ls {
		l.OnTilesRemoved(a, b)
	}
}

func (ls Listeners) OnLayoutChanged(layout Layout) {
	for _, l := range ls {
		l.OnLayoutChanged(layout)
	}
}
