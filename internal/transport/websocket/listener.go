package websocket

import (
	"time"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

// Event names sent to spectators.
const (
	EventGameStarted      = "game_started"
	EventGameWon          = "game_won"
	EventGameLost         = "game_lost"
	EventTileSelected     = "tile_selected"
	EventSelectionCleared = "selection_cleared"
	EventTilesRemoved     = "tiles_removed"
	EventLayoutChanged    = "layout_changed"
)

// Event is the payload of a session event.
type Event struct {
	Event     string `json:"event"`
	TileIDs   []int  `json:"tile_ids,omitempty"`
	LayoutID  string `json:"layout_id,omitempty"`
	Remaining int    `json:"remaining"`
	ElapsedMs int64  `json:"elapsed_ms,omitempty"`
}

// Listener returns a core.Listener that forwards session events to the
// clients of sessionID. Attach it next to the game's own listener with
// core.Listeners.
func (h *Hub) Listener(sessionID string) core.Listener {
	return &feed{hub: h, sessionID: sessionID}
}

type feed struct {
	hub       *Hub
	sessionID string
	board     *core.Board
}

var _ core.Listener = (*feed)(nil)

func (f *feed) send(ev Event) {
	if f.board != nil {
		ev.Remaining = f.board.RemainingCount()
		if ev.LayoutID == "" {
			ev.LayoutID = f.board.LayoutID()
		}
	}
	f.hub.BroadcastEvent(f.sessionID, ev.Event, ev)
}

func (f *feed) OnGameStarted(board *core.Board) {
	f.board = board
	f.send(Event{Event: EventGameStarted})
}

func (f *feed) OnGameWon(board *core.Board, elapsed time.Duration) {
	f.board = board
	f.send(Event{Event: EventGameWon, ElapsedMs: elapsed.Milliseconds()})
}

func (f *feed) OnGameLost(board *core.Board) {
	f.board = board
	f.send(Event{Event: EventGameLost})
}

func (f *feed) OnTileSelected(tile *core.Tile) {
	if tile == nil {
		f.send(Event{Event: EventSelectionCleared})
		return
	}
	f.send(Event{Event: EventTileSelected, TileIDs: []int{tile.ID}})
}

func (f *feed) OnTilesRemoved(a, b *core.Tile) {
	f.send(Event{Event: EventTilesRemoved, TileIDs: []int{a.ID, b.ID}})
}

// OnLayoutChanged comes before the new board is dealt, so the previous board
// is dropped and the event reports a remaining count of 0.
func (f *feed) OnLayoutChanged(layout core.Layout) {
	f.board = nil
	f.send(Event{Event: EventLayoutChanged, LayoutID: layout.ID})
}
