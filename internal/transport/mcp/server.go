// Package mcp exposes a mahjong session to AI agents over the Model Context
// Protocol.
//
// Tools:
//   - new_game: deal a new board, optionally changing difficulty, mode or layout
//   - board_state: layout, progress and a per-layer picture of the board
//   - free_tiles: the tiles that can be picked right now
//   - select_tile: pick a tile by id, removing a pair when two match
//   - hint: a matching pair of free tiles, if there is one
//   - list_layouts: the layouts in the catalog
//   - snapshot: the game in progress as JSON, saved to the store when one is set
//
// A Server owns one session and serialises every tool call on it.
package mcp

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/tui-mahjong/internal/config"
	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
	"github.com/vovakirdan/tui-mahjong/internal/storage"
)

// ResultGameID tags results recorded by the MCP server.
const ResultGameID = "mahjong_mcp"

// DefaultSlot is the save slot used for agent games.
const DefaultSlot = "mcp"

// Options configures a Server.
type Options struct {
	Layouts  core.LayoutProvider
	Config   config.MahjongConfig
	Seed     int64
	Store    *storage.Store // optional: results and snapshots
	Slot     string         // save slot, DefaultSlot when empty
	Resume   bool           // restore the saved game instead of dealing
	Listener core.Listener  // optional extra listener, e.g. a spectator feed
	Logger   *log.Logger
}

// Server is an MCP server playing one mahjong session.
type Server struct {
	mu      sync.Mutex
	session *core.Session
	layouts core.LayoutProvider
	scoring config.ScoringConfig
	store   *storage.Store
	slot    string
	logger  *log.Logger

	pairs int
	hints int
	stuck bool

	mcpServer *server.MCPServer
}

var _ core.Listener = (*Server)(nil)

// NewServer creates a server and starts its first game.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	slot := opts.Slot
	if slot == "" {
		slot = DefaultSlot
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Server{
		layouts: opts.Layouts,
		scoring: opts.Config.Scoring,
		store:   opts.Store,
		slot:    slot,
		logger:  logger,
	}

	var listener core.Listener = s
	if opts.Listener != nil {
		listener = core.Listeners{s, opts.Listener}
	}
	s.session = core.NewSession(opts.Layouts, core.NewGenerator(seed),
		core.WithConfig(opts.Config.SessionConfig()),
		core.WithListener(listener),
	)

	if !opts.Resume || !s.resume() {
		s.session.StartNewGame()
	}

	s.initMCPServer()
	return s
}

// resume restores the saved game from the store and reports whether it did.
func (s *Server) resume() bool {
	if s.store == nil {
		return false
	}
	snap, ok, err := s.store.LoadSnapshot(s.slot)
	if err != nil {
		s.logger.Warn("could not load saved game", "slot", s.slot, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := s.session.Restore(snap); err != nil {
		s.logger.Warn("could not restore saved game", "slot", s.slot, "error", err)
		return false
	}
	b := s.session.Board()
	s.pairs = (b.Len() - b.RemainingCount()) / 2
	s.logger.Info("resumed saved game", "slot", s.slot, "layout", snap.LayoutID, "remaining", snap.Remaining())
	return true
}

func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Mahjong Solitaire",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)
	s.registerTools()
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the protocol on stdin and stdout until stdin closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Suspend stores the game in progress, or clears the slot when it is over.
func (s *Server) Suspend() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return
	}
	if s.session.IsOver() {
		if err := s.store.DeleteSnapshot(s.slot); err != nil {
			s.logger.Warn("could not clear saved game", "slot", s.slot, "error", err)
		}
		return
	}
	snap, ok := s.session.Snapshot()
	if !ok {
		return
	}
	if err := s.store.SaveSnapshot(s.slot, snap); err != nil {
		s.logger.Warn("could not save game", "slot", s.slot, "error", err)
	}
}

func (s *Server) score(won bool) int {
	return config.NewScorer(s.scoring, s.session.Config().Difficulty).
		Score(s.pairs, s.hints, s.session.Elapsed(), won)
}

// record saves a finished game to the store.
func (s *Server) record(board *core.Board, won bool) {
	r := storage.Result{
		GameID:       ResultGameID,
		LayoutID:     board.LayoutID(),
		Difficulty:   string(s.session.Config().Difficulty),
		Won:          won,
		Elapsed:      s.session.Elapsed(),
		TilesRemoved: board.Len() - board.RemainingCount(),
		Score:        s.score(won),
	}
	s.logger.Info("game over", "layout", r.LayoutID, "won", r.Won, "elapsed", r.Elapsed.Round(time.Second), "score", r.Score)

	if s.store == nil {
		return
	}
	if _, err := s.store.SaveResult(r); err != nil {
		s.logger.Warn("could not save result", "error", err)
	}
	if err := s.store.DeleteSnapshot(s.slot); err != nil {
		s.logger.Warn("could not clear saved game", "slot", s.slot, "error", err)
	}
}

// OnGameStarted resets the per-game counters.
func (s *Server) OnGameStarted(board *core.Board) {
	s.pairs = 0
	s.hints = 0
	s.stuck = false
	if n := s.session.DealAttempts(); n > 0 {
		s.logger.Debug("dealt board", "layout", board.LayoutID(), "tiles", board.Len(), "attempts", n)
	}
}

// OnGameWon records the win.
func (s *Server) OnGameWon(board *core.Board, _ time.Duration) {
	s.record(board, true)
}

// OnGameLost records a stuck board once.
func (s *Server) OnGameLost(board *core.Board) {
	if s.stuck {
		return
	}
	s.stuck = true
	s.record(board, false)
}

func (s *Server) OnTileSelected(*core.Tile) {}

// OnTilesRemoved counts the pair.
func (s *Server) OnTilesRemoved(_, _ *core.Tile) {
	s.pairs++
}

func (s *Server) OnLayoutChanged(layout core.Layout) {
	s.logger.Debug("layout", "id", layout.ID, "tiles", layout.TileCount())
}

const instructions = `Mahjong Solitaire - MCP Interface

Clear the board by removing matching pairs of free tiles.

RULES:
- A tile is free when nothing lies on top of it and its left or right side is open.
- Tiles match when their types are equal. Any flower matches any flower and any season matches any season.
- The game is won when every tile is removed and lost when no free pair is left.

TOOLS:
- new_game: start a new board (difficulty: easy/medium/hard, mode: fixed/random/progressive, layout_id)
- board_state: layout, progress and a picture of every layer
- free_tiles: tiles that can be picked now, with their ids
- select_tile: pick a tile by id; picking two matching free tiles removes them
- hint: a matching free pair (costs points)
- list_layouts: available layouts
- snapshot: save the game in progress`
