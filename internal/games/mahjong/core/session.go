package core

import (
	"fmt"
	"time"
)

// Session runs consecutive games: it picks layouts, deals boards, tracks the
// selection and reports game events to its listener.
//
// A Session is not safe for concurrent use.
type Session struct {
	provider LayoutProvider
	gen      *Generator
	listener Listener
	now      func() time.Time

	cfg      Config
	board    *Board
	layout   Layout
	attempts int // boards dealt to get board, 0 when restored

	start   time.Time
	elapsed time.Duration // frozen once the game is won
	won     bool

	gamesWon    int
	gamesPlayed int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithConfig sets the initial configuration.
func WithConfig(cfg Config) SessionOption {
	return func(s *Session) { s.cfg = cfg }
}

// WithListener attaches a listener.
func WithListener(l Listener) SessionOption {
	return func(s *Session) { s.SetListener(l) }
}

// WithClock replaces time.Now, for tests and replays.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession creates a session with DefaultConfig and no game in progress.
// The generator also drives random layout selection.
func NewSession(provider LayoutProvider, gen *Generator, opts ...SessionOption) *Session {
	s := &Session{
		provider: provider,
		gen:      gen,
		listener: NopListener{},
		now:      time.Now,
		cfg:      DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetListener replaces the listener. A nil listener discards events.
func (s *Session) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	s.listener = l
}

// Config returns the current configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// SetConfig replaces the configuration. It takes effect on the next game.
func (s *Session) SetConfig(cfg Config) {
	s.cfg = cfg
}

// Board returns the current board, or nil before the first game.
func (s *Session) Board() *Board {
	return s.board
}

// Layout returns the layout of the current game.
func (s *Session) Layout() Layout {
	return s.layout
}

// DealAttempts returns how many boards the generator dealt before settling on
// the current one. It is 0 for a restored game.
func (s *Session) DealAttempts() int {
	return s.attempts
}

// GamesWon returns the number of games won in this session.
func (s *Session) GamesWon() int {
	return s.gamesWon
}

// GamesPlayed returns the number of games started in this session.
func (s *Session) GamesPlayed() int {
	return s.gamesPlayed
}

// Elapsed returns the play time of the current game. The clock stops when
// the game is won.
func (s *Session) Elapsed() time.Duration {
	if s.board == nil {
		return 0
	}
	if s.won {
		return s.elapsed
	}
	return s.now().Sub(s.start)
}

// SelectLayout picks the layout for the next game from the configuration.
// Fixed mode without an id behaves like random mode.
func (s *Session) SelectLayout() Layout {
	switch s.cfg.LayoutMode {
	case ModeFixed:
		if s.cfg.FixedLayoutID != "" {
			return s.provider.ByID(s.cfg.FixedLayoutID)
		}
		return s.randomLayout()
	case ModeRandom:
		return s.randomLayout()
	case ModeProgressive:
		n := s.provider.Count()
		if n <= 0 {
			return s.provider.ByIndex(0)
		}
		return s.provider.ByIndex(s.cfg.ProgressiveIndex % n)
	default:
		return s.provider.ByIndex(0)
	}
}

func (s *Session) randomLayout() Layout {
	return s.provider.ByIndex(s.gen.Intn(s.provider.Count()))
}

// StartNewGame deals a new board on the selected layout.
func (s *Session) StartNewGame() {
	layout := s.SelectLayout()

	var board *Board
	if s.cfg.Difficulty.usesSolvableGeneration() {
		board = s.gen.GenerateSolvableBoard(layout, s.cfg.Difficulty)
	} else {
		board = s.gen.GenerateBoard(layout, s.cfg.Difficulty)
	}

	s.layout = layout
	s.board = board
	s.attempts = s.gen.LastAttempts()
	s.start = s.now()
	s.elapsed = 0
	s.won = false
	s.gamesPlayed++

	s.listener.OnLayoutChanged(layout)
	s.listener.OnGameStarted(board)
}

// StartNewGameWithLayout switches to fixed mode on layoutID and starts a game.
func (s *Session) StartNewGameWithLayout(layoutID string) {
	s.cfg.LayoutMode = ModeFixed
	s.cfg.FixedLayoutID = layoutID
	s.StartNewGame()
}

// SelectTile feeds a player's pick into the selection state machine and
// reports whether it removed a pair.
//
// Picking the selected tile again clears the selection. Picking a second tile
// removes the pair when it matches; otherwise the new tile becomes the
// selection. Removed or blocked tiles are ignored. A nil tile only re-checks
// whether the game is won or stuck.
func (s *Session) SelectTile(tile *Tile) bool {
	if s.board == nil {
		return false
	}
	if tile == nil {
		s.checkGameEnd()
		return false
	}

	tile = s.board.TileByID(tile.ID)
	if tile == nil || tile.Removed || !s.board.IsTileFree(tile) {
		return false
	}

	selected := s.board.Selected()
	switch {
	case selected == nil:
		s.board.SetSelected(tile)
		s.listener.OnTileSelected(tile)
		return false

	case selected.Same(tile):
		s.board.SetSelected(nil)
		s.listener.OnTileSelected(nil)
		return false

	case s.board.RemovePair(selected, tile):
		s.listener.OnTilesRemoved(selected, tile)
		s.checkGameEnd()
		return true

	default:
		s.board.SetSelected(tile)
		s.listener.OnTileSelected(tile)
		return false
	}
}

// SelectTileID is SelectTile by tile id.
func (s *Session) SelectTileID(id int) bool {
	if s.board == nil {
		return false
	}
	tile := s.board.TileByID(id)
	if tile == nil {
		return false
	}
	return s.SelectTile(tile)
}

// checkGameEnd reports a win or a stuck board. A won game is counted once.
func (s *Session) checkGameEnd() {
	if s.won {
		return
	}
	if s.board.IsGameWon() {
		s.won = true
		s.elapsed = s.now().Sub(s.start)
		s.gamesWon++
		if s.cfg.LayoutMode == ModeProgressive {
			s.cfg.AdvanceProgressive()
		}
		s.listener.OnGameWon(s.board, s.elapsed)
		return
	}
	if s.board.IsGameStuck() {
		s.listener.OnGameLost(s.board)
	}
}

// Hint returns the first matching pair of free tiles in board order.
func (s *Session) Hint() (a, b *Tile, ok bool) {
	if s.board == nil {
		return nil, nil, false
	}
	free := s.board.FreeTiles()
	for i := 0; i < len(free); i++ {
		for j := i + 1; j < len(free); j++ {
			if free[i].CanMatch(free[j]) {
				return free[i], free[j], true
			}
		}
	}
	return nil, nil, false
}

// IsOver reports whether the current game is won or stuck.
func (s *Session) IsOver() bool {
	if s.board == nil {
		return false
	}
	return s.won || s.board.IsGameWon() || s.board.IsGameStuck()
}

// Won reports whether the current game has been won.
func (s *Session) Won() bool {
	return s.won
}

// Snapshot captures the current game. It returns false when no game has
// been started.
func (s *Session) Snapshot() (Snapshot, bool) {
	if s.board == nil {
		return Snapshot{}, false
	}
	selected := -1
	if t := s.board.Selected(); t != nil {
		selected = t.ID
	}
	return Snapshot{
		LayoutID:       s.board.LayoutID(),
		Tiles:          SnapshotBoard(s.board),
		SelectedTileID: selected,
		ElapsedMs:      s.Elapsed().Milliseconds(),
		StartTimeMs:    s.start.UnixMilli(),
	}, true
}

// Restore replaces the current game with the one in snap. The clock resumes
// from the stored elapsed time and the games-played counter is left alone.
// StartTimeMs is only a record of when the game began: time spent away from a
// saved game is not counted, so the clock never reads it.
// On error the session is unchanged.
func (s *Session) Restore(snap Snapshot) error {
	board, err := BoardFromSnapshot(snap)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	s.layout = s.provider.ByID(snap.LayoutID)
	s.board = board
	s.attempts = 0
	s.start = s.now().Add(-time.Duration(snap.ElapsedMs) * time.Millisecond)
	s.won = board.IsGameWon()
	s.elapsed = time.Duration(snap.ElapsedMs) * time.Millisecond

	s.listener.OnLayoutChanged(s.layout)
	s.listener.OnGameStarted(board)
	return nil
}
