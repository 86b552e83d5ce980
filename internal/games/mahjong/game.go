// Package mahjong provides the mahjong solitaire game for the terminal
// platform. It drives a core.Session from the platform's input frames and
// draws the board into the platform's screen buffer.
package mahjong

import (
	"fmt"
	"sync"
	"time"

	platformcore "github.com/vovakirdan/tui-mahjong/internal/core"
	"github.com/vovakirdan/tui-mahjong/internal/config"
	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/layouts"
	"github.com/vovakirdan/tui-mahjong/internal/registry"
	"github.com/vovakirdan/tui-mahjong/internal/storage"
)

// Registered game ids.
const (
	GameID            = "mahjong"
	ProgressiveGameID = "mahjong_progressive"
)

// Package-level settings shared by every game instance, set by the CLI
// before the platform creates games.
var (
	settingsMu sync.RWMutex
	gameConfig = config.DefaultMahjongConfig()
	catalog    core.LayoutProvider
)

// SetConfig sets the configuration used by games created afterwards.
func SetConfig(cfg config.MahjongConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	gameConfig = cfg
}

// SetCatalog sets the layouts games deal from. Nil restores the built-ins.
func SetCatalog(p core.LayoutProvider) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	catalog = p
}

func settings() (config.MahjongConfig, core.LayoutProvider) {
	settingsMu.RLock()
	cfg, p := gameConfig, catalog
	settingsMu.RUnlock()

	if p == nil {
		builtin, err := layouts.Builtin()
		if err != nil {
			return cfg, core.LayoutList{}
		}
		p = builtin
	}
	return cfg, p
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(ProgressiveGameID, func() registry.Game {
		return NewProgressive()
	})
}

// Game implements registry.Game for mahjong solitaire. It is also the
// session's listener, so board events update the cursor and status line.
type Game struct {
	id    string
	title string
	mode  core.LayoutMode // forced layout mode, empty means use the config

	cfg      config.MahjongConfig
	override *config.MahjongConfig
	session  *core.Session
	scorer   *config.Scorer

	screenW int
	screenH int

	cursor  int // id of the tile under the cursor, -1 for none
	hintA   int
	hintB   int
	pairs   int
	hints   int
	stuck   bool
	paused  bool
	message string
}

var _ core.Listener = (*Game)(nil)

// New creates a game whose layout mode comes from the configuration.
func New() *Game {
	return &Game{id: GameID, title: "Mahjong", cursor: -1, hintA: -1, hintB: -1}
}

// NewProgressive creates a game that walks through the layouts in order,
// moving to the next one after each win.
func NewProgressive() *Game {
	g := New()
	g.id = ProgressiveGameID
	g.title = "Mahjong Progressive"
	g.mode = core.ModeProgressive
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// UseConfig makes this instance ignore the package configuration. The SSH
// server uses it so that every connection keeps its own settings.
func (g *Game) UseConfig(cfg config.MahjongConfig) {
	g.override = &cfg
}

// Reset builds a new session and deals the first board.
func (g *Game) Reset(rc platformcore.RuntimeConfig) {
	cfg, provider := settings()
	if g.override != nil {
		cfg = *g.override
	}
	g.cfg = cfg
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.paused = false

	sessionCfg := cfg.SessionConfig()
	if g.mode != "" {
		sessionCfg.LayoutMode = g.mode
	}
	g.scorer = config.NewScorer(cfg.Scoring, sessionCfg.Difficulty)
	g.session = core.NewSession(provider, core.NewGenerator(rc.Seed),
		core.WithConfig(sessionCfg),
		core.WithListener(g),
	)
	g.session.StartNewGame()
}

// Session exposes the underlying session.
func (g *Game) Session() *core.Session {
	return g.session
}

// Snapshot captures the game in progress. It returns false when there is
// nothing worth saving: no game, or a game that is already over.
func (g *Game) Snapshot() (core.Snapshot, bool) {
	if g.session == nil || g.session.IsOver() {
		return core.Snapshot{}, false
	}
	return g.session.Snapshot()
}

// Restore resumes a saved game. Reset must have been called first.
func (g *Game) Restore(snap core.Snapshot) error {
	if g.session == nil {
		return fmt.Errorf("mahjong: restore before reset")
	}
	if err := g.session.Restore(snap); err != nil {
		return err
	}
	b := g.session.Board()
	g.pairs = (b.Len() - b.RemainingCount()) / 2
	g.message = "Resumed " + g.session.Layout().Name
	return nil
}

// Result summarises the current game for the scoreboard.
func (g *Game) Result() storage.Result {
	r := storage.Result{GameID: g.id}
	if g.session == nil || g.session.Board() == nil {
		return r
	}
	b := g.session.Board()
	r.LayoutID = b.LayoutID()
	r.Difficulty = string(g.session.Config().Difficulty)
	r.Won = g.session.Won()
	r.Elapsed = g.session.Elapsed()
	r.TilesRemoved = b.Len() - b.RemainingCount()
	r.Score = g.State().Score
	return r
}

// Step applies one tick of input.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.session == nil || in.Empty() {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionNewGame) || (in.Has(platformcore.ActionRestart) && g.gameOver()) {
		g.session.StartNewGame()
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) && !g.gameOver() {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver() {
		return platformcore.StepResult{State: g.State()}
	}

	switch {
	case in.Has(platformcore.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(platformcore.ActionRight):
		g.moveCursor(1, 0)
	case in.Has(platformcore.ActionUp):
		g.moveCursor(0, -1)
	case in.Has(platformcore.ActionDown):
		g.moveCursor(0, 1)
	}

	if in.Has(platformcore.ActionHint) {
		g.showHint()
	}
	if in.Has(platformcore.ActionSelect) && g.cursor >= 0 {
		g.session.SelectTileID(g.cursor)
	}

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) showHint() {
	a, b, ok := g.session.Hint()
	if !ok {
		g.message = "No moves left"
		return
	}
	g.hints++
	g.hintA, g.hintB = a.ID, b.ID
	g.cursor = a.ID
	g.message = fmt.Sprintf("Hint: %s", a.Type.Glyph())
}

func (g *Game) gameOver() bool {
	return g.session.Won() || g.stuck
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{}
	}
	won := g.session.Won()
	return platformcore.GameState{
		Score:    g.scorer.Score(g.pairs, g.hints, g.session.Elapsed(), won),
		GameOver: won || g.stuck,
		Won:      won,
		Paused:   g.paused,
	}
}

// OnGameStarted resets per-game counters and puts the cursor on a free tile.
func (g *Game) OnGameStarted(board *core.Board) {
	g.pairs = 0
	g.hints = 0
	g.stuck = false
	g.paused = false
	g.hintA, g.hintB = -1, -1
	g.cursor = -1
	g.placeCursor(board)
}

// OnGameWon sets the victory message.
func (g *Game) OnGameWon(_ *core.Board, elapsed time.Duration) {
	g.message = "Cleared in " + formatElapsed(elapsed)
}

// OnGameLost marks the board as stuck.
func (g *Game) OnGameLost(*core.Board) {
	g.stuck = true
	g.message = "No more moves"
}

// OnTileSelected clears a stale hint once the player picks something else.
func (g *Game) OnTileSelected(tile *core.Tile) {
	if tile != nil && tile.ID != g.hintA && tile.ID != g.hintB {
		g.hintA, g.hintB = -1, -1
	}
}

// OnTilesRemoved counts the pair and moves the cursor off the removed tiles.
func (g *Game) OnTilesRemoved(a, b *core.Tile) {
	g.pairs++
	g.hintA, g.hintB = -1, -1
	g.message = fmt.Sprintf("Removed %s pair", a.Type.Glyph())
	if g.cursor == a.ID || g.cursor == b.ID {
		g.cursor = -1
		g.placeCursor(g.session.Board())
	}
}

// OnLayoutChanged shows the layout name.
func (g *Game) OnLayoutChanged(layout core.Layout) {
	g.message = layout.Name
}

// placeCursor puts the cursor on the free tile closest to the top-left
// when it is not already on a live tile.
func (g *Game) placeCursor(board *core.Board) {
	if board == nil {
		return
	}
	if t := board.TileByID(g.cursor); t != nil && !t.Removed {
		return
	}
	g.cursor = -1
	best := 0
	for _, t := range board.FreeTiles() {
		x, y := project(t.Pos)
		score := y*1000 + x
		if g.cursor < 0 || score < best {
			g.cursor, best = t.ID, score
		}
	}
}

// moveCursor jumps to the nearest free tile in the given direction using
// the tiles' positions on screen. Off-axis distance costs double so that
// movement prefers to stay in the same row or column.
func (g *Game) moveCursor(dx, dy int) {
	board := g.session.Board()
	cur := board.TileByID(g.cursor)
	if cur == nil || cur.Removed {
		g.placeCursor(board)
		return
	}
	cx, cy := project(cur.Pos)

	next, best := -1, 0
	for _, t := range board.FreeTiles() {
		if t.ID == cur.ID {
			continue
		}
		tx, ty := project(t.Pos)
		along := (tx-cx)*dx + (ty-cy)*dy
		if along <= 0 {
			continue
		}
		across := platformcore.Abs((tx-cx)*dy) + platformcore.Abs((ty-cy)*dx)
		cost := along + 2*across
		if next < 0 || cost < best {
			next, best = t.ID, cost
		}
	}
	if next >= 0 {
		g.cursor = next
	}
}

// project maps a grid position to character coordinates relative to the
// board origin. Higher layers shift up and left by one cell.
func project(p core.Position) (int, int) {
	return p.X*tileW - p.Z, p.Y*tileH - p.Z
}

func formatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
