package mahjong

import (
	"strings"
	"testing"

	platformcore "github.com/vovakirdan/tui-mahjong/internal/core"
	"github.com/vovakirdan/tui-mahjong/internal/config"
	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
	"github.com/vovakirdan/tui-mahjong/internal/registry"
)

// gridLayout places tiles two cells apart so every tile is free.
func gridLayout(id string, cols, rows int) core.Layout {
	l := core.Layout{ID: id, Name: "Grid " + id, Difficulty: 1}
	for y := range rows {
		for x := range cols {
			l.Positions = append(l.Positions, core.P(x*2, y*2, 0))
		}
	}
	return l
}

func setupGame(t *testing.T, fixed string, g *Game) *Game {
	t.Helper()
	cfg := config.DefaultMahjongConfig()
	cfg.Game.Difficulty = "easy"
	cfg.Game.LayoutMode = "fixed"
	cfg.Game.FixedLayout = fixed
	SetConfig(cfg)
	SetCatalog(core.LayoutList{
		gridLayout("pair", 2, 1),
		gridLayout("six", 3, 2),
	})
	t.Cleanup(func() {
		SetConfig(config.DefaultMahjongConfig())
		SetCatalog(nil)
	})

	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7})
	return g
}

func press(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func cursorPos(g *Game) core.Position {
	t := g.Session().Board().TileByID(g.cursor)
	if t == nil {
		return core.P(-1, -1, -1)
	}
	return t.Pos
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{GameID, ProgressiveGameID} {
		if !registry.Exists(id) {
			t.Errorf("game %q is not registered", id)
		}
	}
	g, err := registry.Create(ProgressiveGameID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.Title() != "Mahjong Progressive" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestResetDealsFixedLayout(t *testing.T) {
	g := setupGame(t, "six", New())

	board := g.Session().Board()
	if board == nil || board.Len() != 6 {
		t.Fatalf("expected a 6-tile board, got %v", board)
	}
	if g.Session().Layout().ID != "six" {
		t.Errorf("layout = %q, want six", g.Session().Layout().ID)
	}
	if got := cursorPos(g); got != core.P(0, 0, 0) {
		t.Errorf("cursor starts at %v, want top-left tile", got)
	}
	if st := g.State(); st.GameOver || st.Won {
		t.Errorf("fresh game state = %+v", st)
	}
}

func TestCursorMovement(t *testing.T) {
	g := setupGame(t, "six", New())

	steps := []struct {
		action platformcore.Action
		want   core.Position
	}{
		{platformcore.ActionRight, core.P(2, 0, 0)},
		{platformcore.ActionDown, core.P(2, 2, 0)},
		{platformcore.ActionLeft, core.P(0, 2, 0)},
		{platformcore.ActionUp, core.P(0, 0, 0)},
		{platformcore.ActionLeft, core.P(0, 0, 0)}, // nothing further left
	}
	for i, s := range steps {
		g.Step(press(s.action))
		if got := cursorPos(g); got != s.want {
			t.Fatalf("step %d (%s): cursor at %v, want %v", i, s.action, got, s.want)
		}
	}
}

func TestClearingBoardWins(t *testing.T) {
	g := setupGame(t, "pair", New())

	g.Step(press(platformcore.ActionSelect))
	if sel := g.Session().Board().Selected(); sel == nil || sel.Pos != core.P(0, 0, 0) {
		t.Fatalf("selected = %v, want the tile under the cursor", sel)
	}

	g.Step(press(platformcore.ActionRight))
	g.Step(press(platformcore.ActionSelect))

	st := g.State()
	if !st.Won || !st.GameOver {
		t.Fatalf("state after clearing = %+v, want won", st)
	}
	if st.Score <= 0 {
		t.Errorf("score = %d, want positive", st.Score)
	}

	r := g.Result()
	if !r.Won || r.TilesRemoved != 2 || r.LayoutID != "pair" || r.Difficulty != "easy" {
		t.Errorf("Result() = %+v", r)
	}
	if _, ok := g.Snapshot(); ok {
		t.Error("a finished game should not produce a snapshot")
	}

	// Restart deals a fresh board.
	g.Step(press(platformcore.ActionRestart))
	if g.State().GameOver {
		t.Error("restart should start a new game")
	}
	if g.Session().GamesPlayed() != 2 {
		t.Errorf("games played = %d, want 2", g.Session().GamesPlayed())
	}
}

func TestHintCountsAgainstScore(t *testing.T) {
	g := setupGame(t, "pair", New())
	before := g.State().Score

	g.Step(press(platformcore.ActionHint))
	if g.hints != 1 || g.hintA < 0 || g.hintB < 0 {
		t.Fatalf("hint not recorded: hints=%d a=%d b=%d", g.hints, g.hintA, g.hintB)
	}
	if g.cursor != g.hintA {
		t.Error("cursor should jump to the first hinted tile")
	}
	if after := g.State().Score; after > before {
		t.Errorf("score rose after a hint: %d -> %d", before, after)
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := setupGame(t, "six", New())

	g.Step(press(platformcore.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	g.Step(press(platformcore.ActionSelect))
	if g.Session().Board().Selected() != nil {
		t.Error("select while paused should be ignored")
	}
	g.Step(press(platformcore.ActionPause))
	if g.State().Paused {
		t.Error("expected unpaused")
	}
}

func TestSnapshotRestore(t *testing.T) {
	g := setupGame(t, "six", New())

	a, b, ok := g.Session().Hint()
	if !ok {
		t.Fatal("expected a hint on a fresh board")
	}
	g.Session().SelectTile(a)
	g.Session().SelectTile(b)

	snap, ok := g.Snapshot()
	if !ok {
		t.Fatal("Snapshot() failed")
	}

	g.Step(press(platformcore.ActionNewGame))
	if g.pairs != 0 {
		t.Fatalf("new game kept %d pairs", g.pairs)
	}

	if err := g.Restore(snap); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if g.pairs != 1 {
		t.Errorf("pairs after restore = %d, want 1", g.pairs)
	}
	if g.Session().Board().RemainingCount() != 4 {
		t.Errorf("remaining = %d, want 4", g.Session().Board().RemainingCount())
	}
	if err := g.Restore(core.Snapshot{}); err == nil {
		t.Error("restoring an empty snapshot should fail")
	}
}

func TestProgressiveMovesToNextLayout(t *testing.T) {
	g := setupGame(t, "", NewProgressive())
	if g.Session().Layout().ID != "pair" {
		t.Fatalf("progressive starts on %q, want pair", g.Session().Layout().ID)
	}

	g.Step(press(platformcore.ActionSelect))
	g.Step(press(platformcore.ActionRight))
	g.Step(press(platformcore.ActionSelect))
	if !g.State().Won {
		t.Fatal("expected the pair layout to be won")
	}

	g.Step(press(platformcore.ActionRestart))
	if g.Session().Layout().ID != "six" {
		t.Errorf("next layout = %q, want six", g.Session().Layout().ID)
	}
}

func TestRender(t *testing.T) {
	g := setupGame(t, "six", New())

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "Grid six") {
		t.Error("HUD should show the layout name")
	}
	if !strings.Contains(out, "Tiles: 6/6") {
		t.Error("HUD should show the tile count")
	}
	for _, tile := range g.Session().Board().Tiles() {
		if !strings.Contains(out, tile.Type.Glyph()) {
			t.Errorf("glyph %s not drawn", tile.Type.Glyph())
		}
	}
	if !strings.Contains(out, "┃") {
		t.Error("cursor tile should use heavy edges")
	}

	small := platformcore.NewScreen(20, 8)
	g.Render(small)
	if !strings.Contains(small.String(), "small") {
		t.Error("a board that does not fit should show a warning")
	}
}
