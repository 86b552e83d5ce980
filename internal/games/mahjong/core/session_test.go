package core_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

// recorder logs listener events as short strings.
type recorder struct {
	events  []string
	elapsed time.Duration
}

func (r *recorder) OnGameStarted(b *core.Board) {
	r.events = append(r.events, fmt.Sprintf("started:%s", b.LayoutID()))
}

func (r *recorder) OnGameWon(b *core.Board, elapsed time.Duration) {
	r.elapsed = elapsed
	r.events = append(r.events, "won")
}

func (r *recorder) OnGameLost(*core.Board) {
	r.events = append(r.events, "lost")
}

func (r *recorder) OnTileSelected(t *core.Tile) {
	if t == nil {
		r.events = append(r.events, "selected:none")
		return
	}
	r.events = append(r.events, fmt.Sprintf("selected:%d", t.ID))
}

func (r *recorder) OnTilesRemoved(a, b *core.Tile) {
	r.events = append(r.events, fmt.Sprintf("removed:%d,%d", a.ID, b.ID))
}

func (r *recorder) OnLayoutChanged(l core.Layout) {
	r.events = append(r.events, fmt.Sprintf("layout:%s", l.ID))
}

func (r *recorder) String() string {
	return strings.Join(r.events, " ")
}

func (r *recorder) reset() {
	r.events = nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func testLayouts() core.LayoutList {
	return core.LayoutList{
		spreadLayout("alpha", 8),
		spreadLayout("beta", 4),
		spreadLayout("gamma", 6),
	}
}

func newTestSession(t *testing.T, cfg core.Config) (*core.Session, *recorder, *fakeClock) {
	t.Helper()
	rec := &recorder{}
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	s := core.NewSession(testLayouts(), core.NewGenerator(11),
		core.WithConfig(cfg),
		core.WithListener(rec),
		core.WithClock(clock.Now),
	)
	return s, rec, clock
}

// restoreTiles loads a hand-built board into the session.
func restoreTiles(t *testing.T, s *core.Session, placed ...placement) {
	t.Helper()
	snap := core.Snapshot{LayoutID: "alpha", SelectedTileID: -1}
	for i, p := range placed {
		snap.Tiles = append(snap.Tiles, core.TileState{
			ID: i, Type: p.typ.String(), X: p.x, Y: p.y, Z: p.z,
		})
	}
	if err := s.Restore(snap); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
}

func TestStartNewGame(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.LayoutMode = core.ModeFixed
	cfg.FixedLayoutID = "beta"
	s, rec, _ := newTestSession(t, cfg)

	if s.Board() != nil {
		t.Fatal("Board() should be nil before the first game")
	}
	if s.SelectTile(nil) {
		t.Error("SelectTile without a board should return false")
	}

	s.StartNewGame()

	if got := rec.String(); got != "layout:beta started:beta" {
		t.Errorf("events = %q, want layout change then start", got)
	}
	if s.Board() == nil || s.Board().Len() != 4 {
		t.Fatalf("Board() = %v, want 4 tiles", s.Board())
	}
	if s.Layout().ID != "beta" {
		t.Errorf("Layout().ID = %q, want beta", s.Layout().ID)
	}
	if s.GamesPlayed() != 1 {
		t.Errorf("GamesPlayed() = %d, want 1", s.GamesPlayed())
	}
	if n := s.DealAttempts(); n < 1 || n > core.MaxGenerateAttempts {
		t.Errorf("DealAttempts() = %d, want 1..%d", n, core.MaxGenerateAttempts)
	}

	s.StartNewGame()
	if s.GamesPlayed() != 2 {
		t.Errorf("GamesPlayed() = %d, want 2", s.GamesPlayed())
	}
}

func TestStartNewGameWithLayout(t *testing.T) {
	s, _, _ := newTestSession(t, core.DefaultConfig())
	s.StartNewGameWithLayout("gamma")

	if s.Layout().ID != "gamma" {
		t.Errorf("Layout().ID = %q, want gamma", s.Layout().ID)
	}
	cfg := s.Config()
	if cfg.LayoutMode != core.ModeFixed || cfg.FixedLayoutID != "gamma" {
		t.Errorf("Config() = %+v, want fixed gamma", cfg)
	}

	s.StartNewGameWithLayout("missing")
	if s.Layout().ID != "alpha" {
		t.Errorf("unknown layout should fall back to the first, got %q", s.Layout().ID)
	}
}

func TestSelectLayout(t *testing.T) {
	tests := []struct {
		name string
		cfg  core.Config
		want string
	}{
		{"fixed", core.Config{LayoutMode: core.ModeFixed, FixedLayoutID: "gamma"}, "gamma"},
		{"progressive start", core.Config{LayoutMode: core.ModeProgressive}, "alpha"},
		{"progressive index", core.Config{LayoutMode: core.ModeProgressive, ProgressiveIndex: 1}, "beta"},
		{"progressive wraps", core.Config{LayoutMode: core.ModeProgressive, ProgressiveIndex: 5}, "gamma"},
		{"unknown mode", core.Config{LayoutMode: "sideways"}, "alpha"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _, _ := newTestSession(t, tc.cfg)
			if got := s.SelectLayout().ID; got != tc.want {
				t.Errorf("SelectLayout() = %q, want %q", got, tc.want)
			}
		})
	}

	t.Run("fixed without id is random", func(t *testing.T) {
		s, _, _ := newTestSession(t, core.Config{LayoutMode: core.ModeFixed})
		ids := map[string]bool{"alpha": true, "beta": true, "gamma": true}
		for i := 0; i < 20; i++ {
			if got := s.SelectLayout().ID; !ids[got] {
				t.Fatalf("SelectLayout() = %q, not in catalog", got)
			}
		}
	})
}

func TestSelectionStateMachine(t *testing.T) {
	s, rec, _ := newTestSession(t, core.DefaultConfig())
	restoreTiles(t, s,
		placement{core.Character1, 0, 0, 0},
		placement{core.Character2, 2, 0, 0},
		placement{core.Character1, 4, 0, 0},
		placement{core.Character2, 6, 0, 0},
	)
	b := s.Board()
	tiles := b.Tiles()
	rec.reset()

	// Select, then deselect the same tile.
	if s.SelectTile(tiles[0]) {
		t.Error("first pick should not remove anything")
	}
	if b.Selected() != tiles[0] {
		t.Error("tile 0 should be selected")
	}
	s.SelectTile(tiles[0])
	if b.Selected() != nil {
		t.Error("picking the selected tile again should deselect")
	}

	// Mismatch moves the selection to the new tile.
	s.SelectTile(tiles[0])
	if s.SelectTile(tiles[1]) {
		t.Error("mismatched pick should not remove")
	}
	if b.Selected() != tiles[1] || tiles[0].Selected {
		t.Error("selection should move to tile 1")
	}

	// Match removes the pair.
	if !s.SelectTile(tiles[3]) {
		t.Fatal("matching pick should remove the pair")
	}
	if !tiles[1].Removed || !tiles[3].Removed {
		t.Error("pair should be removed")
	}
	if b.Selected() != nil {
		t.Error("selection should be cleared after removal")
	}

	// Removed tiles are ignored.
	if s.SelectTile(tiles[1]) || b.Selected() != nil {
		t.Error("removed tile should be ignored")
	}

	want := "selected:0 selected:none selected:0 selected:1 removed:1,3"
	if got := rec.String(); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}

	s.SelectTile(tiles[0])
	s.SelectTile(tiles[2])
	if !strings.HasSuffix(rec.String(), "removed:0,2 won") {
		t.Errorf("events = %q, want removal then win", rec.String())
	}
}

func TestSelectBlockedTileIgnored(t *testing.T) {
	s, rec, _ := newTestSession(t, core.DefaultConfig())
	restoreTiles(t, s,
		placement{core.Circle9, 0, 0, 0},
		placement{core.Circle9, 0, 0, 1},
	)
	rec.reset()

	bottom := s.Board().TileAt(core.P(0, 0, 0))
	if s.SelectTile(bottom) || s.Board().Selected() != nil {
		t.Error("blocked tile should not be selectable")
	}
	if len(rec.events) != 0 {
		t.Errorf("blocked pick emitted %q", rec.String())
	}
}

func TestSelectTileUsesBoardIdentity(t *testing.T) {
	s, _, _ := newTestSession(t, core.DefaultConfig())
	restoreTiles(t, s,
		placement{core.Circle9, 0, 0, 0},
		placement{core.Circle9, 2, 0, 0},
	)

	// A copy with the same id refers to the board's tile.
	copyOf := *s.Board().TileByID(0)
	s.SelectTile(&copyOf)
	if sel := s.Board().Selected(); sel == nil || sel.ID != 0 {
		t.Errorf("Selected() = %v, want tile 0", sel)
	}

	if !s.SelectTileID(1) {
		t.Error("SelectTileID(1) should remove the pair")
	}
	if s.SelectTileID(42) {
		t.Error("unknown id should be ignored")
	}
}

func TestStuckDetection(t *testing.T) {
	s, rec, _ := newTestSession(t, core.DefaultConfig())
	restoreTiles(t, s,
		placement{core.Bamboo1, 0, 0, 0},
		placement{core.Bamboo1, 4, 0, 0},
		placement{core.WindNorth, 8, 0, 0},
		placement{core.WindNorth, 8, 0, 1},
	)
	rec.reset()

	s.SelectTileID(0)
	s.SelectTileID(1)

	if got := rec.String(); got != "selected:0 removed:0,1 lost" {
		t.Errorf("events = %q, want loss after the last free pair", got)
	}
	if s.GamesWon() != 0 {
		t.Errorf("GamesWon() = %d, want 0", s.GamesWon())
	}
	if !s.IsOver() {
		t.Error("IsOver() should report a stuck game")
	}
}

func TestNilSelectionRechecksBoard(t *testing.T) {
	s, rec, clock := newTestSession(t, core.DefaultConfig())
	s.StartNewGame()
	rec.reset()

	clock.Advance(90 * time.Second)
	for _, tile := range s.Board().Tiles() {
		tile.Removed = true
	}
	if s.SelectTile(nil) {
		t.Error("SelectTile(nil) should return false")
	}

	if rec.String() != "won" {
		t.Errorf("events = %q, want won", rec.String())
	}
	if rec.elapsed != 90*time.Second {
		t.Errorf("elapsed = %v, want 90s", rec.elapsed)
	}
	if s.GamesWon() != 1 {
		t.Errorf("GamesWon() = %d, want 1", s.GamesWon())
	}

	// A won game is only counted once and its clock stays stopped.
	clock.Advance(time.Minute)
	s.SelectTile(nil)
	if s.GamesWon() != 1 || rec.String() != "won" {
		t.Errorf("repeat check changed state: won=%d events=%q", s.GamesWon(), rec.String())
	}
	if s.Elapsed() != 90*time.Second {
		t.Errorf("Elapsed() = %v, want frozen 90s", s.Elapsed())
	}
}

func TestProgressiveAdvancesOnWin(t *testing.T) {
	s, rec, _ := newTestSession(t, core.Config{
		Difficulty: core.DifficultyEasy,
		LayoutMode: core.ModeProgressive,
	})
	s.StartNewGame()
	if s.Layout().ID != "alpha" {
		t.Fatalf("first progressive layout = %q, want alpha", s.Layout().ID)
	}

	for {
		a, b, ok := s.Hint()
		if !ok {
			break
		}
		s.SelectTile(a)
		if !s.SelectTile(b) {
			t.Fatalf("hinted pair %s, %s was not removed", a, b)
		}
	}

	if !s.Board().IsGameWon() {
		t.Fatal("open board should be cleared by following hints")
	}
	if got := s.Config().ProgressiveIndex; got != 1 {
		t.Errorf("ProgressiveIndex = %d, want 1", got)
	}
	if !strings.HasSuffix(rec.String(), "won") {
		t.Errorf("events = %q, want a win", rec.String())
	}

	s.StartNewGame()
	if s.Layout().ID != "beta" {
		t.Errorf("next progressive layout = %q, want beta", s.Layout().ID)
	}
}

func TestHint(t *testing.T) {
	s, _, _ := newTestSession(t, core.DefaultConfig())
	if _, _, ok := s.Hint(); ok {
		t.Error("Hint() without a board should fail")
	}

	restoreTiles(t, s,
		placement{core.Circle4, 0, 0, 0},
		placement{core.SeasonSummer, 2, 0, 0},
		placement{core.Circle4, 4, 0, 1},
		placement{core.SeasonAutumn, 6, 0, 0},
	)
	a, b, ok := s.Hint()
	if !ok {
		t.Fatal("Hint() found nothing")
	}
	if a.ID != 0 || b.ID != 2 {
		t.Errorf("Hint() = %d, %d, want first pair in board order 0, 2", a.ID, b.ID)
	}
	if !a.CanMatch(b) || !s.Board().IsTileFree(a) || !s.Board().IsTileFree(b) {
		t.Error("hinted tiles must be free and matching")
	}

	restoreTiles(t, s,
		placement{core.Circle4, 0, 0, 0},
		placement{core.Circle5, 2, 0, 0},
	)
	if _, _, ok := s.Hint(); ok {
		t.Error("Hint() should fail without a matching pair")
	}
}

func TestSnapshotRestore(t *testing.T) {
	s, _, clock := newTestSession(t, core.DefaultConfig())
	restoreTiles(t, s,
		placement{core.DragonRed, 0, 0, 0},
		placement{core.DragonRed, 2, 0, 0},
		placement{core.FlowerPlum, 4, 0, 0},
		placement{core.FlowerOrchid, 6, 0, 0},
	)
	s.SelectTileID(0)
	s.SelectTileID(1)
	s.SelectTileID(3)
	clock.Advance(42 * time.Second)

	snap, ok := s.Snapshot()
	if !ok {
		t.Fatal("Snapshot() failed with a board")
	}
	if snap.SelectedTileID != 3 {
		t.Errorf("SelectedTileID = %d, want 3", snap.SelectedTileID)
	}
	if snap.ElapsedMs != 42_000 {
		t.Errorf("ElapsedMs = %d, want 42000", snap.ElapsedMs)
	}
	if snap.Remaining() != 2 {
		t.Errorf("Remaining() = %d, want 2", snap.Remaining())
	}
	if snap.Tiles[2].Type != "FLOWER_PLUM" {
		t.Errorf("tile 2 type = %q, want FLOWER_PLUM", snap.Tiles[2].Type)
	}

	other, rec, otherClock := newTestSession(t, core.DefaultConfig())
	if err := other.Restore(snap); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got := rec.String(); got != "layout:alpha started:alpha" {
		t.Errorf("events = %q", got)
	}
	if other.GamesPlayed() != 0 {
		t.Errorf("GamesPlayed() = %d, restore should not count a game", other.GamesPlayed())
	}
	if other.DealAttempts() != 0 {
		t.Errorf("DealAttempts() = %d, a restored game was not dealt", other.DealAttempts())
	}

	b := other.Board()
	if !b.TileByID(0).Removed || !b.TileByID(1).Removed || b.TileByID(2).Removed {
		t.Error("removed flags not restored")
	}
	if sel := b.Selected(); sel == nil || sel.ID != 3 {
		t.Errorf("Selected() = %v, want tile 3", sel)
	}

	otherClock.Advance(8 * time.Second)
	if other.Elapsed() != 50*time.Second {
		t.Errorf("Elapsed() = %v, want 50s", other.Elapsed())
	}

	if !other.SelectTileID(2) {
		t.Error("restored game should be playable")
	}
}

func TestRestoreIgnoresStartTime(t *testing.T) {
	s, _, _ := newTestSession(t, core.DefaultConfig())
	restoreTiles(t, s,
		placement{core.DragonRed, 0, 0, 0},
		placement{core.DragonRed, 2, 0, 0},
	)
	snap, _ := s.Snapshot()
	snap.ElapsedMs = 90_000
	snap.StartTimeMs = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	other, _, clock := newTestSession(t, core.DefaultConfig())
	if err := other.Restore(snap); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if other.Elapsed() != 90*time.Second {
		t.Errorf("Elapsed() = %v, want 1m30s from ElapsedMs alone", other.Elapsed())
	}

	clock.Advance(time.Second)
	if again, _ := other.Snapshot(); again.StartTimeMs != clock.Now().Add(-91*time.Second).UnixMilli() {
		t.Errorf("StartTimeMs = %d, want the resumed start", again.StartTimeMs)
	}
}

func TestRestoreErrors(t *testing.T) {
	tests := []struct {
		name string
		snap core.Snapshot
		want error
	}{
		{"empty", core.Snapshot{LayoutID: "alpha"}, core.ErrEmptySnapshot},
		{
			"unknown type",
			core.Snapshot{Tiles: []core.TileState{{ID: 0, Type: "JOKER"}}},
			core.ErrUnknownTileType,
		},
		{
			"duplicate id",
			core.Snapshot{Tiles: []core.TileState{
				{ID: 0, Type: "CIRCLE_1"},
				{ID: 0, Type: "CIRCLE_1", X: 2},
			}},
			core.ErrDuplicateTileID,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _, _ := newTestSession(t, core.DefaultConfig())
			s.StartNewGame()
			before := s.Board()

			err := s.Restore(tc.snap)
			if !errors.Is(err, tc.want) {
				t.Errorf("Restore() error = %v, want %v", err, tc.want)
			}
			if s.Board() != before {
				t.Error("failed restore must leave the session unchanged")
			}
		})
	}
}

func TestSnapshotWithoutGame(t *testing.T) {
	s, _, _ := newTestSession(t, core.DefaultConfig())
	if _, ok := s.Snapshot(); ok {
		t.Error("Snapshot() without a game should fail")
	}
}

func TestParseConfigValues(t *testing.T) {
	if d, ok := core.ParseDifficulty("HARD"); !ok || d != core.DifficultyHard {
		t.Errorf("ParseDifficulty(HARD) = %v, %v", d, ok)
	}
	if d, ok := core.ParseDifficulty("brutal"); ok || d != core.DifficultyMedium {
		t.Errorf("ParseDifficulty(brutal) = %v, %v, want medium fallback", d, ok)
	}
	if m, ok := core.ParseLayoutMode("Progressive"); !ok || m != core.ModeProgressive {
		t.Errorf("ParseLayoutMode(Progressive) = %v, %v", m, ok)
	}
	if m, ok := core.ParseLayoutMode(""); ok || m != core.ModeRandom {
		t.Errorf("ParseLayoutMode(\"\") = %v, %v, want random fallback", m, ok)
	}

	cfg := core.DefaultConfig()
	if cfg.Difficulty != core.DifficultyMedium || cfg.LayoutMode != core.ModeRandom || cfg.ProgressiveIndex != 0 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if core.DifficultyEasy.SolvableThreshold() >= core.DifficultyMedium.SolvableThreshold() {
		t.Error("easy threshold should be below medium")
	}
}
