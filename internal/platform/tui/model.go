package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mahjong/internal/core"
	mjcore "github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
	"github.com/vovakirdan/tui-mahjong/internal/registry"
	"github.com/vovakirdan/tui-mahjong/internal/storage"
)

// resultReporter is implemented by games that describe a finished game in
// more detail than a bare score.
type resultReporter interface {
	Result() storage.Result
}

// resumable is implemented by games that can be suspended and restored.
type resumable interface {
	Snapshot() (mjcore.Snapshot, bool)
	Restore(snap mjcore.Snapshot) error
}

// Options configures a game model.
type Options struct {
	Store  *storage.Store
	Logger *log.Logger
	Resume bool   // restore the saved session on start
	Slot   string // save slot, storage.DefaultSlot when empty
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	logger      *log.Logger
	slot        string
	resume      bool
	config      core.RuntimeConfig
	inputFrame  core.InputFrame
	gameState   core.GameState
	keyMapper   *KeyMapper
	quitting    bool
	backToMenu  bool
	embedded    bool // running inside a SessionModel, Back returns to its menu
	resultSaved bool // whether the result has been saved for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	slot := opts.Slot
	if slot == "" {
		slot = storage.DefaultSlot
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     logger,
		slot:       slot,
		resume:     opts.Resume,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if m.resume {
		m.restore()
	}
	return tickCmd(m.config.TickRate)
}

// restore loads the saved session into the game, if there is one.
func (m Model) restore() {
	r, ok := m.game.(resumable)
	if !ok || m.store == nil {
		return
	}
	snap, found, err := m.store.LoadSnapshot(m.slot)
	if err != nil {
		m.logger.Warn("could not load saved game", "slot", m.slot, "error", err)
		return
	}
	if !found {
		return
	}
	if err := r.Restore(snap); err != nil {
		m.logger.Warn("could not restore saved game", "slot", m.slot, "error", err)
		return
	}
	m.logger.Debug("resumed saved game", "slot", m.slot, "layout", snap.LayoutID, "remaining", snap.Remaining())
}

// suspend stores an unfinished game, or clears the slot when the game is over.
func (m Model) suspend() {
	r, ok := m.game.(resumable)
	if !ok || m.store == nil {
		return
	}
	snap, ok := r.Snapshot()
	if !ok {
		if err := m.store.DeleteSnapshot(m.slot); err != nil {
			m.logger.Warn("could not clear saved game", "error", err)
		}
		return
	}
	if err := m.store.SaveSnapshot(m.slot, snap); err != nil {
		m.logger.Warn("could not save game", "slot", m.slot, "error", err)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The game redraws to whatever size the screen has; resizing never
		// restarts a board.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.suspend()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.inputFrame.Clear()
		m.suspend()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case m.gameState.GameOver && !m.resultSaved:
		m.saveResult()
		m.resultSaved = true
	case !m.gameState.GameOver && m.resultSaved:
		// A new board was dealt after the previous one ended.
		m.resultSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveResult records the finished game and clears its saved session.
func (m Model) saveResult() {
	var r storage.Result
	if rr, ok := m.game.(resultReporter); ok {
		r = rr.Result()
	} else {
		r = storage.Result{GameID: m.game.ID(), Won: m.gameState.Won, Score: m.gameState.Score}
	}
	m.logger.Info("game over",
		"game", r.GameID,
		"layout", r.LayoutID,
		"won", r.Won,
		"elapsed", r.Elapsed.Round(time.Second),
		"score", r.Score,
	)

	if m.store == nil {
		return
	}
	if _, err := m.store.SaveResult(r); err != nil {
		m.logger.Warn("could not save result", "error", err)
	}
	if err := m.store.DeleteSnapshot(m.slot); err != nil {
		m.logger.Warn("could not clear saved game", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".mahjong", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
