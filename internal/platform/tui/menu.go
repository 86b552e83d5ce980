package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mahjong/internal/config"
	"github.com/vovakirdan/tui-mahjong/internal/core"
	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong"
	mjcore "github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
	"github.com/vovakirdan/tui-mahjong/internal/registry"
	"github.com/vovakirdan/tui-mahjong/internal/storage"
)

// menuRow is one line of the setup menu.
type menuRow int

const (
	rowGame menuRow = iota
	rowDifficulty
	rowMode
	rowLayout
	rowPlay
	rowResume
	rowScores
	rowQuit
	rowCount
)

var (
	menuDifficulties = []mjcore.Difficulty{mjcore.DifficultyEasy, mjcore.DifficultyMedium, mjcore.DifficultyHard}
	menuModes        = []mjcore.LayoutMode{mjcore.ModeRandom, mjcore.ModeFixed, mjcore.ModeProgressive}
)

// MenuModel is the Bubble Tea model for the game setup menu: pick the game
// variant, difficulty, layout mode and layout, then play.
type MenuModel struct {
	games     []registry.GameInfo
	layouts   []mjcore.Layout
	settings  config.MahjongConfig
	gameIdx   int
	diffIdx   int
	modeIdx   int
	layoutIdx int
	hasSaved  bool

	cursor         menuRow
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	theme          Theme
	quitting       bool
	start          bool
	resume         bool
	openScoreboard bool
}

// NewMenuModel creates a new menu model starting from the given settings.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, settings config.MahjongConfig, provider mjcore.LayoutProvider) MenuModel {
	m := MenuModel{
		games:     registry.List(),
		layouts:   provider.All(),
		settings:  settings,
		cursor:    rowPlay,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     GetTheme(),
	}

	sc := settings.SessionConfig()
	m.diffIdx = indexOf(menuDifficulties, sc.Difficulty)
	m.modeIdx = indexOf(menuModes, sc.LayoutMode)
	m.layoutIdx = max(0, provider.IndexOf(sc.FixedLayoutID))
	if m.layoutIdx >= len(m.layouts) {
		m.layoutIdx = 0
	}

	if store != nil {
		if _, ok, err := store.LoadSnapshot(storage.DefaultSlot); err == nil && ok {
			m.hasSaved = true
			m.cursor = rowResume
		}
	}
	return m
}

func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return 0
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.moveCursor(-1)

	case MenuActionDown:
		m.moveCursor(1)

	case MenuActionLeft:
		m.cycle(-1)

	case MenuActionRight:
		m.cycle(1)

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch m.cursor {
		case rowPlay:
			m.start = true
			return m, tea.Quit
		case rowResume:
			m.start = true
			m.resume = true
			return m, tea.Quit
		case rowScores:
			m.openScoreboard = true
			return m, tea.Quit
		case rowQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.cycle(1)
		}
	}

	return m, nil
}

// moveCursor steps through the rows, skipping the ones that are disabled.
func (m *MenuModel) moveCursor(delta int) {
	next := m.cursor
	for {
		next += menuRow(delta)
		if next < 0 || next >= rowCount {
			return
		}
		if m.enabled(next) {
			m.cursor = next
			return
		}
	}
}

func (m MenuModel) enabled(row menuRow) bool {
	switch row {
	case rowLayout:
		return m.mode() == mjcore.ModeFixed && len(m.layouts) > 0
	case rowMode:
		return m.gameID() != mahjong.ProgressiveGameID
	case rowResume:
		return m.hasSaved
	}
	return true
}

// cycle changes the value of the option row under the cursor.
func (m *MenuModel) cycle(delta int) {
	wrap := func(i, n int) int {
		if n == 0 {
			return 0
		}
		return ((i+delta)%n + n) % n
	}
	switch m.cursor {
	case rowGame:
		m.gameIdx = wrap(m.gameIdx, len(m.games))
	case rowDifficulty:
		m.diffIdx = wrap(m.diffIdx, len(menuDifficulties))
	case rowMode:
		m.modeIdx = wrap(m.modeIdx, len(menuModes))
	case rowLayout:
		m.layoutIdx = wrap(m.layoutIdx, len(m.layouts))
	}
}

func (m MenuModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameIdx].ID
}

func (m MenuModel) mode() mjcore.LayoutMode {
	return menuModes[m.modeIdx]
}

// Settings returns the configuration chosen in the menu.
func (m MenuModel) Settings() config.MahjongConfig {
	s := m.settings
	s.Game.Difficulty = string(menuDifficulties[m.diffIdx])
	s.Game.LayoutMode = string(m.mode())
	if m.mode() == mjcore.ModeFixed && len(m.layouts) > 0 {
		s.Game.FixedLayout = m.layouts[m.layoutIdx].ID
	}
	return s
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("M A H J O N G"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Match free tiles in pairs until the board is clear"), m.width))
	b.WriteString("\n\n")

	for row := rowGame; row < rowCount; row++ {
		if row == rowResume && !m.hasSaved {
			continue
		}
		if row == rowPlay {
			b.WriteString("\n")
		}
		b.WriteString(centerText(m.renderRow(row), m.width))
		b.WriteString("\n")
	}

	if desc := m.description(); desc != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.MenuDescription.Render(desc), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(m.theme.Controls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// description is the help line under the rows: the clearing target while the
// difficulty row is focused, otherwise the fixed layout's details.
func (m MenuModel) description() string {
	if m.cursor == rowDifficulty {
		d := menuDifficulties[m.diffIdx]
		return fmt.Sprintf("Target on %s: clear %.0f%% of the board", d, d.SolvableThreshold()*100)
	}
	if m.mode() == mjcore.ModeFixed && len(m.layouts) > 0 {
		l := m.layouts[m.layoutIdx]
		return fmt.Sprintf("%s (%d tiles, difficulty %d)", l.Description, l.TileCount(), l.Difficulty)
	}
	return ""
}

func (m MenuModel) renderRow(row menuRow) string {
	label, value := "", ""
	switch row {
	case rowGame:
		label = "Game"
		if len(m.games) > 0 {
			value = m.games[m.gameIdx].Title
		}
	case rowDifficulty:
		label, value = "Difficulty", string(menuDifficulties[m.diffIdx])
	case rowMode:
		label, value = "Layouts", string(m.mode())
		if !m.enabled(rowMode) {
			value = string(mjcore.ModeProgressive)
		}
	case rowLayout:
		label = "Layout"
		if len(m.layouts) > 0 {
			value = m.layouts[m.layoutIdx].Name
		}
	case rowPlay:
		label = "Play"
	case rowResume:
		label = "Resume saved game"
	case rowScores:
		label = "Best times"
	case rowQuit:
		label = "Quit"
	}

	cursor := "  "
	style := m.theme.MenuItemNormal
	switch {
	case !m.enabled(row):
		style = m.theme.MenuDisabled
	case row == m.cursor:
		cursor = "> "
		style = m.theme.MenuItemActive
	}

	if value == "" {
		return style.Render(cursor + label)
	}
	return style.Render(fmt.Sprintf("%s%-11s", cursor, label)) + m.theme.MenuValue.Render("< "+value+" >")
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Settings        config.MahjongConfig
	Resume          bool
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result converts the final menu state into a MenuResult.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.Config(), Settings: m.Settings()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || !m.start || m.gameID() == "":
		result.Quit = true
	default:
		result.GameID = m.gameID()
		result.Resume = m.resume
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, settings config.MahjongConfig, provider mjcore.LayoutProvider) (MenuResult, error) {
	model := NewMenuModel(store, cfg, settings, provider)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Settings: settings}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Settings: settings, Quit: true}, nil
	}
	return m.Result(), nil
}
