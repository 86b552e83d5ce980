package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	mjcore "github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
	"github.com/vovakirdan/tui-mahjong/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 20
	maxScores          = 100
)

// scoreView selects what the results table lists.
type scoreView int

const (
	viewBestTimes scoreView = iota // fastest wins on the selected layout
	viewRecent                     // latest games on any layout
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextLayout key.Binding
	PrevLayout key.Binding
	Toggle     key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextLayout, k.PrevLayout, k.Toggle, k.Back}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLayout, k.PrevLayout},
		{k.Toggle, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextLayout: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next layout")),
		PrevLayout: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev layout")),
		Toggle:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "best/recent")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel is the Bubble Tea model for the results screen. It shows
// either the best times on one layout or the most recent games overall.
type ScoreboardModel struct {
	layouts      []mjcore.Layout
	layoutCursor int
	view         scoreView
	store        *storage.Store
	results      []storage.Result
	stats        *storage.LayoutStats
	table        table.Model
	help         help.Model
	keys         ScoreboardKeyMap
	theme        Theme
	width        int
	height       int
	quitting     bool
	goingBack    bool
	showSidebar  bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, provider mjcore.LayoutProvider, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		layouts:     provider.All(),
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        help.New(),
		theme:       GetTheme(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

func (m *ScoreboardModel) columns() []table.Column {
	if m.view == viewRecent {
		return []table.Column{
			{Title: "Layout", Width: 14},
			{Title: "Result", Width: 7},
			{Title: "Time", Width: 6},
			{Title: "Tiles", Width: 6},
			{Title: "Date", Width: 13},
		}
	}
	cols := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Time", Width: 7},
		{Title: "Score", Width: 7},
		{Title: "Level", Width: 7},
		{Title: "Date", Width: 13},
	}
	avail := m.width - 4
	if m.showSidebar {
		avail -= sidebarWidth + 3
	}
	if extra := avail - 49; extra > 0 {
		cols[4].Width += min(extra, 6)
	}
	return cols
}

func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.TableHeaderBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(m.theme.TableSelectedFg).
		Background(m.theme.TableSelectedBg).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) currentLayout() (mjcore.Layout, bool) {
	if len(m.layouts) == 0 {
		return mjcore.Layout{}, false
	}
	return m.layouts[m.layoutCursor], true
}

// reload fetches the rows for the current view. Store errors leave the
// table empty.
func (m *ScoreboardModel) reload() {
	m.results, m.stats = nil, nil
	if m.store != nil {
		switch m.view {
		case viewRecent:
			m.results, _ = m.store.RecentResults(maxScores)
		default:
			if l, ok := m.currentLayout(); ok {
				m.results, _ = m.store.BestTimes(l.ID, maxScores)
				if stats, err := m.store.LayoutStats(); err == nil {
					m.stats = stats[l.ID]
				}
			}
		}
	}

	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

func (m *ScoreboardModel) rows() []table.Row {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		date := r.CreatedAt.Format("Jan 02 15:04")
		if m.view == viewRecent {
			outcome := "stuck"
			if r.Won {
				outcome = "won"
			}
			rows[i] = table.Row{r.LayoutID, outcome, formatDuration(r.Elapsed), strconv.Itoa(r.TilesRemoved), date}
			continue
		}
		rows[i] = table.Row{"#" + strconv.Itoa(i+1), formatDuration(r.Elapsed), strconv.Itoa(r.Score), r.Difficulty, date}
	}
	return rows
}

func (m *ScoreboardModel) selectLayout(delta int) {
	n := len(m.layouts)
	if n == 0 {
		return
	}
	m.layoutCursor = ((m.layoutCursor+delta)%n + n) % n
	if m.view == viewRecent {
		m.view = viewBestTimes
	}
	m.reload()
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLayout):
			m.selectLayout(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLayout):
			m.selectLayout(-1)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.reload()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "RECENT GAMES"
	if m.view == viewBestTimes {
		title = "BEST TIMES"
		if l, ok := m.currentLayout(); ok {
			title += " - " + l.Name
		}
	}

	var b strings.Builder
	b.WriteString(m.theme.MenuTitle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	if m.showSidebar {
		b.WriteString(m.renderWide())
	} else {
		b.WriteString(m.renderNarrow())
	}
	b.WriteString("\n")
	b.WriteString(m.theme.MenuDescription.Render(m.statsLine()))
	b.WriteString("\n")
	b.WriteString(m.theme.Controls.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) statsLine() string {
	if m.view == viewRecent {
		return fmt.Sprintf("%d games shown", len(m.results))
	}
	if m.stats == nil {
		return "Not played yet"
	}
	best := "-"
	if m.stats.BestTime > 0 {
		best = formatDuration(m.stats.BestTime)
	}
	return fmt.Sprintf("Played %d  Won %d (%.0f%%)  Best %s  Top score %d",
		m.stats.Played, m.stats.Won, m.stats.WinRate()*100, best, m.stats.BestScore)
}

func (m ScoreboardModel) panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.PanelBorder).
		Padding(0, 1)
}

// renderWide puts the layout list in a sidebar next to the table.
func (m ScoreboardModel) renderWide() string {
	var side strings.Builder
	side.WriteString("Layouts\n")
	side.WriteString(strings.Repeat("-", sidebarWidth-4))
	side.WriteString("\n")

	for i, l := range m.layouts {
		cursor, style := "  ", m.theme.MenuItemNormal
		if i == m.layoutCursor && m.view == viewBestTimes {
			cursor, style = "> ", m.theme.MenuItemActive
		}
		name := l.Name
		if limit := sidebarWidth - 6; len(name) > limit {
			name = name[:limit-1] + "."
		}
		side.WriteString(style.Render(cursor + name))
		side.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.panel().Width(sidebarWidth).Render(side.String()), "  ", m.panel().Render(m.tableContent()))
}

// renderNarrow shows the selected layout as a tab above the table.
func (m ScoreboardModel) renderNarrow() string {
	var b strings.Builder
	if l, ok := m.currentLayout(); ok && m.view == viewBestTimes {
		b.WriteString(centerText(m.theme.MenuValue.Render("< "+l.Name+" >"), m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(centerText(m.panel().Render(m.tableContent()), m.width))
	return b.String()
}

func (m ScoreboardModel) tableContent() string {
	if len(m.results) > 0 {
		return m.table.View()
	}
	msg := "No wins recorded yet.\nClear this layout to set a time!"
	if m.view == viewRecent {
		msg = "No games recorded yet."
	}
	return m.theme.MenuDescription.Italic(true).Padding(2, 4).Render(msg)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// formatDuration renders a duration as mm:ss.
func formatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, provider mjcore.LayoutProvider, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, provider, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
