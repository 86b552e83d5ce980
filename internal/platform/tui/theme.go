package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the lipgloss styles used by the menus and the scoreboard.
type Theme struct {
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuValue       lipgloss.Style
	MenuDisabled    lipgloss.Style
	MenuDescription lipgloss.Style
	Controls        lipgloss.Style

	TableHeaderBorder lipgloss.Color
	TableSelectedFg   lipgloss.Color
	TableSelectedBg   lipgloss.Color
	PanelBorder       lipgloss.Color
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true), // Lacquer orange
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuValue:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		MenuDisabled:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Controls:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		TableHeaderBorder: lipgloss.Color("240"),
		TableSelectedFg:   lipgloss.Color("229"),
		TableSelectedBg:   lipgloss.Color("57"),
		PanelBorder:       lipgloss.Color("240"),
	}
}

// JadeTheme returns a green variant of the default theme.
func JadeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("35")).Bold(true)
	theme.MenuValue = lipgloss.NewStyle().Foreground(lipgloss.Color("121"))
	theme.TableSelectedBg = lipgloss.Color("22")
	return theme
}

// Global theme variable (can be changed at runtime)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return theme
}

// ThemeByName returns a theme by name; unknown names give the default.
func ThemeByName(name string) Theme {
	if name == "jade" {
		return JadeTheme()
	}
	return DefaultTheme()
}
