// mahjong is mahjong solitaire for the terminal.
//
// Usage:
//
//	mahjong play             - Pick a layout in the menu and play
//	mahjong layouts          - List available layouts
//	mahjong scores [layout]  - Show best times
//	mahjong serve            - Start SSH server for remote play
//	mahjong mcp              - Serve a game to AI agents over MCP (stdio)
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.mahjong/mahjong.db)
//	--config <path>       - Use a custom config YAML
//	--layouts-dir <path>  - Load extra layouts from a directory
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mahjong/internal/config"
	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong"
	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/layouts"
	"github.com/vovakirdan/tui-mahjong/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLayoutsDir string
	flagLogLevel   string
)

// Resolved by the root command before any subcommand runs.
var (
	settings config.MahjongConfig
	catalog  *layouts.Catalog
	logLevel log.Level
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mahjong",
	Short: "Mahjong solitaire in your terminal",
	Long: `Mahjong solitaire for the terminal: remove matching pairs of free
tiles until the board is clear.

Available commands:
  play     - Pick a layout in the menu and play
  layouts  - List available layouts
  scores   - View best times
  serve    - Start SSH server for remote play
  mcp      - Serve a game to AI agents over MCP

Examples:
  mahjong play
  mahjong play --difficulty hard --mode fixed --layout turtle
  mahjong layouts --layouts-dir ~/.mahjong/layouts
  mahjong serve --ssh :2222
  mahjong scores pyramid`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mahjong/mahjong.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLayoutsDir, "layouts-dir", "", "Directory of extra layout files (overrides the config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(layoutsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}

// setup loads the configuration and the layout catalog and hands them to
// the game package.
func setup(_ *cobra.Command, _ []string) error {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logLevel = lvl

	settings, err = config.LoadMahjong(flagConfig)
	if err != nil {
		return err
	}

	dir := settings.LayoutsDir()
	if flagLayoutsDir != "" {
		dir = config.ExpandHome(flagLayoutsDir)
	}
	catalog, err = layouts.Load(dir)
	if err != nil {
		return fmt.Errorf("loading layouts: %w", err)
	}
	if catalog.Count() == 0 {
		return fmt.Errorf("no layouts available")
	}

	mahjong.SetConfig(settings)
	mahjong.SetCatalog(catalog)
	tui.SetTheme(tui.ThemeByName(settings.Display.Theme))
	return nil
}

// newLogger creates a logger writing to w at the configured level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           logLevel,
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// fileLogger logs to ~/.mahjong/mahjong.log so that log lines do not draw
// over the full-screen UI. The returned func closes the file.
func fileLogger(prefix string) (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}
	dir := filepath.Join(home, ".mahjong")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "mahjong.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}
	return newLogger(f, prefix), func() { f.Close() }
}
