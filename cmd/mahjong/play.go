package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-mahjong/internal/config"
	"github.com/vovakirdan/tui-mahjong/internal/core"
	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong"
	mjcore "github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
	"github.com/vovakirdan/tui-mahjong/internal/platform/tui"
	"github.com/vovakirdan/tui-mahjong/internal/registry"
	"github.com/vovakirdan/tui-mahjong/internal/storage"
)

var (
	flagDifficulty string
	flagMode       string
	flagLayout     string
	flagResume     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play mahjong solitaire",
	Long: `Open the setup menu and play. After a game you return to the menu.

Controls:
  Arrows/WASD/HJKL  - Move between free tiles
  Space/Enter       - Pick a tile
  ? or I            - Hint (costs points)
  N                 - New board
  P                 - Pause
  R                 - New board after a win or a stuck game
  Esc/B             - Back to the menu (the game is saved)
  Q/Ctrl+C          - Quit (the game is saved)

Layout modes:
  random       - A random layout each game
  fixed        - Always the layout chosen with --layout or in the menu
  progressive  - Layouts in order, moving on after each win

Examples:
  mahjong play
  mahjong play --difficulty hard
  mahjong play --mode fixed --layout pyramid
  mahjong play --resume`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Layout mode: random, fixed, progressive")
	playCmd.Flags().StringVar(&flagLayout, "layout", "", "Layout id for fixed mode (implies --mode fixed)")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Resume the saved game without showing the menu")
}

// applyPlayFlags overrides the loaded settings with command-line flags.
func applyPlayFlags(s *config.MahjongConfig) error {
	if flagDifficulty != "" {
		if _, ok := mjcore.ParseDifficulty(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", flagDifficulty)
		}
		config.ApplyDifficultyPreset(s, config.DifficultyPreset(flagDifficulty))
	}
	if flagMode != "" {
		mode, ok := mjcore.ParseLayoutMode(flagMode)
		if !ok {
			return fmt.Errorf("unknown layout mode %q (want random, fixed or progressive)", flagMode)
		}
		s.Game.LayoutMode = string(mode)
	}
	if flagLayout != "" {
		if !catalog.Has(flagLayout) {
			return fmt.Errorf("unknown layout %q, run 'mahjong layouts' to list them", flagLayout)
		}
		s.Game.LayoutMode = string(mjcore.ModeFixed)
		s.Game.FixedLayout = flagLayout
	}
	return nil
}

func runPlay(_ *cobra.Command, _ []string) error {
	if err := applyPlayFlags(&settings); err != nil {
		return err
	}

	logger, closeLog := fileLogger("mahjong")
	defer closeLog()

	// Continue without storage - the game still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		logger.Warn("could not open results database", "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	if flagResume {
		if err := playGame(mahjong.GameID, cfg, store, logger, true); err != nil {
			return err
		}
	}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, settings, catalog)
		if err != nil {
			return err
		}
		cfg = menuResult.Config
		settings = menuResult.Settings

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, catalog, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		if err := playGame(menuResult.GameID, cfg, store, logger, menuResult.Resume); err != nil {
			logger.Error("game failed", "game", menuResult.GameID, "error", err)
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		// Loop back to menu
	}
}

// playGame runs one game until the player leaves it.
func playGame(gameID string, cfg core.RuntimeConfig, store *storage.Store, logger *log.Logger, resume bool) error {
	mahjong.SetConfig(settings)

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger.Debug("starting game", "game", gameID, "seed", cfg.Seed, "difficulty", settings.Game.Difficulty, "mode", settings.Game.LayoutMode, "resume", resume)
	return tui.Run(game, cfg, tui.Options{
		Store:  store,
		Logger: logger,
		Resume: resume,
	})
}
