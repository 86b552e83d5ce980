package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
	"github.com/vovakirdan/tui-mahjong/internal/storage"
	"github.com/vovakirdan/tui-mahjong/internal/transport/mcp"
	"github.com/vovakirdan/tui-mahjong/internal/transport/websocket"
)

var (
	flagWatchAddr string
	flagMCPSlot   string
	flagMCPResume bool
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve a game to AI agents over MCP (stdio)",
	Long: `Run a Model Context Protocol server on stdin/stdout that lets an AI
agent play one mahjong session with tools such as board_state, free_tiles,
select_tile and hint.

With --watch, board events are also streamed as JSON over a websocket at
ws://<addr>/ws so the game can be watched live.

Logs go to stderr; stdout carries the protocol.

Examples:
  mahjong mcp
  mahjong mcp --watch :8090
  mahjong mcp --resume --slot agent-1`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&flagWatchAddr, "watch", "", "Serve a websocket event feed on this address (e.g. :8090)")
	mcpCmd.Flags().StringVar(&flagMCPSlot, "slot", mcp.DefaultSlot, "Save slot for the agent's game")
	mcpCmd.Flags().BoolVar(&flagMCPResume, "resume", false, "Resume the game saved in the slot")
}

func runMCP(_ *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "mahjong-mcp")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	var feed core.Listener
	if flagWatchAddr != "" {
		hub := websocket.NewHub(logger.With("component", "websocket"))
		go hub.Run()
		defer hub.Stop()

		mux := http.NewServeMux()
		mux.Handle("/ws", hub.Handler())
		httpServer := &http.Server{
			Addr:              flagWatchAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("websocket feed listening", "address", flagWatchAddr, "path", "/ws")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("websocket feed stopped", "error", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			//nolint:errcheck // shutting down anyway
			httpServer.Shutdown(ctx)
		}()

		feed = hub.Listener(websocket.DefaultSession)
	}

	server := mcp.NewServer(mcp.Options{
		Layouts:  catalog,
		Config:   settings,
		Seed:     flagSeed,
		Store:    store,
		Slot:     flagMCPSlot,
		Resume:   flagMCPResume,
		Listener: feed,
		Logger:   logger,
	})

	logger.Info("serving MCP on stdio")
	err = server.ServeStdio()
	server.Suspend()
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
