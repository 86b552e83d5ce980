package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("new_game",
		mcp.WithDescription("Deal a new board. Options left out keep their current values."),
		mcp.WithString("difficulty",
			mcp.Description("Board difficulty"),
			mcp.Enum(string(core.DifficultyEasy), string(core.DifficultyMedium), string(core.DifficultyHard)),
		),
		mcp.WithString("mode",
			mcp.Description("How the layout is chosen"),
			mcp.Enum(string(core.ModeFixed), string(core.ModeRandom), string(core.ModeProgressive)),
		),
		mcp.WithString("layout_id",
			mcp.Description("Play this layout (switches to fixed mode)"),
		),
	), s.handleNewGame)

	s.mcpServer.AddTool(mcp.NewTool("board_state",
		mcp.WithDescription("Get the layout, progress and a picture of each layer of the board"),
		mcp.WithReadOnlyHintAnnotation(true),
	), s.handleBoardState)

	s.mcpServer.AddTool(mcp.NewTool("free_tiles",
		mcp.WithDescription("List the tiles that can be picked right now"),
		mcp.WithReadOnlyHintAnnotation(true),
	), s.handleFreeTiles)

	s.mcpServer.AddTool(mcp.NewTool("select_tile",
		mcp.WithDescription("Pick a free tile by id. Picking a second matching tile removes the pair; picking the selected tile again clears the selection."),
		mcp.WithNumber("tile_id",
			mcp.Required(),
			mcp.Description("Id of the tile, as listed by free_tiles"),
		),
	), s.handleSelectTile)

	s.mcpServer.AddTool(mcp.NewTool("hint",
		mcp.WithDescription("Show a matching pair of free tiles. Each hint costs points."),
	), s.handleHint)

	s.mcpServer.AddTool(mcp.NewTool("list_layouts",
		mcp.WithDescription("List the available layouts"),
		mcp.WithReadOnlyHintAnnotation(true),
	), s.handleListLayouts)

	s.mcpServer.AddTool(mcp.NewTool("snapshot",
		mcp.WithDescription("Return the game in progress as JSON and save it so it can be resumed"),
	), s.handleSnapshot)
}

func (s *Server) handleNewGame(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.session.Config()
	if v := request.GetString("difficulty", ""); v != "" {
		d, ok := core.ParseDifficulty(v)
		if !ok {
			return mcp.NewToolResultErrorf("unknown difficulty %q", v), nil
		}
		cfg.Difficulty = d
	}
	if v := request.GetString("mode", ""); v != "" {
		m, ok := core.ParseLayoutMode(v)
		if !ok {
			return mcp.NewToolResultErrorf("unknown mode %q", v), nil
		}
		cfg.LayoutMode = m
	}
	s.session.SetConfig(cfg)

	if id := request.GetString("layout_id", ""); id != "" {
		if s.layouts.ByID(id).ID != id {
			return mcp.NewToolResultErrorf("unknown layout %q", id), nil
		}
		s.session.StartNewGameWithLayout(id)
	} else {
		s.session.StartNewGame()
	}

	return mcp.NewToolResultText("New game started.\n" + s.describe()), nil
}

func (s *Server) handleBoardState(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sb strings.Builder
	sb.WriteString(s.describe())
	sb.WriteString("\n")
	sb.WriteString(s.session.Board().String())
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleFreeTiles(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	free := s.session.Board().FreeTiles()
	if len(free) == 0 {
		return mcp.NewToolResultText("No free tiles."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d free tiles:\n", len(free))
	for _, t := range free {
		sb.WriteString(formatTile(t))
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleSelectTile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("tile_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	board := s.session.Board()
	tile := board.TileByID(id)
	switch {
	case tile == nil:
		return mcp.NewToolResultErrorf("no tile with id %d", id), nil
	case tile.Removed:
		return mcp.NewToolResultErrorf("tile %d was already removed", id), nil
	case !board.IsTileFree(tile):
		return mcp.NewToolResultErrorf("tile %d is blocked", id), nil
	}

	prev := board.Selected()
	removed := s.session.SelectTile(tile)

	var msg string
	switch {
	case removed:
		msg = fmt.Sprintf("Removed pair %s and %s.", formatTile(prev), formatTile(tile))
	case board.Selected() == nil:
		msg = fmt.Sprintf("Selection cleared (%s).", formatTile(tile))
	case prev != nil:
		msg = fmt.Sprintf("%s does not match %s; %s is now selected.", formatTile(tile), formatTile(prev), formatTile(tile))
	default:
		msg = fmt.Sprintf("Selected %s.", formatTile(tile))
	}
	return mcp.NewToolResultText(msg + "\n" + s.describe()), nil
}

func (s *Server) handleHint(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, b, ok := s.session.Hint()
	if !ok {
		return mcp.NewToolResultText("No matching free pair. Start a new game."), nil
	}
	s.hints++
	return mcp.NewToolResultText(fmt.Sprintf("Try %s with %s.", formatTile(a), formatTile(b))), nil
}

func (s *Server) handleListLayouts(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	layouts := s.layouts.All()
	if len(layouts) == 0 {
		return mcp.NewToolResultText("No layouts available."), nil
	}

	var sb strings.Builder
	for _, l := range layouts {
		fmt.Fprintf(&sb, "%s: %s (%d tiles, difficulty %d)", l.ID, l.Name, l.TileCount(), l.Difficulty)
		if l.Description != "" {
			sb.WriteString(" - ")
			sb.WriteString(l.Description)
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleSnapshot(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.session.Snapshot()
	if !ok {
		return mcp.NewToolResultError("no game in progress"), nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("could not encode snapshot", err), nil
	}

	if s.store != nil && !s.session.IsOver() {
		if err := s.store.SaveSnapshot(s.slot, snap); err != nil {
			return mcp.NewToolResultErrorFromErr("could not save snapshot", err), nil
		}
	}
	return mcp.NewToolResultText(string(data)), nil
}

// describe summarises the current game. s.mu must be held.
func (s *Server) describe() string {
	board := s.session.Board()
	layout := s.session.Layout()
	cfg := s.session.Config()

	status := "in progress"
	switch {
	case s.session.Won():
		status = "won"
	case board.IsGameStuck():
		status = "stuck, no moves left"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Layout: %s (%s)\n", layout.Name, layout.ID)
	fmt.Fprintf(&sb, "Difficulty: %s, mode: %s\n", cfg.Difficulty, cfg.LayoutMode)
	fmt.Fprintf(&sb, "Tiles: %d/%d remaining, %d free\n", board.RemainingCount(), board.Len(), len(board.FreeTiles()))
	fmt.Fprintf(&sb, "Elapsed: %s, score: %d\n", s.session.Elapsed().Round(time.Second), s.score(s.session.Won()))
	if sel := board.Selected(); sel != nil {
		fmt.Fprintf(&sb, "Selected: %s\n", formatTile(sel))
	}
	fmt.Fprintf(&sb, "Status: %s", status)
	return sb.String()
}

func formatTile(t *core.Tile) string {
	return fmt.Sprintf("#%d %s at (%d,%d,%d)", t.ID, t.Type, t.Pos.X, t.Pos.Y, t.Pos.Z)
}
