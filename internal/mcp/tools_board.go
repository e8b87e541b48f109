package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"boards/internal/domain"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerBoardTools() {
	// ── list_boards ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_boards",
		mcp.WithDescription("List all boards in the library"),
	), s.handleListBoards)

	// ── create_board ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_board",
		mcp.WithDescription("Create a new empty board"),
		mcp.WithString("name",
			mcp.Description("Name of the new board"),
			mcp.Required(),
		),
	), s.handleCreateBoard)

	// ── set_active_board ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_active_board",
		mcp.WithDescription("Set the active board for subsequent tool calls. Tools that accept boardId will default to this."),
		mcp.WithString("boardId",
			mcp.Description("ID of the board to make active"),
			mcp.Required(),
		),
	), s.handleSetActiveBoard)

	// ── get_board ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_board",
		mcp.WithDescription("Get the decoded state of a board: items, connections, groups, viewport"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
	), s.handleGetBoard)

	// ── save_board ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("save_board",
		mcp.WithDescription("Replace a board's state. Accepts the same JSON shape get_board returns."),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("state",
			mcp.Description("Board state as JSON: {items, connections, groups, viewport}"),
			mcp.Required(),
		),
	), s.handleSaveBoard)

	// ── delete_board ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_board",
		mcp.WithDescription("Delete a board from the library"),
		mcp.WithString("boardId",
			mcp.Description("ID of the board to delete"),
			mcp.Required(),
		),
	), s.handleDeleteBoard)
}

func (s *Server) handleListBoards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boards, err := s.boards.ListBoards()
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	type boardSummary struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	summaries := make([]boardSummary, 0, len(boards))
	for _, b := range boards {
		summaries = append(summaries, boardSummary{ID: b.ID, Name: b.Name})
	}
	return jsonResult(summaries)
}

func (s *Server) handleCreateBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	b, err := s.boards.CreateBoard(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	// Auto-set as active board
	s.activeBoardID = b.ID
	return jsonResult(b)
}

func (s *Server) handleSetActiveBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boardID := req.GetString("boardId", "")
	if boardID == "" {
		return nil, fmt.Errorf("boardId is required")
	}
	s.activeBoardID = boardID
	return textResult(fmt.Sprintf("Active board set to %s", boardID)), nil
}

func (s *Server) handleGetBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boardID, err := s.resolveBoardID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	state, err := s.boards.LoadState(boardID)
	if err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	return jsonResult(state)
}

func (s *Server) handleSaveBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	boardID, err := s.resolveBoardID(args)
	if err != nil {
		return nil, err
	}
	stateJSON, _ := args["state"].(string)
	if stateJSON == "" {
		return nil, fmt.Errorf("state is required")
	}

	var state domain.BoardState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	if state.Viewport.Zoom <= 0 {
		state.Viewport.Zoom = 1
	}
	if err := s.boards.SaveState(ctx, boardID, state, nil); err != nil {
		return nil, fmt.Errorf("save board: %w", err)
	}
	return textResult(fmt.Sprintf("Board %s saved with %d items, %d connections, %d groups",
		boardID, len(state.Items), len(state.Connections), len(state.Groups))), nil
}

func (s *Server) handleDeleteBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boardID := req.GetString("boardId", "")
	if boardID == "" {
		return nil, fmt.Errorf("boardId is required")
	}
	if err := s.boards.DeleteBoard(ctx, boardID); err != nil {
		return nil, fmt.Errorf("delete board: %w", err)
	}
	if s.activeBoardID == boardID {
		s.activeBoardID = ""
	}
	return textResult(fmt.Sprintf("Board %s deleted", boardID)), nil
}
