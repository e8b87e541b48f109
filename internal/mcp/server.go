package mcpserver

import (
	"encoding/json"
	"fmt"
	"log"

	"boards/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for the board library. It exposes tools and
// resources so AI agents can list, edit, export, and import boards.
type Server struct {
	mcp     *server.MCPServer
	emitter EventEmitter

	// Services (injected from the entry point)
	boards  *service.BoardService
	library *service.LibraryService

	// Active board context (set by set_active_board tool)
	activeBoardID string
}

// EventEmitter mirrors service.EventEmitter so the MCP package has no hard
// dependency on a frontend runtime.
type EventEmitter = service.EventEmitter

// Deps holds all dependencies passed to the MCP server.
type Deps struct {
	Emitter EventEmitter
	Boards  *service.BoardService
	Library *service.LibraryService
}

// New creates and configures a new MCP server with all tools and resources.
func New(deps Deps) *Server {
	s := &Server{
		emitter: deps.Emitter,
		boards:  deps.Boards,
		library: deps.Library,
	}

	s.mcp = server.NewMCPServer(
		"boards-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerBoardTools()
	s.registerManifestTools()
	s.registerResources()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// resolveBoardID returns the boardId from tool args or falls back to the
// active board.
func (s *Server) resolveBoardID(args map[string]any) (string, error) {
	if id, ok := args["boardId"].(string); ok && id != "" {
		return id, nil
	}
	if s.activeBoardID != "" {
		return s.activeBoardID, nil
	}
	return "", fmt.Errorf("no boardId provided and no active board set (use set_active_board first)")
}
