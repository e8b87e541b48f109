package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerResources() {
	// ── boards://boards ────────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"boards://boards",
		"All Boards",
		mcp.WithMIMEType("application/json"),
	), s.handleBoardsResource)

	// ── boards://board/{boardId}/manifest ──────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"boards://board/{boardId}/manifest",
			"Board Manifest",
		),
		s.handleManifestResource,
	)
}

func (s *Server) handleBoardsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	boards, err := s.boards.ListBoards()
	if err != nil {
		return nil, err
	}

	type boardSummary struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		UpdatedAt string `json:"updatedAt"`
	}
	summaries := make([]boardSummary, 0, len(boards))
	for _, b := range boards {
		summaries = append(summaries, boardSummary{
			ID:        b.ID,
			Name:      b.Name,
			UpdatedAt: b.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	data, _ := json.MarshalIndent(summaries, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "boards://boards",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleManifestResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	// Extract boardId from URI: boards://board/{boardId}/manifest
	boardID := strings.TrimSuffix(strings.TrimPrefix(uri, "boards://board/"), "/manifest")
	if boardID == "" || boardID == uri {
		return nil, fmt.Errorf("invalid board manifest URI: %s", uri)
	}

	b, err := s.boards.GetBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     b.Manifest,
		},
	}, nil
}
