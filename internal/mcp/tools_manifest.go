package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerManifestTools() {
	// ── export_manifest ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("export_manifest",
		mcp.WithDescription("Write a board's manifest to a JSON file so other tools can open it"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("path", mcp.Description("Destination file path (optional, defaults to the data directory)")),
	), s.handleExportManifest)

	// ── import_manifest ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("import_manifest",
		mcp.WithDescription("Import a board manifest file into the library. Rejects manifests that were not produced by a board editor."),
		mcp.WithString("path",
			mcp.Description("Path of the manifest JSON file"),
			mcp.Required(),
		),
	), s.handleImportManifest)

	// ── scan_library ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("scan_library",
		mcp.WithDescription("List loadable board manifests in a directory"),
		mcp.WithString("dir",
			mcp.Description("Directory to scan"),
			mcp.Required(),
		),
	), s.handleScanLibrary)
}

func (s *Server) handleExportManifest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boardID, err := s.resolveBoardID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	path, err := s.boards.ExportManifest(boardID, req.GetString("path", ""))
	if err != nil {
		return nil, fmt.Errorf("export manifest: %w", err)
	}
	return textResult(fmt.Sprintf("Manifest written to %s", path)), nil
}

func (s *Server) handleImportManifest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	b, err := s.boards.ImportManifest(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("import manifest: %w", err)
	}
	return jsonResult(b)
}

func (s *Server) handleScanLibrary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := req.GetString("dir", "")
	if dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	entries, err := s.library.ScanDirectory(dir)
	if err != nil {
		return nil, fmt.Errorf("scan library: %w", err)
	}
	return jsonResult(entries)
}
