package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"boards/internal/codec"
	"boards/internal/domain"
	"boards/internal/manifest"
)

// ─────────────────────────────────────────────────────────────
// Board Service — business logic for boards in the library
// ─────────────────────────────────────────────────────────────

// BoardService manages the lifecycle of boards: creation, persistence of the
// edited state through the manifest codec, and file export/import.
type BoardService struct {
	store   domain.BoardStore
	dataDir string
	emitter EventEmitter
}

// NewBoardService creates a BoardService.
func NewBoardService(store domain.BoardStore, dataDir string, emitter EventEmitter) *BoardService {
	return &BoardService{store: store, dataDir: dataDir, emitter: emitter}
}

// documentID derives the manifest document id for a stored board.
func documentID(boardID string) string {
	return "boards://board/" + boardID
}

// CreateBoard creates an empty board and persists its manifest.
func (s *BoardService) CreateBoard(ctx context.Context, name string) (*domain.Board, error) {
	id := uuid.New().String()
	doc := codec.Encode(domain.EmptyBoardState(), documentID(id), name, nil)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	b := &domain.Board{ID: id, Name: name, Manifest: string(data)}
	if err := s.store.CreateBoard(b); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	s.emitter.Emit(ctx, "board:created", map[string]string{"boardId": b.ID})
	return b, nil
}

// GetBoard returns a board record by id.
func (s *BoardService) GetBoard(id string) (*domain.Board, error) {
	return s.store.GetBoard(id)
}

// ListBoards returns all boards, most recently updated first.
func (s *BoardService) ListBoards() ([]domain.Board, error) {
	return s.store.ListBoards()
}

// RenameBoard changes a board's display name. The stored manifest keeps its
// label until the next SaveState.
func (s *BoardService) RenameBoard(ctx context.Context, id, name string) error {
	b, err := s.store.GetBoard(id)
	if err != nil {
		return err
	}
	b.Name = name
	if err := s.store.UpdateBoard(b); err != nil {
		return fmt.Errorf("rename board: %w", err)
	}
	s.emitter.Emit(ctx, "board:updated", map[string]string{"boardId": id})
	return nil
}

// DeleteBoard removes a board from the library.
func (s *BoardService) DeleteBoard(ctx context.Context, id string) error {
	if err := s.store.DeleteBoard(id); err != nil {
		return err
	}
	s.emitter.Emit(ctx, "board:deleted", map[string]string{"boardId": id})
	return nil
}

// LoadState decodes a board's stored manifest back into an editable state.
func (s *BoardService) LoadState(id string) (domain.BoardState, error) {
	b, err := s.store.GetBoard(id)
	if err != nil {
		return domain.BoardState{}, err
	}
	doc, err := manifest.Parse([]byte(b.Manifest))
	if err != nil {
		return domain.BoardState{}, fmt.Errorf("parse stored manifest: %w", err)
	}
	return codec.Decode(doc), nil
}

// SaveState encodes an edited state and persists it as the board's manifest.
func (s *BoardService) SaveState(ctx context.Context, id string, state domain.BoardState, opts *codec.Options) error {
	if err := domain.ValidateState(state); err != nil {
		return fmt.Errorf("invalid board state: %w", err)
	}
	b, err := s.store.GetBoard(id)
	if err != nil {
		return err
	}
	doc := codec.Encode(state, documentID(id), b.Name, opts)
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	b.Manifest = string(data)
	if err := s.store.UpdateBoard(b); err != nil {
		return fmt.Errorf("save board: %w", err)
	}
	s.emitter.Emit(ctx, "board:updated", map[string]string{"boardId": id})
	return nil
}

// DuplicateBoard copies a board under a new id and name. The copy's manifest
// is re-encoded so its document id and range ids point at the new board.
func (s *BoardService) DuplicateBoard(ctx context.Context, id, name string) (*domain.Board, error) {
	state, err := s.LoadState(id)
	if err != nil {
		return nil, err
	}
	newID := uuid.New().String()
	doc := codec.Encode(state, documentID(newID), name, nil)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	b := &domain.Board{ID: newID, Name: name, Manifest: string(data)}
	if err := s.store.CreateBoard(b); err != nil {
		return nil, fmt.Errorf("duplicate board: %w", err)
	}
	s.emitter.Emit(ctx, "board:created", map[string]string{"boardId": b.ID})
	return b, nil
}

// ExportManifest writes a board's manifest to path as indented JSON. An empty
// path defaults to <dataDir>/<name>.json.
func (s *BoardService) ExportManifest(id, path string) (string, error) {
	b, err := s.store.GetBoard(id)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = filepath.Join(s.dataDir, safeFileName(b.Name)+".json")
	}

	// Re-indent for a readable export file.
	var pretty json.RawMessage = []byte(b.Manifest)
	data, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

// ImportManifest reads a manifest file and adds it to the library. Only
// documents carrying the board marker are accepted; everything else is a
// foreign manifest this tool cannot edit.
func (s *BoardService) ImportManifest(ctx context.Context, path string) (*domain.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	doc, err := manifest.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if !codec.IsBoard(doc) {
		return nil, fmt.Errorf("%s is not a board manifest", filepath.Base(path))
	}

	name := doc.Label.First()
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	b := &domain.Board{ID: uuid.New().String(), Name: name, Manifest: string(data)}
	if err := s.store.CreateBoard(b); err != nil {
		return nil, fmt.Errorf("import board: %w", err)
	}
	s.emitter.Emit(ctx, "board:created", map[string]string{"boardId": b.ID})
	return b, nil
}

// safeFileName strips path separators and other hostile characters from a
// board name before it is used as a file name.
func safeFileName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, name)
	mapped = strings.TrimSpace(mapped)
	if mapped == "" {
		return "board"
	}
	return mapped
}
