package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"boards/internal/service"
	"boards/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// LibraryService discovery tests
// ─────────────────────────────────────────────────────────────

func newTestLibrary(t *testing.T) (*service.LibraryService, *service.BoardService) {
	t.Helper()
	db, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	emitter := &service.MockEmitter{}
	boards := service.NewBoardService(storage.NewBoardStore(db), t.TempDir(), emitter)
	return service.NewLibraryService(boards, db, emitter), boards
}

func TestLibraryService_ScanDirectory(t *testing.T) {
	lib, boards := newTestLibrary(t)
	ctx := context.Background()
	dir := t.TempDir()

	// One real board manifest.
	b, err := boards.CreateBoard(ctx, "Real board")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := boards.ExportManifest(b.ID, filepath.Join(dir, "real.json")); err != nil {
		t.Fatalf("export: %v", err)
	}

	// A foreign manifest: valid shape, no board marker.
	foreign := `{"id": "x", "type": "Manifest", "label": {"none": ["Plain"]}, "items": []}`
	if err := os.WriteFile(filepath.Join(dir, "foreign.json"), []byte(foreign), 0644); err != nil {
		t.Fatalf("write foreign: %v", err)
	}

	// Garbage and non-JSON files are skipped silently.
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write broken: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hello"), 0644); err != nil {
		t.Fatalf("write txt: %v", err)
	}

	entries, err := lib.ScanDirectory(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("scan found %d entries, want 1", len(entries))
	}
	if entries[0].Name != "Real board" {
		t.Errorf("entry name = %q", entries[0].Name)
	}
}

func TestLibraryService_SnapshotAll(t *testing.T) {
	lib, boards := newTestLibrary(t)
	ctx := context.Background()

	for _, name := range []string{"First", "Second"} {
		if _, err := boards.CreateBoard(ctx, name); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	dir := t.TempDir()
	if err := lib.SnapshotAll(ctx, dir); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	entries, err := lib.ScanDirectory(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("snapshot wrote %d loadable manifests, want 2", len(entries))
	}
}
