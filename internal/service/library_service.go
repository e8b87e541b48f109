package service

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"

	"boards/internal/codec"
	"boards/internal/manifest"
	"boards/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Library Service — manifest discovery, watching, snapshots
// ─────────────────────────────────────────────────────────────

// Settings key for the snapshot schedule; empty disables snapshots.
const settingSnapshotCron = "snapshot_cron"

// LibraryEntry is a loadable board manifest found on disk.
type LibraryEntry struct {
	Path       string `json:"path"`
	Name       string `json:"name"`
	DocumentID string `json:"documentId"`
}

// LibraryService discovers board manifests in a directory, watches it for
// changes, and optionally exports periodic snapshots of every stored board.
type LibraryService struct {
	boards  *BoardService
	db      *storage.DB
	emitter EventEmitter

	// watcher / cron lifecycle
	watchCancel context.CancelFunc
	watcher     *fsnotify.Watcher
	cronSched   *cron.Cron

	gate snapshotGate
}

// NewLibraryService creates a LibraryService.
func NewLibraryService(boards *BoardService, db *storage.DB, emitter EventEmitter) *LibraryService {
	return &LibraryService{boards: boards, db: db, emitter: emitter}
}

// ScanDirectory lists every .json file in dir that is a loadable board. The
// board marker is the sole test: manifests without it are listed nowhere,
// however board-shaped they look.
func (s *LibraryService) ScanDirectory(dir string) ([]LibraryEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var entries []LibraryEntry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, de.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		doc, err := manifest.Parse(data)
		if err != nil || !codec.IsBoard(doc) {
			continue
		}
		name := doc.Label.First()
		if name == "" {
			name = strings.TrimSuffix(de.Name(), ".json")
		}
		entries = append(entries, LibraryEntry{Path: path, Name: name, DocumentID: doc.ID})
	}
	return entries, nil
}

// Watch starts watching dir for manifest changes and emits library:changed
// (debounced) so listeners can rescan. Stops when ctx is cancelled or Stop is
// called.
func (s *LibraryService) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}
	s.watcher = watcher

	watchCtx, cancel := context.WithCancel(ctx)
	s.watchCancel = cancel

	go func() {
		var timer *time.Timer
		for {
			select {
			case <-watchCtx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
					continue
				}
				if !strings.HasSuffix(event.Name, ".json") {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(500*time.Millisecond, func() {
					log.Printf("library watcher: %s changed", filepath.Base(event.Name))
					s.emitter.Emit(ctx, "library:changed", map[string]string{"dir": dir})
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("library watcher: error: %v", err)
			}
		}
	}()

	log.Printf("library watcher: watching %s", dir)
	return nil
}

// StartSnapshots schedules periodic exports of every stored board into
// snapshotDir. The schedule is a cron expression read from app settings; an
// empty setting disables snapshots.
func (s *LibraryService) StartSnapshots(ctx context.Context, snapshotDir string) {
	expr := s.db.GetSetting(settingSnapshotCron, "")
	if expr == "" {
		return
	}

	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		if err := s.SnapshotAll(ctx, snapshotDir); err != nil {
			log.Printf("snapshot cron: %v", err)
		}
	})
	if err != nil {
		log.Printf("snapshot cron: invalid expression %q: %v", expr, err)
		return
	}
	c.Start()
	s.cronSched = c
	log.Printf("snapshot cron: scheduled %q", expr)
}

// SnapshotAll exports every board's manifest into dir. A run triggered while a
// previous one is still writing is skipped rather than interleaved.
func (s *LibraryService) SnapshotAll(ctx context.Context, dir string) error {
	if !s.gate.TryBegin() {
		log.Printf("snapshot: previous run still in progress, skipping")
		return nil
	}
	defer s.gate.End()

	boards, err := s.boards.ListBoards()
	if err != nil {
		return err
	}
	for _, b := range boards {
		path := filepath.Join(dir, safeFileName(b.Name)+".json")
		if _, err := s.boards.ExportManifest(b.ID, path); err != nil {
			log.Printf("snapshot cron: export %s failed: %v", b.ID, err)
		}
	}
	s.emitter.Emit(ctx, "library:snapshot", map[string]int{"count": len(boards)})
	return nil
}

// Stop tears down the watcher and scheduler.
func (s *LibraryService) Stop() {
	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
	if s.cronSched != nil {
		s.cronSched.Stop()
		s.cronSched = nil
	}

	// Let an in-flight snapshot finish writing before we return.
	waitCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.gate.Wait(waitCtx)
}
