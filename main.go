package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	mcpserver "boards/internal/mcp"
	"boards/internal/service"
	"boards/internal/storage"
)

func defaultDataDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".local", "share", "boards")
}

func main() {
	dataDir := flag.String("data", defaultDataDir(), "data directory for the board library")
	watchDir := flag.String("watch", "", "directory to watch for board manifests (optional)")
	library := flag.String("library", "sqlite", "board library backend: sqlite, postgres, mysql, or mongo")
	libraryDSN := flag.String("library-dsn", "", "connection string for a shared library backend")
	libraryDB := flag.String("library-db", "boards", "database name for the mongo backend")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dbPath := filepath.Join(*dataDir, "boards.db")
	exportDir := filepath.Join(*dataDir, "manifests")

	db, err := storage.New(dbPath, exportDir)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	boardStore, closeLibrary, err := storage.OpenLibrary(db, *library, *libraryDSN, *libraryDB)
	if err != nil {
		log.Fatalf("Failed to open %s library: %v", *library, err)
	}
	defer closeLibrary()

	emitter := service.NoopEmitter{}

	boardsSvc := service.NewBoardService(boardStore, exportDir, emitter)
	librarySvc := service.NewLibraryService(boardsSvc, db, emitter)
	defer librarySvc.Stop()

	if *watchDir != "" {
		if err := librarySvc.Watch(ctx, *watchDir); err != nil {
			log.Printf("library watcher: %v", err)
		}
	}
	librarySvc.StartSnapshots(ctx, filepath.Join(*dataDir, "snapshots"))

	mcpSrv := mcpserver.New(mcpserver.Deps{
		Emitter: emitter,
		Boards:  boardsSvc,
		Library: librarySvc,
	})

	log.Println("[MCP] Starting standalone stdio server...")
	if err := mcpSrv.ServeStdio(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
