package service

import (
	"context"
	"sync"
)

// ExportedSnapshotGate is an exported alias so _test packages can test the gate.
type ExportedSnapshotGate = snapshotGate

// snapshotGate serializes snapshot runs. The cron scheduler and the MCP tool
// can both trigger SnapshotAll; a run that starts while another is still
// writing into the snapshot directory is skipped instead of interleaved.
type snapshotGate struct {
	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// TryBegin marks a run as started. It returns false while another run is in
// flight.
func (g *snapshotGate) TryBegin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		return false
	}
	g.running = true
	g.done = make(chan struct{})
	return true
}

// End marks the run as finished. Must be called after TryBegin returns true.
func (g *snapshotGate) End() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.running = false
	close(g.done)
}

// Wait blocks until the in-flight run, if any, finishes or ctx expires.
func (g *snapshotGate) Wait(ctx context.Context) {
	g.mu.Lock()
	running, done := g.running, g.done
	g.mu.Unlock()
	if !running {
		return
	}
	select {
	case <-done:
	case <-ctx.Done():
	}
}
