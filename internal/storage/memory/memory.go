// Package memory stores processed replays in memory and exports them to
// JSON files when the session ends.
package memory

import (
	"sync"

	"github.com/s2rewind/analyser/internal/config"
	"github.com/s2rewind/analyser/pkg/core"
)

// Backend stores replay data in memory and exports to JSON
type Backend struct {
	cfg config.MemoryConfig

	replays  []*core.ProcessedReplay
	exported []string
	mu       sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// AddReplay appends a processed replay to the session collection.
func (b *Backend) AddReplay(r *core.ProcessedReplay) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replays = append(b.replays, r)
	return nil
}

// EndSession exports every collected replay to its own JSON file and
// resets the collection.
func (b *Backend) EndSession() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, r := range b.replays {
		path, err := b.exportJSON(r)
		if err != nil {
			return err
		}
		b.exported = append(b.exported, path)
	}
	b.replays = nil
	return nil
}

// Len returns the number of replays collected in the current session.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.replays)
}

// GetReplay looks up a collected replay by its id.
func (b *Backend) GetReplay(id string) (*core.ProcessedReplay, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, r := range b.replays {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// GetExportedFilePaths returns the files written by EndSession.
func (b *Backend) GetExportedFilePaths() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.exported...)
}
