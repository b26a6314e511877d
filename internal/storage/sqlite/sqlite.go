// Package sqlitestorage implements the storage.Backend interface on a local
// SQLite database. Rows are written to a shared in-memory database for
// speed, which is periodically vacuumed to the configured file on disk.
package sqlitestorage

import (
	"fmt"
	"sync"
	"time"

	"github.com/s2rewind/analyser/internal/config"
	"github.com/s2rewind/analyser/internal/database"
	"github.com/s2rewind/analyser/internal/logging"
	gormstorage "github.com/s2rewind/analyser/internal/storage/gorm"
)

// DefaultDumpInterval is used when the configured interval cannot be parsed.
const DefaultDumpInterval = 3 * time.Minute

// Backend composes the GORM queue backend with the in-memory-to-disk dump
// cycle.
type Backend struct {
	*gormstorage.Backend

	cfg      config.SQLiteConfig
	log      *logging.SlogManager
	stopChan chan struct{}
	stopOnce sync.Once
}

// New creates a new SQLite storage backend.
func New(cfg config.SQLiteConfig, log *logging.SlogManager) *Backend {
	if log == nil {
		log = logging.NewSlogManager()
	}
	return &Backend{cfg: cfg, log: log}
}

// Init opens the in-memory database, sets up the inner GORM backend, and
// starts the periodic disk dump goroutine.
func (b *Backend) Init() error {
	if b.cfg.Path == "" {
		return fmt.Errorf("sqlite storage requires a file path")
	}

	db, err := database.GetSqliteDBStandalone("")
	if err != nil {
		return fmt.Errorf("failed to open in-memory sqlite DB: %w", err)
	}

	b.Backend = gormstorage.New(gormstorage.Dependencies{
		DB:           db,
		LogManager:   b.log,
		SQLiteSchema: true,
	})
	if err := b.Backend.Init(); err != nil {
		return err
	}

	b.stopChan = make(chan struct{})
	go b.dumpLoop(b.dumpInterval())
	return nil
}

func (b *Backend) dumpInterval() time.Duration {
	if b.cfg.DumpInterval <= 0 {
		return DefaultDumpInterval
	}
	return b.cfg.DumpInterval
}

// dumpLoop periodically vacuums the in-memory database to disk so a crash
// loses at most one interval of data.
func (b *Backend) dumpLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			if err := b.Dump(); err != nil {
				b.log.WriteLog("dumpLoop", fmt.Sprintf("Failed to dump DB to disk: %s", err), "ERROR")
			}
		}
	}
}

// Dump flushes the queues and vacuums the in-memory database to the
// configured file.
func (b *Backend) Dump() error {
	b.Flush()

	start := time.Now()
	if err := database.DumpMemoryDBToDisk(b.DB(), b.cfg.Path); err != nil {
		return err
	}
	b.log.Logger().Debug("Dumped memory DB to disk",
		"path", b.cfg.Path, "duration", time.Since(start))
	return nil
}

// EndSession drains the queues and writes a final dump.
func (b *Backend) EndSession() error {
	if err := b.Backend.EndSession(); err != nil {
		return err
	}
	return b.Dump()
}

// Close stops the dump goroutine, flushes, and dumps one last time.
func (b *Backend) Close() error {
	b.stopOnce.Do(func() {
		if b.stopChan != nil {
			close(b.stopChan)
		}
	})
	if b.Backend == nil {
		return nil
	}
	if err := b.Backend.Close(); err != nil {
		return err
	}
	return b.Dump()
}

// GetExportedFilePaths returns the dump file so sessions stored locally can
// still be uploaded.
func (b *Backend) GetExportedFilePaths() []string {
	return []string{b.cfg.Path}
}
