// Package postgresstorage implements the storage.Backend interface against
// a PostgreSQL server, with a local SQLite fallback when the server is
// unreachable.
package postgresstorage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s2rewind/analyser/internal/database"
	"github.com/s2rewind/analyser/internal/logging"
	gormstorage "github.com/s2rewind/analyser/internal/storage/gorm"
)

// Backend composes the GORM queue backend with a managed postgres
// connection.
type Backend struct {
	*gormstorage.Backend

	manager *database.Manager
	log     *logging.SlogManager
}

// New creates a new PostgreSQL storage backend. Connection parameters come
// from the storage.postgres config section.
func New(log *logging.SlogManager, dbLog zerolog.Logger) *Backend {
	if log == nil {
		log = logging.NewSlogManager()
	}
	return &Backend{
		manager: database.NewManager(dbLog),
		log:     log,
	}
}

// Init connects to postgres (falling back to local sqlite) and sets up the
// inner GORM backend.
func (b *Backend) Init() error {
	if err := b.manager.Connect(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	b.Backend = gormstorage.New(gormstorage.Dependencies{
		DB:           b.manager.DB,
		LogManager:   b.log,
		SQLiteSchema: b.manager.ShouldSaveLocal,
	})
	return b.Backend.Init()
}

// UsingLocalFallback reports whether the session is being written to the
// sqlite fallback instead of the server.
func (b *Backend) UsingLocalFallback() bool {
	return b.manager.ShouldSaveLocal
}

// Close flushes and shuts down the writer and the connection pool.
func (b *Backend) Close() error {
	if b.Backend != nil {
		if err := b.Backend.Close(); err != nil {
			return err
		}
	}
	if b.manager.SqlDB != nil {
		return b.manager.SqlDB.Close()
	}
	return nil
}
