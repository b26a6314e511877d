// Package gormstorage implements the storage.Backend interface on top of a
// GORM connection with internal queues and a background DB writer goroutine.
// The sqlite and postgres backends compose it with their own connections.
package gormstorage

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"github.com/s2rewind/analyser/internal/logging"
	"github.com/s2rewind/analyser/internal/model"
	"github.com/s2rewind/analyser/internal/queue"
	"github.com/s2rewind/analyser/pkg/core"
)

// DefaultWriteInterval is how often the writer goroutine drains the queues.
const DefaultWriteInterval = 2 * time.Second

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB         *gorm.DB
	LogManager *logging.SlogManager

	// WriteInterval overrides DefaultWriteInterval when non-zero.
	WriteInterval time.Duration

	// SQLiteSchema selects the sqlite model list during migration.
	SQLiteSchema bool
}

// queues holds all the write queues for batch DB insertion.
type queues struct {
	Replays   *queue.Queue[model.Replay]
	Snapshots *queue.Queue[model.Snapshot]
	Messages  *queue.Queue[model.Message]
}

func newQueues() *queues {
	return &queues{
		Replays:   queue.New[model.Replay](),
		Snapshots: queue.New[model.Snapshot](),
		Messages:  queue.New[model.Message](),
	}
}

// Backend implements storage.Backend using GORM with queue-based batch writes.
type Backend struct {
	deps     Dependencies
	queues   *queues
	stopChan chan struct{}
	stopOnce sync.Once
	dbReady  atomic.Bool

	lastWriteMs atomic.Int64
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.LogManager == nil {
		deps.LogManager = logging.NewSlogManager()
	}
	if deps.WriteInterval <= 0 {
		deps.WriteInterval = DefaultWriteInterval
	}
	return &Backend{deps: deps}
}

// Init creates internal queues, runs schema migration, and starts the DB
// writer goroutine. The DB connection must be injected via Dependencies.
func (b *Backend) Init() error {
	b.queues = newQueues()
	b.stopChan = make(chan struct{})

	if b.deps.DB == nil {
		return fmt.Errorf("gorm storage requires a DB connection")
	}

	if err := b.setupDB(); err != nil {
		return fmt.Errorf("failed to setup DB: %w", err)
	}
	b.dbReady.Store(true)

	b.startDBWriter()
	return nil
}

// setupDB migrates tables and creates the default instance info row if it
// doesn't exist.
func (b *Backend) setupDB() error {
	db := b.deps.DB
	log := b.deps.LogManager

	if !db.Migrator().HasTable(&model.AnalyserInfo{}) {
		if err := db.AutoMigrate(&model.AnalyserInfo{}); err != nil {
			log.WriteLog("setupDB", fmt.Sprintf("Failed to create analyser_info table: %s", err), "ERROR")
			return fmt.Errorf("failed to auto-migrate AnalyserInfo: %w", err)
		}
		if err := db.Create(&model.AnalyserInfo{
			InstanceName:        "s2rewind",
			InstanceDescription: "s2rewind replay analyser",
			InstanceWebsite:     "https://github.com/s2rewind/analyser",
		}).Error; err != nil {
			return fmt.Errorf("failed to create analyser_info entry: %w", err)
		}
	}

	log.WriteLog("setupDB", "Migrating schema", "INFO")
	models := model.DatabaseModels
	if b.deps.SQLiteSchema {
		models = model.DatabaseModelsSQLite
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.WriteLog("setupDB", "Database setup complete", "INFO")
	return nil
}

// Close flushes remaining queue contents and stops the writer goroutine.
func (b *Backend) Close() error {
	b.stopOnce.Do(func() {
		if b.stopChan != nil {
			close(b.stopChan)
		}
	})
	b.Flush()
	return nil
}

// AddReplay converts a processed replay to its database rows and pushes
// them to the write queues.
func (b *Backend) AddReplay(r *core.ProcessedReplay) error {
	replay, snapshots, messages := model.FromProcessedReplay(r)
	b.queues.Replays.Push(replay)
	b.queues.Snapshots.Push(snapshots...)
	b.queues.Messages.Push(messages...)
	return nil
}

// EndSession drains everything still queued into the database.
func (b *Backend) EndSession() error {
	b.Flush()
	return nil
}

// Flush synchronously drains all queues into the database.
func (b *Backend) Flush() {
	if !b.dbReady.Load() {
		return
	}

	start := time.Now()
	log := b.deps.LogManager.WriteLog
	writeQueue(b.deps.DB, b.queues.Replays, "replays", log)
	writeQueue(b.deps.DB, b.queues.Snapshots, "snapshots", log)
	writeQueue(b.deps.DB, b.queues.Messages, "messages", log)
	b.lastWriteMs.Store(time.Since(start).Milliseconds())
}

// QueueLengths reports the current write queue depths.
func (b *Backend) QueueLengths() model.WriteQueueLengths {
	if b.queues == nil {
		return model.WriteQueueLengths{}
	}
	return model.WriteQueueLengths{
		Replays:   uint16(b.queues.Replays.Len()),
		Snapshots: uint16(b.queues.Snapshots.Len()),
		Messages:  uint16(b.queues.Messages.Len()),
	}
}

// LastWriteDurationMs reports how long the most recent queue drain took.
func (b *Backend) LastWriteDurationMs() float32 {
	return float32(b.lastWriteMs.Load())
}

// DB exposes the underlying connection for composing backends.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// writeQueue writes all items from a queue to the database in a transaction.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], name string, log func(string, string, string)) {
	if q.Empty() {
		return
	}

	tx := db.Begin()
	items := q.GetAndEmpty()
	if err := tx.Create(&items).Error; err != nil {
		log(":DB:WRITER:", fmt.Sprintf("Error creating %s: %v", name, err), "ERROR")
		tx.Rollback()
		q.Push(items...)
		return
	}
	tx.Commit()
}

// startDBWriter starts the background goroutine that periodically drains
// queues into the DB.
func (b *Backend) startDBWriter() {
	go func() {
		ticker := time.NewTicker(b.deps.WriteInterval)
		defer ticker.Stop()
		for {
			select {
			case <-b.stopChan:
				return
			case <-ticker.C:
				b.Flush()
			}
		}
	}()
}
