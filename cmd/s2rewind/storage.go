package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s2rewind/analyser/internal/config"
	"github.com/s2rewind/analyser/internal/monitor"
	"github.com/s2rewind/analyser/internal/storage"
	"github.com/s2rewind/analyser/internal/storage/memory"
	pgstorage "github.com/s2rewind/analyser/internal/storage/postgres"
	sqlitestorage "github.com/s2rewind/analyser/internal/storage/sqlite"
)

func initStorage(zlog zerolog.Logger) error {
	storageCfg := config.GetStorageConfig()

	backend, err := createStorageBackend(storageCfg, zlog)
	if err != nil {
		Logger.Error("Failed to create storage backend", "error", err)
		return err
	}
	storageBackend = backend
	if err := storageBackend.Init(); err != nil {
		Logger.Error("Failed to initialize storage backend", "error", err)
		return fmt.Errorf("failed to initialize %s storage: %w", storageCfg.Type, err)
	}
	Logger.Info("Storage backend initialized", "type", storageCfg.Type)

	// Database-backed storage exposes its write queues; sample them.
	if stats, ok := storageBackend.(monitor.QueueStats); ok {
		monitorService = monitor.NewService(monitor.Dependencies{
			LogManager: SlogManager,
			Stats:      stats,
			Influx:     influxManager,
			StatusDir:  config.GetString("logsDir"),
		})
		if err := monitorService.Start(); err != nil {
			Logger.Warn("Failed to start status monitor", "error", err)
		}
	}

	return nil
}

func createStorageBackend(storageCfg config.StorageConfig, zlog zerolog.Logger) (storage.Backend, error) {
	switch storageCfg.Type {
	case "postgres":
		return pgstorage.New(SlogManager, zlog), nil

	case "sqlite":
		return sqlitestorage.New(storageCfg.SQLite, SlogManager), nil

	case "memory", "":
		return memory.New(storageCfg.Memory), nil

	default:
		return nil, fmt.Errorf("unknown storage type %q", storageCfg.Type)
	}
}
