package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/s2rewind/analyser/internal/config"
	"github.com/s2rewind/analyser/internal/dispatcher"
	"github.com/s2rewind/analyser/internal/gelf"
	"github.com/s2rewind/analyser/internal/influx"
	"github.com/s2rewind/analyser/internal/logging"
	"github.com/s2rewind/analyser/internal/monitor"
	intOtel "github.com/s2rewind/analyser/internal/otel"
	"github.com/s2rewind/analyser/internal/replay"
	"github.com/s2rewind/analyser/internal/storage"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.1.0"
	BuildDate      string = "unknown"

	AppName string = "s2rewind"
)

// global variables
var (
	SessionStartTime time.Time = time.Now()

	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	LogFilePath string
	LogFile     *os.File

	// Services
	influxManager   *influx.Manager
	eventDispatcher *dispatcher.Dispatcher
	monitorService  *monitor.Service
	processor       *replay.Processor

	// Storage backend
	storageBackend storage.Backend
)

// setup loads config and wires logging, telemetry, storage, and the
// command dispatcher. Everything it starts is torn down by shutdown.
func setup(configDir string) error {
	SlogManager = logging.NewSlogManager()
	Logger = SlogManager.Logger()

	if err := config.Load(configDir); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	}

	logsDir := viper.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		os.MkdirAll(logsDir, 0755)
	}

	LogFilePath = logging.LogFilePath(logsDir, AppName, SessionStartTime)
	if _, err := os.Stat(LogFilePath); err == nil {
		os.Rename(LogFilePath, LogFilePath+".old")
	}

	var err error
	LogFile, err = os.OpenFile(LogFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to create log file %s: %w", LogFilePath, err)
	}

	// OTel provider first so the slog bridge can export through it
	otelCfg := config.GetOTelConfig()
	OTelProvider, err = intOtel.New(intOtel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		BatchTimeout: otelCfg.BatchTimeout,
		LogWriter:    LogFile,
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize OTel provider: %w", err)
	}

	// Graylog forwarding plugs into the multi-handler as an extra output,
	// wrapped so every record carries the session identity.
	var extraHandlers []slog.Handler
	gelfCfg := config.GetGelfConfig()
	if gelfCfg.Enabled {
		gelfHandler, err := gelf.NewHandler(gelfCfg.Address, slog.LevelInfo)
		if err != nil {
			Logger.Warn("Failed to create Graylog handler", "error", err, "address", gelfCfg.Address)
		} else {
			extraHandlers = append(extraHandlers, logging.NewContextHandler(gelfHandler, sessionAttrs))
		}
	}

	SlogManager.Setup(LogFile, viper.GetString("logLevel"), OTelProvider.LoggerProvider(), extraHandlers...)
	Logger = SlogManager.Logger()
	Logger.Info("Begin logging in logs directory", "path", LogFilePath)

	zlog := zerolog.New(os.Stdout).With().Timestamp().Logger()

	influxCfg := config.GetInfluxConfig()
	if influxCfg.Enabled {
		backupPath := filepath.Join(logsDir, fmt.Sprintf("influx_backup_%s.gz", SessionStartTime.Format("20060102_150405")))
		influxManager = influx.NewManager(zlog, backupPath)
		if err := influxManager.Connect(); err != nil {
			Logger.Warn("InfluxDB unavailable, metrics disabled", "error", err)
			influxManager = nil
		}
	}

	eventDispatcher, err = dispatcher.New(logging.NewDispatcherLogger(zlog))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}

	if err := initStorage(zlog); err != nil {
		return err
	}

	processor = replay.NewProcessor(replay.Dependencies{
		Decoder: replay.JSONDecoder{},
		Logger:  Logger,
	})

	registerHandlers()
	return nil
}

// sessionAttrs is the dynamic context attached to forwarded log records.
func sessionAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("app", AppName),
		slog.String("version", CurrentVersion),
		slog.Time("sessionStart", SessionStartTime),
	}
}

// registerHandlers wires the session commands into the dispatcher.
func registerHandlers() {
	eventDispatcher.Register(":PROCESS:", handleProcess, dispatcher.Logged())
	eventDispatcher.Register(":EXPORT:", handleExport, dispatcher.Logged())
	eventDispatcher.Register(":STATUS:", handleStatus)
}

// handleProcess runs one uploaded replay through the pipeline and stores
// the result.
func handleProcess(e dispatcher.Event) (any, error) {
	if len(e.Args) == 0 {
		return nil, fmt.Errorf("missing replay name")
	}

	processed, err := processor.Process(replay.Upload{Name: e.Args[0], Data: e.Payload})
	if err != nil {
		return nil, err
	}
	if err := storageBackend.AddReplay(processed); err != nil {
		return nil, fmt.Errorf("failed to store replay %s: %w", processed.Name, err)
	}

	if influxManager != nil {
		if err := influxManager.WriteReplaySummary(context.Background(), processed); err != nil {
			Logger.Warn("Failed to record replay metrics", "error", err)
		}
	}

	return processed.ID, nil
}

// handleExport finalizes the session's storage artifacts.
func handleExport(e dispatcher.Event) (any, error) {
	if err := storageBackend.EndSession(); err != nil {
		return nil, err
	}
	if uploadable, ok := storageBackend.(storage.Uploadable); ok {
		return uploadable.GetExportedFilePaths(), nil
	}
	return nil, nil
}

// handleStatus reports the monitor's current measurement.
func handleStatus(e dispatcher.Event) (any, error) {
	if monitorService == nil {
		return "no monitor running", nil
	}
	output, _ := monitorService.Sample()
	return strings.Join(output, "\n"), nil
}

// shutdown tears down everything setup started, in reverse order.
func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if monitorService != nil {
		monitorService.Stop()
	}
	if storageBackend != nil {
		if err := storageBackend.Close(); err != nil {
			Logger.Error("Error closing storage backend", "error", err)
		}
	}
	if influxManager != nil {
		if err := influxManager.Close(); err != nil {
			Logger.Error("Error closing InfluxDB manager", "error", err)
		}
	}
	if SlogManager != nil {
		if err := SlogManager.Flush(ctx); err != nil {
			Logger.Error("Error flushing logs", "error", err)
		}
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			Logger.Error("Error shutting down OTel provider", "error", err)
		}
	}
	if LogFile != nil {
		LogFile.Close()
	}
}
