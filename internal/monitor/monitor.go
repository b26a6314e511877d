// Package monitor periodically samples the storage write queues and records
// the measurements to the database, a status file, and optionally InfluxDB.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/s2rewind/analyser/internal/influx"
	"github.com/s2rewind/analyser/internal/logging"
	"github.com/s2rewind/analyser/internal/model"
)

// DefaultSampleInterval is how often the monitor takes a measurement.
const DefaultSampleInterval = 1 * time.Second

// QueueStats is implemented by storage backends that expose their write
// queue state.
type QueueStats interface {
	QueueLengths() model.WriteQueueLengths
	LastWriteDurationMs() float32
}

// Dependencies holds all dependencies for the monitor service.
type Dependencies struct {
	DB              *gorm.DB
	LogManager      *logging.SlogManager
	Stats           QueueStats
	Influx          *influx.Manager
	StatusDir       string
	SampleInterval  time.Duration
	IsDatabaseValid func() bool
}

// Service manages status monitoring.
type Service struct {
	deps      Dependencies
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// NewService creates a new monitor service.
func NewService(deps Dependencies) *Service {
	if deps.LogManager == nil {
		deps.LogManager = logging.NewSlogManager()
	}
	if deps.SampleInterval <= 0 {
		deps.SampleInterval = DefaultSampleInterval
	}
	if deps.IsDatabaseValid == nil {
		deps.IsDatabaseValid = func() bool { return false }
	}
	return &Service{
		deps:     deps,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the status monitor is running.
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Sample takes one performance measurement and renders the status lines
// written to the status file.
func (s *Service) Sample() (output []string, perf model.AnalyserPerformance) {
	lengths := model.WriteQueueLengths{}
	var lastWriteMs float32
	if s.deps.Stats != nil {
		lengths = s.deps.Stats.QueueLengths()
		lastWriteMs = s.deps.Stats.LastWriteDurationMs()
	}

	perf = model.AnalyserPerformance{
		Time:                time.Now(),
		WriteQueueLengths:   lengths,
		LastWriteDurationMs: lastWriteMs,
	}

	queuesStr, err := json.MarshalIndent(lengths, "", "  ")
	if err != nil {
		queuesStr = []byte(fmt.Sprintf(`{"error": "%s"}`, err))
	}
	output = append(output, string(queuesStr))
	output = append(output, fmt.Sprintf("lastWriteDurationMs: %.0f", lastWriteMs))

	return output, perf
}

// Start starts the status monitor goroutine.
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		logger := s.deps.LogManager.Logger()
		logger.Debug("Starting status monitor goroutine", "function", "startStatusMonitor")

		var statusFile *os.File
		if s.deps.StatusDir != "" {
			var err error
			statusFile, err = os.Create(s.deps.StatusDir + "/status.txt")
			if err != nil {
				logger.Error("Error creating status file", "error", err)
			}
		}
		defer func() {
			if statusFile != nil {
				statusFile.Close()
			}
		}()

		ticker := time.NewTicker(s.deps.SampleInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				statusStr, perf := s.Sample()

				if statusFile != nil {
					statusFile.Truncate(0)
					statusFile.Seek(0, 0)
					for _, line := range statusStr {
						statusFile.WriteString(line + "\n")
					}
				}

				if s.deps.IsDatabaseValid() && s.deps.DB != nil {
					if err := s.deps.DB.Create(&perf).Error; err != nil {
						logger.Error("Error writing performance sample", "error", err)
					}
				}

				if s.deps.Influx != nil {
					if err := s.deps.Influx.WritePerformance(context.Background(), perf); err != nil {
						logger.Error("Error writing performance sample to InfluxDB", "error", err)
					}
				}
			}
		}
	}()

	return nil
}

// Stop stops the status monitor.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		close(s.stopChan)
	}
}
