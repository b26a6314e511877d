package monitor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s2rewind/analyser/internal/database"
	"github.com/s2rewind/analyser/internal/model"
)

type fakeStats struct {
	lengths model.WriteQueueLengths
	writeMs float32
}

func (f *fakeStats) QueueLengths() model.WriteQueueLengths { return f.lengths }
func (f *fakeStats) LastWriteDurationMs() float32          { return f.writeMs }

func TestSample(t *testing.T) {
	s := NewService(Dependencies{
		Stats: &fakeStats{
			lengths: model.WriteQueueLengths{Replays: 1, Snapshots: 8, Messages: 2},
			writeMs: 12,
		},
	})

	output, perf := s.Sample()
	require.Len(t, output, 2)
	assert.Contains(t, output[0], `"snapshots": 8`)
	assert.Contains(t, output[1], "lastWriteDurationMs: 12")
	assert.Equal(t, uint16(1), perf.WriteQueueLengths.Replays)
	assert.Equal(t, float32(12), perf.LastWriteDurationMs)
	assert.False(t, perf.Time.IsZero())
}

func TestSample_NoStats(t *testing.T) {
	s := NewService(Dependencies{})
	_, perf := s.Sample()
	assert.Zero(t, perf.WriteQueueLengths.Replays)
}

func TestStartStop_WritesStatusFileAndDB(t *testing.T) {
	db, err := database.GetSqliteDBStandalone("")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.AnalyserPerformance{}))

	dir := t.TempDir()
	s := NewService(Dependencies{
		DB:              db,
		Stats:           &fakeStats{lengths: model.WriteQueueLengths{Replays: 3}},
		StatusDir:       dir,
		SampleInterval:  10 * time.Millisecond,
		IsDatabaseValid: func() bool { return true },
	})

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())

	// Second start is a no-op while running.
	require.NoError(t, s.Start())

	statusPath := filepath.Join(dir, "status.txt")
	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(statusPath)
		return err == nil && len(data) > 0
	}, 2*time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		var count int64
		if err := db.Model(&model.AnalyserPerformance{}).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	}, 2*time.Second, 10*time.Millisecond)

	s.Stop()
	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)

	// Second stop is safe.
	s.Stop()
}
