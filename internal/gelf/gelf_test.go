package gelf

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	// UDP writers connect lazily, so no server needs to be listening.
	h, err := NewHandler("127.0.0.1:12201", slog.LevelInfo)
	require.NoError(t, err)
	require.NotNil(t, h)

	logger := slog.New(h)
	assert.NotPanics(t, func() {
		logger.Info("forwarded", "replay", "demo.SC2Replay")
	})
}

func TestNewHandler_BadAddress(t *testing.T) {
	_, err := NewHandler("not-an-address", slog.LevelInfo)
	assert.Error(t, err)
}
