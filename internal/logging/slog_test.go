package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogManager_LoggerBeforeSetup(t *testing.T) {
	m := NewSlogManager()
	assert.NotNil(t, m.Logger(), "falls back to the default logger")
}

func TestSlogManager_SetupWritesToFile(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "info", nil)

	m.Logger().Info("replay processed", "name", "demo.SC2Replay")

	out := buf.String()
	assert.Contains(t, out, "Logging initialized")
	assert.Contains(t, out, "replay processed")
	assert.Contains(t, out, "demo.SC2Replay")
}

func TestSlogManager_LevelFiltersRecords(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "warn", nil)

	m.Logger().Debug("too quiet")
	m.Logger().Info("still too quiet")
	m.Logger().Warn("loud enough")

	out := buf.String()
	assert.NotContains(t, out, "too quiet")
	assert.Contains(t, out, "loud enough")
}

func TestSlogManager_ExtraHandlersReceiveRecords(t *testing.T) {
	var extra bytes.Buffer
	m := NewSlogManager()
	m.Setup(nil, "info", nil, slog.NewJSONHandler(&extra, nil))

	m.Logger().Info("forwarded")
	assert.Contains(t, extra.String(), "forwarded")
}

func TestSlogManager_WriteLog(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "debug", nil)

	m.WriteLog("processReplay", "decode done", "DEBUG")
	m.WriteLog("processReplay", "snapshot count 12", "INFO")
	m.WriteLog("processReplay", "unknown level is info", "whatever")

	out := buf.String()
	assert.Contains(t, out, "decode done")
	assert.Contains(t, out, "function=processReplay")
	assert.Contains(t, out, "unknown level is info")
}

func TestSlogManager_WriteLogBeforeSetupIsNoop(t *testing.T) {
	m := NewSlogManager()
	assert.NotPanics(t, func() { m.WriteLog("fn", "data", "INFO") })
}

func TestSlogManager_FlushWithoutProvider(t *testing.T) {
	m := NewSlogManager()
	assert.NoError(t, m.Flush(context.Background()))
}

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		nil, // nil handlers are dropped, not dereferenced
		slog.NewTextHandler(&b, nil),
	)

	logger := slog.New(h)
	logger.Info("fan out")

	assert.Contains(t, a.String(), "fan out")
	assert.Contains(t, b.String(), "fan out")
}

func TestMultiHandler_EnabledIfAnyHandlerIs(t *testing.T) {
	var buf bytes.Buffer
	debugOnly := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	errorOnly := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError})

	h := NewMultiHandler(errorOnly, debugOnly)
	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))

	strict := NewMultiHandler(errorOnly)
	assert.False(t, strict.Enabled(context.Background(), slog.LevelInfo))
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(slog.NewTextHandler(&buf, nil))

	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("session", "abc")}))
	logger.Info("tagged")

	assert.Contains(t, buf.String(), "session=abc")
}

func TestContextHandler_InjectsDynamicAttrs(t *testing.T) {
	var buf bytes.Buffer
	replayName := "none"
	h := NewContextHandler(slog.NewTextHandler(&buf, nil), func() []slog.Attr {
		return []slog.Attr{slog.String("replay", replayName)}
	})

	logger := slog.New(h)
	logger.Info("first")
	replayName = "demo.SC2Replay"
	logger.Info("second")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "replay=none")
	assert.Contains(t, lines[1], "replay=demo.SC2Replay")
}
