package dispatcher

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...any) {}
func (nopLogger) Info(msg string, keysAndValues ...any)  {}
func (nopLogger) Error(msg string, keysAndValues ...any) {}

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	d, err := New(nopLogger{})
	require.NoError(t, err)
	return d
}

func TestDispatch_RoutesToHandler(t *testing.T) {
	d := newTestDispatcher(t)

	d.Register(":PROCESS:", func(e Event) (any, error) {
		return len(e.Payload), nil
	})

	result, err := d.Dispatch(Event{Command: ":PROCESS:", Payload: []byte{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, 3, result)
}

func TestDispatch_UnknownCommand(t *testing.T) {
	d := newTestDispatcher(t)

	_, err := d.Dispatch(Event{Command: ":NOPE:"})
	assert.ErrorContains(t, err, "unknown command")
}

func TestHasHandler(t *testing.T) {
	d := newTestDispatcher(t)
	assert.False(t, d.HasHandler(":EXPORT:"))

	d.Register(":EXPORT:", func(Event) (any, error) { return nil, nil })
	assert.True(t, d.HasHandler(":EXPORT:"))
}

func TestDispatch_HandlerError(t *testing.T) {
	d := newTestDispatcher(t)
	want := errors.New("decode failed")

	d.Register(":PROCESS:", func(Event) (any, error) { return nil, want })

	_, err := d.Dispatch(Event{Command: ":PROCESS:"})
	assert.ErrorIs(t, err, want)
}

func TestRegister_BufferedRunsAsync(t *testing.T) {
	d := newTestDispatcher(t)

	var handled atomic.Int64
	done := make(chan struct{}, 8)
	d.Register(":PROCESS:", func(Event) (any, error) {
		handled.Add(1)
		done <- struct{}{}
		return nil, nil
	}, Buffered(8))

	result, err := d.Dispatch(Event{Command: ":PROCESS:"})
	require.NoError(t, err)
	assert.Equal(t, "queued", result)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("buffered handler never ran")
	}
	assert.Equal(t, int64(1), handled.Load())
}

func TestRegister_BufferedDropsWhenFull(t *testing.T) {
	d := newTestDispatcher(t)

	gate := make(chan struct{})
	defer close(gate)
	d.Register(":PROCESS:", func(Event) (any, error) {
		<-gate
		return nil, nil
	}, Buffered(1))

	// First fill the single-slot buffer; the worker may pull one event
	// out, so keep pushing until a dispatch reports a full queue.
	assert.Eventually(t, func() bool {
		_, err := d.Dispatch(Event{Command: ":PROCESS:"})
		return err != nil
	}, 2*time.Second, time.Millisecond)
}

func TestRegister_LoggedWrapsHandler(t *testing.T) {
	d := newTestDispatcher(t)

	d.Register(":STATUS:", func(Event) (any, error) { return "ok", nil }, Logged())

	result, err := d.Dispatch(Event{Command: ":STATUS:"})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
}
