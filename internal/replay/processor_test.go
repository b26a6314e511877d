package replay

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s2rewind/analyser/pkg/core"
)

func testProcessor(dec Decoder) *Processor {
	return NewProcessor(Dependencies{
		Decoder: dec,
		Logger:  slog.New(slog.DiscardHandler),
	})
}

func TestProcess_DecodesAndExtracts(t *testing.T) {
	dec := &StaticDecoder{Archives: map[string]*Archive{"demo.SC2Replay": DemoArchive()}}
	p := testProcessor(dec)

	got, err := p.Process(Upload{Name: "demo.SC2Replay"})
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "demo.SC2Replay", got.Name)
	assert.Equal(t, "demo.SC2Map", got.Details.MapName())
	assert.Len(t, got.Messages, 2)
	require.Len(t, got.Snapshots, 4, "one snapshot per stats event")
	assert.Equal(t, uint32(320), got.EndFrame())
}

func TestProcess_AssignsUniqueIDs(t *testing.T) {
	dec := &StaticDecoder{Archives: map[string]*Archive{"a": DemoArchive()}}
	p := testProcessor(dec)

	first, err := p.Process(Upload{Name: "a"})
	require.NoError(t, err)
	second, err := p.Process(Upload{Name: "a"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestProcess_DecodeFailure(t *testing.T) {
	p := testProcessor(&StaticDecoder{})

	got, err := p.Process(Upload{Name: "corrupt.SC2Replay"})
	assert.Nil(t, got)
	assert.ErrorContains(t, err, "corrupt.SC2Replay")
}

func TestProcessAll_FailedFilesDoNotPoisonOthers(t *testing.T) {
	dec := &StaticDecoder{Archives: map[string]*Archive{
		"good1": DemoArchive(),
		"good2": DemoArchive(),
	}}
	p := testProcessor(dec)

	got := p.ProcessAll(context.Background(), []Upload{
		{Name: "good1"},
		{Name: "corrupt"},
		{Name: "good2"},
	})

	require.Len(t, got, 2)
	names := []string{got[0].Name, got[1].Name}
	assert.ElementsMatch(t, []string{"good1", "good2"}, names)
}

func TestProcessAll_EmptyInput(t *testing.T) {
	p := testProcessor(&StaticDecoder{})
	assert.Empty(t, p.ProcessAll(context.Background(), nil))
}

// blockingDecoder stalls selected files until released, so tests can force
// a completion order and park in-flight work.
type blockingDecoder struct {
	mu      sync.Mutex
	block   map[string]chan struct{}
	archive *Archive
}

func (d *blockingDecoder) Decode(name string, data []byte) (*Archive, error) {
	d.mu.Lock()
	gate := d.block[name]
	d.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if d.archive == nil {
		return nil, errors.New("no archive")
	}
	return d.archive, nil
}

func TestProcessAll_CompletionOrderWins(t *testing.T) {
	gate := make(chan struct{})
	dec := &blockingDecoder{
		block:   map[string]chan struct{}{"slow": gate},
		archive: DemoArchive(),
	}
	p := testProcessor(dec)

	done := make(chan []*core.ProcessedReplay, 1)
	go func() {
		done <- p.ProcessAll(context.Background(), []Upload{{Name: "slow"}, {Name: "fast"}})
	}()

	// Let the fast file land first, then release the slow one.
	time.Sleep(20 * time.Millisecond)
	close(gate)

	got := <-done
	require.Len(t, got, 2)
	assert.Equal(t, "fast", got[0].Name, "first completed appears first")
	assert.Equal(t, "slow", got[1].Name)
}

func TestProcessAll_CancellationDropsPendingReads(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	dec := &blockingDecoder{
		block:   map[string]chan struct{}{"stuck": gate},
		archive: DemoArchive(),
	}
	p := testProcessor(dec)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan []*core.ProcessedReplay, 1)
	go func() {
		done <- p.ProcessAll(ctx, []Upload{{Name: "fast"}, {Name: "stuck"}})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case got := <-done:
		require.Len(t, got, 1, "completed work is kept, pending work is dropped")
		assert.Equal(t, "fast", got[0].Name)
	case <-time.After(2 * time.Second):
		t.Fatal("ProcessAll did not return after cancellation")
	}
}
