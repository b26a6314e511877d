// Package replay runs uploaded replay files through the decode and
// extraction pipeline.
package replay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/s2rewind/analyser/internal/timeline"
	"github.com/s2rewind/analyser/pkg/core"
)

// Upload is one complete replay file handed in by the outer surface. The
// byte buffer is already fully read; partial uploads never reach the
// processor.
type Upload struct {
	Name string
	Data []byte
}

// Dependencies holds all dependencies for the replay processor.
type Dependencies struct {
	Decoder Decoder
	Logger  *slog.Logger
}

// Processor decodes uploads and extracts their snapshot timelines. A
// failed file is skipped and logged; it never poisons other uploads.
type Processor struct {
	deps Dependencies
}

// NewProcessor creates a replay processor. A nil logger falls back to
// slog's default.
func NewProcessor(deps Dependencies) *Processor {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Processor{deps: deps}
}

// Process runs one upload through decode and extraction. The returned
// replay gets a fresh unique id on every call.
func (p *Processor) Process(upload Upload) (*core.ProcessedReplay, error) {
	archive, err := p.deps.Decoder.Decode(upload.Name, upload.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", upload.Name, err)
	}

	processed := &core.ProcessedReplay{
		ID:        uuid.NewString(),
		Name:      upload.Name,
		Details:   archive.Details,
		Messages:  archive.Messages,
		Snapshots: timeline.Extract(archive.Events),
	}

	p.deps.Logger.Info("Processed replay",
		"name", upload.Name,
		"map", archive.Details.MapName(),
		"players", len(archive.Details.Players),
		"snapshots", len(processed.Snapshots),
	)
	return processed, nil
}

// ProcessAll runs every upload concurrently and appends results in
// completion order, so the first replay to finish decoding lands first
// regardless of submission order. Failed uploads are logged and dropped.
// Cancelling ctx abandons results that have not completed yet; already
// collected replays are still returned.
func (p *Processor) ProcessAll(ctx context.Context, uploads []Upload) []*core.ProcessedReplay {
	type outcome struct {
		replay *core.ProcessedReplay
		name   string
		err    error
	}

	results := make(chan outcome, len(uploads))
	for _, upload := range uploads {
		go func(u Upload) {
			r, err := p.Process(u)
			select {
			case results <- outcome{replay: r, name: u.Name, err: err}:
			case <-ctx.Done():
			}
		}(upload)
	}

	var processed []*core.ProcessedReplay
	for range uploads {
		select {
		case <-ctx.Done():
			p.deps.Logger.Warn("Replay processing cancelled",
				"collected", len(processed),
				"pending", len(uploads)-len(processed),
				"reason", ctx.Err(),
			)
			return processed
		case out := <-results:
			if out.err != nil {
				p.deps.Logger.Error("Skipping replay", "name", out.name, "error", out.err)
				continue
			}
			processed = append(processed, out.replay)
		}
	}
	return processed
}
