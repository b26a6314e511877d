// Package storage defines the interface replay persistence backends
// implement.
package storage

import "github.com/s2rewind/analyser/pkg/core"

// Backend is the interface all storage implementations must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Replay persistence. AddReplay stores one fully processed replay
	// with its snapshots and messages.
	AddReplay(r *core.ProcessedReplay) error

	// EndSession flushes everything buffered so far and finalizes any
	// session-scoped artifacts (export files, disk dumps).
	EndSession() error
}

// Uploadable is an optional interface for storage backends that produce
// files suitable for upload to a web frontend.
type Uploadable interface {
	GetExportedFilePaths() []string
}
