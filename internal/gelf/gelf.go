// Package gelf forwards log records to a Graylog server.
package gelf

import (
	"fmt"
	"log/slog"

	graygelf "github.com/Graylog2/go-gelf/gelf"
)

// NewHandler returns a slog handler that ships JSON records to the GELF
// endpoint at address (UDP, host:port). It plugs into the logging
// multi-handler as an extra output.
func NewHandler(address string, level slog.Level) (slog.Handler, error) {
	writer, err := graygelf.NewWriter(address)
	if err != nil {
		return nil, fmt.Errorf("failed to create GELF writer for %s: %w", address, err)
	}
	return slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level}), nil
}
