// Package handler bridges the standard structured logging API onto a
// sink, so application slog records ship to a stream like any other line.
package handler

import (
	"log/slog"

	"github.com/patricklucas/yelp-clog/pkg/sink"
)

// New returns a slog.Handler that ships each record to the named stream
// as one JSON-encoded line.
//
// Formatting is delegated to slog's JSON handler, so levels, attributes
// and groups behave exactly as they do when logging to a file. Delivery
// failures are reported through the sink's own failure handling; the
// logging call itself never fails.
func New(s sink.Sink, stream string, opts *slog.HandlerOptions) slog.Handler {
	return slog.NewJSONHandler(&sinkWriter{sink: s, stream: stream}, opts)
}

// NewLogger returns a logger whose records ship to the named stream.
func NewLogger(s sink.Sink, stream string, opts *slog.HandlerOptions) *slog.Logger {
	return slog.New(New(s, stream, opts))
}

// sinkWriter adapts a sink to io.Writer for the JSON handler, which
// emits exactly one Write per record.
type sinkWriter struct {
	sink   sink.Sink
	stream string
}

func (w *sinkWriter) Write(p []byte) (int, error) {
	line := p
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if err := w.sink.LogLine(w.stream, line); err != nil {
		return 0, err
	}
	return len(p), nil
}
