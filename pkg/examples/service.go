package examples

import (
	"fmt"
	"log/slog"

	"github.com/patricklucas/yelp-clog/pkg/config"
	"github.com/patricklucas/yelp-clog/pkg/handler"
	"github.com/patricklucas/yelp-clog/pkg/sink"
)

// ServiceLogsConfig configures a service's logging setup.
type ServiceLogsConfig struct {
	// Config selects and configures the backend sink.
	Config config.Config

	// Stream receives the service's structured records.
	Stream string

	// Level is the minimum level recorded. Nil means slog.LevelInfo.
	Level slog.Leveler
}

// ServiceLogs bundles a service's logging behind one handle. It demonstrates
// how applications typically adopt the library: one config-built sink shared
// by a log/slog logger for structured records and direct LogLine calls for
// raw payloads, with a single Close at shutdown.
type ServiceLogs struct {
	dest   sink.Sink
	logger *slog.Logger
}

// NewServiceLogs builds the configured sink and a logger writing to it.
func NewServiceLogs(cfg ServiceLogsConfig) (*ServiceLogs, error) {
	if cfg.Stream == "" {
		return nil, fmt.Errorf("stream name is required")
	}

	dest, err := cfg.Config.NewSink()
	if err != nil {
		return nil, fmt.Errorf("failed to build sink: %w", err)
	}

	logger := handler.NewLogger(dest, cfg.Stream, &slog.HandlerOptions{
		Level: cfg.Level,
	})

	return &ServiceLogs{dest: dest, logger: logger}, nil
}

// Logger returns the structured logger. Records are shipped as JSON lines
// on the configured stream.
func (s *ServiceLogs) Logger() *slog.Logger {
	return s.logger
}

// LogLine delivers a raw payload to any stream, sharing the underlying
// sink and its connection with the logger.
func (s *ServiceLogs) LogLine(stream string, line []byte) error {
	return s.dest.LogLine(stream, line)
}

// Sink exposes the underlying sink for further composition.
func (s *ServiceLogs) Sink() sink.Sink {
	return s.dest
}

// Close releases the sink. Call once at service shutdown.
func (s *ServiceLogs) Close() error {
	return s.dest.Close()
}
