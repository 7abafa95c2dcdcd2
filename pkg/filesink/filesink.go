package filesink

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/patricklucas/yelp-clog/pkg/sink"
	"github.com/patricklucas/yelp-clog/pkg/streamname"
)

// Config configures a file Sink.
type Config struct {
	// Dir is the base directory for log files. It must already exist.
	Dir string

	// Opener chooses and opens the destination for each stream.
	// If nil, PlainOpener is used.
	Opener Opener

	// RawNames disables stream-name sanitization in filenames.
	// Sanitization is on by default so a stream name containing path
	// separators cannot place files outside Dir.
	RawNames bool
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return errors.New("invalid configuration: log directory is required")
	}
	return nil
}

// Sink appends log lines to per-stream files under a base directory.
//
// Files are opened lazily on the first line for each stream and stay open
// until Close. Open and write failures are fatal to the call: local disk
// problems surface to the caller instead of being dropped.
type Sink struct {
	dir      string
	opener   Opener
	rawNames bool

	mu     sync.Mutex
	files  map[string]io.WriteCloser
	closed bool
}

// Compile-time interface satisfaction check.
var _ sink.Sink = (*Sink)(nil)

// New creates a file sink writing under cfg.Dir.
func New(cfg Config) (*Sink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opener := cfg.Opener
	if opener == nil {
		opener = PlainOpener{}
	}
	return &Sink{
		dir:      cfg.Dir,
		opener:   opener,
		rawNames: cfg.RawNames,
		files:    make(map[string]io.WriteCloser),
	}, nil
}

// NewPlain creates a sink appending to "stream.log" files under dir.
func NewPlain(dir string) (*Sink, error) {
	return New(Config{Dir: dir})
}

// NewGzip creates a sink appending to "stream.log.gz" files under dir.
func NewGzip(dir string) (*Sink, error) {
	return New(Config{Dir: dir, Opener: GzipOpener{}})
}

// NewGzipDated creates a sink appending to dated "stream-2006-01-02.log.gz"
// files under dir.
func NewGzipDated(dir string, day time.Time) (*Sink, error) {
	return New(Config{Dir: dir, Opener: GzipOpener{Day: day}})
}

// LogLine appends line and a trailing newline to the stream's file,
// opening it on first use.
func (s *Sink) LogLine(stream string, line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("%w: file sink", sink.ErrClosed)
	}

	handle, err := s.handleLocked(stream)
	if err != nil {
		return err
	}

	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')
	if _, err := handle.Write(buf); err != nil {
		return fmt.Errorf("failed to write to stream %q: %w", stream, err)
	}
	return nil
}

// handleLocked returns the open file for a stream, opening it if needed.
// Open failures are not cached; a later call retries the open.
func (s *Sink) handleLocked(stream string) (io.WriteCloser, error) {
	name := stream
	if !s.rawNames {
		name = streamname.Sanitize(stream)
	}

	if handle, ok := s.files[name]; ok {
		return handle, nil
	}

	path := filepath.Join(s.dir, s.opener.Filename(name))
	handle, err := s.opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stream %q: %w", stream, err)
	}
	s.files[name] = handle
	return handle, nil
}

// Close closes every opened file. The sink rejects lines afterwards.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for name, handle := range s.files {
		if err := handle.Close(); err != nil {
			errs = append(errs, fmt.Errorf("stream %q: %w", name, err))
		}
	}
	s.files = nil
	return errors.Join(errs...)
}
