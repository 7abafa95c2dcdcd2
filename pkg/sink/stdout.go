package sink

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// StdoutSink writes every line to standard output as "stream:line\n".
// It is meant for local development and debugging, not production traffic.
// StdoutSink is safe for concurrent use.
type StdoutSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdoutSink creates a StdoutSink writing to os.Stdout.
func NewStdoutSink() *StdoutSink {
	return &StdoutSink{w: os.Stdout}
}

// NewStdoutSinkTo creates a StdoutSink writing to w instead of os.Stdout.
func NewStdoutSinkTo(w io.Writer) *StdoutSink {
	return &StdoutSink{w: w}
}

// LogLine writes "stream:line\n" to the output.
func (s *StdoutSink) LogLine(stream string, line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "%s:%s\n", stream, line); err != nil {
		return fmt.Errorf("stdout sink write failed: %w", err)
	}
	return nil
}

// Close flushes the output if it is buffered. The sink stays usable.
func (s *StdoutSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ Sink = (*StdoutSink)(nil)
