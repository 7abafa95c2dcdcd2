package sink

import (
	"errors"
	"fmt"
)

// Sink errors shared across backends.
var (
	// ErrNotForkSafe indicates the sink was created in a different process.
	// A sink holding a network connection must not be shared across a fork;
	// the forked child would interleave writes with the parent on the same
	// socket. Calls that return this error performed no I/O.
	ErrNotForkSafe = errors.New("sink is not fork-safe")

	// ErrClosed indicates the sink has been closed.
	ErrClosed = errors.New("sink is closed")
)

// LineTooLongError reports a line rejected for exceeding the maximum size.
// The line was not delivered anywhere.
type LineTooLongError struct {
	// Size is the byte length of the rejected line.
	Size int

	// Max is the maximum allowed line size in bytes.
	Max int
}

// Error implements the error interface.
func (e *LineTooLongError) Error() string {
	return fmt.Sprintf("log line is %d bytes, the maximum allowed is %d bytes", e.Size, e.Max)
}

// Sink is the capability every log backend implements.
// Implementations must be safe for concurrent use unless documented otherwise.
type Sink interface {
	// LogLine delivers a single line to the named stream. The line must not
	// contain newline characters; backends append the trailing newline
	// themselves where the destination format requires one.
	//
	// Errors surface only for conditions the caller must know about:
	// ErrNotForkSafe, *LineTooLongError, or a local I/O failure. Remote
	// delivery problems are degraded internally (drop and report) so that
	// logging never takes down the instrumented application.
	LogLine(stream string, line []byte) error

	// Close releases the backend's resources. The sink is unusable
	// afterwards unless its documentation says otherwise.
	Close() error
}

// NoopSink discards all lines. Use when logging is disabled.
// NoopSink is safe for concurrent use and usable as a zero value.
type NoopSink struct{}

// LogLine discards the line.
func (NoopSink) LogLine(string, []byte) error { return nil }

// Close does nothing.
func (NoopSink) Close() error { return nil }

// Compile-time interface satisfaction check.
var _ Sink = NoopSink{}
