package collector

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/patricklucas/yelp-clog/pkg/report"
	"github.com/patricklucas/yelp-clog/pkg/sink"
	"github.com/patricklucas/yelp-clog/pkg/streamname"
	"github.com/patricklucas/yelp-clog/pkg/transport"
	"github.com/patricklucas/yelp-clog/pkg/triage"
	"github.com/patricklucas/yelp-clog/pkg/wire"
)

// Sink ships log lines to a collector over a persistent framed connection.
//
// The connection is opened lazily on the first delivery and re-opened on
// demand after failures, with reconnection attempts throttled by the
// configured retry interval. Delivery is best-effort: while the collector
// is unreachable, lines are dropped and the condition is reported through
// the status reporter, never surfaced as an error to the caller.
//
// A Sink must not be shared across a process fork. The process ID is
// recorded at construction and every call verifies it, so a forked child
// gets sink.ErrNotForkSafe instead of silently interleaving writes with
// its parent.
type Sink struct {
	cfg      Config
	address  string
	dialer   transport.Dialer
	reportFn report.Func
	logger   *slog.Logger

	birthPID int

	mu          sync.Mutex
	conn        *transport.Conn
	connID      string
	lastAttempt time.Time

	// Overridable for tests.
	nowFn func() time.Time
	pidFn func() int
}

// Compile-time interface satisfaction check.
var _ sink.Sink = (*Sink)(nil)

// New creates a Sink targeting the configured collector.
// No connection is opened until the first line is delivered.
func New(cfg Config) (*Sink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dialer := cfg.Dialer
	if dialer == nil {
		dialer = transport.NetDialer{}
	}
	reportFn := cfg.Report
	if reportFn == nil {
		reportFn = report.Discard()
	}

	return &Sink{
		cfg:      cfg,
		address:  cfg.Address(),
		dialer:   dialer,
		reportFn: reportFn,
		logger:   cfg.Logger,
		birthPID: os.Getpid(),
		nowFn:    time.Now,
		pidFn:    os.Getpid,
	}, nil
}

// LogLine delivers line to the named stream.
//
// Lines above the warning threshold are still delivered, but an origin
// report is shipped to the diagnostic stream and an informational notice
// is reported. Lines above the maximum threshold are rejected with a
// *sink.LineTooLongError and delivered nowhere.
func (s *Sink) LogLine(stream string, line []byte) error {
	switch triage.Classify(len(line)) {
	case triage.Rejected:
		s.reportFn(true, fmt.Sprintf(
			"dropping log line of %d bytes for stream %q, the maximum allowed is %d bytes",
			len(line), stream, triage.MaxLineBytes))
		return &sink.LineTooLongError{Size: len(line), Max: triage.MaxLineBytes}

	case triage.Oversized:
		if err := s.deliver(stream, line); err != nil {
			return err
		}
		s.reportOrigin(stream, len(line))
		return nil

	default:
		return s.deliver(stream, line)
	}
}

// Close disconnects from the collector. The sink stays usable: a later
// LogLine reconnects, subject to the usual retry throttle.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeConnLocked()
}

// Connected reports whether a collector connection is currently open.
func (s *Sink) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// deliver performs one best-effort payload delivery.
//
// Connection failures are never returned: the payload is dropped, the
// failure is reported, and the connection is repaired where possible.
// Only the fork guard and a degenerate unencodable entry produce errors.
func (s *Sink) deliver(stream string, payload []byte) error {
	frame, err := encodeEntry(stream, payload)
	if err != nil {
		return err
	}

	s.mu.Lock()

	if pid := s.pidFn(); pid != s.birthPID {
		s.mu.Unlock()
		return fmt.Errorf("%w: sink created in process %d, used in process %d",
			sink.ErrNotForkSafe, s.birthPID, pid)
	}

	if s.conn == nil {
		if !s.canAttemptLocked() {
			// Throttled: drop the payload rather than hammer a
			// down collector.
			s.mu.Unlock()
			return nil
		}
		if err := s.connectLocked(); err != nil {
			s.mu.Unlock()
			s.reportFn(true, fmt.Sprintf(
				"failed to connect to collector %s: %v", s.address, err))
			return nil
		}
	}

	sendErr := s.sendLocked(frame)
	if sendErr == nil {
		s.mu.Unlock()
		return nil
	}

	// Tear down before reporting, so a panicking reporter still leaves
	// the sink disconnected with the attempt stamped.
	_ = s.closeConnLocked()
	s.lastAttempt = s.nowFn()
	s.mu.Unlock()

	s.reportFn(true, fmt.Sprintf(
		"failed to send log line to collector %s: %v", s.address, sendErr))

	// Reconnect immediately, bypassing the throttle, so the next call
	// does not wait out the retry interval after a transient failure.
	s.mu.Lock()
	err = s.connectLocked()
	s.mu.Unlock()
	if err != nil {
		s.reportFn(true, fmt.Sprintf(
			"failed to connect to collector %s: %v", s.address, err))
	}
	return nil
}

// reportOrigin ships an origin report for an oversized line to the
// diagnostic stream and raises an informational notice.
func (s *Sink) reportOrigin(stream string, size int) {
	origin, err := triage.NewOriginReport(stream, size).Encode()
	if err != nil {
		s.debugLog("failed to encode origin report", "stream", stream, "error", err)
		return
	}
	if err := s.deliver(triage.OriginStream, origin); err != nil {
		s.debugLog("failed to deliver origin report", "stream", stream, "error", err)
	}
	s.reportFn(false, fmt.Sprintf(
		"logged an oversized line of %d bytes to stream %q (warning threshold is %d bytes), origin recorded to stream %q",
		size, stream, triage.WarnLineBytes, triage.OriginStream))
}

// canAttemptLocked reports whether enough time has passed since the last
// failed attempt for another connection attempt.
func (s *Sink) canAttemptLocked() bool {
	return s.nowFn().Sub(s.lastAttempt) > s.cfg.RetryInterval
}

// connectLocked opens the collector connection. On failure the attempt
// is stamped so the retry throttle engages; reporting is left to the
// caller, which holds no lock when it reports.
func (s *Sink) connectLocked() error {
	if s.conn != nil {
		return nil
	}

	nc, err := s.dialer.Dial(s.address, s.cfg.Timeout)
	if err != nil {
		s.lastAttempt = s.nowFn()
		return err
	}

	s.conn = transport.NewConn(nc, s.cfg.MaxMessageSize, s.cfg.Timeout)
	s.connID = "conn-" + uuid.New().String()[:8]
	s.debugLog("connected to collector",
		"address", s.address,
		"connection_id", s.connID)
	return nil
}

// closeConnLocked closes the current connection, if any.
func (s *Sink) closeConnLocked() error {
	if s.conn == nil {
		return nil
	}

	err := s.conn.Close()
	s.conn = nil
	s.debugLog("disconnected from collector",
		"address", s.address,
		"connection_id", s.connID)
	s.connID = ""
	if err != nil {
		return fmt.Errorf("failed to close collector connection: %w", err)
	}
	return nil
}

// sendLocked performs one request/response exchange on the open
// connection. A TRY_LATER response counts as delivered: the collector is
// shedding load and the line is dropped without queueing.
func (s *Sink) sendLocked(frame []byte) error {
	if err := s.conn.Send(frame); err != nil {
		return err
	}

	data, err := s.conn.Receive()
	if err != nil {
		return err
	}

	resp, err := wire.DecodeLogResponse(data)
	if err != nil {
		return err
	}
	if !resp.IsOK() {
		s.debugLog("collector shedding load, line dropped",
			"connection_id", s.connID,
			"result", resp.Result.String())
	}
	return nil
}

// encodeEntry builds the framed request for one payload. The stream name
// is sanitized for the wire; the message carries a trailing newline.
func encodeEntry(stream string, payload []byte) ([]byte, error) {
	message := make([]byte, 0, len(payload)+1)
	message = append(message, payload...)
	message = append(message, '\n')

	req := wire.LogRequest{
		Entries: []wire.Entry{{
			Category: streamname.Sanitize(stream),
			Message:  message,
		}},
	}
	data, err := wire.EncodeLogRequest(&req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode log entry for stream %q: %w", stream, err)
	}
	return data, nil
}

func (s *Sink) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
