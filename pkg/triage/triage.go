// Package triage classifies log lines by size.
//
// Collectors and the pipelines behind them degrade badly on huge payloads,
// so lines are triaged before delivery: lines up to WarnLineBytes pass
// untouched, lines up to MaxLineBytes are delivered but flagged through an
// origin report on a dedicated diagnostic stream, and anything larger is
// rejected outright.
package triage

import (
	"encoding/json"
	"fmt"
	"runtime"
)

// Size thresholds, in bytes.
const (
	// WarnLineBytes is the size above which a line is still delivered but
	// its origin is reported to OriginStream (5 MiB).
	WarnLineBytes = 5242880

	// MaxLineBytes is the size above which a line is rejected (50 MiB).
	MaxLineBytes = 52428800
)

// OriginStream is the diagnostic stream that receives origin reports for
// oversized lines.
const OriginStream = "tmp_who_clog_large_line"

// Class is the triage outcome for a line.
type Class uint8

const (
	// Normal - deliver the line as-is.
	Normal Class = iota

	// Oversized - deliver the line and ship an origin report.
	Oversized

	// Rejected - drop the line and fail the call.
	Rejected
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case Normal:
		return "NORMAL"
	case Oversized:
		return "OVERSIZED"
	case Rejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Classify returns the triage class for a line of the given byte length.
// The boundaries are inclusive: a line of exactly WarnLineBytes is Normal
// and a line of exactly MaxLineBytes is Oversized.
func Classify(size int) Class {
	switch {
	case size <= WarnLineBytes:
		return Normal
	case size <= MaxLineBytes:
		return Oversized
	default:
		return Rejected
	}
}

// OriginReport describes where an oversized line came from. It is shipped
// JSON-encoded to OriginStream so the owning team can be identified.
type OriginReport struct {
	// Stream is the original (unsanitized) stream name.
	Stream string `json:"stream"`

	// LineSize is the byte length of the oversized line.
	LineSize int `json:"line_size"`

	// Traceback is the call stack of the goroutine that logged the line.
	Traceback string `json:"traceback"`
}

// NewOriginReport builds an origin report for a line of size bytes logged
// to stream, capturing the current goroutine's call stack.
func NewOriginReport(stream string, size int) *OriginReport {
	return &OriginReport{
		Stream:    stream,
		LineSize:  size,
		Traceback: callStack(),
	}
}

// Encode returns the report as JSON.
func (r *OriginReport) Encode() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode origin report: %w", err)
	}
	return data, nil
}

// callStack formats the current goroutine's stack. The buffer grows until
// the whole stack fits.
func callStack() string {
	buf := make([]byte, 4096)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			return string(buf[:n])
		}
		buf = make([]byte, 2*len(buf))
	}
}
