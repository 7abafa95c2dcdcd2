// Package report carries operational status notices out of the sinks.
//
// Sinks never log about themselves through themselves; instead they call a
// report.Func with a severity flag and a message. The default reporters
// write to stderr or syslog, and ToSlog bridges into an application's
// structured logger.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Func receives a status notice from a sink. isError distinguishes
// error conditions (delivery failures, rejected lines) from informational
// notices (oversized-line warnings). Implementations must be safe for
// concurrent use. Sinks invoke reporters without holding internal locks,
// so a reporter that logs back into a sink will not deadlock, but doing
// so risks unbounded recursion when that sink is itself failing.
type Func func(isError bool, msg string)

// ToWriter returns a reporter that writes one line per notice to w,
// suffixed with the severity. Writes are serialized.
func ToWriter(w io.Writer) Func {
	var mu sync.Mutex
	return func(isError bool, msg string) {
		severity := "(INFO)"
		if isError {
			severity = "(ERROR)"
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "%s %s\n", msg, severity)
	}
}

// ToStderr returns a reporter that writes notices to standard error.
func ToStderr() Func {
	return ToWriter(os.Stderr)
}

// ToSlog returns a reporter that forwards notices to a structured logger,
// mapping the severity flag to the Error and Info levels.
func ToSlog(logger *slog.Logger) Func {
	return func(isError bool, msg string) {
		if isError {
			logger.Error(msg)
		} else {
			logger.Info(msg)
		}
	}
}

// Discard returns a reporter that drops every notice.
func Discard() Func {
	return func(bool, string) {}
}

// Default returns the reporter sinks use when none is configured: syslog
// when useSyslog is set and the platform supports it, stderr otherwise.
func Default(useSyslog bool) Func {
	if useSyslog {
		if fn, err := ToSyslog(); err == nil {
			return fn
		}
	}
	return ToStderr()
}
