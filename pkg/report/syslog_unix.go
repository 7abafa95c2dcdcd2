//go:build !windows

package report

import (
	"fmt"
	"log/syslog"
)

// ToSyslog returns a reporter that sends error notices to syslog at alert
// priority. Informational notices are dropped; syslog is an alerting
// channel, not a log of routine sink chatter.
func ToSyslog() (Func, error) {
	w, err := syslog.New(syslog.LOG_ALERT|syslog.LOG_USER, "clog")
	if err != nil {
		return nil, fmt.Errorf("failed to open syslog: %w", err)
	}
	return func(isError bool, msg string) {
		if isError {
			_ = w.Alert(msg)
		}
	}, nil
}
