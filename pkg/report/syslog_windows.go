//go:build windows

package report

import "errors"

// ToSyslog is unsupported on Windows; Default falls back to stderr.
func ToSyslog() (Func, error) {
	return nil, errors.New("syslog reporting is not supported on windows")
}
