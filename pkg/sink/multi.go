package sink

import "errors"

// MultiSink delivers every line to multiple sinks.
// Useful when you want both remote delivery (via collector.Sink)
// and a local copy (via filesink.Sink) simultaneously.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a MultiSink that delivers to all provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// LogLine delivers the line to every sink. All sinks are attempted even
// when one fails; the errors are joined.
func (m *MultiSink) LogLine(stream string, line []byte) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.LogLine(stream, line); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink, joining any errors.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Compile-time interface satisfaction check.
var _ Sink = (*MultiSink)(nil)
