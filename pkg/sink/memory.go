package sink

import "sync"

// MemorySink retains every line in memory, ordered per stream.
// It never drops and never errors, which makes it the standard test double:
// point code under test at a MemorySink and assert on Lines afterwards.
// MemorySink is safe for concurrent use.
type MemorySink struct {
	mu    sync.Mutex
	lines map[string][][]byte
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		lines: make(map[string][][]byte),
	}
}

// LogLine appends a copy of line to the stream's sequence.
func (m *MemorySink) LogLine(stream string, line []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy so callers can reuse their buffer after logging.
	buf := make([]byte, len(line))
	copy(buf, line)
	m.lines[stream] = append(m.lines[stream], buf)
	return nil
}

// Lines returns the lines logged to stream, in call order.
// The returned slice is a copy; mutating it does not affect the sink.
func (m *MemorySink) Lines(stream string) [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.lines[stream]...)
}

// Strings returns the lines logged to stream converted to strings.
func (m *MemorySink) Strings(stream string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.lines[stream]))
	for _, line := range m.lines[stream] {
		out = append(out, string(line))
	}
	return out
}

// ClearLines discards everything logged to stream.
func (m *MemorySink) ClearLines(stream string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lines, stream)
}

// Close does nothing; a MemorySink stays usable after Close.
func (m *MemorySink) Close() error { return nil }

// Compile-time interface satisfaction check.
var _ Sink = (*MemorySink)(nil)
