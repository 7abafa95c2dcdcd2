// Package sink defines the log delivery capability shared by every backend.
//
// Application code logs through the Sink interface and never deals with the
// destination directly. The backends live in their own packages:
//
//   - collector: ships lines to a remote collector over a framed RPC
//     transport (the production backend)
//   - filesink: appends to local plain or gzip files, one file per stream
//
// This package carries the lightweight in-process backends alongside the
// interface:
//
//   - MemorySink captures lines for test assertions
//   - StdoutSink prints "stream:line" pairs
//   - MultiSink fans out to several sinks
//   - NoopSink discards everything
//
// # Basic Usage
//
//	var s sink.Sink = sink.NewMemorySink()
//	if err := s.LogLine("service_log", []byte("hello")); err != nil {
//	    // only fork-safety, size and local I/O errors surface
//	}
//	defer s.Close()
package sink
