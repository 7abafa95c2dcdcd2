// Package transport provides the framed TCP connection to a collector.
//
// The transport layer handles:
//   - Length-prefixed message framing
//   - Per-call read and write deadlines
//   - Connection lifecycle (dial, close)
//
// # Protocol Stack
//
//	┌────────────────────────────────┐
//	│      CBOR Messages             │
//	├────────────────────────────────┤
//	│   Length-Prefix Framing (4B)   │
//	├────────────────────────────────┤
//	│           TCP                  │
//	└────────────────────────────────┘
//
// Every message on the wire is preceded by a 4-byte big-endian length
// prefix. Frames larger than the configured maximum are rejected without
// being read into memory.
//
// The Dialer interface abstracts socket establishment so tests can run
// against in-memory pipes instead of real listeners.
package transport
