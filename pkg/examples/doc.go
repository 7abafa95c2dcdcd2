// Package examples provides reference wiring demonstrating how applications
// adopt the yelp-clog library.
//
// The examples show:
//   - Configuration-driven sink construction
//   - Bridging log/slog records onto a stream
//   - Composing remote delivery with a local gzip copy
//
// Available examples:
//   - ServiceLogs: a service's complete logging setup behind one handle
//   - TeeSink: simultaneous collector and local-file delivery
//
// These can serve as templates for wiring clog into real services.
package examples
