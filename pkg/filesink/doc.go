// Package filesink appends log lines to local per-stream files.
//
// One Sink serves many streams, lazily opening an append-mode file per
// stream under a base directory. The Opener strategy picks the file
// format: plain text, gzip, or gzip with a dated filename. Unlike the
// collector sink, failures here are fatal to the call; a full disk or a
// missing directory is the caller's problem to notice.
package filesink
