package filesink

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"time"
)

// Opener chooses and opens the destination file for a stream.
// Implementations decide the naming convention and whether the byte
// stream is compressed; the sink owns lazy opening and the handle table.
type Opener interface {
	// Filename returns the base filename for a stream.
	Filename(stream string) string

	// Open opens the file at path for appending.
	Open(path string) (io.WriteCloser, error)
}

// PlainOpener appends to uncompressed "stream.log" files.
type PlainOpener struct{}

// Compile-time interface satisfaction check.
var _ Opener = PlainOpener{}

// Filename returns "stream.log".
func (PlainOpener) Filename(stream string) string {
	return stream + ".log"
}

// Open opens the file for unbuffered appending, creating it if needed.
func (PlainOpener) Open(path string) (io.WriteCloser, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// GzipOpener appends gzip-compressed "stream.log.gz" files. When Day is
// set, filenames carry the date: "stream-2006-01-02.log.gz".
//
// Each sink instance appends a fresh gzip member to the file; readers see
// the concatenated members as one continuous stream.
type GzipOpener struct {
	// Day dates the filename. The zero value produces undated names.
	Day time.Time
}

// Compile-time interface satisfaction check.
var _ Opener = GzipOpener{}

// Filename returns "stream.log.gz", or "stream-2006-01-02.log.gz" when a
// day is set.
func (o GzipOpener) Filename(stream string) string {
	if o.Day.IsZero() {
		return stream + ".log.gz"
	}
	return fmt.Sprintf("%s-%s.log.gz", stream, o.Day.Format("2006-01-02"))
}

// Open opens the file for appending and starts a new gzip member on it.
func (o GzipOpener) Open(path string) (io.WriteCloser, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &gzipFile{Writer: gzip.NewWriter(f), file: f}, nil
}

// gzipFile closes the gzip member before the underlying file.
type gzipFile struct {
	*gzip.Writer
	file *os.File
}

func (g *gzipFile) Close() error {
	if err := g.Writer.Close(); err != nil {
		_ = g.file.Close()
		return fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	if err := g.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
