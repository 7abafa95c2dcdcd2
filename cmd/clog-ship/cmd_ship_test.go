package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patricklucas/yelp-clog/pkg/sink"
)

func TestShipReaderShipsLines(t *testing.T) {
	mem := sink.NewMemorySink()
	input := strings.NewReader("first\nsecond\nthird")

	require.NoError(t, shipReader(context.Background(), mem, "app_events", input))
	assert.Equal(t, []string{"first", "second", "third"}, mem.Strings("app_events"))
}

func TestShipReaderStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mem := sink.NewMemorySink()
	require.NoError(t, shipReader(ctx, mem, "app_events", strings.NewReader("a\nb\n")))
	assert.Empty(t, mem.Strings("app_events"))
}

func TestShipFileReadsExistingContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))

	mem := sink.NewMemorySink()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- shipFile(ctx, mem, "app_events", path, true) }()

	require.Eventually(t, func() bool {
		return len(mem.Strings("app_events")) == 2
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, []string{"one", "two"}, mem.Strings("app_events"))
}

type failingSink struct{ err error }

func (f failingSink) LogLine(string, []byte) error { return f.err }
func (f failingSink) Close() error                 { return nil }

func TestShipLineSkipsRefusedLines(t *testing.T) {
	refused := failingSink{err: &sink.LineTooLongError{Size: 99, Max: 10}}
	require.NoError(t, shipLine(refused, "app_events", []byte("x")))

	broken := failingSink{err: errors.New("disk full")}
	require.Error(t, shipLine(broken, "app_events", []byte("x")))
}
