package examples

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/patricklucas/yelp-clog/internal/collectortest"
	"github.com/patricklucas/yelp-clog/pkg/collector"
	"github.com/patricklucas/yelp-clog/pkg/config"
	"github.com/patricklucas/yelp-clog/pkg/sink"
)

func memoryConfig() config.Config {
	cfg := config.Default()
	cfg.Backend = config.BackendMemory
	return cfg
}

func TestServiceLogsRequiresStream(t *testing.T) {
	_, err := NewServiceLogs(ServiceLogsConfig{Config: memoryConfig()})
	if err == nil {
		t.Fatal("expected an error for a missing stream name")
	}
}

func TestServiceLogsLogger(t *testing.T) {
	logs, err := NewServiceLogs(ServiceLogsConfig{
		Config: memoryConfig(),
		Stream: "service_events",
	})
	if err != nil {
		t.Fatalf("NewServiceLogs failed: %v", err)
	}
	defer logs.Close()

	logs.Logger().Info("worker started", "worker_id", 3)

	mem, ok := logs.Sink().(*sink.MemorySink)
	if !ok {
		t.Fatalf("expected a MemorySink, got %T", logs.Sink())
	}

	lines := mem.Lines("service_events")
	if len(lines) != 1 {
		t.Fatalf("got %d records, want 1", len(lines))
	}

	var record map[string]any
	if err := json.Unmarshal(lines[0], &record); err != nil {
		t.Fatalf("failed to decode record: %v", err)
	}
	if record["msg"] != "worker started" {
		t.Errorf("msg = %v, want %q", record["msg"], "worker started")
	}
}

func TestServiceLogsRawLines(t *testing.T) {
	logs, err := NewServiceLogs(ServiceLogsConfig{
		Config: memoryConfig(),
		Stream: "service_events",
	})
	if err != nil {
		t.Fatalf("NewServiceLogs failed: %v", err)
	}
	defer logs.Close()

	if err := logs.LogLine("raw_payloads", []byte("tab\tseparated\tvalues")); err != nil {
		t.Fatalf("LogLine failed: %v", err)
	}

	mem := logs.Sink().(*sink.MemorySink)
	got := mem.Strings("raw_payloads")
	if len(got) != 1 || got[0] != "tab\tseparated\tvalues" {
		t.Errorf("raw_payloads = %v, want the original line", got)
	}
}

func TestTeeSinkDeliversToBoth(t *testing.T) {
	srv := collectortest.Start(t)
	dir := t.TempDir()

	cfg := collector.DefaultConfig()
	cfg.Host = srv.Host()
	cfg.Port = srv.Port()
	cfg.Report = func(bool, string) {}

	tee, err := NewTeeSink(cfg, dir)
	if err != nil {
		t.Fatalf("NewTeeSink failed: %v", err)
	}

	if err := tee.LogLine("events", []byte("doubly delivered")); err != nil {
		t.Fatalf("LogLine failed: %v", err)
	}
	if err := tee.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	msgs := srv.Messages("events")
	if len(msgs) != 1 || string(msgs[0]) != "doubly delivered\n" {
		t.Errorf("collector messages = %q, want one %q", msgs, "doubly delivered\n")
	}

	f, err := os.Open(filepath.Join(dir, "events.log.gz"))
	if err != nil {
		t.Fatalf("failed to open local copy: %v", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("failed to open gzip reader: %v", err)
	}
	content, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("failed to read local copy: %v", err)
	}
	if string(content) != "doubly delivered\n" {
		t.Errorf("local copy = %q, want %q", content, "doubly delivered\n")
	}
}
