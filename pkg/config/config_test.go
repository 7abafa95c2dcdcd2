package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patricklucas/yelp-clog/pkg/collector"
	"github.com/patricklucas/yelp-clog/pkg/filesink"
	"github.com/patricklucas/yelp-clog/pkg/sink"
)

func TestParseCollectorConfig(t *testing.T) {
	cfg, err := Parse([]byte(`
backend: collector
collector_host: logs.example.com
collector_port: 3514
retry_interval: 15s
timeout: 500ms
errors_to_syslog: true
`))
	require.NoError(t, err)

	assert.Equal(t, BackendCollector, cfg.Backend)
	assert.Equal(t, "logs.example.com", cfg.CollectorHost)
	assert.Equal(t, 3514, cfg.CollectorPort)
	assert.Equal(t, 15*time.Second, cfg.RetryInterval.Std())
	assert.Equal(t, 500*time.Millisecond, cfg.Timeout.Std())
	assert.True(t, cfg.ErrorsToSyslog)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`collector_host: logs.example.com`))
	require.NoError(t, err)

	assert.Equal(t, BackendCollector, cfg.Backend)
	assert.Equal(t, collector.DefaultPort, cfg.CollectorPort)
	assert.Equal(t, collector.DefaultRetryInterval, cfg.RetryInterval.Std())
	assert.Equal(t, collector.DefaultTimeout, cfg.Timeout.Std())
	assert.False(t, cfg.Disable)
}

func TestParseBareSecondsDuration(t *testing.T) {
	cfg, err := Parse([]byte(`
collector_host: logs.example.com
retry_interval: 30
timeout: 2
`))
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.RetryInterval.Std())
	assert.Equal(t, 2*time.Second, cfg.Timeout.Std())
}

func TestParseExplicitZeroTimeout(t *testing.T) {
	cfg, err := Parse([]byte(`
collector_host: logs.example.com
timeout: 0
`))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.Timeout.Std(), "explicit zero means no timeout")
}

func TestParseBadDuration(t *testing.T) {
	_, err := Parse([]byte(`retry_interval: soon`))
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: stdout\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendStdout, cfg.Backend)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "collector without host",
			cfg:     Config{Backend: BackendCollector},
			wantErr: true,
		},
		{
			name:    "disabled collector without host",
			cfg:     Config{Backend: BackendCollector, Disable: true},
			wantErr: false,
		},
		{
			name:    "file without dir",
			cfg:     Config{Backend: BackendFile},
			wantErr: true,
		},
		{
			name:    "gzip with bad day",
			cfg:     Config{Backend: BackendGzip, LogDir: "/tmp", Day: "04/01/2025"},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			cfg:     Config{Backend: "kafka"},
			wantErr: true,
		},
		{
			name:    "stdout needs nothing",
			cfg:     Config{Backend: BackendStdout},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewSinkBuildsBackends(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  Config
		want any
	}{
		{
			name: "collector",
			cfg:  Config{Backend: BackendCollector, CollectorHost: "127.0.0.1", CollectorPort: 1463},
			want: (*collector.Sink)(nil),
		},
		{
			name: "disabled collector",
			cfg:  Config{Backend: BackendCollector, Disable: true},
			want: sink.NoopSink{},
		},
		{
			name: "file",
			cfg:  Config{Backend: BackendFile, LogDir: dir},
			want: (*filesink.Sink)(nil),
		},
		{
			name: "gzip",
			cfg:  Config{Backend: BackendGzip, LogDir: dir, Day: "2025-04-01"},
			want: (*filesink.Sink)(nil),
		},
		{
			name: "stdout",
			cfg:  Config{Backend: BackendStdout},
			want: (*sink.StdoutSink)(nil),
		},
		{
			name: "memory",
			cfg:  Config{Backend: BackendMemory},
			want: (*sink.MemorySink)(nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.cfg.NewSink()
			require.NoError(t, err)
			defer s.Close()
			assert.IsType(t, tt.want, s)
		})
	}
}

func TestNewSinkUnknownBackend(t *testing.T) {
	cfg := Config{Backend: "carrier-pigeon"}
	_, err := cfg.NewSink()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestGzipDatedSinkWritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Backend: BackendGzip, LogDir: dir, Day: "2025-04-01"}

	s, err := cfg.NewSink()
	require.NoError(t, err)
	require.NoError(t, s.LogLine("events", []byte("dated")))
	require.NoError(t, s.Close())

	_, err = os.Stat(filepath.Join(dir, "events-2025-04-01.log.gz"))
	require.NoError(t, err)
}

func TestDurationMarshalRoundTrip(t *testing.T) {
	d := Duration(90 * time.Second)
	out, err := d.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", out)
}
