// Package config loads sink configuration from YAML and builds the
// configured sink.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/patricklucas/yelp-clog/pkg/collector"
	"github.com/patricklucas/yelp-clog/pkg/filesink"
	"github.com/patricklucas/yelp-clog/pkg/report"
	"github.com/patricklucas/yelp-clog/pkg/sink"
)

// Backend names accepted in the "backend" key.
const (
	BackendCollector = "collector"
	BackendFile      = "file"
	BackendGzip      = "gzip"
	BackendStdout    = "stdout"
	BackendMemory    = "memory"
)

// Configuration errors.
var (
	ErrUnknownBackend = errors.New("unknown backend")
)

// Config selects and configures a sink.
type Config struct {
	// Backend selects the sink implementation: "collector", "file",
	// "gzip", "stdout" or "memory".
	Backend string `yaml:"backend"`

	// CollectorHost is the collector hostname or IP address.
	CollectorHost string `yaml:"collector_host"`

	// CollectorPort is the collector TCP port.
	CollectorPort int `yaml:"collector_port"`

	// RetryInterval is the minimum wait between connection attempts.
	RetryInterval Duration `yaml:"retry_interval"`

	// Timeout bounds each connect, send and receive. An explicit zero
	// means block indefinitely.
	Timeout Duration `yaml:"timeout"`

	// Disable replaces the collector backend with a sink that drops
	// everything, for turning off shipping without touching callers.
	Disable bool `yaml:"disable"`

	// ErrorsToSyslog routes error notices to syslog instead of stderr.
	ErrorsToSyslog bool `yaml:"errors_to_syslog"`

	// LogDir is the destination directory for the file backends.
	LogDir string `yaml:"log_dir"`

	// Day dates gzip filenames, as "2006-01-02". Empty means undated.
	Day string `yaml:"day"`

	// Logger receives debug output from the built sink. Optional, not
	// read from YAML; nil means no logging.
	Logger *slog.Logger `yaml:"-"`
}

// Default returns the configuration used when keys are absent.
func Default() Config {
	return Config{
		Backend:       BackendCollector,
		CollectorPort: collector.DefaultPort,
		RetryInterval: Duration(collector.DefaultRetryInterval),
		Timeout:       Duration(collector.DefaultTimeout),
	}
}

// Load reads a YAML config file. Absent keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse reads YAML config bytes. Absent keys keep their defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks if the config can build a sink.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendCollector:
		if c.Disable {
			return nil
		}
		if c.CollectorHost == "" {
			return errors.New("invalid configuration: collector_host is required")
		}
	case BackendFile, BackendGzip:
		if c.LogDir == "" {
			return errors.New("invalid configuration: log_dir is required")
		}
		if c.Day != "" {
			if _, err := time.Parse("2006-01-02", c.Day); err != nil {
				return fmt.Errorf("invalid configuration: bad day %q: %w", c.Day, err)
			}
		}
	case BackendStdout, BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	return nil
}

// NewSink builds the configured sink.
func (c *Config) NewSink() (sink.Sink, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	switch c.Backend {
	case BackendCollector:
		if c.Disable {
			return sink.NoopSink{}, nil
		}
		cc := collector.DefaultConfig()
		cc.Host = c.CollectorHost
		if c.CollectorPort != 0 {
			cc.Port = c.CollectorPort
		}
		cc.RetryInterval = c.RetryInterval.Std()
		cc.Timeout = c.Timeout.Std()
		cc.Report = report.Default(c.ErrorsToSyslog)
		cc.Logger = c.Logger
		return collector.New(cc)

	case BackendFile:
		return filesink.NewPlain(c.LogDir)

	case BackendGzip:
		var day time.Time
		if c.Day != "" {
			day, _ = time.Parse("2006-01-02", c.Day)
		}
		return filesink.New(filesink.Config{
			Dir:    c.LogDir,
			Opener: filesink.GzipOpener{Day: day},
		})

	case BackendStdout:
		return sink.NewStdoutSink(), nil

	case BackendMemory:
		return sink.NewMemorySink(), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
}
