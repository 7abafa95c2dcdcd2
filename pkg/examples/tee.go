package examples

import (
	"fmt"

	"github.com/patricklucas/yelp-clog/pkg/collector"
	"github.com/patricklucas/yelp-clog/pkg/filesink"
	"github.com/patricklucas/yelp-clog/pkg/sink"
)

// NewTeeSink builds a sink that delivers every line both to a remote
// collector and to local gzip files, demonstrating MultiSink composition.
// Useful during collector migrations, when keeping a local copy until the
// remote pipeline is trusted.
func NewTeeSink(cfg collector.Config, dir string) (sink.Sink, error) {
	remote, err := collector.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build collector sink: %w", err)
	}

	local, err := filesink.NewGzip(dir)
	if err != nil {
		_ = remote.Close()
		return nil, fmt.Errorf("failed to build file sink: %w", err)
	}

	return sink.NewMultiSink(remote, local), nil
}
