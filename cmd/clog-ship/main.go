// Command clog-ship ships log lines into a clog sink.
//
// Lines are read from stdin or followed from a file and delivered to the
// backend named by the configuration: a remote collector, plain or gzip
// files, stdout, or an in-memory buffer.
//
// Usage:
//
//	clog-ship <command> [flags]
//
// Commands:
//
//	ship      Ship lines from stdin or a followed file
//	discover  Find collectors advertised on the local network
//	version   Print version information
//
// Examples:
//
//	# Ship stdin to the "app_events" stream of the configured collector
//	myapp | clog-ship ship --stream app_events --config clog.yaml
//
//	# Follow a file through rotation, shipping each new line
//	clog-ship ship --stream app_events --follow /var/log/app.log --host logs1
//
//	# List collectors advertising _clog._tcp on the LAN
//	clog-ship discover --timeout 3s
//
//	# Ship to the first collector found via mDNS
//	myapp | clog-ship ship --stream app_events --host "$(clog-ship discover --first)"
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/patricklucas/yelp-clog/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:           "clog-ship",
	Short:         "Ship log lines into a clog sink",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a clog configuration file (YAML)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging to stderr")

	viper.SetEnvPrefix("clog")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// loadConfig resolves the sink configuration: the --config flag, the
// CLOG_CONFIG environment variable, or library defaults when neither is set.
func loadConfig() (*config.Config, error) {
	path := viper.GetString("config")
	if path == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(path)
}

// newLogger returns a debug logger when --verbose is set, nil otherwise.
func newLogger() *slog.Logger {
	if !viper.GetBool("verbose") {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
