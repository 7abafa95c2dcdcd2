package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/patricklucas/yelp-clog/pkg/sink"
	"github.com/patricklucas/yelp-clog/pkg/triage"
)

var shipCmd = &cobra.Command{
	Use:   "ship --stream <name> [flags]",
	Short: "Ship lines from stdin or a followed file",
	Long: `Ship lines from stdin or a followed file.

Each input line becomes one record on the destination stream. Without
--follow, lines are read from stdin until EOF. With --follow, the named
file is tailed through truncation and rotation, starting at the current
end unless --from-start is given.

Delivery is best-effort when the collector backend is used: lines offered
while the collector is unreachable are dropped and reported to stderr,
matching the behavior applications get from the library.`,
	Example: `  myapp | clog-ship ship --stream app_events --host logs1.example.com
  clog-ship ship --stream app_events --follow /var/log/app.log --config clog.yaml`,
	Args: cobra.NoArgs,
	RunE: runShip,
}

func init() {
	shipCmd.Flags().StringP("stream", "s", "", "Destination stream name (required)")
	shipCmd.Flags().StringP("follow", "f", "", "Follow a file through rotation instead of reading stdin")
	shipCmd.Flags().Bool("from-start", false, "With --follow, start at the beginning of the file")
	shipCmd.Flags().String("host", "", "Collector host, overriding the configuration file")
	shipCmd.Flags().Int("port", 0, "Collector port, overriding the configuration file")
	shipCmd.MarkFlagRequired("stream")

	viper.BindPFlag("ship.stream", shipCmd.Flags().Lookup("stream"))
	viper.BindPFlag("ship.follow", shipCmd.Flags().Lookup("follow"))
	viper.BindPFlag("ship.host", shipCmd.Flags().Lookup("host"))
	viper.BindPFlag("ship.port", shipCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(shipCmd)
}

func runShip(cmd *cobra.Command, args []string) error {
	stream, _ := cmd.Flags().GetString("stream")
	follow, _ := cmd.Flags().GetString("follow")
	fromStart, _ := cmd.Flags().GetBool("from-start")
	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if host != "" {
		cfg.CollectorHost = host
	}
	if port != 0 {
		cfg.CollectorPort = port
	}
	cfg.Logger = newLogger()

	dest, err := cfg.NewSink()
	if err != nil {
		return err
	}
	defer dest.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if follow != "" {
		return shipFile(ctx, dest, stream, follow, fromStart)
	}
	return shipReader(ctx, dest, stream, os.Stdin)
}

// shipReader ships each line of r until EOF or cancellation.
func shipReader(ctx context.Context, dest sink.Sink, stream string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), triage.MaxLineBytes+1)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		if err := shipLine(dest, stream, scanner.Bytes()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// shipFile follows path through rotation and ships every new line.
func shipFile(ctx context.Context, dest sink.Sink, stream, path string, fromStart bool) error {
	tailCfg := tail.Config{
		ReOpen:    true,
		MustExist: false,
		Follow:    true,
		Logger:    tail.DiscardingLogger,
	}
	if !fromStart {
		tailCfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(path, tailCfg)
	if err != nil {
		return fmt.Errorf("failed to tail %s: %w", path, err)
	}
	defer func() { _ = t.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				fmt.Fprintf(os.Stderr, "read error on %s: %v\n", path, line.Err)
				continue
			}
			if err := shipLine(dest, stream, []byte(line.Text)); err != nil {
				return err
			}
		}
	}
}

// shipLine delivers one line. Lines the sink refuses for size are skipped
// rather than aborting the stream; the sink has already reported them.
func shipLine(dest sink.Sink, stream string, line []byte) error {
	err := dest.LogLine(stream, line)
	var tooLong *sink.LineTooLongError
	if errors.As(err, &tooLong) {
		return nil
	}
	return err
}
