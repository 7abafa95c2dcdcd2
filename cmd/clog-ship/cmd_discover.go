package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/patricklucas/yelp-clog/pkg/discovery"
)

var discoverCmd = &cobra.Command{
	Use:   "discover [flags]",
	Short: "Find collectors advertised on the local network",
	Long: `Find collectors advertised on the local network.

Browses mDNS for ` + discovery.ServiceType + ` services until the timeout
expires and prints one line per collector instance. With --first, prints
only the host:port of the first collector found, for use in scripts.`,
	Example: `  clog-ship discover --timeout 3s
  clog-ship ship --stream app_events --host "$(clog-ship discover --first)"`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().Duration("timeout", 3*time.Second, "How long to browse before returning")
	discoverCmd.Flags().String("interface", "", "Network interface to browse on (default all multicast interfaces)")
	discoverCmd.Flags().Bool("first", false, "Print the address of the first collector found and exit")

	viper.BindPFlag("discover.timeout", discoverCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("discover.interface", discoverCmd.Flags().Lookup("interface"))

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	iface, _ := cmd.Flags().GetString("interface")
	first, _ := cmd.Flags().GetBool("first")

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	browser := discovery.NewBrowser(discovery.Config{Interface: iface})

	if first {
		c, err := browser.FindFirst(ctx)
		if errors.Is(err, context.DeadlineExceeded) {
			return discovery.ErrNotFound
		}
		if err != nil {
			return err
		}
		fmt.Println(c.Addr())
		return nil
	}

	results, err := browser.Browse(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "INSTANCE\tADDRESS\tVERSION\tREGION")

	found := 0
	for c := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.InstanceName, c.Addr(), orDash(c.Version), orDash(c.Region))
		found++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if found == 0 {
		return discovery.ErrNotFound
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
