package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmont/requiem/internal/bench"
)

var benchCmd = &cobra.Command{
	Use:   "bench URL",
	Short: "Issue the same request repeatedly and report latency percentiles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("requests")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		if n < 1 {
			return fmt.Errorf("--requests must be at least 1")
		}

		opts := optionsFromFlags(cmd, args[0], "GET")

		summary := bench.Run(context.Background(), client(), opts, n, concurrency)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Requests:  %d (%d failed)\n", summary.Requests, summary.Failures)
		fmt.Fprintf(out, "Min:       %s\n", summary.Min)
		fmt.Fprintf(out, "Mean:      %s\n", summary.Mean)
		fmt.Fprintf(out, "P50:       %s\n", summary.P50)
		fmt.Fprintf(out, "P90:       %s\n", summary.P90)
		fmt.Fprintf(out, "P99:       %s\n", summary.P99)
		fmt.Fprintf(out, "Max:       %s\n", summary.Max)

		if summary.Failures > 0 {
			return fmt.Errorf("%d requests failed", summary.Failures)
		}
		return nil
	},
}

func init() {
	addRequestFlags(benchCmd)
	benchCmd.Flags().IntP("requests", "n", 100, "Number of requests to issue")
	benchCmd.Flags().IntP("concurrency", "c", 1, "Number of concurrent workers")
}
