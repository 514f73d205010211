package cli

import (
	"github.com/spf13/cobra"

	"github.com/tmont/requiem"
)

var version = "0.1.0"

// client builds the library client used by the commands. A variable so tests
// can substitute a client with a scripted transport.
var client = func() *requiem.Client {
	return requiem.NewClient()
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "requiem",
	Short:   "An HTTP client with redirect, timeout and status-code orchestration",
	Version: version,
	Long: `Requiem is a terminal HTTP client built on the requiem library. It issues
requests described by a URL or a YAML collection, follows redirects up to a
configurable depth, normalizes timeouts and aborts into typed failures, and
can validate the final status code, extract JSONPath values, or check the
body against a JSON Schema.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(postCmd)
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(benchCmd)
}
