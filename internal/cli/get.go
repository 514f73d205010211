package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get URL",
	Short: "Make a GET request to the specified URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optionsFromFlags(cmd, args[0], "GET")
		formatter := formatterFromFlags(cmd)

		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRequest(opts))

		resp, err := client().DoBuffered(context.Background(), opts)
		if err != nil {
			fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatError(err))
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResponse(resp))
		return postProcess(cmd, resp)
	},
}

func init() {
	addRequestFlags(getCmd)
}
