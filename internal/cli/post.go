package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var postCmd = &cobra.Command{
	Use:   "post URL",
	Short: "Make a POST request to the specified URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optionsFromFlags(cmd, args[0], "POST")
		formatter := formatterFromFlags(cmd)

		body, _ := cmd.Flags().GetString("body")
		jsonBody, _ := cmd.Flags().GetString("json")
		if body != "" && jsonBody != "" {
			return fmt.Errorf("--body and --json are mutually exclusive")
		}
		if body != "" {
			opts.Body = []byte(body)
		}
		if jsonBody != "" {
			var value any
			if err := json.Unmarshal([]byte(jsonBody), &value); err != nil {
				return fmt.Errorf("invalid --json value: %w", err)
			}
			opts.BodyJSON = value
		}

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
	addRequestFlags(postCmd)
	postCmd.Flags().StringP("body", "d", "", "Raw request body")
	postCmd.Flags().StringP("json", "j", "", "JSON request body (sets Content-Type: application/json)")
}
