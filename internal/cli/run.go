package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmont/requiem"
	"github.com/tmont/requiem/internal/config"
	"github.com/tmont/requiem/internal/output"
	"github.com/tmont/requiem/pkg/jsonpath"
	"github.com/tmont/requiem/pkg/jsonschema"
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Execute a YAML collection of requests",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := config.Load(args[0])
		if err != nil {
			return err
		}

		formatter := formatterFromFlags(cmd)
		noColor, _ := cmd.Flags().GetBool("no-color")
		out := cmd.OutOrStdout()

		c := client()
		failures := 0
		for _, entry := range col.Requests {
			name := entry.Name
			if name == "" {
				name = entry.URL
			}

			opts, err := entry.Options(col.Defaults)
			if err != nil {
				return err
			}

			resp, err := c.DoBuffered(context.Background(), opts)
			if err != nil {
				failures++
				fmt.Fprintf(out, "%s %s\n", output.ErrorIcon(noColor), name)
				fmt.Fprint(out, formatter.FormatError(err))
				continue
			}

			if err := checkEntry(entry, resp); err != nil {
				failures++
				fmt.Fprintf(out, "%s %s: %v\n", output.ErrorIcon(noColor), name, err)
				continue
			}

			fmt.Fprintf(out, "%s %s (%s)\n", output.SuccessIcon(noColor), name, resp.Status)
			if formatter.Verbose {
				fmt.Fprint(out, formatter.FormatResponse(resp))
			}
		}

		if failures > 0 {
			return fmt.Errorf("%d of %d requests failed", failures, len(col.Requests))
		}
		return nil
	},
}

// checkEntry applies a collection entry's extract and schema expectations to
// its response.
func checkEntry(entry config.Request, resp *requiem.Response) error {
	if entry.Schema == "" && len(entry.Extract) == 0 {
		return nil
	}

	body, err := resp.Buffer()
	if err != nil {
		return err
	}

	if entry.Schema != "" {
		ok, errs := jsonschema.Validate(string(body), entry.Schema)
		if !ok {
			return fmt.Errorf("schema validation failed: %s", errs.Error())
		}
	}

	if len(entry.Extract) > 0 {
		if _, err := jsonpath.ExtractAll(string(body), entry.Extract); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	runCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	runCmd.Flags().Bool("no-color", false, "Disable colored output")
}
