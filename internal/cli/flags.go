package cli

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmont/requiem"
	"github.com/tmont/requiem/internal/output"
	"github.com/tmont/requiem/pkg/jsonpath"
	"github.com/tmont/requiem/pkg/jsonschema"
)

// addRequestFlags registers the flags shared by every request command.
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	cmd.Flags().StringP("auth", "u", "", "user:password credentials")
	cmd.Flags().DurationP("timeout", "t", 0, "Request timeout (0 leaves the transport default)")
	cmd.Flags().Int("max-redirects", -1, "Maximum redirect hops (-1 uses the default of 5)")
	cmd.Flags().Bool("no-follow", false, "Return redirect responses instead of following them")
	cmd.Flags().Int("expect-status", 0, "Fail unless the final status matches exactly")
	cmd.Flags().Bool("fail-on-error", false, "Fail when the final status is 400 or higher")
	cmd.Flags().String("extract", "", "JSONPath expression to extract from the response body")
	cmd.Flags().String("schema", "", "Path to a JSON Schema file the body must satisfy")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
}

// optionsFromFlags assembles request options from the shared flags.
func optionsFromFlags(cmd *cobra.Command, url, method string) *requiem.Options {
	headerFlags, _ := cmd.Flags().GetStringArray("header")
	auth, _ := cmd.Flags().GetString("auth")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	maxRedirects, _ := cmd.Flags().GetInt("max-redirects")
	noFollow, _ := cmd.Flags().GetBool("no-follow")
	expectStatus, _ := cmd.Flags().GetInt("expect-status")
	failOnError, _ := cmd.Flags().GetBool("fail-on-error")

	opts := &requiem.Options{
		URL:     url,
		Method:  method,
		Auth:    auth,
		Timeout: timeout,
	}

	headers := make(http.Header)
	for _, header := range headerFlags {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) == 2 {
			headers.Add(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
		}
	}
	if len(headers) > 0 {
		opts.Headers = headers
	}

	switch {
	case noFollow:
		opts.FollowRedirects = requiem.NoRedirects()
	case maxRedirects >= 0:
		opts.FollowRedirects = requiem.MaxRedirects(maxRedirects)
	}

	switch {
	case expectStatus != 0:
		opts.ValidateStatus = requiem.RequireStatus(expectStatus)
	case failOnError:
		opts.ValidateStatus = requiem.RejectErrorStatus()
	}

	return opts
}

// formatterFromFlags builds a formatter, forcing no-color when stdout is not
// a terminal.
func formatterFromFlags(cmd *cobra.Command) *output.Formatter {
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")
	if !output.IsTerminal(os.Stdout) {
		noColor = true
	}
	return output.NewFormatter(verbose, noColor)
}

// postProcess applies the --extract and --schema flags to a completed
// response.
func postProcess(cmd *cobra.Command, resp *requiem.Response) error {
	extract, _ := cmd.Flags().GetString("extract")
	schemaPath, _ := cmd.Flags().GetString("schema")
	if extract == "" && schemaPath == "" {
		return nil
	}

	body, err := resp.Buffer()
	if err != nil {
		return err
	}

	if schemaPath != "" {
		schema, err := os.ReadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("reading schema: %w", err)
		}
		ok, errs := jsonschema.Validate(string(body), string(schema))
		if !ok {
			return fmt.Errorf("schema validation failed: %s", errs.Error())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s schema valid\n", output.SuccessIcon(false))
	}

	if extract != "" {
		value, err := jsonpath.Extract(string(body), extract)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
	}

	return nil
}
