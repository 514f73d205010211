package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmont/requiem"
)

// Formatter renders requests, responses and failures for terminal display
type Formatter struct {
	Verbose bool
	scheme  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		scheme:  scheme,
	}
}

// FormatRequest formats an outbound request for display
func (f *Formatter) FormatRequest(opts *requiem.Options) string {
	var buf strings.Builder

	method := opts.Method
	if method == "" {
		method = "GET"
	}

	target := opts.URL
	if target == "" {
		target = opts.Host
	}

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.scheme.Method.Sprint(method),
		f.scheme.URL.Sprint(target)))

	if f.Verbose || len(opts.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		for key, values := range opts.Headers {
			for _, value := range values {
				buf.WriteString(fmt.Sprintf("    %s: %s\n",
					f.scheme.HeaderKey.Sprint(key), value))
			}
		}
	}

	switch {
	case opts.BodyJSON != nil:
		raw, err := json.Marshal(opts.BodyJSON)
		if err == nil {
			buf.WriteString("  Body: ")
			buf.WriteString(formatJSONString(string(raw)))
			buf.WriteString("\n")
		}
	case opts.Body != nil:
		buf.WriteString("  Body: ")
		buf.WriteString(formatJSONString(string(opts.Body)))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatResponse formats a final response for display, including the
// redirect chain when one was followed
func (f *Formatter) FormatResponse(resp *requiem.Response) string {
	var buf strings.Builder

	statusColor := f.scheme.StatusError
	if resp.IsSuccess() {
		statusColor = f.scheme.StatusOK
	} else if resp.IsRedirect() {
		statusColor = f.scheme.StatusWarn
	}

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s\n", statusColor.Sprint(resp.Status)))

	if resp.RedirectCount() > 0 {
		buf.WriteString(fmt.Sprintf("  Redirects: %d\n", resp.RedirectCount()))
		if f.Verbose {
			for i, hop := range resp.Chain {
				marker := "→"
				if i == 0 {
					marker = " "
				}
				buf.WriteString(fmt.Sprintf("    %s %s\n", marker, f.scheme.URL.Sprint(hop)))
			}
		}
	}

	if f.Verbose {
		buf.WriteString("  Headers:\n")
		for key, values := range resp.Headers {
			for _, value := range values {
				buf.WriteString(fmt.Sprintf("    %s: %s\n",
					f.scheme.HeaderKey.Sprint(key), value))
			}
		}
	}

	body, err := resp.Buffer()
	if err == nil && len(body) > 0 {
		buf.WriteString("  Body:\n")
		buf.WriteString(formatJSONString(string(body)))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatError formats a failure, leading with its machine-readable kind when
// it is a structured requiem error
func (f *Formatter) FormatError(err error) string {
	if kind := requiem.KindOf(err); kind != "" {
		return fmt.Sprintf("%s %s: %s\n",
			ErrorIcon(false),
			f.scheme.ErrorKind.Sprint(string(kind)),
			err.Error())
	}
	return fmt.Sprintf("%s %s\n", ErrorIcon(false), f.scheme.Error.Sprint(err.Error()))
}

// formatJSONString attempts to pretty-print a JSON string
func formatJSONString(s string) string {
	var prettyJSON bytes.Buffer
	err := json.Indent(&prettyJSON, []byte(s), "  ", "  ")
	if err != nil {
		return s
	}
	return prettyJSON.String()
}
