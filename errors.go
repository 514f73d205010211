package requiem

import "errors"

// ErrorKind is a stable, machine-readable name for a failure class.
type ErrorKind string

const (
	// KindInvalidURL means no resolvable target was given or the URL failed
	// to parse. No transport request is created when this is raised.
	KindInvalidURL ErrorKind = "InvalidUrl"

	// KindTimeout means the configured timeout elapsed before a response
	// arrived.
	KindTimeout ErrorKind = "Timeout"

	// KindRequestAbort means the request was cancelled externally before any
	// timeout fired.
	KindRequestAbort ErrorKind = "RequestAbort"

	// KindTooManyRedirects means the redirect chain exceeded the configured
	// hop limit.
	KindTooManyRedirects ErrorKind = "TooManyRedirects"

	// KindInvalidRedirectURL means a Location header could not be resolved
	// against the previous URL in the chain.
	KindInvalidRedirectURL ErrorKind = "InvalidRedirectUrl"

	// KindInvalidStatusCode means the final status code failed the
	// configured validation policy.
	KindInvalidStatusCode ErrorKind = "InvalidStatusCode"

	// KindInvalidJSONBody means the response body could not be parsed as
	// JSON.
	KindInvalidJSONBody ErrorKind = "InvalidJsonBody"
)

// Error is a structured orchestration failure. Errors raised by the
// transport itself (connection resets, DNS failures) are deliberately not
// wrapped in this type so their native diagnostics stay visible.
type Error struct {
	Kind    ErrorKind
	Message string

	// Request is the outbound request the failure relates to, when one was
	// created before the failure occurred.
	Request *Request

	// Response is the terminal response, for failures that happen after
	// response arrival (redirect limits, status validation, body parsing).
	Response *Response
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf returns the ErrorKind carried by err, or the empty string when err
// is not a *Error (for example a raw transport error).
func KindOf(err error) ErrorKind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
