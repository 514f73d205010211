package requiem

import (
	"crypto/tls"
	"io"
	"net/http"
	"net/url"
	"time"
)

// EventKind identifies a signal emitted by an in-flight exchange.
type EventKind int

const (
	// EventResponse delivers the response headers. Terminal.
	EventResponse EventKind = iota
	// EventError delivers a transport-level failure. Terminal.
	EventError
	// EventTimeout signals that the exchange's timeout elapsed. Not
	// terminal: the transport (or the orchestration layer) cancels the
	// exchange and an EventAbort follows.
	EventTimeout
	// EventAbort signals that the exchange was cancelled. Terminal.
	EventAbort
)

// Event is a single signal from an exchange. Exactly one of Response or Err
// is set, depending on Kind.
type Event struct {
	Kind     EventKind
	Response *TransportResponse
	Err      error
}

// TransportResponse is the transport-level view of an incoming response.
// The body streams; nothing is buffered until a materializer asks for it.
type TransportResponse struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       io.ReadCloser
}

// TransportOptions are the only request fields a transport is allowed to
// observe. Orchestration-only fields (bodies, redirect policy, status
// validation) never appear here; see transportOptions in request.go.
type TransportOptions struct {
	Method  string
	Headers http.Header

	// Auth is "user:password" credentials forwarded verbatim.
	Auth string

	// Timeout bounds the wait for response headers. Zero means the
	// transport's own default applies.
	Timeout time.Duration

	// Secure reports whether the resolved target uses the encrypted scheme.
	Secure bool

	// TLS is passed through untouched when Secure is set.
	TLS *tls.Config

	// Agent substitutes the underlying round tripper when non-nil.
	Agent http.RoundTripper
}

// Exchange is a single in-flight request/response pair. An exchange emits
// events on its Events channel: zero or one EventTimeout, followed by exactly
// one terminal event. After a terminal event the exchange is spent.
type Exchange interface {
	// Write appends body bytes. Must be called before End.
	Write(p []byte) error

	// End marks the body complete and begins transmission.
	End() error

	// Cancel aborts the exchange. Idempotent; safe before or after End. The
	// abort surfaces as an EventAbort unless a terminal event already fired.
	Cancel()

	// Events returns the exchange's event stream. The channel is buffered;
	// the transport never blocks delivering events.
	Events() <-chan Event
}

// Transport opens raw HTTP exchanges. Implementations do not follow
// redirects, validate status codes, or interpret bodies; that is the
// orchestration layer's job.
type Transport interface {
	Open(target *url.URL, opts TransportOptions) (Exchange, error)
}
