package requiem

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultMaxRedirects is the hop limit applied when no explicit redirect
// policy is configured.
const DefaultMaxRedirects = 5

// Options describes a single orchestrated request.
//
// The target is given either as a direct URL or decomposed into
// Host/Path/Port/Protocol; a direct URL wins when both are present. At most
// one of Body and BodyJSON may be set.
type Options struct {
	// URL is the direct target. Must be absolute.
	URL string

	// Host, Path, Pathname, Port and Protocol decompose the target instead
	// of URL. They apply to the first hop only; redirect hops carry their
	// own absolute URLs. Path takes precedence over Pathname when both are
	// set.
	Host     string
	Path     string
	Pathname string
	Port     int
	Protocol string

	// Method defaults to GET.
	Method string

	Headers http.Header

	// Auth is "user:password" credentials, forwarded to the transport.
	Auth string

	// Timeout bounds the wait for response headers on each hop. Zero leaves
	// the transport's default in effect.
	Timeout time.Duration

	// Agent substitutes the transport's round tripper when non-nil.
	Agent http.RoundTripper

	// TLS is passed through to the transport for encrypted targets.
	TLS *tls.Config

	// Body is a raw request payload. Mutually exclusive with BodyJSON.
	Body []byte

	// BodyJSON is serialized to JSON and sent with
	// Content-Type: application/json.
	BodyJSON any

	// FollowRedirects controls redirect following. The zero value follows
	// up to DefaultMaxRedirects hops.
	FollowRedirects RedirectPolicy

	// ValidateStatus optionally rejects the final response by status code.
	ValidateStatus StatusPolicy
}

// URL wraps a bare URL string in an Options value, for callers that have
// nothing else to say about the request.
func URL(raw string) *Options {
	return &Options{URL: raw}
}

// RedirectPolicy controls whether and how far redirects are followed.
//
// The zero value follows up to DefaultMaxRedirects hops. NoRedirects and
// MaxRedirects(0) differ: the former hands back the raw redirect response,
// the latter evaluates it and fails on the first redirect seen.
type RedirectPolicy struct {
	disabled bool
	max      int
	explicit bool
}

// NoRedirects disables redirect following entirely; redirect responses are
// returned to the caller as-is.
func NoRedirects() RedirectPolicy {
	return RedirectPolicy{disabled: true}
}

// MaxRedirects limits the chain to n hops. n of zero means any redirect
// response fails immediately.
func MaxRedirects(n int) RedirectPolicy {
	return RedirectPolicy{max: n, explicit: true}
}

func (p RedirectPolicy) limit(fallback int) int {
	if p.explicit {
		return p.max
	}
	return fallback
}

// StatusPolicy controls validation of the final status code. The zero value
// performs no validation.
type StatusPolicy struct {
	enabled bool
	exact   int
	isExact bool
}

// RejectErrorStatus fails any final response with status >= 400.
func RejectErrorStatus() StatusPolicy {
	return StatusPolicy{enabled: true}
}

// RequireStatus fails any final response whose status is not exactly code.
func RequireStatus(code int) StatusPolicy {
	return StatusPolicy{enabled: true, exact: code, isExact: true}
}

type payloadKind int

const (
	payloadNone payloadKind = iota
	payloadRaw
	payloadJSON
)

// payload is the request body resolved to one shape, decided once during
// normalization instead of re-checked ad hoc later.
type payload struct {
	kind payloadKind
	raw  []byte
}

// normalizeOptions copies opts, defaults the method, and resolves the body
// union. The caller's Options value is never mutated.
func normalizeOptions(opts *Options) (*Options, payload, error) {
	out := *opts
	if out.Method == "" {
		out.Method = http.MethodGet
	}

	if out.Body != nil && out.BodyJSON != nil {
		return nil, payload{}, fmt.Errorf("requiem: Body and BodyJSON are mutually exclusive")
	}

	switch {
	case out.BodyJSON != nil:
		raw, err := json.Marshal(out.BodyJSON)
		if err != nil {
			return nil, payload{}, err
		}
		return &out, payload{kind: payloadJSON, raw: raw}, nil
	case out.Body != nil:
		return &out, payload{kind: payloadRaw, raw: out.Body}, nil
	}
	return &out, payload{}, nil
}
