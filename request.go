package requiem

import (
	"fmt"
	"net/http"
)

// Request is an outbound request handle. It owns the underlying transport
// exchange until a terminal event settles it; until then the caller may
// Cancel it at any time.
type Request struct {
	// URL is the originally requested URL string for this hop. Redirect hops
	// get fresh Request handles tagged with their own URLs.
	URL string

	opts    *Options
	body    payload
	target  *resolvedTarget
	ex      Exchange
	written bool
}

// Cancel aborts the in-flight exchange. Idempotent. The pending call settles
// as a RequestAbort failure unless a timeout had already fired, in which
// case it settles as a Timeout.
func (r *Request) Cancel() {
	r.ex.Cancel()
}

// transmit writes the resolved payload, if any, and ends the exchange.
func (r *Request) transmit() error {
	if r.written {
		return nil
	}
	r.written = true
	if r.body.kind != payloadNone {
		if err := r.ex.Write(r.body.raw); err != nil {
			return err
		}
	}
	return r.ex.End()
}

func (r *Request) timeoutMessage() string {
	if r.opts.Timeout > 0 {
		return fmt.Sprintf("Request timed out (timeout: %s)", r.opts.Timeout)
	}
	return "Request timed out (timeout: default)"
}

// buildRequest resolves the target, opens the exchange and tags the handle
// with the requested URL. The options are assumed normalized. Resolution
// failures surface as InvalidUrl before any transport state exists.
func buildRequest(transport Transport, opts *Options, body payload) (*Request, error) {
	target, err := resolveTarget(opts)
	if err != nil {
		return nil, err
	}

	ex, err := transport.Open(target.url, transportOptions(opts, body, target))
	if err != nil {
		return nil, err
	}

	requested := opts.URL
	if requested == "" {
		requested = target.str
	}

	return &Request{
		URL:    requested,
		opts:   opts,
		body:   body,
		target: target,
		ex:     ex,
	}, nil
}

// transportOptions projects Options onto the transport-visible field set.
// Bodies, redirect policy and status validation are orchestration-only and
// deliberately absent from the projection.
func transportOptions(opts *Options, body payload, target *resolvedTarget) TransportOptions {
	headers := make(http.Header, len(opts.Headers)+1)
	for k, vs := range opts.Headers {
		for _, v := range vs {
			headers.Add(k, v)
		}
	}
	if body.kind == payloadJSON && headers.Get("Content-Type") == "" {
		headers.Set("Content-Type", "application/json")
	}

	return TransportOptions{
		Method:  opts.Method,
		Headers: headers,
		Auth:    opts.Auth,
		Timeout: opts.Timeout,
		Secure:  target.secure,
		TLS:     opts.TLS,
		Agent:   opts.Agent,
	}
}

// redirectOptions projects the original options onto a redirect hop: the
// method is forced to GET, the body is dropped, and the host-form fields are
// not reused since they only ever applied to the first hop.
func redirectOptions(opts *Options, target string) *Options {
	return &Options{
		URL:             target,
		Method:          http.MethodGet,
		Headers:         opts.Headers,
		Auth:            opts.Auth,
		Timeout:         opts.Timeout,
		Agent:           opts.Agent,
		TLS:             opts.TLS,
		FollowRedirects: opts.FollowRedirects,
		ValidateStatus:  opts.ValidateStatus,
	}
}
