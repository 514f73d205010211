package requiem

import (
	"context"
	"net/http"
)

// Client orchestrates requests through a Transport. The zero-config client
// returned by NewClient uses the net/http-backed transport.
// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	transport    Transport
	headers      map[string]string
	maxRedirects int
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// NewClient creates a new client with the given options.
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		transport:    NewTransport(),
		headers:      make(map[string]string),
		maxRedirects: DefaultMaxRedirects,
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithTransport substitutes the raw transport used for every exchange.
func WithTransport(t Transport) ClientOption {
	return func(c *Client) {
		c.transport = t
	}
}

// WithHeader adds a default header applied to every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithMaxRedirects overrides the default hop limit used when a request does
// not carry an explicit redirect policy.
func WithMaxRedirects(n int) ClientOption {
	return func(c *Client) {
		c.maxRedirects = n
	}
}

// CreateRequest builds a request but does not send it. The returned handle
// may be cancelled, or transmitted with Send.
func (c *Client) CreateRequest(opts *Options) (*Request, error) {
	norm, body, err := normalizeOptions(opts)
	if err != nil {
		return nil, err
	}
	c.applyDefaultHeaders(norm)
	return buildRequest(c.transport, norm, body)
}

// Send transmits a previously built request and runs the response through
// redirect resolution and status validation. The returned response's body
// still streams; use Buffer or JSON to materialize it.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	if err := req.transmit(); err != nil {
		return nil, err
	}

	tresp, err := awaitResponse(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.resolveRedirects(ctx, req, tresp)
	if err != nil {
		return nil, err
	}

	if err := validateStatus(req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Do builds and sends a request in one call.
func (c *Client) Do(ctx context.Context, opts *Options) (*Response, error) {
	req, err := c.CreateRequest(opts)
	if err != nil {
		return nil, err
	}
	return c.Send(ctx, req)
}

// DoBuffered is Do with the body pre-drained into memory.
func (c *Client) DoBuffered(ctx context.Context, opts *Options) (*Response, error) {
	resp, err := c.Do(ctx, opts)
	if err != nil {
		return nil, err
	}
	if _, err := resp.Buffer(); err != nil {
		return nil, err
	}
	return resp, nil
}

// DoJSON is Do with the body decoded into v.
func (c *Client) DoJSON(ctx context.Context, opts *Options, v any) (*Response, error) {
	resp, err := c.Do(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := resp.JSON(v); err != nil {
		return nil, err
	}
	return resp, nil
}

// Get is shorthand for a GET request to url.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, &Options{URL: url})
}

func (c *Client) applyDefaultHeaders(opts *Options) {
	if len(c.headers) == 0 {
		return
	}
	headers := make(http.Header, len(opts.Headers)+len(c.headers))
	for k, v := range c.headers {
		headers.Set(k, v)
	}
	for k, vs := range opts.Headers {
		headers.Del(k)
		for _, v := range vs {
			headers.Add(k, v)
		}
	}
	opts.Headers = headers
}

// DefaultClient backs the package-level convenience functions.
var DefaultClient = NewClient()

// CreateRequest builds a request on the default client without sending it.
func CreateRequest(opts *Options) (*Request, error) {
	return DefaultClient.CreateRequest(opts)
}

// Send transmits a previously built request on the default client.
func Send(ctx context.Context, req *Request) (*Response, error) {
	return DefaultClient.Send(ctx, req)
}

// Do builds and sends a request on the default client.
func Do(ctx context.Context, opts *Options) (*Response, error) {
	return DefaultClient.Do(ctx, opts)
}

// DoBuffered is Do with the body pre-drained into memory.
func DoBuffered(ctx context.Context, opts *Options) (*Response, error) {
	return DefaultClient.DoBuffered(ctx, opts)
}

// DoJSON is Do with the body decoded into v.
func DoJSON(ctx context.Context, opts *Options, v any) (*Response, error) {
	return DefaultClient.DoJSON(ctx, opts, v)
}
