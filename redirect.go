package requiem

import (
	"context"
	"fmt"
	"net/url"
)

// isRedirect reports whether resp asks for a redirect the resolver can act
// on: a 3xx status plus a Location header.
func isRedirect(resp *TransportResponse) bool {
	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		return false
	}
	return resp.Headers.Get("Location") != ""
}

// resolveRedirects runs the redirect chain to completion. It is an explicit
// loop over (chain, response, depth) rather than recursion, so adversarial
// redirect chains cannot grow the stack.
//
// Depth counting starts at zero for the first evaluation of the original
// response: MaxRedirects(0) means any redirect response fails immediately,
// while NoRedirects short-circuits entirely and hands back the raw redirect
// response.
func (c *Client) resolveRedirects(ctx context.Context, req *Request, tresp *TransportResponse) (*Response, error) {
	chain := []string{req.URL}

	policy := req.opts.FollowRedirects
	if policy.disabled {
		return newResponse(req, tresp, chain), nil
	}
	max := policy.limit(c.maxRedirects)

	cur := tresp
	for depth := 0; isRedirect(cur); depth++ {
		if depth >= max {
			return nil, &Error{
				Kind: KindTooManyRedirects,
				Message: fmt.Sprintf("%q redirected too many times (max redirects: %d)",
					chain[0], max),
				Request:  req,
				Response: newResponse(req, cur, chain),
			}
		}

		location := cur.Headers.Get("Location")
		base, err := url.Parse(chain[len(chain)-1])
		if err == nil {
			var next *url.URL
			next, err = base.Parse(location)
			if err == nil {
				location = next.String()
			}
		}
		if err != nil {
			return nil, &Error{
				Kind:     KindInvalidRedirectURL,
				Message:  fmt.Sprintf("Invalid redirect URL: %q", location),
				Request:  req,
				Response: newResponse(req, cur, chain),
			}
		}

		// The redirect body is never surfaced; release it before reissuing.
		cur.Body.Close()

		hop, err := buildRequest(c.transport, redirectOptions(req.opts, location), payload{})
		if err != nil {
			return nil, err
		}
		if err := hop.transmit(); err != nil {
			return nil, err
		}
		next, err := awaitResponse(ctx, hop)
		if err != nil {
			return nil, err
		}

		chain = append(chain, location)
		cur = next
	}

	return newResponse(req, cur, chain), nil
}
