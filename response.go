package requiem

import (
	"encoding/json"
	"io"
	"net/http"
)

// Response is the final outcome of an orchestrated request. The body streams
// until a materializer (Buffer, JSON) is asked for it.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       io.ReadCloser

	// URL is the URL that produced this response: the final hop's URL when
	// redirects were followed.
	URL string

	// Chain lists every URL visited, starting with the originally requested
	// one. Length 1 means no redirects were followed.
	Chain []string

	request  *Request
	buf      []byte
	buffered bool
}

func newResponse(req *Request, tresp *TransportResponse, chain []string) *Response {
	return &Response{
		StatusCode: tresp.StatusCode,
		Status:     tresp.Status,
		Headers:    tresp.Headers,
		Body:       tresp.Body,
		URL:        chain[len(chain)-1],
		Chain:      chain,
		request:    req,
	}
}

// RedirectCount reports how many redirect hops were followed.
func (r *Response) RedirectCount() int {
	return len(r.Chain) - 1
}

// Header returns the value of the named response header.
func (r *Response) Header(key string) string {
	return r.Headers.Get(key)
}

// Buffer drains the body into memory and returns it. The result is cached;
// subsequent calls return the same bytes. Stream errors are returned as-is:
// buffering itself introduces no failure modes of its own.
func (r *Response) Buffer() ([]byte, error) {
	if r.buffered {
		return r.buf, nil
	}
	defer r.Body.Close()
	buf, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	r.buf = buf
	r.buffered = true
	return buf, nil
}

// JSON buffers the body and decodes it into v. A decode failure yields an
// InvalidJsonBody error carrying this response for inspection.
func (r *Response) JSON(v any) error {
	buf, err := r.Buffer()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(buf, v); err != nil {
		return &Error{
			Kind:     KindInvalidJSONBody,
			Message:  "Unable to parse response body as JSON: " + err.Error(),
			Response: r,
		}
	}
	return nil
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect reports whether the status code is in the 3xx range.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError reports whether the status code is in the 4xx range.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError reports whether the status code is in the 5xx range.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// EmitTo copies this response's headers and status code onto w, then pipes
// the body into it. The caller owns w's lifecycle; requiem only writes to
// it. Useful when forwarding an upstream response from a handler.
func (r *Response) EmitTo(w http.ResponseWriter) error {
	dst := w.Header()
	for k, vs := range r.Headers {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
	w.WriteHeader(r.StatusCode)

	if r.buffered {
		_, err := w.Write(r.buf)
		return err
	}
	defer r.Body.Close()
	_, err := io.Copy(w, r.Body)
	return err
}
