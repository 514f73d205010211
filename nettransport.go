package requiem

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// netTransport is the default Transport, backed by net/http. Each exchange
// owns its round tripper exclusively; there is no pooling across exchanges,
// and redirects are never followed at this level.
type netTransport struct{}

// NewTransport returns the default net/http-backed Transport.
func NewTransport() Transport {
	return netTransport{}
}

func (netTransport) Open(target *url.URL, opts TransportOptions) (Exchange, error) {
	ctx, cancel := context.WithCancel(context.Background())
	x := &netExchange{
		target: target,
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 4),
	}
	if opts.Timeout > 0 {
		// The timeout is advisory: emit the event, then cancel so the
		// consumer observes timeout followed by abort.
		x.timer = time.AfterFunc(opts.Timeout, func() {
			x.emit(Event{Kind: EventTimeout})
			x.Cancel()
		})
	}
	return x, nil
}

type netExchange struct {
	target *url.URL
	opts   TransportOptions

	ctx    context.Context
	cancel context.CancelFunc
	events chan Event
	timer  *time.Timer

	mu      sync.Mutex
	body    bytes.Buffer
	ended   bool
	settled bool
}

func (x *netExchange) Events() <-chan Event {
	return x.events
}

func (x *netExchange) Write(p []byte) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.ended {
		return errors.New("requiem: write after end")
	}
	x.body.Write(p)
	return nil
}

func (x *netExchange) End() error {
	x.mu.Lock()
	if x.ended {
		x.mu.Unlock()
		return nil
	}
	x.ended = true
	x.mu.Unlock()

	go x.roundTrip()
	return nil
}

func (x *netExchange) Cancel() {
	x.cancel()

	// An exchange that was never ended has no round trip to interrupt, so
	// the abort must be emitted here.
	x.mu.Lock()
	ended := x.ended
	x.mu.Unlock()
	if !ended {
		x.emit(Event{Kind: EventAbort})
	}
}

// emit delivers an event unless a terminal event already fired. EventTimeout
// is the only non-terminal kind; everything else settles the exchange. The
// channel is buffered for the worst case (one timeout plus one terminal) so
// delivery never blocks.
func (x *netExchange) emit(ev Event) {
	x.mu.Lock()
	if x.settled {
		x.mu.Unlock()
		return
	}
	if ev.Kind != EventTimeout {
		x.settled = true
		if x.timer != nil {
			x.timer.Stop()
		}
	}
	x.mu.Unlock()
	x.events <- ev
}

func (x *netExchange) roundTrip() {
	var body io.Reader
	x.mu.Lock()
	if x.body.Len() > 0 {
		body = bytes.NewReader(x.body.Bytes())
	}
	x.mu.Unlock()

	req, err := http.NewRequestWithContext(x.ctx, x.opts.Method, x.target.String(), body)
	if err != nil {
		x.emit(Event{Kind: EventError, Err: err})
		return
	}
	for k, vs := range x.opts.Headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if x.opts.Auth != "" {
		user, pass, _ := strings.Cut(x.opts.Auth, ":")
		req.SetBasicAuth(user, pass)
	}

	rt, owned := x.roundTripper()
	resp, err := rt.RoundTrip(req)
	if err != nil {
		if x.ctx.Err() != nil {
			x.emit(Event{Kind: EventAbort})
			return
		}
		x.emit(Event{Kind: EventError, Err: err})
		return
	}

	respBody := resp.Body
	if owned != nil {
		respBody = &ownedBody{ReadCloser: resp.Body, tr: owned}
	}
	x.emit(Event{Kind: EventResponse, Response: &TransportResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Header,
		Body:       respBody,
	}})
}

// roundTripper returns the Agent when one was supplied, or a fresh transport
// owned by this exchange. The second return is non-nil only for the owned
// case, so its idle connection can be released once the body is closed.
func (x *netExchange) roundTripper() (http.RoundTripper, *http.Transport) {
	if x.opts.Agent != nil {
		return x.opts.Agent, nil
	}
	tr := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: x.opts.TLS,
	}
	return tr, tr
}

type ownedBody struct {
	io.ReadCloser
	tr *http.Transport
}

func (b *ownedBody) Close() error {
	err := b.ReadCloser.Close()
	b.tr.CloseIdleConnections()
	return err
}
