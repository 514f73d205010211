package requiem

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openExchange(t *testing.T, rawurl string, opts TransportOptions) Exchange {
	t.Helper()
	u, err := url.Parse(rawurl)
	require.NoError(t, err)
	if opts.Method == "" {
		opts.Method = http.MethodGet
	}
	ex, err := NewTransport().Open(u, opts)
	require.NoError(t, err)
	return ex
}

func TestNetTransport_ResponseEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	ex := openExchange(t, server.URL, TransportOptions{})
	require.NoError(t, ex.End())

	ev := <-ex.Events()
	require.Equal(t, EventResponse, ev.Kind)
	assert.Equal(t, http.StatusNoContent, ev.Response.StatusCode)
	ev.Response.Body.Close()
}

func TestNetTransport_WriteAfterEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Cleanup(server.Close)

	ex := openExchange(t, server.URL, TransportOptions{})
	require.NoError(t, ex.End())
	assert.Error(t, ex.Write([]byte("too late")))

	ev := <-ex.Events()
	if ev.Kind == EventResponse {
		ev.Response.Body.Close()
	}
}

func TestNetTransport_CancelBeforeEndEmitsAbort(t *testing.T) {
	ex := openExchange(t, "http://localhost:9", TransportOptions{})
	ex.Cancel()

	select {
	case ev := <-ex.Events():
		assert.Equal(t, EventAbort, ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("expected an abort event")
	}

	// A second cancel must not emit anything further.
	ex.Cancel()
	select {
	case ev := <-ex.Events():
		t.Fatalf("unexpected second event: %v", ev.Kind)
	default:
	}
}

func TestNetTransport_TimeoutThenAbortOrdering(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	ex := openExchange(t, server.URL, TransportOptions{Timeout: 20 * time.Millisecond})
	require.NoError(t, ex.End())

	var kinds []EventKind
	deadline := time.After(2 * time.Second)
	for len(kinds) < 2 {
		select {
		case ev := <-ex.Events():
			kinds = append(kinds, ev.Kind)
		case <-deadline:
			t.Fatalf("expected timeout then abort, got %v", kinds)
		}
	}
	assert.Equal(t, []EventKind{EventTimeout, EventAbort}, kinds)
}
