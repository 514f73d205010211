package requiem

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func makeResponse(status int, body string) *Response {
	return &Response{
		StatusCode: status,
		Status:     strconv.Itoa(status) + " " + http.StatusText(status),
		Headers:    make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
		URL:        "http://example.com/thing",
		Chain:      []string{"http://example.com/thing"},
	}
}

func TestResponse_BufferCachesBody(t *testing.T) {
	resp := makeResponse(200, `{"message":"success"}`)

	body, err := resp.Buffer()
	if err != nil {
		t.Fatalf("Error buffering body: %v", err)
	}
	if string(body) != `{"message":"success"}` {
		t.Errorf("Expected body to round-trip, got %s", body)
	}

	// A second call must serve the cached bytes, not re-read the stream.
	body2, err := resp.Buffer()
	if err != nil {
		t.Fatalf("Error buffering body second time: %v", err)
	}
	if string(body2) != string(body) {
		t.Errorf("Expected cached body, got %s", body2)
	}
}

func TestResponse_JSON(t *testing.T) {
	resp := makeResponse(200, `{"message":"success","code":200}`)

	var result struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	}
	if err := resp.JSON(&result); err != nil {
		t.Fatalf("Error decoding body: %v", err)
	}
	if result.Message != "success" || result.Code != 200 {
		t.Errorf("Unexpected decode result: %+v", result)
	}
}

func TestResponse_JSONInvalid(t *testing.T) {
	resp := makeResponse(200, "not json")

	var result map[string]any
	err := resp.JSON(&result)
	if err == nil {
		t.Fatalf("Expected decode error, got none")
	}
	if KindOf(err) != KindInvalidJSONBody {
		t.Errorf("Expected kind %s, got %s", KindInvalidJSONBody, KindOf(err))
	}
	if !strings.HasPrefix(err.Error(), "Unable to parse response body as JSON: ") {
		t.Errorf("Expected message to embed the parser diagnostic, got %q", err.Error())
	}
}

func TestResponse_RedirectCount(t *testing.T) {
	resp := makeResponse(200, "")
	if resp.RedirectCount() != 0 {
		t.Errorf("Expected 0 redirects, got %d", resp.RedirectCount())
	}

	resp.Chain = append(resp.Chain, "http://example.com/a", "http://example.com/b")
	if resp.RedirectCount() != 2 {
		t.Errorf("Expected 2 redirects, got %d", resp.RedirectCount())
	}
}

func TestResponse_StatusPredicates(t *testing.T) {
	tests := []struct {
		statusCode    int
		isSuccess     bool
		isRedirect    bool
		isClientError bool
		isServerError bool
	}{
		{200, true, false, false, false},
		{204, true, false, false, false},
		{301, false, true, false, false},
		{404, false, false, true, false},
		{500, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.statusCode), func(t *testing.T) {
			resp := &Response{StatusCode: tt.statusCode}

			if resp.IsSuccess() != tt.isSuccess {
				t.Errorf("IsSuccess() = %v, want %v", resp.IsSuccess(), tt.isSuccess)
			}
			if resp.IsRedirect() != tt.isRedirect {
				t.Errorf("IsRedirect() = %v, want %v", resp.IsRedirect(), tt.isRedirect)
			}
			if resp.IsClientError() != tt.isClientError {
				t.Errorf("IsClientError() = %v, want %v", resp.IsClientError(), tt.isClientError)
			}
			if resp.IsServerError() != tt.isServerError {
				t.Errorf("IsServerError() = %v, want %v", resp.IsServerError(), tt.isServerError)
			}
		})
	}
}

func TestResponse_EmitTo(t *testing.T) {
	resp := makeResponse(http.StatusAccepted, "forwarded body")
	resp.Headers.Set("Content-Type", "text/plain")
	resp.Headers.Set("X-Upstream", "requiem")

	rec := httptest.NewRecorder()
	if err := resp.EmitTo(rec); err != nil {
		t.Fatalf("Error emitting response: %v", err)
	}

	if rec.Code != http.StatusAccepted {
		t.Errorf("Expected status %d, got %d", http.StatusAccepted, rec.Code)
	}
	if rec.Header().Get("X-Upstream") != "requiem" {
		t.Errorf("Expected headers to be copied, got %v", rec.Header())
	}
	if rec.Body.String() != "forwarded body" {
		t.Errorf("Expected body to be piped, got %q", rec.Body.String())
	}
}

func TestResponse_EmitToAfterBuffer(t *testing.T) {
	resp := makeResponse(200, "already buffered")
	if _, err := resp.Buffer(); err != nil {
		t.Fatalf("Error buffering body: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := resp.EmitTo(rec); err != nil {
		t.Fatalf("Error emitting buffered response: %v", err)
	}
	if rec.Body.String() != "already buffered" {
		t.Errorf("Expected buffered body to be emitted, got %q", rec.Body.String())
	}
}
