package requiem

import (
	"net/http"
	"testing"
)

func TestNormalizeOptions_DefaultsMethod(t *testing.T) {
	norm, body, err := normalizeOptions(&Options{URL: "http://example.com"})
	if err != nil {
		t.Fatalf("Error normalizing options: %v", err)
	}
	if norm.Method != http.MethodGet {
		t.Errorf("Expected default method GET, got %s", norm.Method)
	}
	if body.kind != payloadNone {
		t.Errorf("Expected no payload, got kind %d", body.kind)
	}
}

func TestNormalizeOptions_DoesNotMutateCaller(t *testing.T) {
	opts := &Options{URL: "http://example.com"}
	_, _, err := normalizeOptions(opts)
	if err != nil {
		t.Fatalf("Error normalizing options: %v", err)
	}
	if opts.Method != "" {
		t.Errorf("Caller options were mutated: method = %s", opts.Method)
	}
}

func TestNormalizeOptions_BodyExclusivity(t *testing.T) {
	_, _, err := normalizeOptions(&Options{
		URL:      "http://example.com",
		Body:     []byte("raw"),
		BodyJSON: map[string]string{"hello": "world"},
	})
	if err == nil {
		t.Fatalf("Expected error for Body + BodyJSON, got none")
	}
}

func TestNormalizeOptions_JSONPayload(t *testing.T) {
	_, body, err := normalizeOptions(&Options{
		URL:      "http://example.com",
		BodyJSON: map[string]string{"hello": "world"},
	})
	if err != nil {
		t.Fatalf("Error normalizing options: %v", err)
	}
	if body.kind != payloadJSON {
		t.Errorf("Expected JSON payload, got kind %d", body.kind)
	}
	if string(body.raw) != `{"hello":"world"}` {
		t.Errorf("Expected serialized JSON body, got %s", body.raw)
	}
}

func TestURLHelper(t *testing.T) {
	opts := URL("http://example.com/thing")
	if opts.URL != "http://example.com/thing" {
		t.Errorf("Expected URL to be wrapped, got %s", opts.URL)
	}
}

func TestRedirectPolicy_Limit(t *testing.T) {
	tests := []struct {
		name   string
		policy RedirectPolicy
		want   int
	}{
		{"zero value uses fallback", RedirectPolicy{}, DefaultMaxRedirects},
		{"explicit limit", MaxRedirects(2), 2},
		{"explicit zero", MaxRedirects(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.limit(DefaultMaxRedirects); got != tt.want {
				t.Errorf("Expected limit %d, got %d", tt.want, got)
			}
		})
	}
}
