package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmont/requiem"
)

func writeCollection(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collection.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCollection(t, `
defaults:
  timeout: 10s
  failOnError: true
  headers:
    User-Agent: requiem-test
requests:
  - name: list users
    url: http://localhost:8080/users
  - name: create user
    url: http://localhost:8080/users
    method: POST
    bodyJson:
      name: fry
    expectStatus: 201
    headers:
      X-Trace: "1"
`)

	col, err := Load(path)
	require.NoError(t, err)
	require.Len(t, col.Requests, 2)

	assert.Equal(t, "list users", col.Requests[0].Name)
	assert.Equal(t, "10s", col.Defaults.Timeout)
	assert.True(t, col.Defaults.FailOnError)
	assert.Equal(t, 201, col.Requests[1].ExpectStatus)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no requests", "defaults: {}\n"},
		{"missing url", "requests:\n  - name: broken\n"},
		{"both bodies", "requests:\n  - url: http://x\n    body: raw\n    bodyJson: {a: 1}\n"},
		{"bad yaml", "requests: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCollection(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestRequest_Options(t *testing.T) {
	defaults := Defaults{
		Timeout:     "5s",
		FailOnError: true,
		Headers:     map[string]string{"User-Agent": "requiem-test"},
	}

	req := Request{
		Name:   "create",
		URL:    "http://localhost:8080/users",
		Method: "POST",
		BodyJSON: map[string]any{
			"name": "fry",
		},
		Headers: map[string]string{"X-Trace": "1"},
	}

	opts, err := req.Options(defaults)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/users", opts.URL)
	assert.Equal(t, "POST", opts.Method)
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.Equal(t, "requiem-test", opts.Headers.Get("User-Agent"))
	assert.Equal(t, "1", opts.Headers.Get("X-Trace"))
	assert.NotNil(t, opts.BodyJSON)
}

func TestRequest_Options_InvalidTimeout(t *testing.T) {
	req := Request{Name: "broken", URL: "http://x", Timeout: "soon"}
	_, err := req.Options(Defaults{})
	assert.Error(t, err)
}

func TestRequest_Options_RedirectPolicies(t *testing.T) {
	two := 2

	req := Request{URL: "http://x", MaxRedirects: &two}
	opts, err := req.Options(Defaults{})
	require.NoError(t, err)
	assert.Equal(t, requiem.MaxRedirects(2), opts.FollowRedirects)

	req = Request{URL: "http://x", NoFollow: true}
	opts, err = req.Options(Defaults{})
	require.NoError(t, err)
	assert.Equal(t, requiem.NoRedirects(), opts.FollowRedirects)
}
