// Package config loads YAML request collections executed by the run command.
package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tmont/requiem"
)

// Collection is a named set of requests with shared defaults.
type Collection struct {
	Defaults Defaults  `yaml:"defaults"`
	Requests []Request `yaml:"requests"`
}

// Defaults apply to every request in the collection unless overridden.
type Defaults struct {
	Headers      map[string]string `yaml:"headers,omitempty"`
	Timeout      string            `yaml:"timeout,omitempty"`
	MaxRedirects *int              `yaml:"maxRedirects,omitempty"`
	FailOnError  bool              `yaml:"failOnError,omitempty"`
}

// Request is one entry in a collection.
type Request struct {
	Name    string            `yaml:"name"`
	URL     string            `yaml:"url"`
	Method  string            `yaml:"method,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Auth    string            `yaml:"auth,omitempty"`
	Timeout string            `yaml:"timeout,omitempty"`

	Body     string         `yaml:"body,omitempty"`
	BodyJSON map[string]any `yaml:"bodyJson,omitempty"`

	// NoFollow disables redirect following entirely; MaxRedirects bounds it.
	// They mirror the library's two distinct policies.
	NoFollow     bool `yaml:"noFollow,omitempty"`
	MaxRedirects *int `yaml:"maxRedirects,omitempty"`

	ExpectStatus int  `yaml:"expectStatus,omitempty"`
	FailOnError  bool `yaml:"failOnError,omitempty"`

	// Extract names JSONPath expressions evaluated against the response.
	Extract map[string]string `yaml:"extract,omitempty"`

	// Schema is an inline JSON Schema the response body must satisfy.
	Schema string `yaml:"schema,omitempty"`
}

// Load reads and validates a collection file.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading collection: %w", err)
	}

	var col Collection
	if err := yaml.Unmarshal(data, &col); err != nil {
		return nil, fmt.Errorf("parsing collection: %w", err)
	}

	if len(col.Requests) == 0 {
		return nil, fmt.Errorf("collection %s has no requests", path)
	}
	for i, req := range col.Requests {
		if req.URL == "" {
			return nil, fmt.Errorf("request %d (%s) has no url", i, req.Name)
		}
		if req.Body != "" && req.BodyJSON != nil {
			return nil, fmt.Errorf("request %d (%s) sets both body and bodyJson", i, req.Name)
		}
	}
	return &col, nil
}

// Options maps a collection entry, merged with the collection defaults, onto
// the library's request options.
func (r Request) Options(defaults Defaults) (*requiem.Options, error) {
	opts := &requiem.Options{
		URL:    r.URL,
		Method: r.Method,
		Auth:   r.Auth,
	}

	headers := make(http.Header)
	for k, v := range defaults.Headers {
		headers.Set(k, v)
	}
	for k, v := range r.Headers {
		headers.Set(k, v)
	}
	if len(headers) > 0 {
		opts.Headers = headers
	}

	timeout := r.Timeout
	if timeout == "" {
		timeout = defaults.Timeout
	}
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("request %s: invalid timeout %q: %w", r.Name, timeout, err)
		}
		opts.Timeout = d
	}

	if r.Body != "" {
		opts.Body = []byte(r.Body)
	} else if r.BodyJSON != nil {
		opts.BodyJSON = r.BodyJSON
	}

	switch {
	case r.NoFollow:
		opts.FollowRedirects = requiem.NoRedirects()
	case r.MaxRedirects != nil:
		opts.FollowRedirects = requiem.MaxRedirects(*r.MaxRedirects)
	case defaults.MaxRedirects != nil:
		opts.FollowRedirects = requiem.MaxRedirects(*defaults.MaxRedirects)
	}

	switch {
	case r.ExpectStatus != 0:
		opts.ValidateStatus = requiem.RequireStatus(r.ExpectStatus)
	case r.FailOnError || defaults.FailOnError:
		opts.ValidateStatus = requiem.RejectErrorStatus()
	}

	return opts, nil
}
