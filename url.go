package requiem

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultScheme = "http"
	secureScheme  = "https"

	// placeholderHost is a defensive default only; target resolution fails
	// earlier when neither a URL nor a host is given.
	placeholderHost = "localhost"
)

// resolvedTarget is an absolute URL plus its derived transport scheme.
// Created once per transmission attempt and immutable afterwards.
type resolvedTarget struct {
	url    *url.URL
	str    string
	secure bool
}

// resolveTarget builds the absolute target from either the direct URL or the
// decomposed host form. A missing target or a parse failure yields an
// InvalidUrl error.
func resolveTarget(opts *Options) (*resolvedTarget, error) {
	if opts.URL != "" {
		u, err := url.Parse(opts.URL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return nil, &Error{
				Kind:    KindInvalidURL,
				Message: fmt.Sprintf("Invalid URL: %q", opts.URL),
			}
		}
		return newResolvedTarget(u), nil
	}

	if opts.Host == "" {
		return nil, &Error{
			Kind:    KindInvalidURL,
			Message: "A url or host must be provided",
		}
	}

	scheme := strings.TrimSuffix(opts.Protocol, ":")
	if scheme == "" {
		scheme = defaultScheme
	}

	host := opts.Host
	if host == "" {
		host = placeholderHost
	}
	if opts.Port != 0 {
		host = net.JoinHostPort(host, strconv.Itoa(opts.Port))
	}

	path := opts.Path
	if path == "" {
		path = opts.Pathname
	}
	if path == "" {
		path = "/"
	} else if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u, err := url.Parse(scheme + "://" + host + path)
	if err != nil {
		return nil, &Error{
			Kind:    KindInvalidURL,
			Message: fmt.Sprintf("Invalid URL: %q", scheme+"://"+host+path),
		}
	}
	return newResolvedTarget(u), nil
}

func newResolvedTarget(u *url.URL) *resolvedTarget {
	return &resolvedTarget{
		url:    u,
		str:    u.String(),
		secure: u.Scheme == secureScheme,
	}
}
