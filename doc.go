// Package requiem is an HTTP request orchestration layer on top of a raw
// request/response transport. It takes a single options value describing the
// request (a direct URL or host/path/port/protocol parts, method, headers,
// body), issues it, and handles the concerns the raw transport does not:
// bounded redirect following, timeout-to-error normalization, and optional
// status code validation.
//
// Basic Usage:
//
//	resp, err := requiem.Do(context.Background(), &requiem.Options{
//	    URL: "https://api.example.com/users",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer resp.Body.Close()
//
// JSON bodies and response decoding:
//
//	var created struct {
//	    ID int `json:"id"`
//	}
//
//	_, err := requiem.DoJSON(context.Background(), &requiem.Options{
//	    URL:      "https://api.example.com/users",
//	    Method:   "POST",
//	    BodyJSON: map[string]string{"name": "morbo"},
//	}, &created)
//
// Redirects are followed transparently up to five hops by default. The policy
// is adjustable per request:
//
//	requiem.Do(ctx, &requiem.Options{
//	    URL:             "http://example.com/moved",
//	    FollowRedirects: requiem.MaxRedirects(2),
//	})
//
// Every orchestration failure is a *requiem.Error carrying a stable Kind
// string plus the request and response involved, so callers can branch on
// the failure class without parsing messages. Errors raised by the transport
// itself (connection resets, DNS failures) pass through unwrapped.
package requiem
