package requiem

import "fmt"

// validateStatus applies the configured status policy to the final response.
// Exact-match policies report both observed and expected codes; the
// threshold policy rejects anything >= 400 and reports only the observed
// code.
func validateStatus(req *Request, resp *Response) error {
	policy := req.opts.ValidateStatus
	if !policy.enabled {
		return nil
	}

	if policy.isExact {
		if resp.StatusCode == policy.exact {
			return nil
		}
		return &Error{
			Kind: KindInvalidStatusCode,
			Message: fmt.Sprintf("Received invalid status code from %q: %d (expected %d)",
				resp.URL, resp.StatusCode, policy.exact),
			Request:  req,
			Response: resp,
		}
	}

	if resp.StatusCode >= 400 {
		return &Error{
			Kind: KindInvalidStatusCode,
			Message: fmt.Sprintf("Received invalid status code from %q: %d",
				resp.URL, resp.StatusCode),
			Request:  req,
			Response: resp,
		}
	}
	return nil
}
