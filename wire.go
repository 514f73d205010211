package requiem

import "context"

// awaitResponse drives a single exchange to its terminal event.
//
// The state machine: a raw transport error passes through unwrapped so
// native diagnostics stay visible; a timeout marks a flag and cancels the
// exchange but does not settle; the abort that follows settles as Timeout.
// An abort without a prior timeout settles as RequestAbort. The single
// receive loop makes double settlement structurally impossible.
func awaitResponse(ctx context.Context, req *Request) (*TransportResponse, error) {
	timedOut := false
	done := ctx.Done()

	for {
		select {
		case <-done:
			// Context cancellation is an external abort; settle through the
			// exchange's own abort event.
			done = nil
			req.ex.Cancel()
		case ev := <-req.ex.Events():
			switch ev.Kind {
			case EventResponse:
				return ev.Response, nil
			case EventError:
				return nil, ev.Err
			case EventTimeout:
				timedOut = true
				req.ex.Cancel()
			case EventAbort:
				if timedOut {
					return nil, &Error{
						Kind:    KindTimeout,
						Message: req.timeoutMessage(),
						Request: req,
					}
				}
				return nil, &Error{
					Kind:    KindRequestAbort,
					Message: "Request was aborted",
					Request: req,
				}
			}
		}
	}
}
