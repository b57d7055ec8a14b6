package session

import "context"

// Outcome reports what a resolve call did with a response.
type Outcome int

const (
	// OutcomeApplied means the response belonged to the live request and changed state
	OutcomeApplied Outcome = iota
	// OutcomeDiscarded means the response was stale or aborted and was dropped
	OutcomeDiscarded
)

func (o Outcome) String() string {
	if o == OutcomeApplied {
		return "applied"
	}
	return "discarded"
}

// Request is the cancellation token for one remote call.
// A request is live until it is resolved or superseded; once its context is
// cancelled, any response that still arrives for it is discarded.
type Request struct {
	Seq uint64
	Key string // query text or movie ID

	ctx    context.Context
	cancel context.CancelFunc
}

func newRequest(parent context.Context, seq uint64, key string) *Request {
	ctx, cancel := context.WithCancel(parent)
	return &Request{Seq: seq, Key: key, ctx: ctx, cancel: cancel}
}

// Context returns the context the transport must honour
func (r *Request) Context() context.Context {
	return r.ctx
}

// Cancelled reports whether the request has been superseded or aborted
func (r *Request) Cancelled() bool {
	return r.ctx.Err() != nil
}

// Cancel aborts the request. Safe to call more than once and on nil.
func (r *Request) Cancel() {
	if r != nil && r.cancel != nil {
		r.cancel()
	}
}

// release frees the context resources once a response has been applied.
func (r *Request) release() {
	r.Cancel()
}
