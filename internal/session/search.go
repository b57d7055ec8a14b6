package session

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/mmcdole/popcorn/internal/domain"
)

// DefaultMinQueryLength is the shortest query that reaches the provider
const DefaultMinQueryLength = 3

// SearchState is the lifecycle of the title search
type SearchState int

const (
	SearchIdle SearchState = iota
	SearchLoading
	SearchReady
	SearchFailed
)

func (s SearchState) String() string {
	switch s {
	case SearchIdle:
		return "idle"
	case SearchLoading:
		return "loading"
	case SearchReady:
		return "ready"
	case SearchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Search owns the query text, the in-flight request, and the result list.
// At most one request is live; every new query cancels the previous one.
type Search struct {
	parent   context.Context
	minLen   int
	seq      uint64
	query    string
	state    SearchState
	results  []domain.SearchResult
	err      error
	inflight *Request
}

// NewSearch creates an idle search. minLen <= 0 selects DefaultMinQueryLength.
func NewSearch(parent context.Context, minLen int) *Search {
	if parent == nil {
		parent = context.Background()
	}
	if minLen <= 0 {
		minLen = DefaultMinQueryLength
	}
	return &Search{parent: parent, minLen: minLen}
}

// SetQuery records a new query. It returns the request to issue, or nil when
// no remote call is needed (unchanged query or one below the minimum length).
func (s *Search) SetQuery(query string) *Request {
	if query == s.query {
		return nil
	}
	s.query = query
	s.cancelInflight()

	if utf8.RuneCountInString(strings.TrimSpace(query)) < s.minLen {
		s.state = SearchIdle
		s.results = nil
		s.err = nil
		return nil
	}

	s.seq++
	s.inflight = newRequest(s.parent, s.seq, strings.TrimSpace(query))
	s.state = SearchLoading
	s.err = nil
	return s.inflight
}

// Resolve applies a response. Responses for superseded or cancelled
// requests, and aborted errors, are discarded without touching state.
func (s *Search) Resolve(req *Request, results []domain.SearchResult, err error) Outcome {
	if req == nil || req != s.inflight || req.Cancelled() || domain.IsAborted(err) {
		return OutcomeDiscarded
	}

	s.inflight = nil
	req.release()

	if err != nil {
		s.state = SearchFailed
		s.results = nil
		s.err = err
		return OutcomeApplied
	}

	s.state = SearchReady
	s.results = results
	s.err = nil
	return OutcomeApplied
}

// Cancel aborts the in-flight request, if any, leaving the state as is.
func (s *Search) Cancel() {
	s.cancelInflight()
}

func (s *Search) cancelInflight() {
	if s.inflight != nil {
		s.inflight.Cancel()
		s.inflight = nil
	}
}

// Query returns the current query text
func (s *Search) Query() string { return s.query }

// State returns the current lifecycle state
func (s *Search) State() SearchState { return s.state }

// Results returns the results of the last applied response.
// Only Ready has results; every other state reports none.
func (s *Search) Results() []domain.SearchResult {
	if s.state != SearchReady {
		return nil
	}
	return s.results
}

// Err returns the error behind SearchFailed
func (s *Search) Err() error { return s.err }

// Loading reports whether a request is in flight
func (s *Search) Loading() bool { return s.state == SearchLoading }

// InFlight returns the live request, or nil
func (s *Search) InFlight() *Request { return s.inflight }

// MinLength returns the minimum query length that reaches the provider
func (s *Search) MinLength() int { return s.minLen }
