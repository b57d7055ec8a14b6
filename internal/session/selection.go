package session

import (
	"context"

	"github.com/mmcdole/popcorn/internal/domain"
)

// DetailState is the load state of the open detail panel
type DetailState int

const (
	DetailNone DetailState = iota // Browsing, nothing open
	DetailLoading
	DetailLoaded
	DetailFailed
)

func (d DetailState) String() string {
	switch d {
	case DetailNone:
		return "browsing"
	case DetailLoading:
		return "loading"
	case DetailLoaded:
		return "loaded"
	case DetailFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Selection tracks which movie, if any, is open in the detail panel.
type Selection struct {
	parent   context.Context
	seq      uint64
	id       string
	state    DetailState
	detail   *domain.MovieDetail
	err      error
	rating   int
	inflight *Request
}

// NewSelection creates a selection in the browsing state
func NewSelection(parent context.Context) *Selection {
	if parent == nil {
		parent = context.Background()
	}
	return &Selection{parent: parent}
}

// Toggle opens id, or closes the panel when id is already open.
// It returns the detail fetch to issue, or nil.
func (s *Selection) Toggle(id string) *Request {
	if id == "" || id == s.id {
		s.Close()
		return nil
	}
	return s.open(id)
}

func (s *Selection) open(id string) *Request {
	s.reset()
	s.seq++
	s.id = id
	s.state = DetailLoading
	s.inflight = newRequest(s.parent, s.seq, id)
	return s.inflight
}

// Close returns to browsing. Back actions and the escape key land here.
func (s *Selection) Close() {
	s.reset()
}

func (s *Selection) reset() {
	if s.inflight != nil {
		s.inflight.Cancel()
		s.inflight = nil
	}
	s.id = ""
	s.state = DetailNone
	s.detail = nil
	s.err = nil
	s.rating = 0
}

// ResolveDetail applies a detail fetch response. A failure moves the panel
// to DetailFailed so the error can be shown instead of a stuck loader.
func (s *Selection) ResolveDetail(req *Request, detail *domain.MovieDetail, err error) Outcome {
	if req == nil || req != s.inflight || req.Cancelled() || domain.IsAborted(err) {
		return OutcomeDiscarded
	}

	s.inflight = nil
	req.release()

	if err != nil {
		s.state = DetailFailed
		s.err = err
		return OutcomeApplied
	}
	if detail == nil {
		detail = &domain.MovieDetail{ID: s.id}
	}
	s.state = DetailLoaded
	s.detail = detail
	return OutcomeApplied
}

// SetRating records the user's committed rating for the open movie.
func (s *Selection) SetRating(v int) {
	if s.state == DetailNone || v < 0 {
		return
	}
	s.rating = v
}

// ID returns the open movie ID, or "" while browsing
func (s *Selection) ID() string { return s.id }

// IsOpen reports whether the detail panel is showing
func (s *Selection) IsOpen() bool { return s.state != DetailNone }

// State returns the detail load state
func (s *Selection) State() DetailState { return s.state }

// Detail returns the loaded detail, or nil
func (s *Selection) Detail() *domain.MovieDetail { return s.detail }

// Err returns the detail fetch error behind DetailFailed
func (s *Selection) Err() error { return s.err }

// UserRating returns the rating committed for the open movie (0 = none)
func (s *Selection) UserRating() int { return s.rating }

// InFlight returns the live detail fetch, or nil
func (s *Selection) InFlight() *Request { return s.inflight }
