// Package session holds the browser's state machines: the title search with
// its cancellable request, the detail selection, and the watch-list.
// It has no UI or transport dependencies; callers issue the requests it
// hands back and feed the responses into the matching Resolve method.
package session

import (
	"context"
	"time"

	"github.com/mmcdole/popcorn/internal/domain"
)

// Options configures a Session
type Options struct {
	MinQueryLength int
	MaxRating      int
	Watched        []domain.WatchedEntry // initial watch-list
}

// Session is the top-level owner of search, selection and watch-list state.
type Session struct {
	Search    *Search
	Selection *Selection
	Watchlist *Watchlist

	maxRating int
	cancel    context.CancelFunc
	now       func() time.Time
}

// DefaultMaxRating is the number of stars in the rating input
const DefaultMaxRating = 10

// New creates a session whose requests derive from ctx
func New(ctx context.Context, opts Options) *Session {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	if opts.MaxRating <= 0 {
		opts.MaxRating = DefaultMaxRating
	}
	return &Session{
		Search:    NewSearch(ctx, opts.MinQueryLength),
		Selection: NewSelection(ctx),
		Watchlist: NewWatchlist(opts.Watched),
		maxRating: opts.MaxRating,
		cancel:    cancel,
		now:       time.Now,
	}
}

// SetQuery updates the search query. Any change collapses the detail panel.
func (s *Session) SetQuery(query string) *Request {
	if query == s.Search.Query() {
		return nil
	}
	s.Selection.Close()
	return s.Search.SetQuery(query)
}

// Select toggles the detail panel for id
func (s *Session) Select(id string) *Request {
	return s.Selection.Toggle(id)
}

// CloseDetail returns to browsing
func (s *Session) CloseDetail() {
	s.Selection.Close()
}

// Rate records the user rating for the open movie, clamped to the scale
func (s *Session) Rate(v int) {
	if v > s.maxRating {
		v = s.maxRating
	}
	s.Selection.SetRating(v)
}

// CanAdd reports whether the open movie can be added to the watch-list:
// its detail is loaded, it has a user rating, and it is not already watched.
func (s *Session) CanAdd() bool {
	return s.Selection.State() == DetailLoaded &&
		s.Selection.UserRating() > 0 &&
		!s.Watchlist.Contains(s.Selection.ID())
}

// AddWatched appends the open movie with its user rating and returns to
// browsing. It reports false when CanAdd does not hold.
func (s *Session) AddWatched() bool {
	if !s.CanAdd() {
		return false
	}
	entry := domain.WatchedEntry{
		MovieDetail: *s.Selection.Detail(),
		UserRating:  s.Selection.UserRating(),
		AddedAt:     s.now(),
	}
	if entry.ID == "" {
		entry.ID = s.Selection.ID()
	}
	if !s.Watchlist.Add(entry) {
		return false
	}
	s.Selection.Close()
	return true
}

// RemoveWatched drops id from the watch-list. Selection is untouched.
func (s *Session) RemoveWatched(id string) bool {
	return s.Watchlist.Remove(id)
}

// WatchedRating returns the stored rating when the open movie is watched
func (s *Session) WatchedRating() (int, bool) {
	e, ok := s.Watchlist.Get(s.Selection.ID())
	if !ok {
		return 0, false
	}
	return e.UserRating, true
}

// Summary derives the watch-list aggregate
func (s *Session) Summary() Summary {
	return Stats(s.Watchlist.Entries())
}

// MaxRating returns the rating scale
func (s *Session) MaxRating() int { return s.maxRating }

// Close cancels every in-flight request
func (s *Session) Close() {
	s.Search.Cancel()
	s.Selection.Close()
	s.cancel()
}
