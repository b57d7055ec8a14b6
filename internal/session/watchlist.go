package session

import "github.com/mmcdole/popcorn/internal/domain"

// Watchlist is the insertion-ordered set of rated movies, keyed by ID.
type Watchlist struct {
	entries []domain.WatchedEntry
}

// NewWatchlist creates a watch-list seeded with entries (duplicates dropped)
func NewWatchlist(entries []domain.WatchedEntry) *Watchlist {
	w := &Watchlist{}
	for _, e := range entries {
		w.Add(e)
	}
	return w
}

// Add appends entry. Adding an ID that is already present is a no-op.
func (w *Watchlist) Add(entry domain.WatchedEntry) bool {
	if entry.ID == "" || w.Contains(entry.ID) {
		return false
	}
	w.entries = append(w.entries, entry)
	return true
}

// Remove drops the entry with id. Removing a missing ID is a no-op.
func (w *Watchlist) Remove(id string) bool {
	for i, e := range w.entries {
		if e.ID == id {
			w.entries = append(w.entries[:i:i], w.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether id is on the watch-list
func (w *Watchlist) Contains(id string) bool {
	_, ok := w.Get(id)
	return ok
}

// Get returns the entry for id
func (w *Watchlist) Get(id string) (domain.WatchedEntry, bool) {
	for _, e := range w.entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.WatchedEntry{}, false
}

// Entries returns a snapshot in insertion order
func (w *Watchlist) Entries() []domain.WatchedEntry {
	out := make([]domain.WatchedEntry, len(w.entries))
	copy(out, w.entries)
	return out
}

// Len returns the number of entries
func (w *Watchlist) Len() int { return len(w.entries) }
