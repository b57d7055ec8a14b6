package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SearchResult is one row of a title search. Results are replaced wholesale
// on every query and are never patched in place.
type SearchResult struct {
	ID        string // External identifier (IMDb ID), unique within a result set
	Title     string
	Year      string // Kept as reported ("2010", "2010–2014")
	PosterURL string // Empty when the provider has no poster
}

// GetID returns the unique identifier for this item
func (r SearchResult) GetID() string { return r.ID }

// GetTitle returns the display title
func (r SearchResult) GetTitle() string { return r.Title }

// GetDescription returns secondary info for display
func (r SearchResult) GetDescription() string { return r.Year }

// MovieDetail holds the full metadata for a single title.
// It is fetched lazily when an item is selected.
type MovieDetail struct {
	ID         string
	Title      string
	Year       string
	Genre      string
	Plot       string
	PosterURL  string
	Released   string // e.g. "16 Jul 2010"
	Runtime    string // e.g. "148 min"
	IMDbRating string // e.g. "8.8", or "N/A"
	Actors     string
	Director   string
}

// RuntimeMinutes returns the leading number of the runtime string, or 0.
func (m MovieDetail) RuntimeMinutes() float64 {
	fields := strings.Fields(m.Runtime)
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return v
}

// Rating returns the IMDb rating as a number, or 0 when unrated.
func (m MovieDetail) Rating() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(m.IMDbRating), 64)
	if err != nil {
		return 0
	}
	return v
}

// MetaLine returns "Released · Runtime" skipping empty parts
func (m MovieDetail) MetaLine() string {
	var parts []string
	if m.Released != "" {
		parts = append(parts, m.Released)
	}
	if m.Runtime != "" {
		parts = append(parts, m.Runtime)
	}
	return strings.Join(parts, " · ")
}

// WatchedEntry is a movie the user has rated and added to the watch-list.
type WatchedEntry struct {
	MovieDetail
	UserRating int       `json:"user_rating"` // 1..10
	AddedAt    time.Time `json:"added_at"`
}

// GetID returns the unique identifier for this entry
func (w WatchedEntry) GetID() string { return w.ID }

// GetTitle returns the display title
func (w WatchedEntry) GetTitle() string { return w.Title }

// GetDescription returns the ratings and runtime summary for list rows
func (w WatchedEntry) GetDescription() string {
	rating := w.IMDbRating
	if rating == "" {
		rating = "N/A"
	}
	return fmt.Sprintf("★ %s  ✦ %d  ⏳ %s", rating, w.UserRating, w.Runtime)
}
