package tui

import (
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/session"
)

// Message types for the TUI

// SearchResultsMsg carries the response to a title search
type SearchResultsMsg struct {
	Req     *session.Request
	Results []domain.SearchResult
	Err     error
}

// DetailLoadedMsg carries the response to a detail fetch
type DetailLoadedMsg struct {
	Req    *session.Request
	Detail *domain.MovieDetail
	Err    error
}

// WatchlistSavedMsg signals that the watch-list snapshot was written
type WatchlistSavedMsg struct {
	Err error
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
