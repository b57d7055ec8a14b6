package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/session"
)

// Command factories for async operations. Requests carry their own
// cancellable context; a superseded request returns an aborted error that
// the session discards.

// SearchCmd runs a title search for req
func SearchCmd(lookup domain.Lookup, req *session.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		results, err := lookup.SearchByTitle(req.Context(), req.Key)
		return SearchResultsMsg{Req: req, Results: results, Err: err}
	}
}

// FetchDetailCmd loads the full record for req
func FetchDetailCmd(lookup domain.Lookup, req *session.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		detail, err := lookup.FetchByID(req.Context(), req.Key)
		return DetailLoadedMsg{Req: req, Detail: detail, Err: err}
	}
}

// SaveWatchlistCmd writes a snapshot of the watch-list. The version is
// reserved now, so a slow save cannot overwrite a later one.
func SaveWatchlistCmd(store domain.WatchlistStore, entries []domain.WatchedEntry) tea.Cmd {
	if store == nil {
		return nil
	}
	version := store.Reserve()
	return func() tea.Msg {
		return WatchlistSavedMsg{Err: store.SaveVersion(version, entries)}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
