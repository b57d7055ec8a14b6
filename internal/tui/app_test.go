package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/session"
	"github.com/mmcdole/popcorn/internal/store"
	"github.com/mmcdole/popcorn/internal/tui/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	results []domain.SearchResult
	detail  *domain.MovieDetail
	err     error
	queries []string
}

func (f *fakeLookup) SearchByTitle(ctx context.Context, query string) ([]domain.SearchResult, error) {
	f.queries = append(f.queries, query)
	if ctx.Err() != nil {
		return nil, domain.ErrAborted
	}
	return f.results, f.err
}

func (f *fakeLookup) FetchByID(ctx context.Context, id string) (*domain.MovieDetail, error) {
	if ctx.Err() != nil {
		return nil, domain.ErrAborted
	}
	return f.detail, f.err
}

var matrixResults = []domain.SearchResult{
	{ID: "tt0133093", Title: "The Matrix", Year: "1999"},
	{ID: "tt0234215", Title: "The Matrix Reloaded", Year: "2003"},
}

var matrixDetail = &domain.MovieDetail{
	ID:         "tt0133093",
	Title:      "The Matrix",
	Year:       "1999",
	Runtime:    "136 min",
	IMDbRating: "8.7",
	Plot:       "A hacker learns the truth about reality.",
}

func newTestModel(t *testing.T, watched ...domain.WatchedEntry) Model {
	t.Helper()
	sess := session.New(context.Background(), session.Options{Watched: watched})
	t.Cleanup(sess.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewModel(sess, &fakeLookup{}, nil, logger)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = press(m, runeKey(r))
	}
	return m
}

func deliver(m Model, msg tea.Msg) Model {
	updated, _ := m.Update(msg)
	return updated.(Model)
}

// searchReady types a query and delivers its results
func searchReady(t *testing.T, m Model, query string, results []domain.SearchResult) Model {
	t.Helper()
	m = typeText(m, query)
	req := m.Session.Search.InFlight()
	require.NotNil(t, req)
	return deliver(m, SearchResultsMsg{Req: req, Results: results})
}

// openMatrix searches, focuses the results and opens the first row
func openMatrix(t *testing.T, m Model) Model {
	t.Helper()
	m = searchReady(t, m, "matrix", matrixResults)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FocusResults, m.Focus)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	req := m.Session.Selection.InFlight()
	require.NotNil(t, req)
	return deliver(m, DetailLoadedMsg{Req: req, Detail: matrixDetail})
}

func TestTypingBelowMinimumDoesNotSearch(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, FocusSearch, m.Focus)

	m = typeText(m, "ma")
	assert.Equal(t, "ma", m.SearchBar.Value())
	assert.Equal(t, session.SearchIdle, m.Session.Search.State())
	assert.Nil(t, m.Session.Search.InFlight())

	m = typeText(m, "t")
	assert.Equal(t, session.SearchLoading, m.Session.Search.State())
	require.NotNil(t, m.Session.Search.InFlight())
	assert.Equal(t, "mat", m.Session.Search.InFlight().Key)
}

func TestTypingReturnsSearchCommand(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "ma")
	_, cmd := press(m, runeKey('t'))
	assert.NotNil(t, cmd)
}

func TestStaleSearchResponseIsDiscarded(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "mat")
	first := m.Session.Search.InFlight()
	m = typeText(m, "r")
	second := m.Session.Search.InFlight()
	require.NotSame(t, first, second)
	assert.True(t, first.Cancelled())

	m = deliver(m, SearchResultsMsg{Req: first, Results: []domain.SearchResult{{ID: "x", Title: "Stale"}}})
	assert.Equal(t, session.SearchLoading, m.Session.Search.State())
	assert.Equal(t, 0, m.Results.Len())

	m = deliver(m, SearchResultsMsg{Req: second, Results: matrixResults})
	assert.Equal(t, session.SearchReady, m.Session.Search.State())
	assert.Equal(t, 2, m.Results.Len())
	assert.Contains(t, m.View(), "Showing 2 results")
}

func TestSearchErrorIsShownVerbatim(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "zzzzqqq")
	req := m.Session.Search.InFlight()
	m = deliver(m, SearchResultsMsg{Req: req, Err: &domain.ProviderError{Message: "Movie not found!"}})

	assert.Equal(t, session.SearchFailed, m.Session.Search.State())
	view := m.View()
	assert.Contains(t, view, "Movie not found!")
	assert.Contains(t, view, "Showing 0 results")
}

func TestShorteningQueryClearsResults(t *testing.T) {
	m := newTestModel(t)
	m = searchReady(t, m, "mat", matrixResults)
	require.Equal(t, 2, m.Results.Len())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, session.SearchIdle, m.Session.Search.State())
	assert.Equal(t, 0, m.Results.Len())
}

func TestSelectRateAndAdd(t *testing.T) {
	m := newTestModel(t)
	m = openMatrix(t, m)

	assert.Equal(t, FocusDetail, m.Focus)
	assert.Equal(t, session.DetailLoaded, m.Session.Selection.State())
	assert.Equal(t, "MOVIE: The Matrix", m.WindowTitle())
	assert.Contains(t, m.View(), "The Matrix")

	// Adding without a rating does nothing
	m, _ = press(m, runeKey('a'))
	assert.Equal(t, 0, m.Session.Watchlist.Len())

	m, cmd := press(m, runeKey('8'))
	require.NotNil(t, cmd)
	m = deliver(m, cmd())
	assert.Equal(t, 8, m.Session.Selection.UserRating())
	assert.True(t, m.Session.CanAdd())

	m, _ = press(m, runeKey('a'))
	require.Equal(t, 1, m.Session.Watchlist.Len())
	entry := m.Session.Watchlist.Entries()[0]
	assert.Equal(t, "tt0133093", entry.ID)
	assert.Equal(t, 8, entry.UserRating)

	assert.False(t, m.Session.Selection.IsOpen())
	assert.Equal(t, FocusResults, m.Focus)
	assert.Equal(t, "popcorn", m.WindowTitle())
	assert.Contains(t, m.StatusMsg, "Added The Matrix")
	assert.Equal(t, 1, m.Watched.Len())
}

func TestEnterOnOpenRowCloses(t *testing.T) {
	m := newTestModel(t)
	m = openMatrix(t, m)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, FocusResults, m.Focus)
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Session.Selection.IsOpen())
	assert.NotNil(t, cmd)
}

func TestEscapeClosesDetail(t *testing.T) {
	m := newTestModel(t)
	m = openMatrix(t, m)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Session.Selection.IsOpen())
	assert.Equal(t, FocusResults, m.Focus)
}

func TestEscapeFromSearchClosesDetail(t *testing.T) {
	m := newTestModel(t)
	m = openMatrix(t, m)

	m, _ = press(m, runeKey('/'))
	require.Equal(t, FocusSearch, m.Focus)
	require.True(t, m.Session.Selection.IsOpen())

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Session.Selection.IsOpen())
	assert.Equal(t, FocusResults, m.Focus)
	assert.Equal(t, "popcorn", m.WindowTitle())
	assert.NotNil(t, cmd, "title is restored")
	assert.Equal(t, "matrix", m.SearchBar.Value(), "query is kept")
}

func TestQueryChangeCollapsesDetail(t *testing.T) {
	m := newTestModel(t)
	m = openMatrix(t, m)

	m, _ = press(m, runeKey('/'))
	require.Equal(t, FocusSearch, m.Focus)
	m = typeText(m, "x")

	assert.False(t, m.Session.Selection.IsOpen())
	assert.Equal(t, session.SearchLoading, m.Session.Search.State())
	assert.Equal(t, "popcorn", m.WindowTitle())
}

func TestStaleDetailResponseIsDiscarded(t *testing.T) {
	m := newTestModel(t)
	m = searchReady(t, m, "matrix", matrixResults)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	first := m.Session.Selection.InFlight()

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	second := m.Session.Selection.InFlight()
	require.NotSame(t, first, second)
	assert.Equal(t, "tt0234215", m.Session.Selection.ID())

	m = deliver(m, DetailLoadedMsg{Req: first, Detail: matrixDetail})
	assert.Equal(t, session.DetailLoading, m.Session.Selection.State())
}

func TestDetailFailureIsShown(t *testing.T) {
	m := newTestModel(t)
	m = searchReady(t, m, "matrix", matrixResults)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	req := m.Session.Selection.InFlight()

	m = deliver(m, DetailLoadedMsg{Req: req, Err: domain.ErrNetwork})
	assert.Equal(t, session.DetailFailed, m.Session.Selection.State())
	assert.Contains(t, m.View(), "Network Error")
}

func TestWatchedMovieShowsStoredRating(t *testing.T) {
	m := newTestModel(t, domain.WatchedEntry{MovieDetail: *matrixDetail, UserRating: 9})

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FocusWatched, m.Focus)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, FocusDetail, m.Focus)
	req := m.Session.Selection.InFlight()
	m = deliver(m, DetailLoadedMsg{Req: req, Detail: matrixDetail})

	assert.Contains(t, m.View(), "You rated this movie")
	assert.False(t, m.Session.CanAdd())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, FocusWatched, m.Focus)
}

func TestRemoveWatched(t *testing.T) {
	m := newTestModel(t,
		domain.WatchedEntry{MovieDetail: domain.MovieDetail{ID: "a", Title: "Alien"}, UserRating: 7},
		domain.WatchedEntry{MovieDetail: domain.MovieDetail{ID: "b", Title: "Brazil"}, UserRating: 8},
	)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = press(m, runeKey('x'))
	require.Equal(t, 1, m.Session.Watchlist.Len())
	assert.Equal(t, "b", m.Session.Watchlist.Entries()[0].ID)
	assert.Equal(t, 1, m.Watched.Len())
}

func TestFilterWatched(t *testing.T) {
	m := newTestModel(t,
		domain.WatchedEntry{MovieDetail: domain.MovieDetail{ID: "a", Title: "Alien"}, UserRating: 7},
		domain.WatchedEntry{MovieDetail: domain.MovieDetail{ID: "b", Title: "Brazil"}, UserRating: 8},
	)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = press(m, runeKey('f'))
	require.True(t, m.Watched.IsFiltering())

	m = typeText(m, "brz")
	assert.Equal(t, 1, m.Watched.Len())
	assert.Equal(t, "Brazil", m.Watched.Selected().GetTitle())
}

func TestCollapseAndExpandBoxes(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = press(m, runeKey('-'))
	assert.False(t, m.LeftOpen)
	assert.True(t, m.RightOpen)
	assert.Contains(t, m.View(), "[+]")

	m, _ = press(m, runeKey('+'))
	assert.True(t, m.LeftOpen)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(m, runeKey('-'))
	assert.False(t, m.RightOpen)
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = press(m, runeKey('?'))
	assert.True(t, m.ShowHelp)
	assert.Contains(t, m.View(), "Keys")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.ShowHelp)
}

func TestQuitCancelsInflightSearch(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "matrix")
	req := m.Session.Search.InFlight()

	_, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, req.Cancelled())
}

func TestStatusMessages(t *testing.T) {
	m := newTestModel(t)
	m = deliver(m, StatusMsg{Message: "hello"})
	assert.Equal(t, "hello", m.StatusMsg)
	m = deliver(m, ClearStatusMsg{})
	assert.Empty(t, m.StatusMsg)

	m = deliver(m, WatchlistSavedMsg{Err: assert.AnError})
	assert.True(t, m.StatusIsErr)
}

func TestRatingCommittedWhileBrowsingIsIgnored(t *testing.T) {
	m := newTestModel(t)
	m = deliver(m, components.RatingCommittedMsg{Value: 5})
	assert.Equal(t, 0, m.Session.Selection.UserRating())
}

func TestSearchCmd(t *testing.T) {
	lookup := &fakeLookup{results: matrixResults}
	sess := session.New(context.Background(), session.Options{})
	defer sess.Close()

	assert.Nil(t, SearchCmd(lookup, nil))

	req := sess.SetQuery("matrix")
	msg := SearchCmd(lookup, req)()
	res, ok := msg.(SearchResultsMsg)
	require.True(t, ok)
	assert.Same(t, req, res.Req)
	assert.Equal(t, matrixResults, res.Results)
	assert.Equal(t, []string{"matrix"}, lookup.queries)

	// A superseded request resolves as aborted and is discarded
	stale := req
	sess.SetQuery("matrix r")
	res = SearchCmd(lookup, stale)().(SearchResultsMsg)
	assert.ErrorIs(t, res.Err, domain.ErrAborted)
	assert.Equal(t, session.OutcomeDiscarded, sess.Search.Resolve(res.Req, res.Results, res.Err))
}

func TestFetchDetailCmd(t *testing.T) {
	lookup := &fakeLookup{detail: matrixDetail}
	sess := session.New(context.Background(), session.Options{})
	defer sess.Close()

	req := sess.Select("tt0133093")
	msg := FetchDetailCmd(lookup, req)().(DetailLoadedMsg)
	assert.Equal(t, matrixDetail, msg.Detail)
	assert.Equal(t, session.OutcomeApplied, sess.Selection.ResolveDetail(msg.Req, msg.Detail, msg.Err))
}

func TestSaveWatchlistCmd(t *testing.T) {
	assert.Nil(t, SaveWatchlistCmd(nil, nil))

	st := store.NewMemoryStore()
	defer st.Close()

	entries := []domain.WatchedEntry{{MovieDetail: *matrixDetail, UserRating: 8}}
	msg := SaveWatchlistCmd(st, entries)().(WatchlistSavedMsg)
	require.NoError(t, msg.Err)

	loaded, err := st.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 8, loaded[0].UserRating)
}

func TestSlowSaveDoesNotOverwriteNewerSnapshot(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	first := SaveWatchlistCmd(st, []domain.WatchedEntry{{MovieDetail: *matrixDetail, UserRating: 8}})
	second := SaveWatchlistCmd(st, nil)

	// The later snapshot finishes first
	require.NoError(t, second().(WatchlistSavedMsg).Err)
	require.NoError(t, first().(WatchlistSavedMsg).Err)

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSaveAfterShutdownIsRejected(t *testing.T) {
	st := store.NewMemoryStore()
	pending := SaveWatchlistCmd(st, []domain.WatchedEntry{{MovieDetail: *matrixDetail, UserRating: 8}})

	require.NoError(t, st.Save(nil))
	require.NoError(t, st.Close())

	assert.ErrorIs(t, pending().(WatchlistSavedMsg).Err, store.ErrClosed)
}
