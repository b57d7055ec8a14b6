package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/session"
	"github.com/mmcdole/popcorn/internal/tui/components"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// Focus identifies which part of the screen receives keys
type Focus int

const (
	FocusSearch Focus = iota
	FocusResults
	FocusWatched
	FocusDetail
)

// String returns the focus name
func (f Focus) String() string {
	switch f {
	case FocusSearch:
		return "search"
	case FocusResults:
		return "results"
	case FocusWatched:
		return "watched"
	case FocusDetail:
		return "detail"
	default:
		return "unknown"
	}
}

const appTitle = "popcorn"

// Model is the main Bubble Tea model for the application
type Model struct {
	// State
	Session *session.Session
	Ready   bool

	// Services
	Lookup domain.Lookup
	Store  domain.WatchlistStore

	// UI Components
	SearchBar components.SearchBar
	Results   components.MovieList
	Watched   components.MovieList
	Detail    components.Detail
	Spinner   spinner.Model
	Help      help.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	Focus       Focus
	LeftOpen    bool
	RightOpen   bool
	ShowHelp    bool
	StatusMsg   string
	StatusIsErr bool

	// Pane to return to when the detail panel closes
	detailFrom  Focus
	windowTitle string
	logger      *slog.Logger
}

// NewModel creates a new application model. store may be nil when the
// watch-list is not persisted.
func NewModel(sess *session.Session, lookup domain.Lookup, store domain.WatchlistStore, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	m := Model{
		Session:    sess,
		Lookup:     lookup,
		Store:      store,
		SearchBar:  components.NewSearchBar(),
		Results:    components.NewMovieList(fmt.Sprintf("Type at least %d characters to search", sess.Search.MinLength()), false),
		Watched:    components.NewMovieList("Nothing watched yet", true),
		Detail:     components.NewDetail(sess.MaxRating()),
		Spinner:    sp,
		Help:       h,
		Focus:      FocusSearch,
		LeftOpen:   true,
		RightOpen:  true,
		detailFrom: FocusResults,
		logger:     logger,
	}
	m.sync()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.Spinner.Tick,
		tea.SetWindowTitle(appTitle),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case SearchResultsMsg:
		if m.Session.Search.Resolve(msg.Req, msg.Results, msg.Err) == session.OutcomeDiscarded {
			m.logger.Debug("discarded stale search response", "query", requestKey(msg.Req))
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Warn("search failed", "query", requestKey(msg.Req), "error", msg.Err)
		}
		return m, m.sync()

	case DetailLoadedMsg:
		if m.Session.Selection.ResolveDetail(msg.Req, msg.Detail, msg.Err) == session.OutcomeDiscarded {
			m.logger.Debug("discarded stale detail response", "id", requestKey(msg.Req))
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Error("detail fetch failed", "id", requestKey(msg.Req), "error", msg.Err)
		}
		return m, m.sync()

	case components.RatingCommittedMsg:
		m.Session.Rate(msg.Value)
		return m, m.sync()

	case WatchlistSavedMsg:
		if msg.Err != nil {
			m.logger.Error("saving watch-list failed", "error", msg.Err)
			m.StatusMsg = "Could not save watch-list"
			m.StatusIsErr = true
			return m, ClearStatusCmd(3 * time.Second)
		}
		return m, nil

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		m.syncDetail()
		return m, cmd
	}

	// Cursor blink and other input housekeeping
	var cmd tea.Cmd
	m.SearchBar, cmd = m.SearchBar.Update(msg)
	return m, cmd
}

func requestKey(req *session.Request) string {
	if req == nil {
		return ""
	}
	return req.Key
}

// sync projects session state onto the components. It returns a command
// when the terminal title needs to change.
func (m *Model) sync() tea.Cmd {
	s := m.Session

	results := s.Search.Results()
	items := make([]domain.ListItem, len(results))
	for i, r := range results {
		items[i] = r
	}
	m.Results.SetItems(items)
	m.Results.SetActiveID(s.Selection.ID())
	m.SearchBar.SetCount(len(results))

	entries := s.Watchlist.Entries()
	watched := make([]domain.ListItem, len(entries))
	for i, e := range entries {
		watched[i] = e
	}
	m.Watched.SetItems(watched)

	if m.Focus == FocusDetail && !s.Selection.IsOpen() {
		m.Focus = m.detailFrom
	}
	if m.Focus == FocusWatched && s.Selection.IsOpen() {
		m.Focus = FocusDetail
	}
	m.applyFocus()
	m.syncDetail()
	return m.syncTitle()
}

func (m *Model) syncDetail() {
	s := m.Session
	rating, watched := s.WatchedRating()
	m.Detail.SetProps(components.DetailProps{
		State:         s.Selection.State(),
		Detail:        s.Selection.Detail(),
		Err:           s.Selection.Err(),
		Watched:       watched,
		WatchedRating: rating,
		CanAdd:        s.CanAdd(),
		Spinner:       m.Spinner.View(),
	})
}

// syncTitle shows the open movie in the terminal title
func (m *Model) syncTitle() tea.Cmd {
	title := appTitle
	if sel := m.Session.Selection; sel.State() == session.DetailLoaded && sel.Detail() != nil {
		title = "MOVIE: " + sel.Detail().Title
	}
	if title == m.windowTitle {
		return nil
	}
	m.windowTitle = title
	return tea.SetWindowTitle(title)
}

func (m *Model) applyFocus() {
	if m.Focus == FocusSearch {
		m.SearchBar.Focus()
	} else {
		m.SearchBar.Blur()
	}
	m.Results.SetFocused(m.Focus == FocusResults)
	m.Watched.SetFocused(m.Focus == FocusWatched)
}

// WindowTitle returns the last title sent to the terminal
func (m Model) WindowTitle() string {
	return m.windowTitle
}
