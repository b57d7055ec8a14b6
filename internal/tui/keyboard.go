package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, m.quit()
	}

	if m.ShowHelp {
		if key.Matches(msg, Keys.Help, Keys.Back, Keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	// Text entry owns the keyboard
	switch {
	case m.Focus == FocusSearch:
		return m.handleSearchKey(msg)
	case m.Focus == FocusWatched && m.Watched.IsFiltering():
		var cmd tea.Cmd
		m.Watched, cmd = m.Watched.Update(msg)
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, m.quit()

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.Focus = FocusSearch
		m.applyFocus()
		return m, m.SearchBar.Focus()

	case key.Matches(msg, Keys.NextPane):
		m.cycleFocus(1)
		return m, nil

	case key.Matches(msg, Keys.PrevPane):
		m.cycleFocus(-1)
		return m, nil

	case key.Matches(msg, Keys.Collapse):
		m.setBoxOpen(false)
		return m, nil

	case key.Matches(msg, Keys.Expand):
		m.setBoxOpen(true)
		return m, nil
	}

	switch m.Focus {
	case FocusResults:
		return m.handleResultsKey(msg)
	case FocusWatched:
		return m.handleWatchedKey(msg)
	case FocusDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m *Model) quit() tea.Cmd {
	m.Session.Close()
	return tea.Quit
}

// handleSearchKey edits the query and issues a search when it changes
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		// Escape also backs out of an open detail
		m.Focus = FocusResults
		if m.Session.Selection.IsOpen() {
			m.Session.CloseDetail()
		}
		return m, m.sync()
	case key.Matches(msg, Keys.NextPane), msg.Type == tea.KeyEnter, msg.Type == tea.KeyDown:
		m.Focus = FocusResults
		m.applyFocus()
		return m, nil
	case key.Matches(msg, Keys.PrevPane):
		m.cycleFocus(-1)
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.SearchBar, cmd = m.SearchBar.Update(msg)
	cmds = append(cmds, cmd)

	if req := m.Session.SetQuery(m.SearchBar.Value()); req != nil {
		m.logger.Debug("search issued", "query", req.Key, "seq", req.Seq)
		cmds = append(cmds, SearchCmd(m.Lookup, req))
	}
	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Enter):
		sel := m.Results.Selected()
		if sel == nil {
			return m, nil
		}
		return m.toggleDetail(sel.GetID(), FocusResults)

	case key.Matches(msg, Keys.Back):
		if m.Session.Selection.IsOpen() {
			m.Session.CloseDetail()
			return m, m.sync()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Results, cmd = m.Results.Update(msg)
	return m, cmd
}

func (m Model) handleWatchedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Filter):
		return m, m.Watched.StartFilter()

	case key.Matches(msg, Keys.Back):
		if m.Watched.FilterQuery() != "" {
			m.Watched.ClearFilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Enter):
		sel := m.Watched.Selected()
		if sel == nil {
			return m, nil
		}
		return m.toggleDetail(sel.GetID(), FocusWatched)

	case key.Matches(msg, Keys.Remove):
		sel := m.Watched.Selected()
		if sel == nil || !m.Session.RemoveWatched(sel.GetID()) {
			return m, nil
		}
		m.StatusMsg = fmt.Sprintf("Removed %s", sel.GetTitle())
		m.StatusIsErr = false
		return m, tea.Batch(
			m.sync(),
			SaveWatchlistCmd(m.Store, m.Session.Watchlist.Entries()),
			ClearStatusCmd(3*time.Second),
		)
	}

	var cmd tea.Cmd
	m.Watched, cmd = m.Watched.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back):
		m.Session.CloseDetail()
		return m, m.sync()

	case key.Matches(msg, Keys.Add):
		title := ""
		if d := m.Session.Selection.Detail(); d != nil {
			title = d.Title
		}
		if !m.Session.AddWatched() {
			return m, nil
		}
		m.StatusMsg = fmt.Sprintf("Added %s", title)
		m.StatusIsErr = false
		return m, tea.Batch(
			m.sync(),
			SaveWatchlistCmd(m.Store, m.Session.Watchlist.Entries()),
			ClearStatusCmd(3*time.Second),
		)
	}

	var cmd tea.Cmd
	m.Detail, cmd = m.Detail.Update(msg)
	return m, cmd
}

// toggleDetail opens id in the detail panel, or closes it when already open
func (m Model) toggleDetail(id string, from Focus) (tea.Model, tea.Cmd) {
	req := m.Session.Select(id)
	if req != nil {
		m.detailFrom = from
		m.Focus = FocusDetail
		m.Detail.Remount()
		m.logger.Debug("detail requested", "id", req.Key, "seq", req.Seq)
	}
	return m, tea.Batch(FetchDetailCmd(m.Lookup, req), m.sync())
}

// cycleFocus moves between search, results and the right pane
func (m *Model) cycleFocus(delta int) {
	right := FocusWatched
	if m.Session.Selection.IsOpen() {
		right = FocusDetail
	}
	order := []Focus{FocusSearch, FocusResults, right}

	idx := 0
	for i, f := range order {
		if f == m.Focus {
			idx = i
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	m.Focus = order[idx]
	if m.Focus == FocusDetail {
		m.detailFrom = FocusResults
	}
	m.applyFocus()
}

// setBoxOpen collapses or expands the box holding focus
func (m *Model) setBoxOpen(open bool) {
	switch m.Focus {
	case FocusSearch, FocusResults:
		m.LeftOpen = open
	default:
		m.RightOpen = open
	}
	m.updateLayout()
}
