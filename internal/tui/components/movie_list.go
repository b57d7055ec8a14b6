package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Each row takes a title line and a description line
const rowHeight = 2

// titleSource implements fuzzy.Source over lowercase titles
type titleSource []string

func (s titleSource) String(i int) string { return s[i] }
func (s titleSource) Len() int            { return len(s) }

// MovieList is a scrollable list of movies with an optional fuzzy filter.
type MovieList struct {
	items []domain.ListItem

	// Selection
	cursor int
	offset int

	// Row marked as open in the detail panel
	activeID string

	// Dimensions
	width   int
	height  int
	focused bool

	emptyText string
	keys      MovieListKeyMap

	// Filter state
	filterable   bool
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int         // indices into items
	matchedIdx   map[int][]int // item index -> matched byte offsets
}

// NewMovieList creates a list. filterable enables the fuzzy filter.
func NewMovieList(emptyText string, filterable bool) MovieList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return MovieList{
		emptyText:   emptyText,
		keys:        DefaultMovieListKeyMap(),
		filterable:  filterable,
		filterInput: ti,
	}
}

// SetItems replaces the rows, keeping the cursor on the same ID when possible
func (l *MovieList) SetItems(items []domain.ListItem) {
	var selectedID string
	if sel := l.Selected(); sel != nil {
		selectedID = sel.GetID()
	}

	l.items = items
	l.applyFilter()

	l.cursor = 0
	for i, idx := range l.visible() {
		if l.items[idx].GetID() == selectedID {
			l.cursor = i
			break
		}
	}
	l.clampCursor()
}

// Len returns the number of visible rows
func (l MovieList) Len() int {
	return len(l.visible())
}

// Total returns the number of rows before filtering
func (l MovieList) Total() int {
	return len(l.items)
}

func (l MovieList) visible() []int {
	if l.filterQuery != "" {
		return l.filteredIdx
	}
	idx := make([]int, len(l.items))
	for i := range l.items {
		idx[i] = i
	}
	return idx
}

// Selected returns the row under the cursor, or nil
func (l MovieList) Selected() domain.ListItem {
	vis := l.visible()
	if l.cursor < 0 || l.cursor >= len(vis) {
		return nil
	}
	return l.items[vis[l.cursor]]
}

// Cursor returns the cursor position among visible rows
func (l MovieList) Cursor() int { return l.cursor }

// SetActiveID marks the row that is open in the detail panel
func (l *MovieList) SetActiveID(id string) { l.activeID = id }

// SetFocused sets whether the list receives keys
func (l *MovieList) SetFocused(focused bool) { l.focused = focused }

// SetSize updates the component dimensions
func (l *MovieList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.filterInput.Width = width - 6
	l.clampCursor()
}

func (l MovieList) maxVisibleRows() int {
	lines := l.height
	if l.filterActive || l.filterQuery != "" {
		lines-- // filter line
	}
	rows := lines / rowHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (l *MovieList) clampCursor() {
	n := l.Len()
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	maxRows := l.maxVisibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+maxRows {
		l.offset = l.cursor - maxRows + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// MoveUp moves the cursor up n rows
func (l *MovieList) MoveUp(n int) {
	l.cursor -= n
	l.clampCursor()
}

// MoveDown moves the cursor down n rows
func (l *MovieList) MoveDown(n int) {
	l.cursor += n
	l.clampCursor()
}

// IsFiltering returns true while the filter input has focus
func (l MovieList) IsFiltering() bool { return l.filterActive }

// FilterQuery returns the applied filter text
func (l MovieList) FilterQuery() string { return l.filterQuery }

// StartFilter focuses the filter input
func (l *MovieList) StartFilter() tea.Cmd {
	if !l.filterable {
		return nil
	}
	l.filterActive = true
	l.filterInput.SetValue(l.filterQuery)
	return l.filterInput.Focus()
}

// ClearFilter drops the filter and shows every row
func (l *MovieList) ClearFilter() {
	l.filterActive = false
	l.filterQuery = ""
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.applyFilter()
	l.clampCursor()
}

func (l *MovieList) applyFilter() {
	l.filteredIdx = nil
	l.matchedIdx = nil
	if l.filterQuery == "" {
		return
	}

	titles := make(titleSource, len(l.items))
	for i, it := range l.items {
		titles[i] = strings.ToLower(it.GetTitle())
	}

	matches := fuzzy.FindFrom(strings.ToLower(l.filterQuery), titles)
	l.filteredIdx = make([]int, 0, len(matches))
	l.matchedIdx = make(map[int][]int, len(matches))
	for _, m := range matches {
		l.filteredIdx = append(l.filteredIdx, m.Index)
		l.matchedIdx[m.Index] = m.MatchedIndexes
	}
}

// Update handles navigation keys, and filter typing while filtering
func (l MovieList) Update(msg tea.Msg) (MovieList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	if l.filterActive {
		switch {
		case key.Matches(keyMsg, l.keys.Escape):
			l.ClearFilter()
			return l, nil
		case key.Matches(keyMsg, l.keys.Enter):
			l.filterActive = false
			l.filterInput.Blur()
			return l, nil
		case keyMsg.Type == tea.KeyUp, keyMsg.Type == tea.KeyDown:
			// fall through to navigation below
		default:
			var cmd tea.Cmd
			l.filterInput, cmd = l.filterInput.Update(msg)
			if q := l.filterInput.Value(); q != l.filterQuery {
				l.filterQuery = q
				l.applyFilter()
				l.cursor = 0
				l.offset = 0
			}
			return l, cmd
		}
	}

	page := l.maxVisibleRows()
	switch {
	case key.Matches(keyMsg, l.keys.Up):
		l.MoveUp(1)
	case key.Matches(keyMsg, l.keys.Down):
		l.MoveDown(1)
	case key.Matches(keyMsg, l.keys.Home):
		l.cursor = 0
		l.clampCursor()
	case key.Matches(keyMsg, l.keys.End):
		l.cursor = l.Len() - 1
		l.clampCursor()
	case key.Matches(keyMsg, l.keys.PageUp):
		l.MoveUp(page)
	case key.Matches(keyMsg, l.keys.PageDown):
		l.MoveDown(page)
	}
	return l, nil
}

// View renders the visible rows
func (l MovieList) View() string {
	var lines []string

	if l.filterActive {
		lines = append(lines, l.filterInput.View())
	} else if l.filterQuery != "" {
		lines = append(lines, styles.FilterStyle.Render(fmt.Sprintf("/ %s (%d/%d)", l.filterQuery, l.Len(), l.Total())))
	}

	vis := l.visible()
	if len(vis) == 0 {
		msg := l.emptyText
		if l.filterQuery != "" {
			msg = "No matches"
		}
		lines = append(lines, styles.DimStyle.Render(msg))
		return strings.Join(lines, "\n")
	}

	end := l.offset + l.maxVisibleRows()
	if end > len(vis) {
		end = len(vis)
	}
	for i := l.offset; i < end; i++ {
		idx := vis[i]
		lines = append(lines, l.renderRow(l.items[idx], idx, i == l.cursor && l.focused))
	}
	return strings.Join(lines, "\n")
}

func (l MovieList) renderRow(item domain.ListItem, idx int, selected bool) string {
	width := l.width
	if width < 10 {
		width = 10
	}

	marker := "  "
	var markerFg *lipgloss.Color
	if item.GetID() == l.activeID {
		marker = "▸ "
		markerFg = &styles.PopcornYellow
	}

	title := styles.Truncate(item.GetTitle(), width-4)
	titleParts := []styles.RowPart{{Text: marker, Foreground: markerFg}}
	titleParts = append(titleParts, l.highlight(title, l.matchedIdx[idx])...)

	desc := styles.Truncate(item.GetDescription(), width-6)
	descParts := []styles.RowPart{{Text: "  "}, {Text: desc, Foreground: &styles.DimGray}}

	return styles.RenderListRow(titleParts, selected, width) + "\n" +
		styles.RenderListRow(descParts, selected, width)
}

// highlight splits title into parts with fuzzy-matched runes emphasised
func (l MovieList) highlight(title string, matched []int) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: title, Bold: true}}
	}
	set := make(map[int]bool, len(matched))
	for _, m := range matched {
		set[m] = true
	}

	var parts []styles.RowPart
	var run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		p := styles.RowPart{Text: run.String(), Bold: true}
		if runMatched {
			p.Foreground = &styles.MatchColor
		}
		parts = append(parts, p)
		run.Reset()
	}

	// sahilm/fuzzy reports byte offsets into the lowercase title
	for i, r := range title {
		if set[i] != runMatched {
			flush()
			runMatched = set[i]
		}
		run.WriteRune(r)
	}
	flush()
	return parts
}
