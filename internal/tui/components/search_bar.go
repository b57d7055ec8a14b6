package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// SearchBar is the title query input with the result counter
type SearchBar struct {
	input textinput.Model
	count int
	width int
}

// NewSearchBar creates a focused search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.SearchPromptStyle
	ti.TextStyle = styles.SearchTextStyle
	ti.PlaceholderStyle = styles.DimStyle
	ti.Focus()

	return SearchBar{input: ti}
}

// Focus gives the input keyboard focus
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes keyboard focus
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the input has focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the current query
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetCount sets the number shown in "Showing N results"
func (s *SearchBar) SetCount(n int) {
	s.count = n
}

// SetWidth updates the available width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	s.input.Width = max(width-lipgloss.Width(s.counter())-8, 10)
}

// Update forwards messages to the text input
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s SearchBar) counter() string {
	return fmt.Sprintf("Showing %d results", s.count)
}

// View renders the input and the counter on one line
func (s SearchBar) View() string {
	input := s.input.View()
	counter := styles.SubtitleStyle.Render(s.counter())
	inputWidth := max(s.width-lipgloss.Width(counter), lipgloss.Width(input)+2)
	return styles.Pad(input, inputWidth) + counter
}
