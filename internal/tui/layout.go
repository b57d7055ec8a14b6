package tui

import "github.com/mmcdole/popcorn/internal/tui/components"

// Layout proportions
const (
	LeftPanePercent = 45
	MinPaneWidth    = 24

	// Width of a collapsed box: border plus the [+] marker
	CollapsedWidth = 5

	// Vertical layout: header line and footer line
	ChromeHeight = 2

	// Box border plus the toggle marker line
	boxChrome = 3

	// Search bar plus a blank line above the result list
	searchBarHeight = 2

	// Summary block plus a blank line above the watched list
	summaryHeight = 3
)

// paneLayout holds calculated box widths for the View
type paneLayout struct {
	leftWidth  int
	rightWidth int
	height     int
}

// calculateLayout computes box widths from the window size and box state
func (m Model) calculateLayout() paneLayout {
	layout := paneLayout{height: max(m.Height-ChromeHeight, boxChrome+1)}
	width := m.Width

	switch {
	case m.LeftOpen && m.RightOpen:
		layout.leftWidth = max(width*LeftPanePercent/100, MinPaneWidth)
		layout.rightWidth = max(width-layout.leftWidth, MinPaneWidth)
	case m.LeftOpen:
		layout.rightWidth = CollapsedWidth
		layout.leftWidth = max(width-CollapsedWidth, MinPaneWidth)
	case m.RightOpen:
		layout.leftWidth = CollapsedWidth
		layout.rightWidth = max(width-CollapsedWidth, MinPaneWidth)
	default:
		layout.leftWidth = width / 2
		layout.rightWidth = width - layout.leftWidth
	}
	return layout
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	layout := m.calculateLayout()
	innerLeft := max(layout.leftWidth-2, 1)
	innerRight := max(layout.rightWidth-2, 1)
	inner := max(layout.height-boxChrome, 1)

	m.SearchBar.SetWidth(innerLeft)
	m.Results.SetSize(innerLeft, max(inner-searchBarHeight, 1))
	m.Watched.SetSize(innerRight, max(inner-summaryHeight, 1))
	m.Detail.SetSize(innerRight, inner)
	m.Help.Width = m.Width
}

func (m Model) renderBoxes() string {
	layout := m.calculateLayout()
	leftFocused := m.Focus == FocusSearch || m.Focus == FocusResults

	left := components.RenderBox(m.renderSearchPane(), m.LeftOpen, leftFocused, layout.leftWidth, layout.height)
	right := components.RenderBox(m.renderRightPane(layout.rightWidth-2), m.RightOpen, !leftFocused, layout.rightWidth, layout.height)
	return joinBoxes(left, right)
}
