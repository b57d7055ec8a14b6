package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/session"
	"github.com/mmcdole/popcorn/internal/tui/components"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBoxes(),
		m.renderFooter(),
	)
}

func joinBoxes(left, right string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// renderHeader renders the logo line
func (m Model) renderHeader() string {
	logo := styles.LogoStyle.Render("🍿 popcorn")
	tagline := styles.DimStyle.Render("  search · rate · keep track")
	return styles.Truncate(logo+tagline, m.Width)
}

// renderSearchPane renders the search bar and whatever the search produced
func (m Model) renderSearchPane() string {
	search := m.Session.Search

	var body string
	switch search.State() {
	case session.SearchLoading:
		body = m.Spinner.View() + styles.DimStyle.Render(" Loading...")
	case session.SearchFailed:
		body = RenderError(search.Err())
	default:
		body = m.Results.View()
	}
	return m.SearchBar.View() + "\n\n" + body
}

// renderRightPane renders the detail panel, or the summary and watch-list
func (m Model) renderRightPane(width int) string {
	if m.Session.Selection.IsOpen() {
		return m.Detail.View()
	}
	return components.RenderSummary(m.Session.Summary(), width) + "\n\n" + m.Watched.View()
}

// RenderError renders a search failure message verbatim
func RenderError(err error) string {
	if err == nil {
		return ""
	}
	return styles.ErrorStyle.Render("⛔ " + domain.UserMessage(err))
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner while a request is pending, otherwise status
	var left string
	switch {
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	case m.Session.Search.Loading() || m.Session.Selection.State() == session.DetailLoading:
		left = m.Spinner.View() + " " + styles.DimStyle.Render("Loading...")
	}

	right := m.Help.ShortHelpView(Keys.ShortHelp())

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	full := m.Help.FullHelpView(Keys.FullHelp())
	body := styles.TitleStyle.Render("Keys") + "\n\n" + full + "\n\n" +
		styles.DimStyle.Render("Press ? or esc to return...")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}
