package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/session"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// DetailProps is everything the detail panel renders
type DetailProps struct {
	State         session.DetailState
	Detail        *domain.MovieDetail
	Err           error
	Watched       bool
	WatchedRating int
	CanAdd        bool
	Spinner       string
}

// Detail shows the open movie: header, rating input, and a scrollable body.
type Detail struct {
	props    DetailProps
	rating   Rating
	viewport viewport.Model
	width    int
	height   int
}

// NewDetail creates an empty detail panel
func NewDetail(maxRating int) Detail {
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Up:       key.NewBinding(key.WithKeys("up", "k")),
	}
	return Detail{
		rating:   NewRating(0, maxRating),
		viewport: vp,
	}
}

// Remount resets the rating input for a newly opened movie
func (d *Detail) Remount() {
	d.rating = NewRating(0, d.rating.Max())
	d.viewport.GotoTop()
}

// SetProps updates what the panel shows
func (d *Detail) SetProps(p DetailProps) {
	d.props = p
	d.viewport.SetContent(d.renderBody())
}

// Rating returns the rating input
func (d Detail) Rating() Rating { return d.rating }

// SetSize updates the component dimensions
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.layoutViewport()
}

func (d *Detail) layoutViewport() {
	bodyHeight := d.height - lipgloss.Height(d.renderHeader()) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	d.viewport.Width = d.width
	d.viewport.Height = bodyHeight
	d.viewport.SetContent(d.renderBody())
}

// Update routes keys to the rating input, then to body scrolling
func (d Detail) Update(msg tea.Msg) (Detail, tea.Cmd) {
	if d.props.State != session.DetailLoaded {
		return d, nil
	}

	if !d.props.Watched {
		before := d.rating.Display()
		var cmd tea.Cmd
		d.rating, cmd = d.rating.Update(msg)
		if cmd != nil || d.rating.Display() != before {
			return d, cmd
		}
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// View renders the panel
func (d Detail) View() string {
	switch d.props.State {
	case session.DetailLoading:
		return styles.DimStyle.Render(d.props.Spinner + " Loading...")
	case session.DetailFailed:
		return styles.ErrorStyle.Render("⛔ Could not load movie") + "\n\n" +
			styles.SubtitleStyle.Render(domain.UserMessage(d.props.Err)) + "\n\n" +
			styles.DimStyle.Render("esc to go back")
	case session.DetailLoaded:
		d.layoutViewport()
		return d.renderHeader() + "\n" + d.viewport.View()
	default:
		return ""
	}
}

func (d Detail) renderHeader() string {
	m := d.props.Detail
	if m == nil {
		return ""
	}
	width := d.width
	if width < 10 {
		width = 10
	}

	var b strings.Builder
	b.WriteString(styles.DimStyle.Render("← esc"))
	b.WriteString("\n")
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(m.Title, width)))
	b.WriteString("\n")
	if meta := m.MetaLine(); meta != "" {
		b.WriteString(styles.DimStyle.Render(meta))
		b.WriteString("\n")
	}
	if m.Genre != "" {
		b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(m.Genre, width)))
		b.WriteString("\n")
	}
	if m.IMDbRating != "" {
		b.WriteString(ratingStyle(m.Rating()).Render(fmt.Sprintf("%s ⭐ IMDb rating", m.IMDbRating)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case d.props.Watched:
		b.WriteString(styles.AccentStyle.Render(fmt.Sprintf("You rated this movie %s %d", styles.StarFull, d.props.WatchedRating)))
	default:
		b.WriteString(d.rating.View())
		if d.props.CanAdd {
			b.WriteString("\n")
			b.WriteString(styles.HighlightStyle.Render("a  + Add to list"))
		}
	}
	return b.String()
}

func (d Detail) renderBody() string {
	m := d.props.Detail
	if m == nil {
		return ""
	}
	width := d.width - 2
	if width > 80 {
		width = 80
	}
	if width < 10 {
		width = 10
	}

	wrap := lipgloss.NewStyle().Width(width)
	var parts []string
	if m.Plot != "" {
		parts = append(parts, wrap.Foreground(styles.LightGray).Render(m.Plot))
	}
	if m.Actors != "" {
		parts = append(parts, wrap.Render("Starring "+m.Actors))
	}
	if m.Director != "" {
		parts = append(parts, wrap.Render("Directed by "+m.Director))
	}
	return strings.Join(parts, "\n\n")
}

func ratingStyle(rating float64) lipgloss.Style {
	switch {
	case rating >= 7:
		return lipgloss.NewStyle().Foreground(styles.Green)
	case rating >= 5:
		return lipgloss.NewStyle().Foreground(styles.PopcornYellow)
	default:
		return lipgloss.NewStyle().Foreground(styles.Red)
	}
}
