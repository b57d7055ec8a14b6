package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// RatingCommittedMsg reports a committed star rating to the owner
type RatingCommittedMsg struct {
	Value int
}

// Rating is a star rating input. It has a committed value and a transient
// preview; both live in [0, max]. A fresh Rating is created on every
// remount, so nothing carries over between movies.
type Rating struct {
	max       int
	committed int
	hover     int
	keys      RatingKeyMap
}

// NewRating creates a rating input starting at initial
func NewRating(initial, max int) Rating {
	if max <= 0 {
		max = 10
	}
	r := Rating{max: max, keys: DefaultRatingKeyMap()}
	r.committed = r.clamp(initial)
	return r
}

func (r Rating) clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > r.max {
		return r.max
	}
	return v
}

// Hover previews rating k
func (r *Rating) Hover(k int) {
	r.hover = r.clamp(k)
}

// Leave clears the preview
func (r *Rating) Leave() {
	r.hover = 0
}

// Commit sets the rating to k and reports it upward
func (r *Rating) Commit(k int) tea.Cmd {
	k = r.clamp(k)
	if k == 0 {
		return nil
	}
	r.committed = k
	r.hover = 0
	return func() tea.Msg {
		return RatingCommittedMsg{Value: k}
	}
}

// Committed returns the committed rating (0 = unrated)
func (r Rating) Committed() int { return r.committed }

// Hovered returns the preview rating (0 = none)
func (r Rating) Hovered() int { return r.hover }

// Max returns the number of stars
func (r Rating) Max() int { return r.max }

// Display returns the value the stars should show: preview wins over committed
func (r Rating) Display() int {
	if r.hover > 0 {
		return r.hover
	}
	return r.committed
}

// Update handles rating keys: ←/→ move the preview, digits commit directly
// (0 means 10), space/enter commit the preview.
func (r Rating) Update(msg tea.Msg) (Rating, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch {
	case key.Matches(keyMsg, r.keys.Increase):
		r.Hover(r.Display() + 1)
	case key.Matches(keyMsg, r.keys.Decrease):
		next := r.Display() - 1
		if next <= 0 {
			r.Leave()
		} else {
			r.Hover(next)
		}
	case key.Matches(keyMsg, r.keys.Commit):
		if r.hover > 0 {
			return r, r.Commit(r.hover)
		}
	case key.Matches(keyMsg, r.keys.Digit):
		if len(keyMsg.Runes) == 1 {
			k := int(keyMsg.Runes[0] - '0')
			if k == 0 {
				k = 10
			}
			if k <= r.max {
				return r, r.Commit(k)
			}
		}
	}
	return r, nil
}

// View renders the stars followed by the displayed number
func (r Rating) View() string {
	var b strings.Builder
	shown := r.Display()
	for i := 1; i <= r.max; i++ {
		switch {
		case i <= shown && r.hover > 0:
			b.WriteString(styles.StarPreviewStyle.Render(styles.StarFull))
		case i <= shown:
			b.WriteString(styles.StarFullStyle.Render(styles.StarFull))
		default:
			b.WriteString(styles.StarEmptyStyle.Render(styles.StarEmpty))
		}
		b.WriteString(" ")
	}
	if shown > 0 {
		b.WriteString(styles.AccentStyle.Render(fmt.Sprintf(" %d", shown)))
	}
	return b.String()
}
