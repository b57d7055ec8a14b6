package components

import (
	"strings"
	"testing"

	"github.com/mmcdole/popcorn/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(session.Summary{
		Count:         2,
		AvgIMDbRating: 8.25,
		AvgUserRating: 7.5,
		AvgRuntime:    121,
	}, 120)

	assert.Contains(t, out, "2 movies")
	assert.Contains(t, out, "8.25")
	assert.Contains(t, out, "7.50")
	assert.Contains(t, out, "121.00 min")
}

func TestRenderSummaryEmpty(t *testing.T) {
	out := RenderSummary(session.Summary{}, 120)
	assert.Contains(t, out, "0 movies")
	assert.Contains(t, out, "0.00")
}

func TestRenderBoxCollapsed(t *testing.T) {
	open := RenderBox("hello", true, true, 20, 6)
	assert.Contains(t, open, "hello")
	assert.Contains(t, open, "[-]")

	closed := RenderBox("hello", false, false, 20, 6)
	assert.NotContains(t, closed, "hello")
	assert.Contains(t, closed, "[+]")
	assert.Len(t, strings.Split(closed, "\n"), 6)
}

func TestSearchBarCounter(t *testing.T) {
	s := NewSearchBar()
	s.SetWidth(60)
	s.SetCount(4)
	assert.True(t, s.Focused())
	assert.Contains(t, s.View(), "Showing 4 results")

	s, _ = s.Update(runes("abc"))
	assert.Equal(t, "abc", s.Value())

	s.Blur()
	assert.False(t, s.Focused())
}
