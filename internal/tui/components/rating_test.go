package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRatingHoverPreviewsAndLeaveClears(t *testing.T) {
	r := NewRating(0, 10)
	r.Hover(4)
	assert.Equal(t, 4, r.Display())
	assert.Equal(t, 0, r.Committed())

	r.Leave()
	assert.Equal(t, 0, r.Display())
}

func TestRatingCommitReportsUpward(t *testing.T) {
	r := NewRating(0, 10)
	cmd := r.Commit(7)
	require.NotNil(t, cmd)
	assert.Equal(t, RatingCommittedMsg{Value: 7}, cmd())
	assert.Equal(t, 7, r.Committed())
	assert.Equal(t, 7, r.Display())
}

func TestRatingClampsToRange(t *testing.T) {
	r := NewRating(42, 5)
	assert.Equal(t, 5, r.Committed())

	r.Hover(-3)
	assert.Equal(t, 0, r.Hovered())
	r.Hover(99)
	assert.Equal(t, 5, r.Hovered())

	assert.Nil(t, r.Commit(0), "zero is not a rating")
}

func TestRatingPreviewWinsOverCommitted(t *testing.T) {
	r := NewRating(3, 10)
	r.Hover(8)
	assert.Equal(t, 8, r.Display())
	r.Leave()
	assert.Equal(t, 3, r.Display())
}

func TestRatingKeys(t *testing.T) {
	r := NewRating(0, 10)

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRight})
	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, r.Hovered())

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, r.Hovered())

	r, _ = r.Update(runes("l"))
	assert.Equal(t, 2, r.Hovered())
	r, _ = r.Update(runes("h"))
	assert.Equal(t, 1, r.Hovered())

	r, cmd := r.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.NotNil(t, cmd)
	assert.Equal(t, RatingCommittedMsg{Value: 1}, cmd())

	r, cmd = r.Update(runes("7"))
	require.NotNil(t, cmd)
	assert.Equal(t, 7, r.Committed())

	r, cmd = r.Update(runes("0"))
	require.NotNil(t, cmd)
	assert.Equal(t, RatingCommittedMsg{Value: 10}, cmd())
}

func TestRatingDigitAboveMaxIgnored(t *testing.T) {
	r := NewRating(0, 5)
	r, cmd := r.Update(runes("8"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, r.Committed())
}
