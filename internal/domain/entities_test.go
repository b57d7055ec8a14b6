package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieDetailRuntimeMinutes(t *testing.T) {
	cases := map[string]float64{
		"148 min": 148,
		"90":      90,
		"N/A":     0,
		"":        0,
		" 7 min":  7,
	}
	for in, want := range cases {
		assert.Equal(t, want, MovieDetail{Runtime: in}.RuntimeMinutes(), "runtime %q", in)
	}
}

func TestMovieDetailRating(t *testing.T) {
	assert.Equal(t, 8.8, MovieDetail{IMDbRating: "8.8"}.Rating())
	assert.Zero(t, MovieDetail{IMDbRating: "N/A"}.Rating())
	assert.Zero(t, MovieDetail{}.Rating())
}

func TestMovieDetailMetaLine(t *testing.T) {
	assert.Equal(t, "16 Jul 2010 · 148 min", MovieDetail{Released: "16 Jul 2010", Runtime: "148 min"}.MetaLine())
	assert.Equal(t, "148 min", MovieDetail{Runtime: "148 min"}.MetaLine())
}

func TestProviderErrorMatchesCategory(t *testing.T) {
	err := fmt.Errorf("search: %w", &ProviderError{Message: "Too many results."})

	assert.ErrorIs(t, err, ErrProvider)
	assert.NotErrorIs(t, err, ErrNetwork)
	assert.Equal(t, "Too many results.", UserMessage(err))
}

func TestIsAborted(t *testing.T) {
	assert.True(t, IsAborted(ErrAborted))
	assert.True(t, IsAborted(fmt.Errorf("x: %w", context.Canceled)))
	assert.False(t, IsAborted(ErrNetwork))
	assert.False(t, IsAborted(nil))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "Network Error", UserMessage(fmt.Errorf("status 503: %w", ErrNetwork)))
	assert.Equal(t, "other", UserMessage(errors.New("other")))
}
