package source

import (
	"testing"

	"github.com/mmcdole/popcorn/internal/adapter"
	"github.com/mmcdole/popcorn/internal/adapter/source/omdb"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLookupRejectsMissingKey(t *testing.T) {
	_, err := NewLookup(nil, nil)
	assert.Error(t, err)

	_, err = NewLookupFromConfig(adapter.DefaultConfig(), nil)
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestNewLookupFromConfig(t *testing.T) {
	cfg := adapter.DefaultConfig()
	cfg.OMDb.APIKey = "k"

	lookup, err := NewLookupFromConfig(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &omdb.Client{}, lookup)
}
