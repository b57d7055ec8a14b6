package source

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/popcorn/internal/adapter"
	"github.com/mmcdole/popcorn/internal/adapter/source/omdb"
	"github.com/mmcdole/popcorn/internal/domain"
)

// LookupConfig contains the configuration needed to create a domain.Lookup
type LookupConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// NewLookup creates the movie provider client.
// The API key is always injected; it is never compiled in.
func NewLookup(cfg *LookupConfig, logger *slog.Logger) (domain.Lookup, error) {
	if cfg == nil {
		return nil, fmt.Errorf("lookup config is nil")
	}
	if cfg.APIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	client, err := omdb.NewClient(omdb.Options{
		BaseURL:           cfg.BaseURL,
		APIKey:            cfg.APIKey,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create omdb client: %w", err)
	}
	return client, nil
}

// NewLookupFromConfig creates a domain.Lookup from the application config
func NewLookupFromConfig(cfg *adapter.Config, logger *slog.Logger) (domain.Lookup, error) {
	return NewLookup(&LookupConfig{
		BaseURL:           cfg.OMDb.BaseURL,
		APIKey:            cfg.OMDb.APIKey,
		Timeout:           cfg.OMDb.Timeout,
		RequestsPerSecond: cfg.OMDb.RequestsPerSecond,
	}, logger)
}
