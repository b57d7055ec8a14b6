package domain

import "context"

// Lookup is the remote movie metadata provider.
// Both calls honour ctx cancellation and report it as ErrAborted.
type Lookup interface {
	// SearchByTitle returns matches in provider order
	SearchByTitle(ctx context.Context, query string) ([]SearchResult, error)

	// FetchByID returns the full detail for one title
	FetchByID(ctx context.Context, id string) (*MovieDetail, error)
}

// ListItem is implemented by rows that can be rendered in a list column.
type ListItem interface {
	GetID() string
	GetTitle() string
	GetDescription() string
}
