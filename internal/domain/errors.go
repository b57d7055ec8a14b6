package domain

import (
	"context"
	"errors"
)

// Sentinel errors for lookup operations
var (
	// ErrNetwork indicates a non-OK transport status or an unreachable provider
	ErrNetwork = errors.New("network error")

	// ErrProvider matches any *ProviderError via errors.Is
	ErrProvider = errors.New("provider error")

	// ErrAborted indicates the request was superseded and cancelled
	ErrAborted = errors.New("request aborted")

	// ErrMissingAPIKey indicates the lookup client was built without credentials
	ErrMissingAPIKey = errors.New("omdb api key is not configured")
)

// ProviderError carries a provider-reported failure ("Movie not found!",
// "Too many results.") whose message is shown to the user verbatim.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return "provider returned no results"
	}
	return e.Message
}

// Is reports ErrProvider as a match so callers can test the category.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// IsAborted reports whether err stems from a superseded or cancelled request.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled)
}

// UserMessage returns the text shown to the user for a lookup error.
func UserMessage(err error) string {
	var perr *ProviderError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &perr):
		return perr.Error()
	case errors.Is(err, ErrNetwork):
		return "Network Error"
	default:
		return err.Error()
	}
}
