package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/popcorn/internal/domain"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://www.omdbapi.com/"
	defaultTimeout = 15 * time.Second
	userAgent      = "Popcorn/1.0"
)

// Options configures the OMDb client
type Options struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables rate limiting
}

// Client implements domain.Lookup against the OMDb HTTP API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a new OMDb API client
func NewClient(opts Options, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, domain.ErrMissingAPIKey
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: limiter,
		logger:  logger,
	}, nil
}

// SearchByTitle returns matches for title in provider order
func (c *Client) SearchByTitle(ctx context.Context, title string) ([]domain.SearchResult, error) {
	query := url.Values{}
	query.Set("s", title)

	body, err := c.doRequest(ctx, query)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: failed to parse search response: %v", domain.ErrNetwork, err)
	}
	if !resp.OK() {
		return nil, &domain.ProviderError{Message: resp.Error}
	}

	return MapSearchResults(resp.Search), nil
}

// FetchByID returns the full detail for an IMDb ID
func (c *Client) FetchByID(ctx context.Context, id string) (*domain.MovieDetail, error) {
	query := url.Values{}
	query.Set("i", id)
	query.Set("plot", "short")

	body, err := c.doRequest(ctx, query)
	if err != nil {
		return nil, err
	}

	var resp DetailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: failed to parse detail response: %v", domain.ErrNetwork, err)
	}
	if !resp.OK() {
		return nil, &domain.ProviderError{Message: resp.Error}
	}

	detail := MapDetail(resp)
	if detail.ID == "" {
		detail.ID = id
	}
	return detail, nil
}

// doRequest performs an authenticated GET and maps transport failures
func (c *Client) doRequest(ctx context.Context, query url.Values) ([]byte, error) {
	requestID := uuid.NewString()

	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, domain.ErrAborted
		}
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	c.logger.Debug("omdb request", "request_id", requestID, "query", redact(query))

	query.Set("apikey", c.apiKey)
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			c.logger.Debug("omdb request aborted", "request_id", requestID)
			return nil, domain.ErrAborted
		}
		c.logger.Error("omdb request failed", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, domain.ErrAborted
		}
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("omdb request error", "request_id", requestID, "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: unexpected status code %d", domain.ErrNetwork, resp.StatusCode)
	}

	c.logger.Debug("omdb response", "request_id", requestID, "bytes", len(body))
	return body, nil
}

// redact renders query params for logs without the API key
func redact(query url.Values) string {
	clone := url.Values{}
	for k, v := range query {
		if k == "apikey" {
			continue
		}
		clone[k] = v
	}
	return clone.Encode()
}
