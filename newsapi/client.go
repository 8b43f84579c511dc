// Package newsapi is a minimal client for the NewsAPI article search
// endpoint. It performs exactly one attempt per search: no retries, no
// caching, no pagination beyond the requested page.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is the NewsAPI "everything" search endpoint.
	DefaultEndpoint = "https://newsapi.org/v2/everything"
	// DefaultTimeout bounds one outbound search request.
	DefaultTimeout = 30 * time.Second
	// MaxPageSize is the largest page the provider accepts.
	MaxPageSize = 100

	statusError = "error"
	dateLayout  = "2006-01-02"
)

// ClientConfig configures a provider client.
type ClientConfig struct {
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client
	Now        func() time.Time
}

// Client issues search requests against the provider endpoint.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
	now      func() time.Time
}

// NewClient creates a client from explicit configuration. Zero-value fields
// fall back to the provider defaults; an empty API key is permitted and
// surfaces later as a recoverable condition, not a construction error.
func NewClient(cfg ClientConfig) *Client {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		endpoint: endpoint,
		client:   client,
		now:      now,
	}
}

// HasAPIKey reports whether a provider credential is configured.
func (c *Client) HasAPIKey() bool {
	return c != nil && c.apiKey != ""
}

// SearchQuery is one article search. Query is required; Language is omitted
// from the request entirely when empty; SortBy defaults to publishedAt;
// PageSize is clamped to [1, MaxPageSize].
type SearchQuery struct {
	Query    string
	Language string
	SortBy   string
	PageSize int
}

// Search performs one GET against the search endpoint and decodes the
// payload. Expected failures come back as *Error; a malformed success
// payload comes back as a plain wrapped error.
func (c *Client) Search(ctx context.Context, query SearchQuery) (SearchResult, error) {
	if c == nil {
		return SearchResult{}, fmt.Errorf("newsapi: client is nil")
	}

	from, to := lookbackWindow(c.now())

	params := url.Values{}
	params.Set("q", query.Query)
	params.Set("from", from)
	params.Set("to", to)
	params.Set("sortBy", sortByOrDefault(query.SortBy))
	params.Set("pageSize", strconv.Itoa(clampPageSize(query.PageSize)))
	params.Set("apiKey", c.apiKey)
	if lang := strings.TrimSpace(query.Language); lang != "" {
		params.Set("language", lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return SearchResult{}, &Error{Kind: ErrorKindTransport, Message: "build request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return SearchResult{}, &Error{Kind: ErrorKindTransport, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return SearchResult{}, &Error{Kind: ErrorKindTransport, Message: "read response", Cause: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return SearchResult{}, &Error{
			Kind:       ErrorKindHTTP,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return SearchResult{}, fmt.Errorf("newsapi: decode response: %w", err)
	}

	if result.Status == statusError {
		message := strings.TrimSpace(result.Message)
		if message == "" {
			message = "unknown error"
		}
		return SearchResult{}, &Error{Kind: ErrorKindProvider, Message: message}
	}

	return result, nil
}

// lookbackWindow returns the inclusive 2-day search window ending at the
// current UTC calendar date, regardless of the process timezone.
func lookbackWindow(now time.Time) (from, to string) {
	today := now.UTC()
	yesterday := today.AddDate(0, 0, -1)
	return yesterday.Format(dateLayout), today.Format(dateLayout)
}

func clampPageSize(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

func sortByOrDefault(sortBy string) string {
	if strings.TrimSpace(sortBy) == "" {
		return SortByPublishedAt
	}
	return sortBy
}
