package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/meridianhq/newswire/newsapi"
)

// NewsToolName is the published name of the news search tool.
const NewsToolName = "get_today_news"

const (
	defaultSortBy   = newsapi.SortByPublishedAt
	defaultPageSize = 10
)

// Fixed texts for locally recovered conditions.
const (
	msgMissingCredential = "Error: NEWS_API_KEY is not set. Set the NEWS_API_KEY environment variable to enable news search."
	msgMissingQuery      = "Error: the 'query' parameter is required to search for news."
)

// Searcher is the provider surface the news handler depends on. The
// concrete implementation is *newsapi.Client; tests substitute fakes.
type Searcher interface {
	HasAPIKey() bool
	Search(ctx context.Context, query newsapi.SearchQuery) (newsapi.SearchResult, error)
}

// NewsDescriptor returns the static schema published for get_today_news.
func NewsDescriptor() Descriptor {
	return Descriptor{
		Name: NewsToolName,
		Description: "Fetch recent news articles for a query. Searches articles published " +
			"in the last 1-2 days by keyword or topic and returns titles, descriptions, " +
			"links, and publication dates.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Keywords or topic to search for (e.g. 'bitcoin', 'technology', 'politics')",
				},
				"language": map[string]any{
					"type":        "string",
					"description": "Article language as an ISO-639-1 code (ru, en, de, es, fr, it, pt, ...). Default: all languages",
				},
				"sort_by": map[string]any{
					"type":        "string",
					"description": "Result ordering: 'relevancy', 'popularity', or 'publishedAt' (publication date)",
					"enum":        []string{newsapi.SortByRelevancy, newsapi.SortByPopularity, newsapi.SortByPublishedAt},
					"default":     defaultSortBy,
				},
				"page_size": map[string]any{
					"type":        "integer",
					"description": "Number of results per page (maximum 100, default 10)",
					"default":     defaultPageSize,
					"minimum":     1,
					"maximum":     newsapi.MaxPageSize,
				},
			},
			"required": []string{"query"},
		},
	}
}

// NewsHandler translates a get_today_news invocation into one provider
// search and renders the outcome as text. Every failure mode resolves to a
// returned text block; nothing escapes as an error.
type NewsHandler struct {
	searcher Searcher
}

// NewNewsHandler creates the handler around a provider client.
func NewNewsHandler(searcher Searcher) *NewsHandler {
	return &NewsHandler{searcher: searcher}
}

// Handle executes one invocation.
func (h *NewsHandler) Handle(ctx context.Context, args map[string]any) []Content {
	if h == nil || h.searcher == nil || !h.searcher.HasAPIKey() {
		return textBlock(msgMissingCredential)
	}

	query := stringArg(args, "query", "")
	if strings.TrimSpace(query) == "" {
		return textBlock(msgMissingQuery)
	}

	result, err := h.searcher.Search(ctx, newsapi.SearchQuery{
		Query:    query,
		Language: stringArg(args, "language", ""),
		SortBy:   stringArg(args, "sort_by", defaultSortBy),
		PageSize: intArg(args, "page_size", defaultPageSize),
	})
	if err != nil {
		return textBlock(describeSearchError(err))
	}

	if len(result.Articles) == 0 {
		return textBlock(fmt.Sprintf("No recent articles found for %q in the last couple of days.", query))
	}

	return textBlock(renderReport(result))
}

// describeSearchError performs the single exhaustive match over the closed
// search error set; anything outside it lands in the catch-all arm.
func describeSearchError(err error) string {
	var apiErr *newsapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case newsapi.ErrorKindHTTP:
			return fmt.Sprintf("HTTP error %d: %s", apiErr.StatusCode, apiErr.Body)
		case newsapi.ErrorKindTransport:
			return fmt.Sprintf("Request error: %s", transportDescription(apiErr))
		case newsapi.ErrorKindProvider:
			return fmt.Sprintf("Provider error: %s", apiErr.Message)
		}
	}
	return fmt.Sprintf("Unexpected error: %v", err)
}

func transportDescription(apiErr *newsapi.Error) string {
	if msg := strings.TrimSpace(apiErr.Message); msg != "" {
		return msg
	}
	if apiErr.Cause != nil {
		return apiErr.Cause.Error()
	}
	return "request failed"
}

func textBlock(text string) []Content {
	return []Content{TextContent(text)}
}
