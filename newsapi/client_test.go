package newsapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(r *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// fixedNow is 2024-06-15 18:30 in a non-UTC zone; the UTC calendar date is
// still 2024-06-15.
func fixedNow() time.Time {
	loc := time.FixedZone("UTC+9", 9*60*60)
	return time.Date(2024, 6, 15, 18, 30, 0, 0, loc)
}

func newTestClient(t *testing.T, handler roundTripFunc) *Client {
	t.Helper()
	return NewClient(ClientConfig{
		APIKey:     "test-key",
		HTTPClient: &http.Client{Transport: handler},
		Now:        fixedNow,
	})
}

func okResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func capturedQuery(t *testing.T, result string) (url.Values, SearchResult, error) {
	t.Helper()
	var captured url.Values
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		captured = r.URL.Query()
		return okResponse(result), nil
	})
	res, err := client.Search(context.Background(), SearchQuery{Query: "bitcoin", PageSize: 10})
	return captured, res, err
}

func TestSearchRequestParams(t *testing.T) {
	params, _, err := capturedQuery(t, `{"status":"ok","totalResults":0,"articles":[]}`)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if got := params.Get("q"); got != "bitcoin" {
		t.Fatalf("q = %q, want bitcoin", got)
	}
	if got := params.Get("apiKey"); got != "test-key" {
		t.Fatalf("apiKey = %q, want test-key", got)
	}
	if got := params.Get("sortBy"); got != SortByPublishedAt {
		t.Fatalf("sortBy = %q, want %q", got, SortByPublishedAt)
	}
	if got := params.Get("pageSize"); got != "10" {
		t.Fatalf("pageSize = %q, want 10", got)
	}
}

func TestSearchLookbackWindow(t *testing.T) {
	params, _, err := capturedQuery(t, `{"status":"ok","totalResults":0,"articles":[]}`)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	// The clock reads June 15 18:30 UTC+9; both bounds must be UTC dates.
	if got := params.Get("to"); got != "2024-06-15" {
		t.Fatalf("to = %q, want 2024-06-15", got)
	}
	if got := params.Get("from"); got != "2024-06-14" {
		t.Fatalf("from = %q, want 2024-06-14", got)
	}
}

func TestSearchLanguageOmittedWhenEmpty(t *testing.T) {
	var captured url.Values
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		captured = r.URL.Query()
		return okResponse(`{"status":"ok","totalResults":0,"articles":[]}`), nil
	})

	if _, err := client.Search(context.Background(), SearchQuery{Query: "go"}); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if _, present := captured["language"]; present {
		t.Fatalf("language parameter present, want omitted")
	}

	if _, err := client.Search(context.Background(), SearchQuery{Query: "go", Language: "de"}); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got := captured.Get("language"); got != "de" {
		t.Fatalf("language = %q, want de", got)
	}
}

func TestSearchPageSizeClamp(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want string
	}{
		{"above maximum", 250, "100"},
		{"at maximum", 100, "100"},
		{"in range", 37, "37"},
		{"at minimum", 1, "1"},
		{"below minimum", 0, "1"},
		{"negative", -5, "1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var captured url.Values
			client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
				captured = r.URL.Query()
				return okResponse(`{"status":"ok","totalResults":0,"articles":[]}`), nil
			})
			if _, err := client.Search(context.Background(), SearchQuery{Query: "x", PageSize: tc.in}); err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if got := captured.Get("pageSize"); got != tc.want {
				t.Fatalf("pageSize = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSearchHTTPStatusError(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusTooManyRequests,
			Body:       io.NopCloser(strings.NewReader("rate limited")),
			Header:     make(http.Header),
		}, nil
	})

	_, err := client.Search(context.Background(), SearchQuery{Query: "x"})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if apiErr.Kind != ErrorKindHTTP {
		t.Fatalf("Kind = %q, want %q", apiErr.Kind, ErrorKindHTTP)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("StatusCode = %d, want 429", apiErr.StatusCode)
	}
	if apiErr.Body != "rate limited" {
		t.Fatalf("Body = %q, want rate limited", apiErr.Body)
	}
}

func TestSearchTransportError(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := client.Search(context.Background(), SearchQuery{Query: "x"})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if apiErr.Kind != ErrorKindTransport {
		t.Fatalf("Kind = %q, want %q", apiErr.Kind, ErrorKindTransport)
	}
}

func TestSearchProviderError(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return okResponse(`{"status":"error","message":"apiKeyInvalid"}`), nil
	})

	_, err := client.Search(context.Background(), SearchQuery{Query: "x"})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if apiErr.Kind != ErrorKindProvider {
		t.Fatalf("Kind = %q, want %q", apiErr.Kind, ErrorKindProvider)
	}
	if apiErr.Message != "apiKeyInvalid" {
		t.Fatalf("Message = %q, want apiKeyInvalid", apiErr.Message)
	}
}

func TestSearchProviderErrorWithoutMessage(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return okResponse(`{"status":"error"}`), nil
	})

	_, err := client.Search(context.Background(), SearchQuery{Query: "x"})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if apiErr.Message != "unknown error" {
		t.Fatalf("Message = %q, want unknown error", apiErr.Message)
	}
}

func TestSearchMalformedPayloadIsNotAVariant(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return okResponse(`{not json`), nil
	})

	_, err := client.Search(context.Background(), SearchQuery{Query: "x"})
	if err == nil {
		t.Fatal("Search() error = nil, want non-nil")
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want plain error outside the closed variant set", err)
	}
}

func TestSearchDecodesArticles(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return okResponse(`{"status":"ok","totalResults":2,"articles":[
			{"title":"A","source":{"name":"S1"},"publishedAt":"2024-01-01T00:00:00Z"},
			{"title":"B","source":{"name":"S2"}}
		]}`), nil
	})

	result, err := client.Search(context.Background(), SearchQuery{Query: "x"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.TotalResults != 2 {
		t.Fatalf("TotalResults = %d, want 2", result.TotalResults)
	}
	if len(result.Articles) != 2 {
		t.Fatalf("len(Articles) = %d, want 2", len(result.Articles))
	}
	if result.Articles[0].Source.Name != "S1" {
		t.Fatalf("Articles[0].Source.Name = %q, want S1", result.Articles[0].Source.Name)
	}
	if result.Articles[1].PublishedAt != "" {
		t.Fatalf("Articles[1].PublishedAt = %q, want empty", result.Articles[1].PublishedAt)
	}
}

func TestHasAPIKey(t *testing.T) {
	withKey := NewClient(ClientConfig{APIKey: "k"})
	if !withKey.HasAPIKey() {
		t.Fatal("HasAPIKey() = false, want true")
	}
	withoutKey := NewClient(ClientConfig{APIKey: "   "})
	if withoutKey.HasAPIKey() {
		t.Fatal("HasAPIKey() = true, want false")
	}
}

func TestCheckReachable(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodHead {
			t.Fatalf("method = %s, want HEAD", r.Method)
		}
		// Unauthenticated HEAD likely gets 4xx; that still means reachable.
		return &http.Response{
			StatusCode: http.StatusUnauthorized,
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     make(http.Header),
		}, nil
	})
	if err := client.CheckReachable(context.Background()); err != nil {
		t.Fatalf("CheckReachable() error = %v", err)
	}

	down := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})
	if err := down.CheckReachable(context.Background()); err == nil {
		t.Fatal("CheckReachable() error = nil, want non-nil")
	}
}
