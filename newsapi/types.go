package newsapi

// Sort orders accepted by the /v2/everything endpoint.
const (
	SortByRelevancy   = "relevancy"
	SortByPopularity  = "popularity"
	SortByPublishedAt = "publishedAt"
)

// Source identifies the outlet that published an article.
type Source struct {
	Name string `json:"name"`
}

// Article is one search hit. Every field except Source.Name may be empty;
// rendering substitutes placeholders or omits lines accordingly.
type Article struct {
	Title       string `json:"title"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
	Source      Source `json:"source"`
}

// SearchResult is the decoded provider payload.
type SearchResult struct {
	Status       string    `json:"status"`
	Message      string    `json:"message,omitempty"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}
