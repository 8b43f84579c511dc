package tool

import (
	"fmt"
	"strings"

	"github.com/meridianhq/newswire/newsapi"
)

const (
	separatorWidth = 80
	placeholder    = "N/A"
)

// renderReport formats a non-empty search result as one text report.
// Articles keep the provider's order; numbering starts at 1.
func renderReport(result newsapi.SearchResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Found: %d\n", result.TotalResults)
	fmt.Fprintf(&b, "Shown: %d\n\n", len(result.Articles))
	b.WriteString(strings.Repeat("=", separatorWidth))
	b.WriteString("\n\n")

	for i, article := range result.Articles {
		fmt.Fprintf(&b, "Article #%d\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", orPlaceholder(article.Title))
		fmt.Fprintf(&b, "Source: %s\n", orPlaceholder(article.Source.Name))
		if article.Author != "" {
			fmt.Fprintf(&b, "Author: %s\n", article.Author)
		}
		if article.PublishedAt != "" {
			fmt.Fprintf(&b, "Published: %s\n", article.PublishedAt)
		}
		if article.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", article.Description)
		}
		if article.URL != "" {
			fmt.Fprintf(&b, "URL: %s\n", article.URL)
		}
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", separatorWidth))
		b.WriteString("\n\n")
	}

	return b.String()
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
