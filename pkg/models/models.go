package models

import "time"

// PageContent is the outcome of fetching a single result's URL.
// A transport-level failure (timeout, connection refused, DNS, TLS) is
// recorded with Status 0 and a human-readable description in TextPreview;
// any other Status is the protocol status code the server returned.
type PageContent struct {
	URL         string `json:"url"`
	Status      int    `json:"status"`
	TextPreview string `json:"text_preview"`
}

// SearchResult is one discovered link from a search results page.
// Page stays nil until the result is selected for fetching; it is set at
// most once. The JSON field names are a compatibility contract with
// downstream consumers of the output file.
type SearchResult struct {
	Title   string       `json:"title"`
	URL     string       `json:"url"`
	Snippet string       `json:"snippet"`
	Source  string       `json:"source"`
	Page    *PageContent `json:"page"`
}

// CrawlRun is one completed crawl as persisted in the run history store.
type CrawlRun struct {
	ID        string         `json:"id"`
	Keyword   string         `json:"keyword"`
	CreatedAt time.Time      `json:"created_at"`
	Results   []SearchResult `json:"results"`
}

// RunSummary is the listing view of a stored run (results omitted).
type RunSummary struct {
	ID          string    `json:"id"`
	Keyword     string    `json:"keyword"`
	CreatedAt   time.Time `json:"created_at"`
	ResultCount int       `json:"result_count"`
}
