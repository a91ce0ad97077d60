package search

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"keyword-crawler/pkg/models"
)

// DuckDuckGo HTML endpoint result structure.
const (
	resultBlockSelector = "div.result__body"
	resultLinkSelector  = "a.result__a"
	snippetLinkSelector = "a.result__snippet"
	snippetDivSelector  = "div.result__snippet"
)

// ParseResults extracts structured search results from one results page, in
// document (rank) order. Blocks without a usable primary link (ads, promoted
// modules) are dropped silently; every returned result has a non-empty URL.
func ParseResults(doc *goquery.Document) []models.SearchResult {
	var parsed []models.SearchResult

	doc.Find(resultBlockSelector).Each(func(_ int, block *goquery.Selection) {
		link := block.Find(resultLinkSelector).First()
		if link.Length() == 0 {
			return
		}

		href, _ := link.Attr("href")
		if href == "" {
			return
		}

		snippet := block.Find(snippetLinkSelector).First()
		if snippet.Length() == 0 {
			snippet = block.Find(snippetDivSelector).First()
		}

		parsed = append(parsed, models.SearchResult{
			Title:   strings.TrimSpace(link.Text()),
			URL:     href,
			Snippet: strings.TrimSpace(snippet.Text()),
			Source:  hostOf(href),
		})
	})

	return parsed
}

// hostOf returns the authority component of rawURL, or "" when the URL has
// none (e.g. a relative path). The search endpoint is expected to return
// absolute URLs, so an empty source is an accepted limitation.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
