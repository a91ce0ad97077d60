package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"keyword-crawler/pkg/fetch"
	"keyword-crawler/pkg/models"
	"keyword-crawler/pkg/utils"
)

// Paginator drives successive paged queries against the search endpoint until
// enough results are collected or a page comes back empty. It shares the
// crawl's HTTP client and rate limiter with the page-fetch phase.
type Paginator struct {
	client    *http.Client
	endpoint  string
	userAgent string
	limiter   *fetch.Limiter
	log       *logrus.Entry
}

// NewPaginator creates a Paginator for the given search endpoint.
func NewPaginator(client *http.Client, endpoint, userAgent string, limiter *fetch.Limiter, log *logrus.Entry) *Paginator {
	return &Paginator{
		client:    client,
		endpoint:  endpoint,
		userAgent: userAgent,
		limiter:   limiter,
		log:       log,
	}
}

// Collect gathers up to maxResults search results for keyword, in rank order.
// A non-positive maxResults returns an empty slice without any network call.
// An unreachable endpoint or non-2xx response is fatal: without a results
// page there is nothing to build on, so the error wraps
// utils.ErrSearchUnavailable and is not retried. An empty page simply ends
// pagination; it may legitimately mean no more results exist.
//
// The offset sent upstream advances by the number of results parsed from
// each page, not the number kept, so a follow-up request never re-scans
// results already seen even when the accumulation cap dropped some.
// Duplicate URLs across pages are passed through as-is.
func (p *Paginator) Collect(ctx context.Context, keyword string, maxResults int) ([]models.SearchResult, error) {
	var results []models.SearchResult
	offset := 0
	first := true

	for len(results) < maxResults {
		if !first {
			p.limiter.Wait(ctx)
		}
		first = false

		page, err := p.requestPage(ctx, keyword, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			p.log.WithField("offset", offset).Debug("Empty results page, stopping pagination")
			break
		}

		for _, result := range page {
			results = append(results, result)
			if len(results) >= maxResults {
				break
			}
		}
		offset += len(page)

		p.log.WithFields(logrus.Fields{
			"page_results": len(page), "collected": len(results), "next_offset": offset,
		}).Debug("Results page consumed")
	}

	return results, nil
}

// requestPage issues one paged query and parses the response body into
// result records.
func (p *Paginator) requestPage(ctx context.Context, keyword string, offset int) ([]models.SearchResult, error) {
	form := url.Values{}
	form.Set("q", keyword)
	form.Set("s", strconv.Itoa(offset))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrRequestCreation, err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s: %w", utils.ErrSearchUnavailable, p.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned status %d", utils.ErrSearchUnavailable, p.endpoint, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: results page HTML: %w", utils.ErrParsing, err)
	}

	return ParseResults(doc), nil
}
