package fetch

import (
	"context"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"keyword-crawler/pkg/models"
	"keyword-crawler/pkg/parse"
	"keyword-crawler/pkg/utils"
)

// PageFetcher retrieves the target URL of selected search results and attaches
// a PageContent to each. A failure on one URL is recorded in its PageContent
// and never aborts processing of the remaining URLs.
type PageFetcher struct {
	client       *http.Client
	limiter      *Limiter
	userAgent    string
	previewLimit int
	log          *logrus.Entry
}

// NewPageFetcher creates a PageFetcher sharing the crawl's HTTP client and
// rate limiter.
func NewPageFetcher(client *http.Client, limiter *Limiter, userAgent string, previewLimit int, log *logrus.Entry) *PageFetcher {
	return &PageFetcher{
		client:       client,
		limiter:      limiter,
		userAgent:    userAgent,
		previewLimit: previewLimit,
		log:          log,
	}
}

// FetchPages annotates the first min(maxPages, len(results)) entries with page
// content, in rank order, and returns the full slice. Entries beyond the cap
// pass through with Page left nil.
func (pf *PageFetcher) FetchPages(ctx context.Context, results []models.SearchResult, maxPages int) []models.SearchResult {
	count := maxPages
	if count > len(results) {
		count = len(results)
	}
	if count < 0 {
		count = 0
	}

	for i := 0; i < count; i++ {
		results[i].Page = pf.fetchOne(ctx, results[i].URL)

		if i < count-1 {
			pf.limiter.Wait(ctx)
		}
	}
	return results
}

// fetchOne retrieves a single URL and builds its PageContent. Transport-level
// failures (timeout, connection refused, DNS, TLS) and body read errors are
// recorded with the sentinel status 0; any protocol status code, including
// 4xx/5xx, counts as a completed fetch.
func (pf *PageFetcher) fetchOne(ctx context.Context, pageURL string) *models.PageContent {
	pageLog := pf.log.WithField("url", pageURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		pageLog.Warnf("Could not build page request: %v", err)
		return &models.PageContent{URL: pageURL, Status: 0, TextPreview: utils.DescribeFetchError(err)}
	}
	req.Header.Set("User-Agent", pf.userAgent)

	resp, err := pf.client.Do(req)
	if err != nil {
		pageLog.Warnf("Page fetch failed: %v", err)
		return &models.PageContent{URL: pageURL, Status: 0, TextPreview: utils.DescribeFetchError(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		pageLog.Warnf("Page body read failed: %v", err)
		return &models.PageContent{URL: pageURL, Status: 0, TextPreview: utils.DescribeFetchError(err)}
	}

	pageLog.WithFields(logrus.Fields{"status": resp.StatusCode, "bytes": len(body)}).Debug("Fetched page")
	return &models.PageContent{
		URL:         pageURL,
		Status:      resp.StatusCode,
		TextPreview: parse.ExtractTextPreview(string(body), pf.previewLimit),
	}
}
