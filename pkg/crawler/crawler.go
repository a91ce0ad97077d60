package crawler

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"keyword-crawler/pkg/config"
	"keyword-crawler/pkg/fetch"
	"keyword-crawler/pkg/models"
	"keyword-crawler/pkg/search"
)

// Crawler composes the two crawl phases: paginated result harvesting and
// per-result page fetching. One HTTP client and one rate limiter are shared
// by both phases; all network traffic is issued on a single ordered stream.
type Crawler struct {
	cfg       *config.AppConfig
	log       *logrus.Entry
	client    *http.Client
	paginator *search.Paginator
	fetcher   *fetch.PageFetcher
}

// New wires a Crawler from a validated config.
func New(cfg *config.AppConfig, log *logrus.Entry) *Crawler {
	client := fetch.NewClient(cfg, log)
	limiter := fetch.NewLimiter(cfg.Delay, log)

	return &Crawler{
		cfg:       cfg,
		log:       log,
		client:    client,
		paginator: search.NewPaginator(client, cfg.SearchEndpoint, cfg.UserAgent, limiter, log),
		fetcher:   fetch.NewPageFetcher(client, limiter, cfg.UserAgent, cfg.PreviewLimit, log),
	}
}

// Run executes a single bounded crawl for keyword: pagination runs fully to
// completion before any page fetch begins, then the first MaxPages results
// are annotated with page content. The returned slice preserves rank order.
// Only a pagination failure is fatal; per-URL fetch failures are recorded in
// the affected result and never abort the batch.
func (c *Crawler) Run(ctx context.Context, keyword string) ([]models.SearchResult, error) {
	c.log.WithFields(logrus.Fields{
		"keyword": keyword, "max_results": c.cfg.MaxResults, "max_pages": c.cfg.MaxPages,
	}).Info("Starting crawl")

	results, err := c.paginator.Collect(ctx, keyword, c.cfg.MaxResults)
	if err != nil {
		return nil, err
	}
	c.log.Infof("Collected %d search results", len(results))

	results = c.fetcher.FetchPages(ctx, results, c.cfg.MaxPages)

	fetched := 0
	for i := range results {
		if results[i].Page != nil {
			fetched++
		}
	}
	c.log.Infof("Crawl complete: %d results, %d pages fetched", len(results), fetched)
	return results, nil
}
