package storage

import "keyword-crawler/pkg/models"

// RunStore archives completed crawls for later inspection. It is an output
// archive only: the crawl itself never reads from it, so runs stay stateless.
type RunStore interface {
	// SaveRun persists a completed crawl under its run ID.
	SaveRun(run *models.CrawlRun) error

	// GetRun retrieves a stored run by ID.
	// Returns utils.ErrRunNotFound when the ID is unknown.
	GetRun(id string) (*models.CrawlRun, error)

	// ListRuns returns summaries of all stored runs, newest first.
	ListRuns() ([]models.RunSummary, error)

	// Close cleanly closes the underlying database.
	Close() error
}
