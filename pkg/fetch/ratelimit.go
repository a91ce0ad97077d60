package fetch

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Limiter enforces a minimum delay between consecutive outbound requests.
// The crawl issues requests on a single ordered stream, so a plain sleep is
// the whole contract; it holds no state beyond the configured delay.
type Limiter struct {
	delay time.Duration
	log   *logrus.Entry
}

// NewLimiter creates a Limiter with the given fixed delay. A zero or negative
// delay disables waiting.
func NewLimiter(delay time.Duration, log *logrus.Entry) *Limiter {
	return &Limiter{delay: delay, log: log}
}

// Wait blocks for the configured delay, or until the context is cancelled.
// Callers invoke it between requests within a phase, never before the first
// request and never after the last.
func (l *Limiter) Wait(ctx context.Context) {
	if l.delay <= 0 {
		return
	}
	l.log.WithField("delay", l.delay).Debug("Rate limit sleeping before next request")
	select {
	case <-time.After(l.delay):
	case <-ctx.Done():
		l.log.Debugf("Rate limit sleep interrupted: %v", ctx.Err())
	}
}
