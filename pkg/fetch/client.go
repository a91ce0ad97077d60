package fetch

import (
	"errors"
	"net"
	"net/http"

	"github.com/sirupsen/logrus"

	"keyword-crawler/pkg/config"
)

// NewClient creates the shared HTTP client for both crawl phases.
// The overall timeout is the per-request timeout from the crawl config; it is
// the only bound on how long a single network call may block.
func NewClient(cfg *config.AppConfig, log *logrus.Entry) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.HTTPClientSettings.DialerTimeout,
		KeepAlive: cfg.HTTPClientSettings.DialerKeepAlive,
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        cfg.HTTPClientSettings.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.HTTPClientSettings.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.HTTPClientSettings.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.HTTPClientSettings.TLSHandshakeTimeout,
	}

	client := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Default Go behavior is 10 redirects max
			if len(via) >= 10 {
				return errors.New("stopped after 10 redirects")
			}
			log.Debugf("Redirecting: %s -> %s (hop %d)", via[len(via)-1].URL, req.URL, len(via))
			return nil
		},
	}
	log.Debugf("HTTP client initialized (timeout %v)", cfg.Timeout)
	return client
}
