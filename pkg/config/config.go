package config

import "time"

// AppConfig holds the crawl configuration. Values may come from an optional
// YAML file; command-line flags override individual fields afterwards.
type AppConfig struct {
	SearchEndpoint string        `yaml:"search_endpoint,omitempty"` // Paged HTML search endpoint (POST q + offset)
	UserAgent      string        `yaml:"user_agent,omitempty"`      // Identifying client header sent on every request
	MaxResults     int           `yaml:"max_results,omitempty"`     // Target number of search results to collect
	MaxPages       int           `yaml:"max_pages,omitempty"`       // Number of result URLs to fetch previews for
	Delay          time.Duration `yaml:"delay,omitempty"`           // Minimum delay between consecutive requests
	Timeout        time.Duration `yaml:"timeout,omitempty"`         // Per-request timeout (both phases)
	PreviewLimit   int           `yaml:"preview_limit,omitempty"`   // Max characters of normalized page text
	OutputPath     string        `yaml:"output,omitempty"`          // Destination JSON file
	StateDir       string        `yaml:"state_dir,omitempty"`       // Run history DB location; empty disables history

	HTTPClientSettings HTTPClientConfig `yaml:"http_client_settings,omitempty"`
}

// HTTPClientConfig holds transport settings for the shared HTTP client
type HTTPClientConfig struct {
	MaxIdleConns        int           `yaml:"max_idle_conns,omitempty"`          // Max total idle connections
	MaxIdleConnsPerHost int           `yaml:"max_idle_conns_per_host,omitempty"` // Max idle connections per host
	IdleConnTimeout     time.Duration `yaml:"idle_conn_timeout,omitempty"`       // Timeout for idle connections
	TLSHandshakeTimeout time.Duration `yaml:"tls_handshake_timeout,omitempty"`   // Timeout for TLS handshake
	DialerTimeout       time.Duration `yaml:"dialer_timeout,omitempty"`          // Connection dial timeout
	DialerKeepAlive     time.Duration `yaml:"dialer_keep_alive,omitempty"`       // TCP keep-alive interval
}

// Defaults matching the documented CLI interface.
const (
	DefaultSearchEndpoint = "https://duckduckgo.com/html/"
	DefaultUserAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	DefaultMaxResults     = 10
	DefaultMaxPages       = 3
	DefaultDelay          = 1 * time.Second
	DefaultTimeout        = 15 * time.Second
	DefaultPreviewLimit   = 400
	DefaultOutputPath     = "crawl_results.json"
)
