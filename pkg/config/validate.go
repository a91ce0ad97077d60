package config

import "time"

// Validate checks AppConfig fields and applies defaults for unset values.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
//
// MaxResults and MaxPages are never touched: a non-positive target
// legitimately means "collect nothing" and must not be silently bumped back
// to the default. The CLI layer supplies their defaults via flag values.
func (c *AppConfig) Validate() (warnings []string, err error) {
	if c.SearchEndpoint == "" {
		c.SearchEndpoint = DefaultSearchEndpoint
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Delay < 0 {
		warnings = append(warnings, "delay cannot be negative, setting to 0")
		c.Delay = 0
	}

	if c.Timeout < 0 {
		warnings = append(warnings, "timeout cannot be negative, using default")
		c.Timeout = 0
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}

	if c.PreviewLimit < 0 {
		warnings = append(warnings, "preview_limit cannot be negative, using default")
		c.PreviewLimit = 0
	}
	if c.PreviewLimit == 0 {
		c.PreviewLimit = DefaultPreviewLimit
	}

	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}

	c.validateHTTPClientSettings()

	return warnings, nil // AppConfig validation never fails fatally
}

// validateHTTPClientSettings applies defaults to HTTP client settings.
func (c *AppConfig) validateHTTPClientSettings() {
	h := &c.HTTPClientSettings
	if h.MaxIdleConns <= 0 {
		h.MaxIdleConns = 100
	}
	if h.MaxIdleConnsPerHost <= 0 {
		h.MaxIdleConnsPerHost = 2
	}
	if h.IdleConnTimeout <= 0 {
		h.IdleConnTimeout = 90 * time.Second
	}
	if h.TLSHandshakeTimeout <= 0 {
		h.TLSHandshakeTimeout = 10 * time.Second
	}
	if h.DialerTimeout <= 0 {
		h.DialerTimeout = 15 * time.Second
	}
	if h.DialerKeepAlive <= 0 {
		h.DialerKeepAlive = 30 * time.Second
	}
}
