package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// --- Sentinel Errors for Categorization ---
var (
	ErrSearchUnavailable = errors.New("search endpoint unavailable") // Fatal: aborts the whole run
	ErrRequestCreation   = errors.New("failed to create HTTP request")
	ErrParsing           = errors.New("parsing error")    // Wraps HTML/URL parsing errors
	ErrDatabase          = errors.New("database error")   // Wraps badger errors
	ErrFilesystem        = errors.New("filesystem error") // Wraps os errors
	ErrConfigValidation  = errors.New("configuration validation error")
	ErrRunNotFound       = errors.New("run not found in history store")
)

// DescribeFetchError turns a transport-level fetch failure into a short
// human-readable description for the text_preview field. Always returns a
// non-empty string.
func DescribeFetchError(err error) string {
	if err == nil {
		return "request failed"
	}
	return fmt.Sprintf("request failed (%s): %v", classifyFetchError(err), err)
}

// classifyFetchError maps a transport error to a failure label. Mirrors the
// categories the logger uses so previews and logs agree on the cause.
func classifyFetchError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "cancelled"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns lookup failure"
	}

	// Fall back to substring checks; wrapped url.Error messages are the
	// common case and carry no typed cause beyond this point.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return "timeout"
	case strings.Contains(msg, "connection refused"):
		return "connection refused"
	case strings.Contains(msg, "no such host"):
		return "dns lookup failure"
	case strings.Contains(msg, "tls") || strings.Contains(msg, "certificate"):
		return "tls failure"
	case strings.Contains(msg, "reset by peer"):
		return "connection reset"
	case strings.Contains(msg, "broken pipe"):
		return "broken pipe"
	}
	return "network error"
}
