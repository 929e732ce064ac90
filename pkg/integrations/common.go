package integrations

import (
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/writeme/pkg/errors"
)

const httpTimeout = 10 * time.Second

// DefaultCacheTTL is how long API responses stay cached when no TTL is given.
const DefaultCacheTTL = 24 * time.Hour

var (
	// ErrNotFound is returned when a resource doesn't exist upstream.
	ErrNotFound = errors.New(errors.ErrCodeNotFound, "resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New(errors.ErrCodeNetwork, "network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// URLEncode percent-encodes a string for use in URLs.
// This is a convenience wrapper around [url.QueryEscape].
func URLEncode(s string) string { return url.QueryEscape(s) }
