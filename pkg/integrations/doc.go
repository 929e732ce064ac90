// Package integrations provides the shared HTTP client for hosting-platform
// APIs used to enrich scanned metadata.
//
// [Client] wraps net/http with:
//   - response caching through any [cache.Cache] backend, keyed by namespace
//   - retries with exponential backoff for network failures and 5xx responses
//   - rate-limit detection (429, or 403 with an exhausted quota)
//   - observability HTTP hooks on every request
//
// Platform clients live in subpackages; see [github].
//
// [cache.Cache]: github.com/matzehuels/writeme/pkg/cache.Cache
// [github]: github.com/matzehuels/writeme/pkg/integrations/github
package integrations
