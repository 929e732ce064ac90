package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HTTPKey builds the cache key for an HTTP response: "http:<namespace>:<key>".
func HTTPKey(namespace, key string) string {
	return "http:" + strings.TrimSuffix(namespace, ":") + ":" + key
}
