package errors

import (
	"strings"
	"unicode"
)

// ValidateConfigFilename validates a canonical config filename from the
// registry's ecosystem table. Entries are bare filenames that the config
// scanner anchors to the end of a project path, so separators and control
// characters indicate a broken table.
func ValidateConfigFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidRegistry, "config filename cannot be empty")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRegistry, "config filename %q contains control characters", name)
		}
	}

	if strings.ContainsAny(name, "\\") {
		return New(ErrCodeInvalidRegistry, "config filename %q cannot contain backslashes", name)
	}

	return nil
}

// ValidateTechName validates a technology key from the registry's technology table.
func ValidateTechName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidRegistry, "technology name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidRegistry, "technology name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRegistry, "technology name %q contains control characters", name)
		}
	}
	return nil
}

// ValidatePath validates a file path within a project tree.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
