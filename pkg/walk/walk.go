// Package walk lists the files of a project tree.
//
// [Files] returns slash-separated paths relative to the root, sorted, which
// is the shape the scanners expect. The .git directory is never entered,
// .gitignore files are honored at every level, and callers can exclude more
// with doublestar globs:
//
//	paths, err := walk.Files(dir, walk.Options{Exclude: []string{"vendor/**", "**/*.min.js"}})
package walk

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"

	"github.com/matzehuels/writeme/pkg/errors"
)

// DefaultMaxFiles bounds the walk when Options.MaxFiles is unset.
const DefaultMaxFiles = 20000

// ErrTooManyFiles is returned with the truncated listing when a tree holds
// more than MaxFiles files.
var ErrTooManyFiles = stderrors.New("too many files")

// Options configures Files.
type Options struct {
	// Exclude holds doublestar patterns matched against slash-separated
	// relative paths. A matching directory is skipped entirely.
	Exclude []string

	// MaxFiles caps the number of files returned. Zero means DefaultMaxFiles.
	MaxFiles int

	// NoGitignore disables .gitignore handling.
	NoGitignore bool
}

type ignoreRule struct {
	base    string
	matcher gitignore.GitIgnore
}

// Files walks root and returns its files. When the tree holds more than
// MaxFiles files, the files collected so far are returned together with
// ErrTooManyFiles.
func Files(root string, opts Options) ([]string, error) {
	for _, p := range opts.Exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid exclude pattern %q", p)
		}
		// Patterns match relative slash paths; anything else never matches.
		if err := errors.ValidatePath(p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "exclude pattern %q", p)
		}
	}
	limit := opts.MaxFiles
	if limit <= 0 {
		limit = DefaultMaxFiles
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "walk %s", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", root)
	}

	var (
		files []string
		rules []ignoreRule
	)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			rules = appendRule(rules, path, opts)
			return nil
		}
		slashed := filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == ".git" || excluded(opts.Exclude, slashed) || ignored(rules, path, true) {
				return filepath.SkipDir
			}
			rules = appendRule(rules, path, opts)
			return nil
		}

		if d.Name() == ".git" || !listable(path, d) {
			return nil
		}
		if excluded(opts.Exclude, slashed) || ignored(rules, path, false) {
			return nil
		}
		if len(files) >= limit {
			return ErrTooManyFiles
		}
		files = append(files, slashed)
		return nil
	})

	sort.Strings(files)
	if walkErr != nil {
		if stderrors.Is(walkErr, ErrTooManyFiles) {
			return files, ErrTooManyFiles
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, walkErr, "walk %s", root)
	}
	return files, nil
}

// listable reports whether a non-directory entry is a regular file or a
// symlink to one. Symlinked directories are not followed, and dangling
// links are dropped.
func listable(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	target, err := os.Stat(path)
	return err == nil && target.Mode().IsRegular()
}

// appendRule loads dir/.gitignore, if present.
func appendRule(rules []ignoreRule, dir string, opts Options) []ignoreRule {
	if opts.NoGitignore {
		return rules
	}
	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return rules
	}
	m := gitignore.New(bytes.NewReader(data), dir, nil)
	return append(rules, ignoreRule{base: dir, matcher: m})
}

func ignored(rules []ignoreRule, path string, isDir bool) bool {
	for _, r := range rules {
		rel, err := filepath.Rel(r.base, path)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		if match := r.matcher.Relative(rel, isDir); match != nil && match.Ignore() {
			return true
		}
	}
	return false
}

func excluded(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
