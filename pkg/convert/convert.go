// Package convert turns ecosystem config files into partial metadata
// records.
//
// Each [Converter] handles one manifest format and fills only the fields
// that format declares. The record's Source is the converted file path:
//
//	conv, ok := convert.Detect("web/package.json")
//	if ok {
//	    rec, err := conv.Convert("web/package.json")
//	}
//
// Dependencies are returned sorted by name so that records converted from
// the same file compare equal.
package convert

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/matzehuels/writeme/pkg/errors"
	"github.com/matzehuels/writeme/pkg/metadata"
)

// Converter reads one manifest format.
type Converter interface {
	// Type returns the manifest type identifier (e.g. "package.json").
	Type() string

	// Supports reports whether this converter handles the given filename.
	// The filename is a basename, not a path.
	Supports(name string) bool

	// Convert reads the file at path. Read failures and malformed content
	// are errors with code [errors.ErrCodeInvalidManifest].
	Convert(path string) (*metadata.Record, error)
}

// All returns one instance of every converter.
func All() []Converter {
	return []Converter{
		&PackageJSON{},
		&CargoToml{},
		&PyProject{},
		&GoMod{},
		&ComposerJSON{},
		&POM{},
	}
}

// Detect returns the first converter that supports the basename of path.
// With no converters given it searches All.
func Detect(path string, converters ...Converter) (Converter, bool) {
	if len(converters) == 0 {
		converters = All()
	}
	name := filepath.Base(filepath.FromSlash(path))
	for _, c := range converters {
		if c.Supports(name) {
			return c, true
		}
	}
	return nil, false
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read %s", path)
	}
	return data, nil
}

func malformed(path string, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
}

// dependencies turns name to range maps into a sorted, deduplicated list.
// Earlier maps win when a name repeats.
func dependencies(skip func(name string) bool, tables ...map[string]string) []metadata.Dependency {
	seen := make(map[string]bool)
	var out []metadata.Dependency
	for _, table := range tables {
		for name, version := range table {
			if seen[name] || (skip != nil && skip(name)) {
				continue
			}
			seen[name] = true
			out = append(out, metadata.Dependency{Name: name, Version: strings.TrimSpace(version)})
		}
	}
	sortDependencies(out)
	return out
}

func sortDependencies(deps []metadata.Dependency) {
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
}

var person = regexp.MustCompile(`^\s*([^<(]*?)\s*(?:<([^>]*)>)?\s*(?:\(([^)]*)\))?\s*$`)

// parsePerson reads the "Name <email> (url)" shorthand used by npm and
// Cargo. Every part is optional except the name.
func parsePerson(s string) (metadata.Contributor, bool) {
	m := person.FindStringSubmatch(s)
	if m == nil || m[1] == "" {
		return metadata.Contributor{}, false
	}
	return metadata.Contributor{
		Name:  m[1],
		Email: strings.TrimSpace(m[2]),
		URL:   strings.TrimSpace(m[3]),
	}, true
}

// repository parses a declared repository URL. Unparsable values are
// dropped rather than failing the conversion.
func repository(raw string) *metadata.Repository {
	if raw == "" {
		return nil
	}
	r, err := metadata.ParseRepository(raw)
	if err != nil {
		return nil
	}
	return r
}

// license builds a manifest-declared license. Path stays empty: it names a
// license file, and a manifest is not one.
func license(spdx string) *metadata.License {
	spdx = strings.TrimSpace(spdx)
	if spdx == "" {
		return nil
	}
	return &metadata.License{Type: spdx}
}
