package metadata

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Record is a partial view of a project's metadata produced by one source.
// Nil fields mean the source had no opinion on them.
type Record struct {
	Name         *string
	Description  *string
	Version      *string
	Contributors Contributors
	Repository   *Repository
	License      *License
	Dependencies []Dependency

	// Source identifies the config file (or other origin) that produced
	// this record. Empty for synthesized records.
	Source string
}

// NewRecord returns an empty record attributed to source.
func NewRecord(source string) *Record {
	return &Record{Source: source}
}

// IsEmpty reports whether the record carries no metadata besides its source.
func (r *Record) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Version == nil &&
		r.Contributors == nil && r.Repository == nil && r.License == nil &&
		r.Dependencies == nil
}

// String returns a pointer to s, or nil when s is blank. Converters use it so
// an empty manifest field reads as "no opinion" rather than an empty value.
func String(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the value behind p, or "" when p is nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Dependency is one declared dependency of the project.
type Dependency struct {
	Name    string // Package name as declared
	Version string // Declared version range, if any
}

// Constraint parses the declared version range. It returns (nil, nil) when
// no range was declared or the declaration is a source rather than a range
// ("workspace:*", "file:../lib", "github:user/repo").
func (d Dependency) Constraint() (*semver.Constraints, error) {
	v := strings.TrimSpace(d.Version)
	if v == "" || v == "*" || v == "latest" || strings.ContainsAny(v, ":/") {
		return nil, nil
	}
	c, err := semver.NewConstraint(v)
	if err != nil {
		return nil, fmt.Errorf("dependency %s: invalid version range %q: %w", d.Name, d.Version, err)
	}
	return c, nil
}

// String implements fmt.Stringer.
func (d Dependency) String() string {
	if d.Version == "" {
		return d.Name
	}
	return d.Name + "@" + d.Version
}

// License is the classified content of a license file.
type License struct {
	Type   string // SPDX identifier, or LicenseUnknown
	Path   string // License file it was read from; empty when declared in a manifest
	Year   string // Copyright year(s), if found
	Holder string // Copyright holder, if found
}

// LicenseUnknown is the Type of a license file whose text was not recognized.
const LicenseUnknown = "Unknown"

// String implements fmt.Stringer.
func (l License) String() string {
	if l.Holder == "" {
		return l.Type
	}
	if l.Year == "" {
		return fmt.Sprintf("%s © %s", l.Type, l.Holder)
	}
	return fmt.Sprintf("%s © %s %s", l.Type, l.Year, l.Holder)
}
