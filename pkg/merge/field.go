package merge

import "github.com/matzehuels/writeme/pkg/metadata"

// Field is one candidate value for a record field. The implementations form
// a closed set: Scalar, ContributorList, RepositoryField and LicenseField.
type Field interface {
	// Present reports whether the source had an opinion on the field.
	Present() bool
	// Display is the text shown to the user when candidates conflict.
	// Candidates with equal Display are offered once.
	Display() string

	field()
}

// Scalar is an optional string field such as name or version.
type Scalar struct{ Value *string }

func (s Scalar) Present() bool   { return s.Value != nil }
func (s Scalar) Display() string { return metadata.Deref(s.Value) }
func (Scalar) field()            {}

// ContributorList is a ranked contributor list. An empty list counts as
// absent.
type ContributorList struct{ Value metadata.Contributors }

func (c ContributorList) Present() bool   { return len(c.Value) > 0 }
func (c ContributorList) Display() string { return c.Value.String() }
func (ContributorList) field()            {}

// RepositoryField is a source repository, displayed by URL.
type RepositoryField struct{ Value *metadata.Repository }

func (r RepositoryField) Present() bool { return r.Value != nil }
func (r RepositoryField) Display() string {
	if r.Value == nil {
		return ""
	}
	return r.Value.URL
}
func (RepositoryField) field() {}

// LicenseField is a classified license, displayed by its type and holder.
type LicenseField struct{ Value *metadata.License }

func (l LicenseField) Present() bool { return l.Value != nil }
func (l LicenseField) Display() string {
	if l.Value == nil {
		return ""
	}
	return l.Value.String()
}
func (LicenseField) field() {}
