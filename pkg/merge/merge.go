// Package merge reconciles partial metadata records into one.
//
// Each field is resolved on its own with the same policy: values absent from
// a record are ignored, a single present value is taken as is, and two or
// more present values (even identical ones) are put to a [Chooser]. When no
// choice can be obtained the first candidate wins, so Merge never fails.
//
//	m := merge.New(prompt)
//	final := m.Merge([]metadata.Record{*pkgJSON, *cargo, *history})
//
// Dependencies are not prompted for: they are unioned in input order and
// deduplicated by name.
package merge

import (
	"context"

	"github.com/matzehuels/writeme/pkg/metadata"
	"github.com/matzehuels/writeme/pkg/observability"
)

// Chooser asks the user to pick one of items. label names the field in
// conflict. It returns a 0-based index into items.
type Chooser interface {
	Choose(label string, items []string) (int, error)
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(label string, items []string) (int, error)

// Choose calls f(label, items).
func (f ChooserFunc) Choose(label string, items []string) (int, error) {
	return f(label, items)
}

// First is a Chooser that always picks the first candidate.
var First Chooser = ChooserFunc(func(string, []string) (int, error) { return 0, nil })

// Merger merges records. A nil chooser behaves like First.
type Merger struct {
	chooser Chooser
}

// New returns a Merger that resolves conflicts with chooser.
func New(chooser Chooser) *Merger {
	return &Merger{chooser: chooser}
}

// Merge combines records into one. The result has no Source.
func (m *Merger) Merge(records []metadata.Record) metadata.Record {
	return m.MergeContext(context.Background(), records)
}

// MergeContext is Merge with a context for observability hooks.
func (m *Merger) MergeContext(ctx context.Context, records []metadata.Record) metadata.Record {
	var out metadata.Record

	out.Name = m.scalar(ctx, "name", records, func(r metadata.Record) *string { return r.Name })
	out.Description = m.scalar(ctx, "description", records, func(r metadata.Record) *string { return r.Description })
	out.Version = m.scalar(ctx, "version", records, func(r metadata.Record) *string { return r.Version })

	if f, ok := resolve(ctx, m.chooser, "contributors", collect(records, func(r metadata.Record) ContributorList {
		return ContributorList{r.Contributors}
	})); ok {
		out.Contributors = f.Value
	}
	if f, ok := resolve(ctx, m.chooser, "repository", collect(records, func(r metadata.Record) RepositoryField {
		return RepositoryField{r.Repository}
	})); ok {
		out.Repository = f.Value
	}
	if f, ok := resolve(ctx, m.chooser, "license", collect(records, func(r metadata.Record) LicenseField {
		return LicenseField{r.License}
	})); ok {
		out.License = f.Value
	}

	out.Dependencies = unionDependencies(records)
	return out
}

func (m *Merger) scalar(ctx context.Context, label string, records []metadata.Record, get func(metadata.Record) *string) *string {
	f, ok := resolve(ctx, m.chooser, label, collect(records, func(r metadata.Record) Scalar {
		return Scalar{get(r)}
	}))
	if !ok {
		return nil
	}
	return f.Value
}

func collect[F Field](records []metadata.Record, get func(metadata.Record) F) []F {
	out := make([]F, len(records))
	for i, r := range records {
		out[i] = get(r)
	}
	return out
}

// resolve picks one present value out of values. ok is false when none is
// present.
func resolve[F Field](ctx context.Context, chooser Chooser, label string, values []F) (chosen F, ok bool) {
	var present []F
	for _, v := range values {
		if v.Present() {
			present = append(present, v)
		}
	}

	switch len(present) {
	case 0:
		return chosen, false
	case 1:
		return present[0], true
	}

	observability.Scan().OnConflict(ctx, label, len(present))

	// Offer each display once; remember the first candidate behind it.
	var items []string
	var first []int
	seen := make(map[string]bool)
	for i, v := range present {
		d := v.Display()
		if seen[d] {
			continue
		}
		seen[d] = true
		items = append(items, d)
		first = append(first, i)
	}

	idx := 0
	if chooser != nil {
		if i, err := chooser.Choose(label, items); err == nil && i >= 0 && i < len(items) {
			idx = i
		}
	}
	return present[first[idx]], true
}

func unionDependencies(records []metadata.Record) []metadata.Dependency {
	var out []metadata.Dependency
	seen := make(map[string]bool)
	for _, r := range records {
		for _, d := range r.Dependencies {
			if seen[d.Name] {
				continue
			}
			seen[d.Name] = true
			out = append(out, d)
		}
	}
	return out
}
