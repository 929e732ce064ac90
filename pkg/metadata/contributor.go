package metadata

import (
	"sort"
	"strings"
)

// Contributor is a person credited in the README.
type Contributor struct {
	Name  string
	Email string
	URL   string
}

// ContributorKey is the identity used to aggregate contributors. Both parts
// are compared exactly, case included.
type ContributorKey struct {
	Name  string
	Email string
}

// Key returns the contributor's identity.
func (c Contributor) Key() ContributorKey {
	return ContributorKey{Name: c.Name, Email: c.Email}
}

// String implements fmt.Stringer.
func (c Contributor) String() string {
	switch {
	case c.Email != "":
		return c.Name + " <" + c.Email + ">"
	case c.URL != "":
		return c.Name + " (" + c.URL + ")"
	default:
		return c.Name
	}
}

// Contributors is an ordered list of contributors, most active first.
type Contributors []Contributor

// String joins the contributors for display in prompts.
func (cs Contributors) String() string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}

// RankContributors aggregates one entry per commit into a ranked list:
// descending by commit count, ties broken by first appearance in commits.
// The URL of the first occurrence of each identity is kept.
func RankContributors(commits []Contributor) Contributors {
	if len(commits) == 0 {
		return nil
	}

	type tally struct {
		contributor Contributor
		count       int
	}

	index := make(map[ContributorKey]*tally)
	var order []*tally
	for _, c := range commits {
		t, ok := index[c.Key()]
		if !ok {
			t = &tally{contributor: c}
			index[c.Key()] = t
			order = append(order, t)
		}
		t.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})

	ranked := make(Contributors, len(order))
	for i, t := range order {
		ranked[i] = t.contributor
	}
	return ranked
}
