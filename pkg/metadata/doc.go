// Package metadata defines the project metadata model shared by the
// scanners, the converters and the merger.
//
// # Records
//
// A [Record] is one partial extraction: a converted config file, the git
// history, the license file or a hosting-platform lookup. Every field is
// optional and absence means "this source had no opinion":
//
//	rec := metadata.Record{Source: "package.json"}
//	rec.Name = metadata.String("my-app")
//
// [Record.Source] carries provenance. It is set by whoever produced the
// record and the merger never overwrites it; a merged record has no
// provenance of its own.
//
// # Contributors
//
// [Contributor] identity is the exact (name, email) pair, case included.
// [RankContributors] aggregates commit authors by identity and orders them by
// commit count, breaking ties by first appearance:
//
//	ranked := metadata.RankContributors([]metadata.Contributor{alice, bob, alice})
//	// ranked: [alice, bob]
//
// # Repositories
//
// [ParseRepository] turns a git remote URL (https, ssh, scp-like or git://)
// into a [Repository] with an inferred [Platform] and project name.
package metadata
