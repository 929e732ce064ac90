// Package github fetches repository data from the GitHub REST API to enrich
// scanned metadata.
//
// GitHub is the one platform whose contributor list is trusted over a local
// history walk, so when a project's origin remote points at github.com the
// pipeline asks this client instead:
//
//	client := github.NewClient(github.WithToken(token), github.WithCache(c, 24*time.Hour))
//	rec, err := client.FetchRecord(ctx, "matzehuels", "writeme", false)
//
// The record carries the repository description, the SPDX license id and
// the top contributors (bots removed), with Source "github:owner/repo".
//
// A personal access token is optional. Without one GitHub allows 60
// requests per hour.
package github
