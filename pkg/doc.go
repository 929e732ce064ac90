// Package pkg provides the libraries behind writeme, a README generator
// that reads what a project already says about itself.
//
// # Overview
//
// The pkg directory is organized by pipeline stage:
//
//  1. [registry] - Known config files and technology patterns (embedded YAML)
//  2. [walk] - Project file listing with .gitignore and exclude globs
//  3. [scanner] - Config, technology, git history and license detection
//  4. [convert] - Manifest converters (package.json, Cargo.toml, go.mod, ...)
//  5. [license] - License text classification and copyright extraction
//  6. [merge] - Field-by-field reconciliation of partial records
//  7. [readme] - README.md rendering
//  8. [pipeline] - Orchestration of all of the above
//
// Supporting packages: [metadata] (the shared record model), [cache] and
// [integrations] (cached GitHub API access), [observability] (hooks),
// [errors] (coded errors) and [buildinfo].
//
// # Architecture
//
// The typical data flow through writeme:
//
//	project directory
//	       ↓
//	  [walk] files ──→ [scanner] configs + techs
//	       ↓
//	  [convert] one partial record per config file
//	  [scanner] history record, license record
//	  [integrations/github] enrichment record (GitHub remotes)
//	       ↓
//	  [merge] one record, the user settles conflicts
//	       ↓
//	  [readme] README.md
//
// # Quick Start
//
//	reg, _ := registry.Default()
//	runner, _ := pipeline.NewRunner(reg, nil, logger)
//	result, _ := runner.Scan(ctx, pipeline.Options{Dir: "."})
//	_ = readme.Render(os.Stdout, readme.Document{
//	    Record:     result.Record,
//	    Techs:      result.Techs,
//	    Ecosystems: result.Ecosystems,
//	})
//
// [registry]: github.com/matzehuels/writeme/pkg/registry
// [walk]: github.com/matzehuels/writeme/pkg/walk
// [scanner]: github.com/matzehuels/writeme/pkg/scanner
// [convert]: github.com/matzehuels/writeme/pkg/convert
// [license]: github.com/matzehuels/writeme/pkg/license
// [merge]: github.com/matzehuels/writeme/pkg/merge
// [readme]: github.com/matzehuels/writeme/pkg/readme
// [pipeline]: github.com/matzehuels/writeme/pkg/pipeline
// [metadata]: github.com/matzehuels/writeme/pkg/metadata
// [cache]: github.com/matzehuels/writeme/pkg/cache
// [integrations]: github.com/matzehuels/writeme/pkg/integrations
// [integrations/github]: github.com/matzehuels/writeme/pkg/integrations/github
// [observability]: github.com/matzehuels/writeme/pkg/observability
// [errors]: github.com/matzehuels/writeme/pkg/errors
// [buildinfo]: github.com/matzehuels/writeme/pkg/buildinfo
package pkg
