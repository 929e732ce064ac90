// Package pipeline runs the complete detection and reconciliation pipeline
// for writeme.
//
// # Architecture
//
// A run over a project directory goes through these stages:
//
//  1. Walk: list the project's files, honoring .gitignore and excludes
//  2. Configs: pick out known config files by name
//  3. Convert: read each config file into a partial record
//  4. Techs: detect technologies from paths and declared dependencies
//  5. History: read the origin remote and rank commit authors
//  6. License: classify the license file
//  7. GitHub: fetch contributors for GitHub-hosted projects (online only)
//  8. Merge: reconcile the partial records into one
//
// Stages after Walk never fail the run: a broken manifest or a missing
// license is logged and the remaining sources are used.
//
// # Usage
//
//	runner, err := pipeline.NewRunner(reg, gh, logger)
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, pipeline.Options{Dir: ".", Chooser: prompt})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(metadata.Deref(result.Record.Name), result.Techs)
package pipeline

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/writeme/pkg/errors"
	"github.com/matzehuels/writeme/pkg/integrations/github"
	"github.com/matzehuels/writeme/pkg/merge"
	"github.com/matzehuels/writeme/pkg/metadata"
	"github.com/matzehuels/writeme/pkg/walk"
)

// Stage names reported to observability hooks.
const (
	StageWalk    = "walk"
	StageConfigs = "configs"
	StageConvert = "convert"
	StageTechs   = "techs"
	StageHistory = "history"
	StageLicense = "license"
	StageGitHub  = "github"
	StageMerge   = "merge"
)

// Options configures a pipeline run.
type Options struct {
	// Dir is the project root. Empty means the working directory.
	Dir string

	// Exclude holds doublestar patterns for paths to skip.
	Exclude []string

	// MaxFiles bounds the walk. Zero means walk.DefaultMaxFiles.
	MaxFiles int

	// NoGitignore disables .gitignore handling during the walk.
	NoGitignore bool

	// Offline skips network enrichment.
	Offline bool

	// Refresh bypasses cached API responses.
	Refresh bool

	// GitHubRepo names the GitHub project to enrich from as "owner/repo".
	// Empty means the one the origin remote points at, if any.
	GitHubRepo string

	// Chooser resolves field conflicts. Nil picks the first candidate.
	Chooser merge.Chooser

	// Logger receives progress and warnings. Nil uses the runner's logger.
	Logger *log.Logger

	validated bool
	ghOwner   string
	ghName    string
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Record is the merged metadata.
	Record metadata.Record

	// Techs are the detected technologies in sorted order.
	Techs []string

	// Configs are the config files found, as slash paths relative to Dir.
	Configs []string

	// Ecosystems are the distinct ecosystems of Configs in first-seen order.
	Ecosystems []string

	// Sources are the partial records that went into the merge.
	Sources []metadata.Record

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Files     int
	Truncated bool // Walk stopped at MaxFiles
	Records   int
	Conflicts int

	// InvalidRanges counts declared dependency ranges in semver manifests
	// that do not parse.
	InvalidRanges int

	Durations map[string]time.Duration
}

// Total returns the summed duration of all stages.
func (s Stats) Total() time.Duration {
	var total time.Duration
	for _, d := range s.Durations {
		total += d
	}
	return total
}

// ValidateAndSetDefaults checks Dir and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Dir == "" {
		o.Dir = "."
	}
	info, err := os.Stat(o.Dir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "project directory %s", o.Dir)
	}
	if !info.IsDir() {
		return errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", o.Dir)
	}
	if o.GitHubRepo != "" {
		owner, name, err := github.ParseRepoRef(o.GitHubRepo)
		if err != nil {
			return err
		}
		o.ghOwner, o.ghName = owner, name
	}
	if o.MaxFiles == 0 {
		o.MaxFiles = walk.DefaultMaxFiles
	}
	if o.Chooser == nil {
		o.Chooser = merge.First
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

func (o *Options) walkOptions() walk.Options {
	return walk.Options{
		Exclude:     o.Exclude,
		MaxFiles:    o.MaxFiles,
		NoGitignore: o.NoGitignore,
	}
}
