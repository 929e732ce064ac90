package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/writeme/pkg/convert"
	"github.com/matzehuels/writeme/pkg/errors"
	"github.com/matzehuels/writeme/pkg/integrations/github"
	"github.com/matzehuels/writeme/pkg/merge"
	"github.com/matzehuels/writeme/pkg/metadata"
	"github.com/matzehuels/writeme/pkg/observability"
	"github.com/matzehuels/writeme/pkg/registry"
	"github.com/matzehuels/writeme/pkg/scanner"
	"github.com/matzehuels/writeme/pkg/walk"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for its scanner, GitHub client and logger;
// it doesn't store results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Registry *registry.Registry
	Scanner  *scanner.Scanner
	GitHub   *github.Client // nil disables enrichment
	Logger   *log.Logger
}

// NewRunner compiles reg into a scanner and returns a runner using it.
// If logger is nil, log.Default() is used.
func NewRunner(reg *registry.Registry, gh *github.Client, logger *log.Logger) (*Runner, error) {
	if logger == nil {
		logger = log.Default()
	}
	sc, err := scanner.New(reg, scanner.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &Runner{
		Registry: reg,
		Scanner:  sc,
		GitHub:   gh,
		Logger:   logger,
	}, nil
}

// Execute scans opts.Dir and merges everything found into one record.
// Only an invalid directory or a failed walk is an error; later stages
// degrade to warnings.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	result := &Result{Stats: Stats{Durations: make(map[string]time.Duration)}}
	run := func(stage string, fn func() (int, error)) error {
		return r.stage(ctx, result, stage, fn)
	}

	// Stage 1: Walk
	var files []string
	err := run(StageWalk, func() (int, error) {
		var err error
		files, err = walk.Files(opts.Dir, opts.walkOptions())
		if stderrors.Is(err, walk.ErrTooManyFiles) {
			logger.Warn("project has too many files, scanning the first ones only", "limit", opts.MaxFiles)
			result.Stats.Truncated = true
			err = nil
		}
		return len(files), err
	})
	if err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}
	result.Stats.Files = len(files)

	// Stage 2: Configs
	_ = run(StageConfigs, func() (int, error) {
		result.Configs = r.Scanner.ScanConfigs(files)
		result.Ecosystems = r.ecosystems(result.Configs)
		return len(result.Configs), nil
	})

	// Stage 3: Convert
	var records []metadata.Record
	var deps []metadata.Dependency
	_ = run(StageConvert, func() (int, error) {
		for _, cfg := range result.Configs {
			rec, ok := r.convert(opts.Dir, cfg, logger)
			if !ok {
				continue
			}
			result.Stats.InvalidRanges += checkRanges(cfg, rec, logger)
			records = append(records, *rec)
			deps = append(deps, rec.Dependencies...)
		}
		return len(records), nil
	})

	// Stage 4: Techs
	_ = run(StageTechs, func() (int, error) {
		result.Techs = r.union(r.Scanner.ScanTechs(files), r.Scanner.ScanDependencies(deps))
		return len(result.Techs), nil
	})

	// Stage 5: History
	var history *metadata.Record
	_ = run(StageHistory, func() (int, error) {
		history = r.Scanner.ScanHistory(ctx, opts.Dir)
		records = append(records, *history)
		return len(history.Contributors), nil
	})

	// Stage 6: License
	_ = run(StageLicense, func() (int, error) {
		rec, err := r.Scanner.ScanLicense(opts.Dir)
		if err != nil {
			if errors.Is(err, errors.ErrCodeLicenseNotFound) {
				logger.Warn("no license file found", "dir", opts.Dir)
			} else {
				logger.Warn("could not read license", "err", err)
			}
			return 0, nil
		}
		records = append(records, *rec)
		return 1, nil
	})

	// Stage 7: GitHub
	if owner, name, ok := r.githubTarget(opts, history); ok {
		_ = run(StageGitHub, func() (int, error) {
			rec, err := r.GitHub.FetchRecord(ctx, owner, name, opts.Refresh)
			if err != nil {
				logger.Warn("could not fetch GitHub metadata", "repo", owner+"/"+name, "err", err)
				return 0, nil
			}
			if history == nil || history.Repository == nil {
				rec.Repository, _ = metadata.ParseRepository("https://github.com/" + owner + "/" + name)
			}
			records = append(records, *rec)
			return len(rec.Contributors), nil
		})
	}

	// Stage 8: Merge
	_ = run(StageMerge, func() (int, error) {
		chooser := &countingChooser{Chooser: opts.Chooser}
		result.Record = merge.New(chooser).MergeContext(ctx, records)
		result.Stats.Conflicts = chooser.count
		return chooser.count, nil
	})

	result.Sources = records
	result.Stats.Records = len(records)

	logger.Info("scanned project",
		"files", result.Stats.Files,
		"configs", len(result.Configs),
		"techs", len(result.Techs),
		"records", result.Stats.Records,
		"duration", result.Stats.Total())

	return result, nil
}

// Scan runs the pipeline without prompting: every conflict resolves to its
// first candidate.
func (r *Runner) Scan(ctx context.Context, opts Options) (*Result, error) {
	opts.Chooser = merge.First
	return r.Execute(ctx, opts)
}

func (r *Runner) stage(ctx context.Context, result *Result, name string, fn func() (int, error)) error {
	hooks := observability.Scan()
	hooks.OnStageStart(ctx, name)
	start := time.Now()

	found, err := fn()

	d := time.Since(start)
	result.Stats.Durations[name] = d
	hooks.OnStageComplete(ctx, name, found, d, err)
	r.Logger.Debug("stage complete", "stage", name, "found", found, "duration", d)
	return err
}

// convert reads one config file. Unsupported and malformed files are
// logged and skipped.
func (r *Runner) convert(dir, rel string, logger *log.Logger) (*metadata.Record, bool) {
	c, ok := convert.Detect(rel)
	if !ok {
		logger.Debug("no converter for config file", "file", rel)
		return nil, false
	}
	rec, err := c.Convert(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		logger.Warn("could not read config file", "file", rel, "err", err)
		return nil, false
	}
	rec.Source = rel
	return rec, true
}

// semverManifests are the config files whose dependency versions are
// semver ranges. Other ecosystems use their own range syntax.
var semverManifests = map[string]bool{
	"package.json":  true,
	"Cargo.toml":    true,
	"composer.json": true,
}

// checkRanges warns about declared ranges that are not valid semver
// constraints and returns how many it found.
func checkRanges(rel string, rec *metadata.Record, logger *log.Logger) int {
	if !semverManifests[path.Base(rel)] {
		return 0
	}
	invalid := 0
	for _, d := range rec.Dependencies {
		if _, err := d.Constraint(); err != nil {
			logger.Warn("invalid version range", "file", rel, "dependency", d.Name, "range", d.Version)
			invalid++
		}
	}
	return invalid
}

func (r *Runner) ecosystems(configs []string) []string {
	if r.Registry == nil {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, cfg := range configs {
		eco, ok := r.Registry.EcosystemOf(filepath.Base(filepath.FromSlash(cfg)))
		if !ok || seen[eco] {
			continue
		}
		seen[eco] = true
		out = append(out, eco)
	}
	return out
}

// githubTarget picks the GitHub project to enrich from: Options.GitHubRepo
// when set, otherwise a GitHub origin remote.
func (r *Runner) githubTarget(opts Options, history *metadata.Record) (owner, name string, ok bool) {
	if opts.Offline || r.GitHub == nil {
		return "", "", false
	}
	if opts.ghOwner != "" {
		return opts.ghOwner, opts.ghName, true
	}
	if history == nil || history.Repository == nil || history.Repository.Platform != metadata.PlatformGitHub {
		return "", "", false
	}
	return history.Repository.Owner, history.Repository.Name, true
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// union combines detections, keeping the scanner's evaluation order.
func (r *Runner) union(lists ...[]string) []string {
	found := make(map[string]bool)
	for _, l := range lists {
		for _, name := range l {
			found[name] = true
		}
	}
	var out []string
	for _, name := range r.Scanner.Evaluated() {
		if found[name] {
			out = append(out, name)
		}
	}
	return out
}

type countingChooser struct {
	merge.Chooser
	count int
}

func (c *countingChooser) Choose(label string, items []string) (int, error) {
	c.count++
	return c.Chooser.Choose(label, items)
}
