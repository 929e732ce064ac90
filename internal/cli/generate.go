package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/writeme/pkg/pipeline"
	"github.com/matzehuels/writeme/pkg/readme"
)

// scanFlags holds the flags shared by generate and scan.
type scanFlags struct {
	exclude     []string
	maxFiles    int
	noGitignore bool
	refresh     bool
	github      string
	config      configFlags
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "glob patterns to skip, e.g. 'vendor/**' (repeatable)")
	cmd.Flags().IntVar(&f.maxFiles, "max-files", 0, "stop walking after this many files (default 20000)")
	cmd.Flags().BoolVar(&f.noGitignore, "no-gitignore", false, "scan files matched by .gitignore")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass cached GitHub responses")
	cmd.Flags().StringVar(&f.github, "github", "", "GitHub project to enrich from as owner/repo (default: the origin remote)")
	f.config.register(cmd)
}

func (f *scanFlags) options(dir string, cfg Config) pipeline.Options {
	return pipeline.Options{
		Dir:         dir,
		Exclude:     f.exclude,
		MaxFiles:    f.maxFiles,
		NoGitignore: f.noGitignore,
		Offline:     cfg.Offline,
		Refresh:     f.refresh,
		GitHubRepo:  f.github,
	}
}

// generateCommand creates the generate command, the main entry point.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags  scanFlags
		output string
		force  bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "Scan a project and write its README",
		Long: `Scan a project directory and write a README.md for it.

Config files, technologies, git history, the license file and (for GitHub
projects) the GitHub API are combined into one record. When sources disagree
on a field you are asked which value to keep.`,
		Example: `  writeme generate
  writeme generate ./myproject -o docs/README.md
  writeme generate --yes --offline`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			cfg, err := flags.config.resolve(cmd)
			if err != nil {
				return err
			}
			dest := output
			if dest == "" {
				dest = filepath.Join(dir, readme.DefaultFilename)
			}
			return c.runGenerate(cmd.Context(), dir, dest, force, yes, cfg, &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or directory (default <dir>/README.md)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing README")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "never prompt; keep the first candidate for each field")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, dir, dest string, force, yes bool, cfg Config, flags *scanFlags) error {
	if !force {
		if err := checkDestination(dest); err != nil {
			return err
		}
	}

	printGreeting(c.Out)

	runner, cleanup, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := flags.options(dir, cfg)
	opts.Chooser = c.chooser(yes, cancel)

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return context.Canceled
	}
	prog.done("Scanned project")

	path, err := readme.Write(dest, readme.Document{
		Record:     result.Record,
		Techs:      result.Techs,
		Ecosystems: result.Ecosystems,
	}, force)
	if err != nil {
		if stderrors.Is(err, readme.ErrExists) {
			return fmt.Errorf("%s exists; use --force to overwrite", path)
		}
		return err
	}

	fmt.Fprintln(c.Out)
	printFile(c.Out, path)
	printBye(c.Out)
	return nil
}

// checkDestination fails early, before any prompt, when the README exists.
func checkDestination(dest string) error {
	info, err := os.Stat(dest)
	if err != nil {
		return nil
	}
	if info.IsDir() {
		return checkDestination(filepath.Join(dest, readme.DefaultFilename))
	}
	return fmt.Errorf("%s exists; use --force to overwrite", dest)
}
