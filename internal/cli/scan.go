package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/writeme/pkg/metadata"
	"github.com/matzehuels/writeme/pkg/pipeline"
)

// scanCommand creates the scan command, which prints what generate would
// use without prompting or writing anything.
func (c *CLI) scanCommand() *cobra.Command {
	var (
		flags  scanFlags
		asYAML bool
	)

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Print the metadata detected in a project",
		Long: `Scan a project directory and print the detected metadata.

Conflicts are never prompted for: each field keeps its first candidate.`,
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
			return c.runScan(cmd.Context(), flags.options(dir, cfg), cfg, asYAML)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the result as YAML")

	return cmd
}

func (c *CLI) runScan(ctx context.Context, opts pipeline.Options, cfg Config, asYAML bool) error {
	runner, cleanup, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	var spin *Spinner
	if isTerminal(os.Stderr) {
		spin = newSpinnerWithContext(ctx, os.Stderr, "Scanning project...")
		spin.Start()
	}
	result, err := runner.Scan(ctx, opts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if asYAML {
		return yaml.NewEncoder(c.Out).Encode(newScanReport(result))
	}
	printScanResult(c.Out, result)
	return nil
}

// scanReport is the YAML form of a scan result.
type scanReport struct {
	Name         string   `yaml:"name,omitempty"`
	Description  string   `yaml:"description,omitempty"`
	Version      string   `yaml:"version,omitempty"`
	Repository   string   `yaml:"repository,omitempty"`
	License      string   `yaml:"license,omitempty"`
	Contributors []string `yaml:"contributors,omitempty"`
	Techs        []string `yaml:"techs,omitempty"`
	Configs      []string `yaml:"configs,omitempty"`
	Ecosystems   []string `yaml:"ecosystems,omitempty"`
	Truncated    bool     `yaml:"truncated,omitempty"`

	InvalidRanges int `yaml:"invalid_ranges,omitempty"`
}

func newScanReport(result *pipeline.Result) scanReport {
	rec := result.Record
	r := scanReport{
		Name:        metadata.Deref(rec.Name),
		Description: metadata.Deref(rec.Description),
		Version:     metadata.Deref(rec.Version),
		Techs:       result.Techs,
		Configs:     result.Configs,
		Ecosystems:  result.Ecosystems,
		Truncated:   result.Stats.Truncated,

		InvalidRanges: result.Stats.InvalidRanges,
	}
	if rec.Repository != nil {
		r.Repository = rec.Repository.URL
	}
	if rec.License != nil {
		r.License = rec.License.String()
	}
	for _, ct := range rec.Contributors {
		r.Contributors = append(r.Contributors, ct.String())
	}
	return r
}

func printScanResult(w io.Writer, result *pipeline.Result) {
	r := newScanReport(result)

	fmt.Fprintln(w, StyleTitle.Render("Project"))
	printKeyValue(w, "Name", r.Name)
	printKeyValue(w, "Description", r.Description)
	printKeyValue(w, "Version", r.Version)
	printKeyValue(w, "Repository", r.Repository)
	printKeyValue(w, "License", r.License)
	printList(w, "Contributors", r.Contributors)
	fmt.Fprintln(w)

	fmt.Fprintln(w, StyleTitle.Render("Detected"))
	printList(w, "Techs", r.Techs)
	printList(w, "Configs", r.Configs)
	printList(w, "Ecosystems", r.Ecosystems)

	if r.Truncated {
		fmt.Fprintln(w)
		printWarning(w, "Walk stopped after %d files", result.Stats.Files)
	}
	if r.InvalidRanges > 0 {
		printWarning(w, "%d dependency version ranges do not parse", r.InvalidRanges)
	}
	if result.Stats.Conflicts > 0 {
		printInfo(w, "%d conflicting fields resolved to their first candidate", result.Stats.Conflicts)
		printNextStep(w, "Choose interactively", appName+" generate")
	}
}
