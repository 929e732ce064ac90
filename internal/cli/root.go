package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/writeme/pkg/buildinfo"
)

// envFile is loaded from the working directory before any command runs.
const envFile = ".env"

// RootCommand creates the root cobra command with all subcommands registered.
//
// Logging goes to the CLI's logger at info level; main switches it to
// debug for --verbose through SetLogLevel.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "writeme writes a README from what your project already knows",
		Long: `writeme scans a project directory for config files, technologies, git
history and license text, reconciles what it finds and renders a README.md.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadDotEnv(envFile)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
