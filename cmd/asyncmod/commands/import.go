package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/asyncmod/cmd/asyncmod/handlers"
)

// Import returns the command that loads modules into the host.
func Import() *cobra.Command {
	var opts handlers.ImportOptions

	cmd := &cobra.Command{
		Use:   "import NAME...",
		Short: "Import modules concurrently",
		Long: `Import one or more modules concurrently.

Every named module is attempted, even when others fail. Progress messages
(with --verbose) and errors are printed after all imports have finished:
successes first, then failures, each attributed to its module.

Modules are resolved from, in order:
  - Directories given with --module-path
  - module_paths from the configuration file
  - The S3 bucket from the configuration file, if set

The command exits non-zero when any module failed to import.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Names = args
			cmd.SilenceUsage = true
			return handlers.Import(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "Reload modules that are already loaded")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: asyncmod.yaml)")
	cmd.Flags().StringSliceVarP(&opts.ModulePaths, "module-path", "p", nil, "Additional module directory, searched first (repeatable)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Print a message for every module imported")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the import")

	return cmd
}
