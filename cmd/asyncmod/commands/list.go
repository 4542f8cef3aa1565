package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/asyncmod/cmd/asyncmod/handlers"
)

// List returns the command that prints the available modules.
func List() *cobra.Command {
	var opts handlers.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List modules available from the configured sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return handlers.List(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: asyncmod.yaml)")
	cmd.Flags().StringSliceVarP(&opts.ModulePaths, "module-path", "p", nil, "Additional module directory, searched first (repeatable)")
	cmd.Flags().BoolVar(&opts.YAML, "yaml", false, "Output in YAML format")

	return cmd
}
