package main

import (
	"github.com/spf13/cobra"
)

func pathsCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the custom paths map",
		Long: `Scan the pages directory and print the custom paths map, which
indexes every localized path by original route name and by original
full path.

Examples:
  vango-i18n paths
  vango-i18n paths --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, formatJSON, formatYAML); err != nil {
				return err
			}

			p, err := loadProject(opts)
			if err != nil {
				return err
			}
			result, err := p.expand(cmd.Context(), false)
			if err != nil {
				return err
			}

			if format == formatYAML {
				return writeYAML(cmd.OutOrStdout(), result.Paths)
			}
			return writeJSON(cmd.OutOrStdout(), result.Paths)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json or yaml")

	return cmd
}
