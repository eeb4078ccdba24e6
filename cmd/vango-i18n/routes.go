package main

import (
	"github.com/spf13/cobra"
)

func routesCmd(opts *globalOptions) *cobra.Command {
	var (
		format string
		sorted bool
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the localized routes",
		Long: `Scan the pages directory and print the localized route tree.

Examples:
  vango-i18n routes
  vango-i18n routes --format yaml
  vango-i18n routes --format table --sort`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, formatJSON, formatYAML, formatTable); err != nil {
				return err
			}

			p, err := loadProject(opts)
			if err != nil {
				return err
			}
			result, err := p.expand(cmd.Context(), sorted)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatYAML:
				return writeYAML(out, result.Routes)
			case formatTable:
				return writeRouteTable(out, result.Routes)
			default:
				return writeJSON(out, result.Routes)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json, yaml or table")
	cmd.Flags().BoolVar(&sorted, "sort", false, "Sort routes by specificity")

	return cmd
}
