package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-i18n/internal/errors"
)

func codesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes [code]",
		Short: "List error codes",
		Long: `List every error code vango-i18n reports, or explain one.

Examples:
  vango-i18n codes
  vango-i18n codes E205`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				code := strings.ToUpper(args[0])
				tmpl, ok := errors.GetTemplate(code)
				if !ok {
					return errors.New("E242").WithDetail(fmt.Sprintf("code %q", args[0]))
				}
				fmt.Fprintf(out, "%s [%s] %s\n", code, tmpl.Category, tmpl.Message)
				if tmpl.Suggestion != "" {
					fmt.Fprintf(out, "  Hint: %s\n", tmpl.Suggestion)
				}
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tCATEGORY\tMESSAGE")
			for _, code := range errors.GetAllCodes() {
				tmpl, _ := errors.GetTemplate(code)
				fmt.Fprintf(tw, "%s\t%s\t%s\n", code, tmpl.Category, tmpl.Message)
			}
			return tw.Flush()
		},
	}

	return cmd
}
