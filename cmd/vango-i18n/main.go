package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-i18n/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	dir         string
	configFile  string
	verbose     bool
	errorFormat string
}

func main() {
	errors.SetColors(useColor(os.Stderr))
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and prints a failure to stderr in the
// selected error format. It returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &globalOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		errors.Print(stderr, err, opts.errorFormat)
		return 1
	}
	return 0
}

// useColor reports whether f should receive ANSI colors: it must be a
// terminal and NO_COLOR must be unset.
func useColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newRootCmd(opts *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vango-i18n",
		Short: "Localized route generation for Vango applications",
		Long: `vango-i18n turns the file-based routes of a Vango application into
localized routes, one per configured locale.

It reads vango-i18n.json (or vango-i18n.yaml) from the project root,
scans the pages directory and prints the localized routes and the
custom paths map, or serves them on a preview server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(opts.errorFormat, errors.OutputFormats()...); err != nil {
				return err
			}
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "Project root (searched upwards for a config file)")
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Config file (default: vango-i18n.json or vango-i18n.yaml in the project root)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.errorFormat, "error-format", errors.OutputText, "Error output format: text, compact or json")

	rootCmd.AddCommand(
		routesCmd(opts),
		pathsCmd(opts),
		previewCmd(opts),
		codesCmd(),
		versionCmd(),
	)

	return rootCmd
}

// success prints a success message.
func success(cmd *cobra.Command, format string, args ...any) {
	mark := "✓"
	if errors.ColorsEnabled() {
		mark = "\033[32m✓\033[0m"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", fmt.Sprintf(format, args...))
}
