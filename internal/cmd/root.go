// Package cmd implements the mdmermaid command-line interface.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type options struct {
	config   string
	theme    string
	renderer string
	keep     bool
	quiet    bool
	verbose  bool

	stdout io.Writer
	stderr io.Writer
	logger *charmlog.Logger
}

// exitError carries a process exit status out of a command run. A nil err
// means everything user-visible was already printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}

	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// Execute runs the CLI and returns the process exit status: 0 when all
// blocks are valid (or none were found), 1 when at least one block failed
// validation, 2 on environment or usage errors.
func Execute(args []string, stdout, stderr io.Writer) int {
	opts := &options{stdout: stdout, stderr: stderr}

	root := rootCmd(opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(stderr, "ERROR:", ee.err)
		}

		return ee.code
	}

	fmt.Fprintln(stderr, "ERROR:", err)

	return 2
}

func rootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "mdmermaid [flags] <file|glob>...",
		Short: "Validate Mermaid code blocks in Markdown using mmdc",
		Long: `Extract ` + "```mermaid / ```mermaidjs" + ` fenced blocks from Markdown files
and render each one with mmdc, reporting blocks that fail to render.

Exit codes:
  0 = all blocks valid, or no blocks found
  1 = at least one invalid block
  2 = usage / environment error (e.g. mmdc and npx missing)`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			opts.logger = newLogger(opts.stderr, logLevel(opts))
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return checkRun(opts, args)
		},

		DisableAutoGenTag: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "only print errors and summary")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	cmd.Flags().StringVarP(&opts.config, "config", "c", envDefault("MDMERMAID_CONFIG", ""), "mermaid config JSON file for mmdc")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", envDefault("MDMERMAID_THEME", "default"), "mermaid theme (default|dark|forest|neutral)")
	cmd.Flags().BoolVarP(&opts.keep, "keep", "k", false, "keep temp files (for debugging)")
	cmd.Flags().StringVar(&opts.renderer, "renderer", envDefault("MDMERMAID_RENDERER", ""), "renderer command overriding mmdc discovery")

	cmd.AddCommand(listCmd(opts))

	return cmd
}

// newLogger creates the ambient stderr logger. Report lines (OK/ERR and the
// summary) are written directly, not through the logger.
func newLogger(w io.Writer, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{ //nolint:exhaustruct
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func logLevel(opts *options) charmlog.Level {
	switch {
	case opts.verbose:
		return charmlog.DebugLevel
	case opts.quiet:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
