package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ezerfernandes/mdmermaid/internal/mermaid"
	"github.com/ezerfernandes/mdmermaid/internal/resolve"
)

var errNoInputs = errors.New("no input files found")

func checkRun(opts *options, patterns []string) error {
	command, err := mermaid.LocateRenderer(opts.renderer, nil)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	if opts.config != "" {
		if _, err := os.Stat(opts.config); err != nil {
			return &exitError{code: 2, err: fmt.Errorf("config file not found: %s", opts.config)}
		}
	}

	files, err := resolve.ExpandOS(patterns)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	if len(files) == 0 {
		return &exitError{code: 2, err: errNoInputs}
	}

	// Scratch state is only created once the environment checks pass.
	dir, err := os.MkdirTemp("", "mermaid_check_")
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	opts.logger.Debug("created scratch directory", "dir", dir)

	defer func() {
		if opts.keep {
			opts.logger.Info("keeping scratch directory", "dir", dir)

			return
		}

		if err := os.RemoveAll(dir); err != nil {
			opts.logger.Info("could not remove scratch directory", "dir", dir, "err", err)
		}
	}()

	checker := &mermaid.Checker{
		Renderer: &mermaid.Renderer{ //nolint:exhaustruct
			Command: command,
			Theme:   opts.theme,
			Config:  opts.config,
		},
		Dir:    dir,
		Quiet:  opts.quiet,
		Stdout: opts.stdout,
		Stderr: opts.stderr,
		Logger: opts.logger,
	}

	res := checker.Run(files)

	if !res.FoundAny {
		fmt.Fprintln(opts.stdout, "No Mermaid blocks found in inputs.")

		return nil
	}

	fmt.Fprintln(opts.stdout, "----")
	fmt.Fprintf(opts.stdout, "Checked: %d   Failed: %d\n", res.Checked, res.Failed)

	if res.Failed > 0 {
		return &exitError{code: 1, err: nil}
	}

	return nil
}
