package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/ezerfernandes/mdmermaid/internal/mermaid"
	"github.com/ezerfernandes/mdmermaid/internal/resolve"
)

func listCmd(opts *options) *cobra.Command {
	return &cobra.Command{ //nolint:exhaustruct
		Use:     "list <file|glob>...",
		Aliases: []string{"ls"},
		Short:   "List Mermaid blocks found in Markdown inputs",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return listRun(opts, args)
		},

		DisableAutoGenTag: true,
	}
}

func listRun(opts *options, patterns []string) error {
	files, err := resolve.ExpandOS(patterns)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	if len(files) == 0 {
		return &exitError{code: 2, err: errNoInputs}
	}

	tbl := table.New("FILE", "LINE", "BLOCK", "LINES").WithWriter(opts.stdout)
	total := 0

	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			opts.logger.Warn("skipping unreadable file", "file", file, "err", err)

			continue
		}

		for _, block := range mermaid.ExtractBlocks(file, source) {
			tbl.AddRow(block.File, block.StartLine, block.Index, lineCount(block.Content))
			total++
		}
	}

	if total == 0 {
		fmt.Fprintln(opts.stdout, "No Mermaid blocks found in inputs.")

		return nil
	}

	tbl.Print()

	return nil
}

func lineCount(content string) int {
	if content == "" {
		return 0
	}

	return strings.Count(content, "\n") + 1
}
