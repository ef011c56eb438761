package mermaid

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

const fileMode = 0o644

// Checker drives one validation pass: extract blocks per document, render
// each one, and report outcomes in document-then-block order.
type Checker struct {
	Renderer *Renderer

	// Dir is the scratch directory shared by the whole run.
	Dir string

	// Quiet suppresses OK lines and diagnostic continuation lines.
	Quiet bool

	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
}

// Result aggregates a run's counters.
type Result struct {
	// Checked counts every block handed to the renderer.
	Checked int

	// Failed counts blocks the renderer rejected.
	Failed int

	// FoundAny is true when at least one document contained a block.
	FoundAny bool
}

// Run validates every Mermaid block in files, sequentially and in order.
// Per-block failures are counted, never fatal; a run only errors on scratch
// directory level problems.
func (c *Checker) Run(files []string) Result {
	var res Result

	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			c.Logger.Warn("skipping unreadable file", "file", file, "err", err)

			continue
		}

		blocks := ExtractBlocks(file, source)
		if len(blocks) == 0 {
			continue
		}

		res.FoundAny = true

		for _, block := range blocks {
			res.Checked++

			if !c.check(block) {
				res.Failed++
			}
		}
	}

	return res
}

// check materializes one block into the scratch directory, renders it, and
// writes the report line. It returns whether the block validated.
func (c *Checker) check(block Block) bool {
	name := scratchName(block)
	inFile := filepath.Join(c.Dir, name)
	outFile := inFile + ".svg"

	c.Logger.Debug("rendering block", "file", block.File, "line", block.StartLine, "scratch", name)

	if err := os.WriteFile(inFile, []byte(block.Content), fileMode); err != nil {
		c.report(block, name, false, fmt.Sprintf("failed to write scratch file: %v", err))

		return false
	}

	ok, msg := c.Renderer.Render(inFile, outFile)
	c.report(block, name, ok, msg)

	return ok
}

func (c *Checker) report(block Block, name string, ok bool, msg string) {
	if ok {
		if !c.Quiet {
			fmt.Fprintf(c.Stdout, "OK   %s:%d  (%s)\n", block.File, block.StartLine, name)
		}

		return
	}

	lines := strings.Split(msg, "\n")
	first := lines[0]

	if first == "" {
		first = "mmdc failed"
	}

	fmt.Fprintf(c.Stderr, "ERR  %s:%d  (%s)  %s\n", block.File, block.StartLine, name, first)

	if !c.Quiet {
		for _, line := range lines[1:] {
			fmt.Fprintf(c.Stderr, "      %s\n", line)
		}
	}
}

var reUnsafe = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// scratchName derives the block's unique scratch filename from its full
// source path and per-document index, so documents sharing a base name
// cannot collide.
func scratchName(block Block) string {
	return fmt.Sprintf("%s.block_%03d.mmd", reUnsafe.ReplaceAllString(block.File, "_"), block.Index)
}
