package mermaid

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reOpenFence  = regexp.MustCompile("^\\s*```(mermaid|mermaidjs)\\s*$")
	reCloseFence = regexp.MustCompile("^\\s*```\\s*$")
)

// ExtractBlocks scans a Markdown document line by line and returns every
// properly closed ```mermaid / ```mermaidjs block in document order.
//
// Only the literal fence patterns matter: a tagged fence opens a block, a
// bare ``` line closes it, and everything in between is captured verbatim,
// including blank lines and fences of other kinds. An opening fence with no
// matching close before end of document yields no block. Invalid UTF-8 in
// source is replaced, never an error.
func ExtractBlocks(file string, source []byte) Blocks {
	var blocks Blocks

	var (
		inBlock   bool
		startLine int
		buf       []string
	)

	for i, line := range splitLines(source) {
		switch {
		case !inBlock && reOpenFence.MatchString(line):
			inBlock = true
			startLine = i + 1
			buf = buf[:0]
		case inBlock && reCloseFence.MatchString(line):
			blocks = append(blocks, Block{
				File:      file,
				StartLine: startLine,
				Index:     len(blocks) + 1,
				Content:   strings.Join(buf, "\n"),
			})
			inBlock = false
		case inBlock:
			buf = append(buf, line)
		}
	}

	return blocks
}

// splitLines breaks source into lines, stripping line terminators. CRLF and
// LF both terminate a line; invalid byte sequences are replaced with the
// Unicode replacement character rather than failing.
func splitLines(source []byte) []string {
	if len(source) == 0 {
		return nil
	}

	text := string(source)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}

	text = strings.TrimSuffix(text, "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
