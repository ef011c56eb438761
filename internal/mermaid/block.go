package mermaid

// Block is a single fenced Mermaid region extracted from a Markdown document.
type Block struct {
	// File is the path of the source document as it was given to the
	// extractor; it is reported verbatim, never resolved or copied.
	File string

	// StartLine is the 1-based line number of the opening fence. It is
	// used only for human-readable report lines.
	StartLine int

	// Index is the 1-based position of this block within its document,
	// assigned in the order blocks close. It keys the scratch filename.
	Index int

	// Content holds the lines strictly between the fences, joined with
	// newlines. The fences themselves are excluded.
	Content string
}

type Blocks []Block
