// Package resolve expands user-supplied path patterns into a deduplicated
// list of existing files.
package resolve

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Expand resolves patterns against fsys into an ordered, deduplicated list
// of existing regular files. Patterns use glob syntax with `/` as separator;
// `**` crosses directories. Literal paths that do not exist are dropped.
// Only an uncompilable pattern is an error.
func Expand(fsys fs.FS, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})

	var out []string

	add := func(p string) {
		if _, dup := seen[p]; dup {
			return
		}

		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, pattern := range patterns {
		matches, err := expandOne(fsys, path.Clean(filepath.ToSlash(pattern)))
		if err != nil {
			return nil, err
		}

		for _, m := range matches {
			add(m)
		}
	}

	return out, nil
}

// ExpandOS resolves patterns against the host filesystem. Relative patterns
// resolve from the working directory and stay relative in the result;
// absolute patterns resolve from the root and stay absolute. Duplicates are
// detected on the absolute path.
func ExpandOS(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})

	var out []string

	for _, pattern := range patterns {
		slashed := path.Clean(filepath.ToSlash(pattern))

		fsys, prefix := os.DirFS("."), ""
		if strings.HasPrefix(slashed, "/") {
			fsys, prefix = os.DirFS("/"), "/"
			slashed = strings.TrimPrefix(slashed, "/")
		}

		matches, err := expandOne(fsys, slashed)
		if err != nil {
			return nil, err
		}

		for _, m := range matches {
			p := filepath.FromSlash(prefix + m)

			abs, err := filepath.Abs(p)
			if err != nil {
				abs = p
			}

			if _, dup := seen[abs]; dup {
				continue
			}

			seen[abs] = struct{}{}
			out = append(out, p)
		}
	}

	return out, nil
}

func expandOne(fsys fs.FS, pattern string) ([]string, error) {
	if !hasMeta(pattern) {
		info, err := fs.Stat(fsys, pattern)
		if err != nil || !info.Mode().IsRegular() {
			return nil, nil
		}

		return []string{pattern}, nil
	}

	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var matches []string

	// Unreadable subtrees are skipped, not fatal.
	_ = fs.WalkDir(fsys, fixedPrefix(pattern), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if d.Type().IsRegular() && g.Match(p) {
			matches = append(matches, p)
		}

		return nil
	})

	return matches, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// fixedPrefix returns the longest directory prefix of pattern with no glob
// metacharacters, used as the walk root.
func fixedPrefix(pattern string) string {
	segments := strings.Split(pattern, "/")

	var fixed []string

	for _, seg := range segments[:len(segments)-1] {
		if hasMeta(seg) {
			break
		}

		fixed = append(fixed, seg)
	}

	if len(fixed) == 0 {
		return "."
	}

	return path.Join(fixed...)
}
