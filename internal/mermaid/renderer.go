package mermaid

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/shlex"
)

// LookPathFunc resolves an executable name to a path, exec.LookPath style.
// Injectable so tests can run without mmdc or npx installed.
type LookPathFunc func(name string) (string, error)

// InvokeFunc runs an argument vector to completion and returns its exit
// status and captured output streams. A non-nil error means the process
// could not be started or waited on, not that it exited nonzero.
type InvokeFunc func(argv []string) (exitCode int, stdout, stderr []byte, err error)

// ErrRendererNotFound is returned by LocateRenderer when neither mmdc nor
// npx can be resolved.
var ErrRendererNotFound = errors.New("`mmdc` not found, and `npx` not available\ninstall globally with: npm i -g @mermaid-js/mermaid-cli")

// LocateRenderer resolves the base command vector for invoking mmdc.
//
// A non-empty override wins and is split shell-style into an argument
// vector. Otherwise a global mmdc on the path is preferred, falling back to
// npx fetching mermaid-cli on the fly.
func LocateRenderer(override string, look LookPathFunc) ([]string, error) {
	if override != "" {
		argv, err := shlex.Split(override)
		if err != nil {
			return nil, fmt.Errorf("invalid renderer command %q: %w", override, err)
		}

		if len(argv) == 0 {
			return nil, fmt.Errorf("invalid renderer command %q: empty", override)
		}

		return argv, nil
	}

	if look == nil {
		look = exec.LookPath
	}

	if path, err := look("mmdc"); err == nil {
		return []string{path}, nil
	}

	if path, err := look("npx"); err == nil {
		return []string{path, "-y", "@mermaid-js/mermaid-cli", "mmdc"}, nil
	}

	return nil, ErrRendererNotFound
}

// Renderer invokes mmdc on materialized block files.
type Renderer struct {
	// Command is the base argument vector from [LocateRenderer].
	Command []string

	// Theme is passed through verbatim as mmdc's --theme.
	Theme string

	// Config, when non-empty, is passed through as mmdc's --configFile.
	Config string

	// Invoke runs the subprocess; nil means a real os/exec invocation.
	Invoke InvokeFunc
}

// Render runs mmdc with inFile as input and outFile as output. It reports
// whether the renderer accepted the input (exit status zero) along with any
// diagnostic text, preferring stderr over stdout.
func (r *Renderer) Render(inFile, outFile string) (bool, string) {
	argv := make([]string, 0, len(r.Command)+8)
	argv = append(argv, r.Command...)
	argv = append(argv, "-i", inFile, "-o", outFile, "--theme", r.Theme)

	if r.Config != "" {
		argv = append(argv, "--configFile", r.Config)
	}

	invoke := r.Invoke
	if invoke == nil {
		invoke = execInvoke
	}

	exitCode, stdout, stderr, err := invoke(argv)
	if err != nil {
		return false, fmt.Sprintf("failed to execute mmdc: %v", err)
	}

	msg := stderr
	if len(msg) == 0 {
		msg = stdout
	}

	return exitCode == 0, strings.TrimSpace(strings.ToValidUTF8(string(msg), "�"))
}

// execInvoke is the production InvokeFunc: synchronous os/exec run with
// both streams captured.
func execInvoke(argv []string) (int, []byte, []byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return -1, nil, nil, err
		}
	}

	return cmd.ProcessState.ExitCode(), stdout.Bytes(), stderr.Bytes(), nil
}
