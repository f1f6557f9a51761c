// Package git backs the wip.Client interface with real process invocation of
// the git binary and the patch utility. It is a thin layer: every method
// runs one external command, echoes it for the operator, and either captures
// line-oriented stdout or streams it to the terminal.
package git

import (
	"bytes"
	"os"
	"os/exec"
	"strings"

	"github.com/mvwi/wip/internal/wip"
)

// Tree is a working tree the commands run in. It implements wip.Client.
type Tree struct {
	dir   string
	trace func(cmd string)
}

// Open binds a Tree to a directory. trace, when non-nil, receives every
// external command line before it runs (the operator-visible echo).
func Open(dir string, trace func(cmd string)) *Tree {
	return &Tree{dir: dir, trace: trace}
}

// command builds an external command with LC_ALL=C so output is parseable
// English regardless of locale.
func (t *Tree) command(name string, args ...string) *exec.Cmd {
	cmd := exec.Command(name, args...)
	cmd.Dir = t.dir
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	return cmd
}

func (t *Tree) echo(name string, args []string) {
	if t.trace != nil {
		t.trace(name + " " + strings.Join(args, " "))
	}
}

// lines runs a command and returns its stdout split into lines. The single
// empty line produced by a trailing newline is dropped; all other lines,
// including interior blanks, are preserved verbatim. Non-zero exit is a
// backend error carrying the command's stderr.
func (t *Tree) lines(name string, args ...string) ([]string, error) {
	out, err := t.raw(name, args...)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(out, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}

// raw runs a command and returns its stdout unmodified.
func (t *Tree) raw(name string, args ...string) (string, error) {
	t.echo(name, args)
	cmd := t.command(name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", commandError(name, args, stderr.String(), err)
	}
	return stdout.String(), nil
}

// passthrough runs a command with stdout/stderr wired to the terminal, for
// operations whose progress the operator should see live (fetch, pull,
// push, checkout, commit).
func (t *Tree) passthrough(name string, args ...string) error {
	t.echo(name, args)
	cmd := t.command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return commandError(name, args, "", err)
	}
	return nil
}

// commandError turns a failed invocation into a backend error, preferring
// the tool's own stderr message.
func commandError(name string, args []string, stderr string, err error) error {
	msg := strings.TrimSpace(stderr)
	if msg == "" {
		msg = err.Error()
	}
	return wip.Backendf("%s %s: %s", name, strings.Join(args, " "), msg)
}
