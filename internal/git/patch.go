package git

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/mvwi/wip/internal/wip"
)

// lookPatch locates the patch utility. Its absence is fatal: there is no
// fallback path for applying the artifacts.
func lookPatch() error {
	if _, err := exec.LookPath("patch"); err != nil {
		return wip.Backendf("the patch utility is not installed or not on PATH")
	}
	return nil
}

// ApplyPatch applies a unified-diff file onto the working tree, in reverse
// when reverse is set.
func (t *Tree) ApplyPatch(file string, reverse bool) error {
	if err := lookPatch(); err != nil {
		return err
	}
	args := patchArgs(reverse)
	args = append(args, "--input", file)
	_, err := t.raw("patch", args...)
	return err
}

// ApplyDiff applies unified-diff text, fed to the patch utility on stdin.
func (t *Tree) ApplyDiff(diff string, reverse bool) error {
	if err := lookPatch(); err != nil {
		return err
	}
	args := patchArgs(reverse)
	t.echo("patch", args)

	cmd := t.command("patch", args...)
	cmd.Stdin = strings.NewReader(diff)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return commandError("patch", args, stderr.String(), err)
	}
	return nil
}

// patchArgs builds the common patch invocation: git-style diffs carry a/ b/
// path prefixes, so strip one component, and -E drops files a reversed
// creation hunk empties out.
func patchArgs(reverse bool) []string {
	args := []string{"-p1", "-E", "--no-backup-if-mismatch"}
	if reverse {
		args = append(args, "--reverse")
	}
	return args
}
