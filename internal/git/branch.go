package git

import (
	"strings"

	"github.com/mvwi/wip/internal/wip"
)

// CurrentBranch returns the checked-out branch name, located by the "*"
// marker in the local branch listing.
func (t *Tree) CurrentBranch() (string, error) {
	lines, err := t.lines("git", "branch")
	if err != nil {
		return "", err
	}
	name, ok := currentFromListing(lines)
	if !ok {
		return "", wip.Backendf("could not find the current branch in the git branch output")
	}
	return name, nil
}

// currentFromListing extracts the "* "-marked entry from local listing lines.
func currentFromListing(lines []string) (string, bool) {
	for _, line := range lines {
		if rest, ok := strings.CutPrefix(line, "* "); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// CommitID resolves a branch or remote-qualified ref to its commit hash.
// Anything other than exactly one line of output means the caller passed a
// ref this tool never generates, so it is reported as a backend fault.
func (t *Tree) CommitID(ref string) (string, error) {
	lines, err := t.lines("git", "log", "-1", "--format=%H", ref, "--")
	if err != nil {
		return "", err
	}
	if len(lines) != 1 {
		return "", wip.Backendf("expected one commit for %s, got %d lines", ref, len(lines))
	}
	return lines[0], nil
}

// BranchExists reports whether name appears in the full branch listing,
// local or remote-tracking, after normalizing each entry.
func (t *Tree) BranchExists(name string) (bool, error) {
	lines, err := t.lines("git", "branch", "-a")
	if err != nil {
		return false, err
	}
	return listingContains(lines, name), nil
}

// listingContains matches name against normalized listing entries.
func listingContains(lines []string, name string) bool {
	for _, line := range lines {
		if wip.NormalizeBranchLine(line) == name {
			return true
		}
	}
	return false
}

// IsAncestor reports whether ancestor is an ancestor of (or equal to)
// commit: the merge-base of the two must be ancestor itself.
func (t *Tree) IsAncestor(commit, ancestor string) (bool, error) {
	out, err := t.raw("git", "merge-base", commit, ancestor)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) == ancestor, nil
}

// DeleteLocalBranch removes a local branch. A missing branch is an error
// only when mustExist is set; otherwise the call is a no-op.
func (t *Tree) DeleteLocalBranch(name string, mustExist bool) error {
	lines, err := t.lines("git", "branch")
	if err != nil {
		return err
	}
	if !listingContains(lines, name) {
		if mustExist {
			return wip.NotFoundf("local branch %s not found", name)
		}
		return nil
	}
	_, err = t.raw("git", "branch", "-D", name)
	return err
}

// CreateBranch creates a branch at startPoint without switching to it.
func (t *Tree) CreateBranch(name, startPoint string) error {
	_, err := t.raw("git", "branch", name, startPoint)
	return err
}

// Checkout switches to an existing branch.
func (t *Tree) Checkout(branch string) error {
	return t.passthrough("git", "checkout", branch)
}

// CheckoutNew creates a branch at HEAD and switches to it.
func (t *Tree) CheckoutNew(branch string) error {
	return t.passthrough("git", "checkout", "-b", branch)
}

// BranchLines returns the raw full branch listing for display.
func (t *Tree) BranchLines() ([]string, error) {
	return t.lines("git", "branch", "-a")
}
