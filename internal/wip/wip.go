// Package wip implements the save and restore workflows: snapshotting a
// working tree's staged, unstaged, and untracked changes into a disposable
// remote branch, and replaying such a snapshot back onto a clean checkout.
//
// The package owns no state of its own. Everything is derived from the
// backend through the Client interface, plus two transient patch-artifact
// files in the tree root whose presence doubles as a re-entrancy sentinel.
package wip

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Branch-name conventions. The temporary branch for feature is feature.WIP;
// a pre-existing remote feature.WIP is preserved as feature.WIP.BACKUP,
// feature.WIP.BACKUP-1, and so on.
const (
	Suffix       = ".WIP"
	backupSuffix = ".BACKUP"
)

// Default artifact filenames, overridable via config.
const (
	DefaultIndexArtifact = ".wip-index.patch"
	DefaultOtherArtifact = ".wip-other.patch"
)

// Options is the explicit per-invocation configuration for both workflows.
type Options struct {
	// Dir is the working-tree root the workflow operates in.
	Dir string
	// Remote is the git remote name, typically "origin".
	Remote string
	// IndexArtifact is the filename capturing staged changes.
	IndexArtifact string
	// OtherArtifact is the filename capturing unstaged + untracked changes.
	OtherArtifact string
	// Out receives operator-facing output (the save report). Defaults to
	// os.Stdout when nil.
	Out io.Writer
}

func (o *Options) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

func (o *Options) indexPath() string { return filepath.Join(o.Dir, o.IndexArtifact) }
func (o *Options) otherPath() string { return filepath.Join(o.Dir, o.OtherArtifact) }

// WIPBranch returns the temporary branch name for a main branch.
func WIPBranch(branch string) string {
	return branch + Suffix
}

// checkSentinels fails when either artifact file already exists in the tree.
// A leftover artifact means a prior run did not finish; proceeding would
// clobber work the operator has not recovered yet.
func checkSentinels(opt Options) error {
	for _, name := range []string{opt.IndexArtifact, opt.OtherArtifact} {
		if fileExists(filepath.Join(opt.Dir, name)) {
			return Preconditionf("%s exists: unfinished save or restore in progress, resolve it first", name)
		}
	}
	return nil
}

// checkRepoRoot fails unless dir is the root of a git working tree.
func checkRepoRoot(dir string) error {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil || !info.IsDir() {
		return Preconditionf("not at the root of a git repository")
	}
	return nil
}

// backupName picks the first free backup-branch name for a WIP branch:
// <wipBranch>.BACKUP, then <wipBranch>.BACKUP-1, -2, … The listing scan
// covers local and remote-tracking names, so backups never collide.
func backupName(c Client, wipBranch string) (string, error) {
	base := wipBranch + backupSuffix
	name := base
	for n := 1; ; n++ {
		taken, err := c.BranchExists(name)
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
		name = fmt.Sprintf("%s-%d", base, n)
	}
}

// NormalizeBranchLine reduces one line of the full branch listing to a bare
// branch name: leading whitespace and the current-branch "*" marker are
// stripped, any " -> " alias suffix (the remote HEAD pointer) is cut, and a
// leading "remotes/" prefix is removed so remote-tracking entries read as
// "origin/feature".
func NormalizeBranchLine(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimSpace(strings.TrimPrefix(s, "*"))
	if i := strings.Index(s, " -> "); i >= 0 {
		s = s[:i]
	}
	return strings.TrimPrefix(s, "remotes/")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// remoteRef builds a remote-qualified ref like "origin/feature".
func remoteRef(remote, branch string) string {
	return remote + "/" + branch
}

// hasContent reports whether a diff is worth applying. The patch utility
// rejects empty input, so blank diffs are skipped rather than piped through.
func hasContent(diff string) bool {
	return strings.TrimSpace(diff) != ""
}
