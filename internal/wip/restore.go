package wip

import "os"

// Restore replays a snapshot saved by Save back onto a clean checkout of the
// current branch: pull, materialize the artifact files from the remote WIP
// branch, apply them, and re-stage what was originally staged. On success
// both artifact files are gone, the WIP content is back in the tree, and the
// index matches the saved one.
func Restore(c Client, opt Options) error {
	// Preconditions: no leftover artifacts, at the repo root, and a
	// perfectly clean tree. Restore rewrites files in place, so any pending
	// change would be mixed into the snapshot irrecoverably.
	if err := checkSentinels(opt); err != nil {
		return err
	}
	if err := checkRepoRoot(opt.Dir); err != nil {
		return err
	}
	changes, err := c.StatusChanges()
	if err != nil {
		return err
	}
	if len(changes) > 0 {
		return Preconditionf("working tree is not clean (%d pending changes), commit or discard them first", len(changes))
	}

	branch, err := c.CurrentBranch()
	if err != nil {
		return err
	}
	wipBranch := WIPBranch(branch)
	mainRef := remoteRef(opt.Remote, branch)
	wipRef := remoteRef(opt.Remote, wipBranch)

	// Both remote branches must exist and the local checkout must not have
	// diverged ahead of or sideways from either of them.
	localCommit, err := c.CommitID(branch)
	if err != nil {
		return err
	}
	for _, ref := range []string{mainRef, wipRef} {
		exists, err := c.BranchExists(ref)
		if err != nil {
			return err
		}
		if !exists {
			return NotFoundf("branch %s not found, nothing to restore", ref)
		}
		remoteCommit, err := c.CommitID(ref)
		if err != nil {
			return err
		}
		ok, err := c.IsAncestor(remoteCommit, localCommit)
		if err != nil {
			return err
		}
		if !ok {
			return Ancestryf("local %s has diverged from %s, reconcile before restoring", branch, ref)
		}
	}

	if err := c.Pull(opt.Remote, branch); err != nil {
		return wrap(err, "pull %s", branch)
	}

	// The pull moved HEAD; the snapshot must still sit on top of it.
	localCommit, err = c.CommitID(branch)
	if err != nil {
		return err
	}
	wipCommit, err := c.CommitID(wipRef)
	if err != nil {
		return err
	}
	ok, err := c.IsAncestor(wipCommit, localCommit)
	if err != nil {
		return err
	}
	if !ok {
		return Ancestryf("%s no longer descends from %s after pulling, reconcile before restoring", wipRef, branch)
	}

	// Materialize the artifact files: the WIP commit differs from the clean
	// tree only by them, so reverse-applying the diff checks them out.
	diff, err := c.DiffAgainst(wipRef)
	if err != nil {
		return err
	}
	if hasContent(diff) {
		if err := c.ApplyDiff(diff, true); err != nil {
			return wrap(err, "restore artifacts from %s", wipRef)
		}
	}

	// Index artifact: replay the originally-staged changes and stage them.
	// The artifact only exists when something was staged at save time.
	restoredIndex := false
	if fileExists(opt.indexPath()) {
		if err := c.ApplyPatch(opt.IndexArtifact, false); err != nil {
			return wrap(err, "apply %s", opt.IndexArtifact)
		}
		if err := os.Remove(opt.indexPath()); err != nil {
			return wrap(err, "remove %s", opt.IndexArtifact)
		}
		if err := c.StageAll(); err != nil {
			return err
		}
		restoredIndex = true
	}

	// Other artifact: replay unstaged and untracked changes. The stage-all
	// above swept the artifact file itself into the index, so pull it back
	// out before deleting it.
	if fileExists(opt.otherPath()) {
		if restoredIndex {
			if err := c.Unstage(opt.OtherArtifact); err != nil {
				return err
			}
		}
		data, err := os.ReadFile(opt.otherPath())
		if err != nil {
			return wrap(err, "read %s", opt.OtherArtifact)
		}
		if hasContent(string(data)) {
			if err := c.ApplyPatch(opt.OtherArtifact, false); err != nil {
				return wrap(err, "apply %s", opt.OtherArtifact)
			}
		}
		if err := os.Remove(opt.otherPath()); err != nil {
			return wrap(err, "remove %s", opt.OtherArtifact)
		}
	}

	return nil
}
