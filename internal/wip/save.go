package wip

import (
	"fmt"
	"os"
	"strings"
)

// Save snapshots the current branch's staged, unstaged, and untracked
// changes into a single commit on <branch>.WIP, pushes both branches to the
// remote, and leaves the local tree exactly at HEAD.
//
// Steps run strictly in order and every failure aborts immediately. Up
// through the ancestry guard nothing has been mutated; after that the tree
// and branches are modified with no automatic rollback, so a late backend
// failure leaves recovery to the operator.
func Save(c Client, opt Options) error {
	// Preconditions: no leftover artifacts, at the repo root, and not
	// already on a WIP branch (saving a save makes no sense).
	if err := checkSentinels(opt); err != nil {
		return err
	}
	if err := checkRepoRoot(opt.Dir); err != nil {
		return err
	}
	branch, err := c.CurrentBranch()
	if err != nil {
		return err
	}
	if strings.HasSuffix(branch, Suffix) {
		return Preconditionf("current branch %s is a WIP branch, check out the base branch first", branch)
	}

	if err := c.FetchPrune(opt.Remote); err != nil {
		return wrap(err, "fetch %s", opt.Remote)
	}

	// If the remote already has this branch, it must not hold history the
	// local branch lacks: the force-push below would silently discard it.
	mainRef := remoteRef(opt.Remote, branch)
	remoteHadBranch, err := c.BranchExists(mainRef)
	if err != nil {
		return err
	}
	if remoteHadBranch {
		remoteCommit, err := c.CommitID(mainRef)
		if err != nil {
			return err
		}
		localCommit, err := c.CommitID(branch)
		if err != nil {
			return err
		}
		if remoteCommit != localCommit {
			ok, err := c.IsAncestor(localCommit, remoteCommit)
			if err != nil {
				return err
			}
			if !ok {
				return Ancestryf("%s has commits not present locally, pull or reconcile before saving", mainRef)
			}
		}
	}

	// A local WIP branch is a stale leftover from an aborted run.
	wipBranch := WIPBranch(branch)
	if err := c.DeleteLocalBranch(wipBranch, false); err != nil {
		return err
	}

	// Index extraction: capture the staged diff, undo it in the working
	// tree, and clear the index. An empty index produces no artifact.
	indexDiff, err := c.DiffStaged()
	if err != nil {
		return err
	}
	hasIndex := hasContent(indexDiff)
	if hasIndex {
		if err := os.WriteFile(opt.indexPath(), []byte(indexDiff), 0644); err != nil {
			return wrap(err, "write %s", opt.IndexArtifact)
		}
		if err := c.ApplyPatch(opt.IndexArtifact, true); err != nil {
			return wrap(err, "reverse-apply %s", opt.IndexArtifact)
		}
		if err := c.ResetIndex(); err != nil {
			return err
		}
	}

	// Remainder extraction: stage what is left (unstaged edits + untracked
	// files), keeping the index artifact itself out of the snapshot, and
	// capture that as the second artifact. Undoing it leaves the tree
	// matching HEAD exactly, plus the artifact files.
	if err := c.StageAll(); err != nil {
		return err
	}
	if hasIndex {
		if err := c.Unstage(opt.IndexArtifact); err != nil {
			return err
		}
	}
	otherDiff, err := c.DiffStaged()
	if err != nil {
		return err
	}
	if err := os.WriteFile(opt.otherPath(), []byte(otherDiff), 0644); err != nil {
		return wrap(err, "write %s", opt.OtherArtifact)
	}
	if hasContent(otherDiff) {
		if err := c.ApplyPatch(opt.OtherArtifact, true); err != nil {
			return wrap(err, "reverse-apply %s", opt.OtherArtifact)
		}
	}
	if err := c.ResetIndex(); err != nil {
		return err
	}

	// Commit the artifacts as the sole commit on the WIP branch.
	if err := c.CheckoutNew(wipBranch); err != nil {
		return err
	}
	artifacts := []string{opt.OtherArtifact}
	if hasIndex {
		artifacts = append(artifacts, opt.IndexArtifact)
	}
	if err := c.Stage(artifacts...); err != nil {
		return err
	}
	if err := c.Commit("WIP on " + branch); err != nil {
		return err
	}

	// Publish the main branch. Upstream tracking is only established when
	// the remote did not have the branch before this run.
	if err := c.PushForce(opt.Remote, branch, !remoteHadBranch); err != nil {
		return wrap(err, "push %s", branch)
	}

	// Back up any remote WIP branch left by a previous save, then drop it
	// so the force-push below is the only writer.
	wipRef := remoteRef(opt.Remote, wipBranch)
	remoteHadWIP, err := c.BranchExists(wipRef)
	if err != nil {
		return err
	}
	if remoteHadWIP {
		backup, err := backupName(c, wipBranch)
		if err != nil {
			return err
		}
		if err := c.CreateBranch(backup, wipRef); err != nil {
			return err
		}
		if err := c.PushDelete(opt.Remote, wipBranch); err != nil {
			return wrap(err, "delete %s", wipRef)
		}
	}
	if err := c.PushForce(opt.Remote, wipBranch, false); err != nil {
		return wrap(err, "push %s", wipBranch)
	}

	if err := c.Checkout(branch); err != nil {
		return err
	}

	// The remote WIP branch must now mirror the local one; only then is the
	// local copy disposable.
	localWIP, err := c.CommitID(wipBranch)
	if err != nil {
		return err
	}
	remoteWIP, err := c.CommitID(wipRef)
	if err != nil {
		return err
	}
	if localWIP != remoteWIP {
		return Backendf("%s does not match %s after push, keeping the local branch", wipRef, wipBranch)
	}
	if err := c.DeleteLocalBranch(wipBranch, true); err != nil {
		return err
	}

	return printReport(c, opt, branch)
}

// printReport echoes the branch-listing lines for the saved branches so the
// operator can confirm what ended up where.
func printReport(c Client, opt Options, branch string) error {
	lines, err := c.BranchLines()
	if err != nil {
		return err
	}
	wipBranch := WIPBranch(branch)
	relevant := map[string]bool{
		branch:                           true,
		wipBranch:                        true,
		remoteRef(opt.Remote, branch):    true,
		remoteRef(opt.Remote, wipBranch): true,
	}
	for _, line := range lines {
		if relevant[NormalizeBranchLine(line)] {
			fmt.Fprintln(opt.out(), line)
		}
	}
	return nil
}
