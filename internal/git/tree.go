package git

// FetchPrune fetches from the remote, dropping stale remote-tracking refs.
func (t *Tree) FetchPrune(remote string) error {
	return t.passthrough("git", "fetch", "--prune", remote)
}

// Pull pulls the named branch from the remote.
func (t *Tree) Pull(remote, branch string) error {
	return t.passthrough("git", "pull", remote, branch)
}

// PushForce force-pushes a local branch to its same-named remote branch.
// setUpstream additionally establishes upstream tracking.
func (t *Tree) PushForce(remote, branch string, setUpstream bool) error {
	args := []string{"push", "--force"}
	if setUpstream {
		args = append(args, "--set-upstream")
	}
	args = append(args, remote, branch+":"+branch)
	return t.passthrough("git", args...)
}

// PushDelete deletes a remote branch by pushing an empty refspec.
func (t *Tree) PushDelete(remote, branch string) error {
	return t.passthrough("git", "push", remote, ":"+branch)
}

// DiffStaged returns the unified diff of staged changes against HEAD.
// Rename detection is disabled so the diff round-trips through the patch
// utility as plain adds and deletes.
func (t *Tree) DiffStaged() (string, error) {
	return t.raw("git", "diff", "--cached", "--no-renames")
}

// DiffAgainst returns the unified diff between ref and the working tree.
func (t *Tree) DiffAgainst(ref string) (string, error) {
	return t.raw("git", "diff", "--no-renames", ref)
}

// StageAll stages every change, including untracked files.
func (t *Tree) StageAll() error {
	_, err := t.raw("git", "add", "--all")
	return err
}

// Stage stages the given paths.
func (t *Tree) Stage(paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	_, err := t.raw("git", args...)
	return err
}

// Unstage removes the given paths from the index, leaving the files alone.
func (t *Tree) Unstage(paths ...string) error {
	args := append([]string{"reset", "--"}, paths...)
	_, err := t.raw("git", args...)
	return err
}

// ResetIndex clears the whole index back to HEAD without touching files.
func (t *Tree) ResetIndex() error {
	_, err := t.raw("git", "reset")
	return err
}

// Commit commits the index with the given message.
func (t *Tree) Commit(message string) error {
	return t.passthrough("git", "commit", "-m", message)
}

// StatusChanges returns one porcelain status line per pending change.
func (t *Tree) StatusChanges() ([]string, error) {
	return t.lines("git", "status", "--porcelain")
}
