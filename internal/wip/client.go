package wip

// Client is the narrow capability surface the workflows need from the
// version-control backend and the patch utility. Production code backs it
// with process invocation (internal/git); tests use an in-memory fake so the
// state machines run without a repository on disk.
type Client interface {
	// CurrentBranch returns the checked-out branch name.
	CurrentBranch() (string, error)
	// CommitID resolves a branch or remote-qualified ref to its commit hash.
	CommitID(ref string) (string, error)
	// BranchExists reports whether name appears in the full branch listing
	// (local + remote-tracking), after normalization.
	BranchExists(name string) (bool, error)
	// IsAncestor reports whether ancestor is an ancestor of (or equal to)
	// commit, i.e. merge-base(commit, ancestor) == ancestor.
	IsAncestor(commit, ancestor string) (bool, error)
	// DeleteLocalBranch removes a local branch. A missing branch is an error
	// only when mustExist is set; otherwise it is a no-op.
	DeleteLocalBranch(name string, mustExist bool) error

	// FetchPrune fetches from the remote, pruning stale remote-tracking refs.
	FetchPrune(remote string) error
	// Pull pulls the named branch from the remote.
	Pull(remote, branch string) error
	// PushForce force-pushes a local branch to its same-named remote branch,
	// optionally establishing upstream tracking.
	PushForce(remote, branch string, setUpstream bool) error
	// PushDelete deletes a remote branch by pushing an empty refspec.
	PushDelete(remote, branch string) error

	// DiffStaged returns the unified diff of staged changes, rename
	// detection disabled. Empty string when nothing is staged.
	DiffStaged() (string, error)
	// DiffAgainst returns the unified diff between ref and the working tree,
	// rename detection disabled.
	DiffAgainst(ref string) (string, error)
	// StageAll stages every change, including untracked files.
	StageAll() error
	// Unstage removes the given paths from the index, leaving the files.
	Unstage(paths ...string) error
	// ResetIndex clears the index back to HEAD without touching files.
	ResetIndex() error

	// Checkout switches to an existing branch.
	Checkout(branch string) error
	// CheckoutNew creates a branch at HEAD and switches to it.
	CheckoutNew(branch string) error
	// CreateBranch creates a branch at startPoint without switching.
	CreateBranch(name, startPoint string) error
	// Stage stages the given paths.
	Stage(paths ...string) error
	// Commit commits the index with the given message.
	Commit(message string) error
	// StatusChanges returns the porcelain status lines, one per pending
	// change; empty for a pristine tree.
	StatusChanges() ([]string, error)
	// BranchLines returns the raw full branch listing for display.
	BranchLines() ([]string, error)

	// ApplyPatch applies a unified-diff file onto the working tree via the
	// external patch utility, in reverse when reverse is set.
	ApplyPatch(file string, reverse bool) error
	// ApplyDiff applies unified-diff text (fed on stdin) the same way.
	ApplyDiff(diff string, reverse bool) error
}
