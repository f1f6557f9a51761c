package wip

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeClient is an in-memory Client. It keeps just enough branch/commit
// state to drive the workflows, records every call in order, and emulates
// the few filesystem side effects the real backend has (checkout dropping
// files that only exist on the WIP branch, reverse-applying the WIP diff
// materializing the artifact files).
type fakeClient struct {
	t   *testing.T
	dir string

	branch    string            // current branch
	commits   map[string]string // ref → commit id
	local     map[string]bool   // local branch names
	remote    map[string]bool   // remote-tracking names ("origin/feature")
	ancestors map[string]bool   // "ancestor<commit" pairs that hold
	status    []string          // porcelain lines

	stagedDiffs []string          // successive DiffStaged results
	treeDiffs   map[string]string // ref → DiffAgainst result
	materialize map[string]string // file → content written by ApplyDiff(reverse)

	calls  []string
	failOn map[string]error // call prefix → injected error
	onPull func()           // state mutation applied by Pull, for race tests
}

func newFake(t *testing.T) *fakeClient {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	return &fakeClient{
		t:           t,
		dir:         dir,
		branch:      "feature",
		commits:     map[string]string{"feature": "c1"},
		local:       map[string]bool{"feature": true},
		remote:      map[string]bool{},
		ancestors:   map[string]bool{},
		treeDiffs:   map[string]string{},
		materialize: map[string]string{},
		failOn:      map[string]error{},
	}
}

func (f *fakeClient) setAncestor(ancestor, commit string) {
	f.ancestors[ancestor+"<"+commit] = true
}

// record appends a call and returns any injected failure for it.
func (f *fakeClient) record(format string, args ...any) error {
	call := fmt.Sprintf(format, args...)
	f.calls = append(f.calls, call)
	for prefix, err := range f.failOn {
		if strings.HasPrefix(call, prefix) {
			return err
		}
	}
	return nil
}

func (f *fakeClient) CurrentBranch() (string, error) {
	return f.branch, f.record("current-branch")
}

func (f *fakeClient) CommitID(ref string) (string, error) {
	if err := f.record("commit-id %s", ref); err != nil {
		return "", err
	}
	id, ok := f.commits[ref]
	if !ok {
		return "", Backendf("no commit for %s", ref)
	}
	return id, nil
}

func (f *fakeClient) BranchExists(name string) (bool, error) {
	return f.local[name] || f.remote[name], f.record("branch-exists %s", name)
}

func (f *fakeClient) IsAncestor(commit, ancestor string) (bool, error) {
	return commit == ancestor || f.ancestors[ancestor+"<"+commit],
		f.record("is-ancestor %s %s", commit, ancestor)
}

func (f *fakeClient) DeleteLocalBranch(name string, mustExist bool) error {
	if err := f.record("delete-local %s %v", name, mustExist); err != nil {
		return err
	}
	if !f.local[name] {
		if mustExist {
			return NotFoundf("local branch %s not found", name)
		}
		return nil
	}
	delete(f.local, name)
	return nil
}

func (f *fakeClient) FetchPrune(remote string) error {
	return f.record("fetch-prune %s", remote)
}

func (f *fakeClient) Pull(remote, branch string) error {
	if err := f.record("pull %s %s", remote, branch); err != nil {
		return err
	}
	if f.onPull != nil {
		f.onPull()
	}
	return nil
}

func (f *fakeClient) PushForce(remote, branch string, setUpstream bool) error {
	if err := f.record("push-force %s %s upstream=%v", remote, branch, setUpstream); err != nil {
		return err
	}
	ref := remote + "/" + branch
	f.remote[ref] = true
	f.commits[ref] = f.commits[branch]
	return nil
}

func (f *fakeClient) PushDelete(remote, branch string) error {
	if err := f.record("push-delete %s %s", remote, branch); err != nil {
		return err
	}
	ref := remote + "/" + branch
	delete(f.remote, ref)
	delete(f.commits, ref)
	return nil
}

func (f *fakeClient) DiffStaged() (string, error) {
	if err := f.record("diff-staged"); err != nil {
		return "", err
	}
	if len(f.stagedDiffs) == 0 {
		return "", nil
	}
	d := f.stagedDiffs[0]
	f.stagedDiffs = f.stagedDiffs[1:]
	return d, nil
}

func (f *fakeClient) DiffAgainst(ref string) (string, error) {
	return f.treeDiffs[ref], f.record("diff-against %s", ref)
}

func (f *fakeClient) StageAll() error {
	return f.record("stage-all")
}

func (f *fakeClient) Unstage(paths ...string) error {
	return f.record("unstage %s", strings.Join(paths, " "))
}

func (f *fakeClient) ResetIndex() error {
	return f.record("reset-index")
}

func (f *fakeClient) Checkout(branch string) error {
	if err := f.record("checkout %s", branch); err != nil {
		return err
	}
	// Files tracked only on the WIP branch disappear when switching away,
	// which is how the real save ends with a pristine tree.
	if strings.HasSuffix(f.branch, Suffix) && !strings.HasSuffix(branch, Suffix) {
		entries, err := os.ReadDir(f.dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".patch") {
				os.Remove(filepath.Join(f.dir, e.Name()))
			}
		}
	}
	f.branch = branch
	return nil
}

func (f *fakeClient) CheckoutNew(branch string) error {
	if err := f.record("checkout-new %s", branch); err != nil {
		return err
	}
	f.commits[branch] = f.commits[f.branch]
	f.local[branch] = true
	f.branch = branch
	return nil
}

func (f *fakeClient) CreateBranch(name, startPoint string) error {
	if err := f.record("create-branch %s %s", name, startPoint); err != nil {
		return err
	}
	f.local[name] = true
	f.commits[name] = f.commits[startPoint]
	return nil
}

func (f *fakeClient) Stage(paths ...string) error {
	return f.record("stage %s", strings.Join(paths, " "))
}

func (f *fakeClient) Commit(message string) error {
	if err := f.record("commit %q", message); err != nil {
		return err
	}
	old := f.commits[f.branch]
	f.commits[f.branch] = old + "+wip"
	f.setAncestor(old, old+"+wip")
	return nil
}

func (f *fakeClient) StatusChanges() ([]string, error) {
	return f.status, f.record("status")
}

func (f *fakeClient) BranchLines() ([]string, error) {
	if err := f.record("branch-lines"); err != nil {
		return nil, err
	}
	var lines []string
	for name := range f.local {
		if name == f.branch {
			lines = append(lines, "* "+name)
		} else {
			lines = append(lines, "  "+name)
		}
	}
	for name := range f.remote {
		lines = append(lines, "  remotes/"+name)
	}
	return lines, nil
}

func (f *fakeClient) ApplyPatch(file string, reverse bool) error {
	return f.record("apply-patch %s reverse=%v", file, reverse)
}

func (f *fakeClient) ApplyDiff(diff string, reverse bool) error {
	if err := f.record("apply-diff reverse=%v", reverse); err != nil {
		return err
	}
	if reverse {
		for name, content := range f.materialize {
			if err := os.WriteFile(filepath.Join(f.dir, name), []byte(content), 0644); err != nil {
				return err
			}
		}
	}
	return nil
}

// helpers shared by the workflow tests

func testOptions(f *fakeClient) Options {
	return Options{
		Dir:           f.dir,
		Remote:        "origin",
		IndexArtifact: DefaultIndexArtifact,
		OtherArtifact: DefaultOtherArtifact,
		Out:           &strings.Builder{},
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

func wantKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("got nil error, want kind %v", kind)
	}
	if got := KindOf(err); got != kind {
		t.Fatalf("error kind = %v, want %v (err: %v)", got, kind, err)
	}
}

func calledWith(calls []string, prefix string) bool {
	for _, c := range calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}
