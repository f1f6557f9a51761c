package wip

import (
	"strings"
	"testing"
)

// restoreFake builds a fake in the state a successful save leaves behind:
// clean tree, both branches on the remote, WIP commit on top of local HEAD.
func restoreFake(t *testing.T) *fakeClient {
	f := newFake(t)
	f.remote["origin/feature"] = true
	f.remote["origin/feature.WIP"] = true
	f.commits["origin/feature"] = "c1"
	f.commits["origin/feature.WIP"] = "c1+wip"
	f.setAncestor("c1", "c1+wip")
	f.treeDiffs["origin/feature.WIP"] = sampleDiff
	f.materialize[DefaultIndexArtifact] = sampleDiff
	f.materialize[DefaultOtherArtifact] = sampleDiff
	return f
}

func TestRestore(t *testing.T) {
	t.Run("full run replays both artifacts in order", func(t *testing.T) {
		f := restoreFake(t)

		if err := Restore(f, testOptions(f)); err != nil {
			t.Fatalf("Restore() = %v", err)
		}

		want := []string{
			"status",
			"current-branch",
			"commit-id feature",
			"branch-exists origin/feature",
			"commit-id origin/feature",
			"is-ancestor c1 c1",
			"branch-exists origin/feature.WIP",
			"commit-id origin/feature.WIP",
			"is-ancestor c1+wip c1",
			"pull origin feature",
			"commit-id feature",
			"commit-id origin/feature.WIP",
			"is-ancestor c1+wip c1",
			"diff-against origin/feature.WIP",
			"apply-diff reverse=true",
			"apply-patch .wip-index.patch reverse=false",
			"stage-all",
			"unstage .wip-other.patch",
			"apply-patch .wip-other.patch reverse=false",
		}
		if got := strings.Join(f.calls, "\n"); got != strings.Join(want, "\n") {
			t.Errorf("call sequence:\n%s\nwant:\n%s", got, strings.Join(want, "\n"))
		}

		if exists(f.dir, DefaultIndexArtifact) || exists(f.dir, DefaultOtherArtifact) {
			t.Error("artifact files should be deleted after restoring")
		}
	})

	t.Run("absent index artifact skips staging", func(t *testing.T) {
		f := restoreFake(t)
		delete(f.materialize, DefaultIndexArtifact)

		if err := Restore(f, testOptions(f)); err != nil {
			t.Fatalf("Restore() = %v", err)
		}

		if calledWith(f.calls, "apply-patch .wip-index.patch") {
			t.Error("index artifact should not be applied when absent")
		}
		if calledWith(f.calls, "stage-all") {
			t.Error("nothing should be staged without an index artifact")
		}
		if calledWith(f.calls, "unstage") {
			t.Error("other artifact needs no unstaging when stage-all never ran")
		}
		if !calledWith(f.calls, "apply-patch .wip-other.patch reverse=false") {
			t.Error("other artifact should still be applied")
		}
		if exists(f.dir, DefaultOtherArtifact) {
			t.Error("other artifact should be deleted")
		}
	})

	t.Run("dirty tree aborts with zero mutations", func(t *testing.T) {
		f := restoreFake(t)
		f.status = []string{" M b.txt"}

		err := Restore(f, testOptions(f))
		wantKind(t, err, KindPrecondition)
		if len(f.calls) != 1 || f.calls[0] != "status" {
			t.Errorf("only the status query should run, got %v", f.calls)
		}
	})

	t.Run("sentinel artifact aborts before any backend call", func(t *testing.T) {
		f := restoreFake(t)
		writeFile(t, f.dir, DefaultOtherArtifact, sampleDiff)

		err := Restore(f, testOptions(f))
		wantKind(t, err, KindPrecondition)
		if len(f.calls) != 0 {
			t.Errorf("no backend call expected, got %v", f.calls)
		}
	})

	t.Run("missing remote WIP branch", func(t *testing.T) {
		f := restoreFake(t)
		delete(f.remote, "origin/feature.WIP")

		err := Restore(f, testOptions(f))
		wantKind(t, err, KindNotFound)
		if calledWith(f.calls, "pull") {
			t.Error("should fail before pulling")
		}
	})

	t.Run("missing remote main branch", func(t *testing.T) {
		f := restoreFake(t)
		delete(f.remote, "origin/feature")

		err := Restore(f, testOptions(f))
		wantKind(t, err, KindNotFound)
	})

	t.Run("local checkout diverged from remote", func(t *testing.T) {
		f := restoreFake(t)
		f.commits["feature"] = "c2" // neither ancestor of c1 nor of c1+wip

		err := Restore(f, testOptions(f))
		wantKind(t, err, KindAncestry)
		if calledWith(f.calls, "pull") {
			t.Error("should fail before pulling")
		}
	})

	t.Run("snapshot no longer on top after pull", func(t *testing.T) {
		f := restoreFake(t)
		// Someone force-pushes the WIP branch to an unrelated commit while
		// the pull runs. The pre-pull guard passed, so only the re-resolved
		// post-pull check can catch it.
		f.onPull = func() {
			f.commits["origin/feature.WIP"] = "c9"
		}

		err := Restore(f, testOptions(f))
		wantKind(t, err, KindAncestry)
		if calledWith(f.calls, "apply-diff") {
			t.Error("should fail before touching the working tree")
		}
	})
}
