package changes

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	stackprerrors "stackit.dev/stackpr/internal/errors"
	"stackit.dev/stackpr/internal/git"
	"stackit.dev/stackpr/internal/github"
)

const (
	testTrunk  = "main"
	testPrefix = "stackpr/feature"
)

func testID(n int) ChangeID {
	return ChangeID(fmt.Sprintf("I%040d", n))
}

func commit(sha string, id ChangeID, title string) git.Commit {
	return git.Commit{
		SHA:   sha,
		Title: title,
		Body:  "body\n\nChange-Id: " + id.String(),
	}
}

func openPull(number int, id ChangeID, headSHA string) *github.PullRequest {
	return &github.PullRequest{
		Number:  number,
		HeadRef: testPrefix + "/" + id.String(),
		HeadSHA: headSHA,
		BaseRef: testTrunk,
		State:   "open",
	}
}

func defaultOpts() ReconcileOptions {
	return ReconcileOptions{
		TrunkBranch: testTrunk,
		StackPrefix: testPrefix,
	}
}

func index(t *testing.T, pulls ...*github.PullRequest) RemoteChanges {
	t.Helper()
	rc := make(RemoteChanges)
	for _, pull := range pulls {
		id, ok := FromBranch(pull.HeadRef)
		require.True(t, ok)
		require.NoError(t, rc.Add(id, pull))
	}
	return rc
}

func TestReconcileCreate(t *testing.T) {
	commits := []git.Commit{commit("c1", testID(1), "T1")}

	plan, err := Reconcile(commits, make(RemoteChanges), defaultOpts())
	require.NoError(t, err)

	require.Len(t, plan.Locals, 1)
	require.Equal(t, ActionCreate, plan.Locals[0].Action)
	require.Equal(t, testPrefix+"/"+testID(1).String(), plan.Locals[0].DestBranch)
	require.Equal(t, testTrunk, plan.Locals[0].BaseBranch)
	require.Empty(t, plan.Orphans)
}

func TestReconcileUpdateOnShaMismatch(t *testing.T) {
	remote := index(t, openPull(5, testID(2), "old_sha"))
	commits := []git.Commit{commit("new_sha", testID(2), "T2")}

	plan, err := Reconcile(commits, remote, defaultOpts())
	require.NoError(t, err)

	require.Equal(t, ActionUpdate, plan.Locals[0].Action)
	require.NotNil(t, plan.Locals[0].Pull)
	require.Equal(t, 5, plan.Locals[0].Pull.Number)
}

func TestReconcileIdempotence(t *testing.T) {
	// A second run with nothing changed in between classifies everything
	// as up to date.
	commits := []git.Commit{
		commit("c1", testID(1), "T1"),
		commit("c2", testID(2), "T2"),
	}
	remote := index(t,
		openPull(1, testID(1), "c1"),
		openPull(2, testID(2), "c2"),
	)

	plan, err := Reconcile(commits, remote, defaultOpts())
	require.NoError(t, err)

	for _, local := range plan.Locals {
		require.Equal(t, ActionSkipUpToDate, local.Action)
	}
	require.Empty(t, plan.Orphans)
}

func TestReconcileIdentityStableUnderReorder(t *testing.T) {
	// Reordering commits rewrites their SHAs but keeps their Change-Ids, so
	// both classify as updates with swapped bases, never create plus orphan.
	remote := index(t,
		openPull(1, testID(1), "a1"),
		openPull(2, testID(2), "b1"),
	)
	commits := []git.Commit{
		commit("b2", testID(2), "B"),
		commit("a2", testID(1), "A"),
	}

	plan, err := Reconcile(commits, remote, defaultOpts())
	require.NoError(t, err)

	require.Len(t, plan.Locals, 2)
	require.Equal(t, ActionUpdate, plan.Locals[0].Action)
	require.Equal(t, ActionUpdate, plan.Locals[1].Action)
	require.Equal(t, testTrunk, plan.Locals[0].BaseBranch)
	require.Equal(t, plan.Locals[0].DestBranch, plan.Locals[1].BaseBranch)
	require.Empty(t, plan.Orphans)
}

func TestReconcileOrphanDetection(t *testing.T) {
	remote := index(t,
		openPull(1, testID(1), "c1"),
		openPull(2, testID(2), "c2"),
		openPull(3, testID(3), "c3"),
	)
	commits := []git.Commit{
		commit("c1", testID(1), "T1"),
		commit("c3", testID(3), "T3"),
	}

	plan, err := Reconcile(commits, remote, defaultOpts())
	require.NoError(t, err)

	require.Len(t, plan.Orphans, 1)
	require.Equal(t, testID(2), plan.Orphans[0].ChangeID)
	require.Equal(t, 2, plan.Orphans[0].Pull.Number)
}

func TestReconcileClosedRemoteIsNotOrphan(t *testing.T) {
	closed := openPull(4, testID(4), "c4")
	closed.State = "closed"
	remote := index(t, closed)

	plan, err := Reconcile(nil, remote, defaultOpts())
	require.NoError(t, err)
	require.Empty(t, plan.Orphans)
}

func TestReconcileMergedIsInert(t *testing.T) {
	// A merged PR skips even when the local commit was amended since.
	mergedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	pull := openPull(6, testID(6), "stale_sha")
	pull.State = "closed"
	pull.MergedAt = &mergedAt
	remote := index(t, pull)

	commits := []git.Commit{commit("amended_sha", testID(6), "T6")}

	plan, err := Reconcile(commits, remote, defaultOpts())
	require.NoError(t, err)
	require.Equal(t, ActionSkipMerged, plan.Locals[0].Action)
}

func TestReconcileOnlyUpdateExisting(t *testing.T) {
	opts := defaultOpts()
	opts.OnlyUpdateExisting = true

	remote := index(t, openPull(2, testID(2), "old"))
	commits := []git.Commit{
		commit("c1", testID(1), "T1"), // no remote match
		commit("c2", testID(2), "T2"), // existing pull, amended
	}

	plan, err := Reconcile(commits, remote, opts)
	require.NoError(t, err)

	require.Equal(t, ActionSkipCreate, plan.Locals[0].Action)
	require.Equal(t, ActionUpdate, plan.Locals[1].Action)

	// A skipped creation never gets a remote branch, so the next commit
	// chains over it onto the trunk.
	require.Equal(t, testTrunk, plan.Locals[1].BaseBranch)
}

func TestReconcileNextOnly(t *testing.T) {
	opts := defaultOpts()
	opts.NextOnly = true

	remote := index(t, openPull(2, testID(2), "old"))
	commits := []git.Commit{
		commit("c1", testID(1), "T1"),
		commit("c2", testID(2), "T2"),
	}

	plan, err := Reconcile(commits, remote, opts)
	require.NoError(t, err)

	require.Equal(t, ActionCreate, plan.Locals[0].Action)
	// Skipped regardless of the remote match.
	require.Equal(t, ActionSkipNextOnly, plan.Locals[1].Action)
	// The matched pull was still popped, so it is not an orphan.
	require.Empty(t, plan.Orphans)
}

func TestReconcileMissingChangeID(t *testing.T) {
	commits := []git.Commit{{SHA: "c1", Title: "T1", Body: "no trailer"}}

	_, err := Reconcile(commits, make(RemoteChanges), defaultOpts())
	require.Error(t, err)
	require.ErrorIs(t, err, stackprerrors.ErrMissingChangeID)
}

func TestReconcileDuplicateChangeID(t *testing.T) {
	commits := []git.Commit{
		commit("c1", testID(1), "T1"),
		commit("c2", testID(1), "T2"),
	}

	_, err := Reconcile(commits, make(RemoteChanges), defaultOpts())
	require.Error(t, err)
	require.Contains(t, err.Error(), "share Change-Id")
}

func TestReconcileDoesNotMutateCallerIndex(t *testing.T) {
	remote := index(t, openPull(1, testID(1), "c1"))
	commits := []git.Commit{commit("c1", testID(1), "T1")}

	_, err := Reconcile(commits, remote, defaultOpts())
	require.NoError(t, err)
	require.Len(t, remote, 1)
}

func TestReconcileBaseChaining(t *testing.T) {
	commits := []git.Commit{
		commit("c1", testID(1), "T1"),
		commit("c2", testID(2), "T2"),
		commit("c3", testID(3), "T3"),
	}

	plan, err := Reconcile(commits, make(RemoteChanges), defaultOpts())
	require.NoError(t, err)

	require.Equal(t, testTrunk, plan.Locals[0].BaseBranch)
	require.Equal(t, plan.Locals[0].DestBranch, plan.Locals[1].BaseBranch)
	require.Equal(t, plan.Locals[1].DestBranch, plan.Locals[2].BaseBranch)
}
