package changes

import (
	"fmt"
	"sort"

	stackprerrors "stackit.dev/stackpr/internal/errors"
	"stackit.dev/stackpr/internal/git"
	"stackit.dev/stackpr/internal/github"
)

// LocalChange represents one local commit in the stack and its classified
// action for this run. Built fresh on every invocation; never persisted.
type LocalChange struct {
	ChangeID   ChangeID
	SHA        string
	Title      string
	Body       string
	BaseBranch string
	DestBranch string
	Action     Action
	// Pull is the matched remote pull request, nil for create/skip-create.
	Pull *github.PullRequest
}

// OrphanChange is a Change-Id with an open remote pull request but no local
// commit in the current run. Its backing branch is a deletion candidate.
type OrphanChange struct {
	ChangeID ChangeID
	Pull     *github.PullRequest
}

// Plan is the reconciler's output: the ordered per-commit actions plus the
// orphaned remote entries to clean up.
type Plan struct {
	Locals  []LocalChange
	Orphans []OrphanChange
}

// ReconcileOptions parameterize a reconciliation pass.
type ReconcileOptions struct {
	// TrunkBranch is the remote base branch the bottom of the stack targets.
	TrunkBranch string
	// StackPrefix is the remote branch namespace, "{branchPrefix}/{branch}".
	StackPrefix string
	// OnlyUpdateExisting suppresses pull request creation: commits with no
	// remote match classify as skip-create.
	OnlyUpdateExisting bool
	// NextOnly restricts the run to the bottom-most commit of the stack.
	NextOnly bool
}

// Reconcile joins the ordered local commits (oldest first) against the
// remote index and produces the action plan. It is a pure function: no I/O,
// and the caller's index is not mutated.
//
// Matching pops entries from a working copy of the index as the walk
// proceeds, so the leftovers with open pull requests are exactly the orphans
// and no separate diffing pass is needed.
func Reconcile(commits []git.Commit, remote RemoteChanges, opts ReconcileOptions) (Plan, error) {
	remaining := remote.Clone()
	seen := make(map[ChangeID]string, len(commits))

	locals := make([]LocalChange, 0, len(commits))

	// lastDest tracks the base for the next commit: the previous commit's
	// destination branch, or the trunk for the first. A skip-create commit
	// never gets a remote branch, so it does not advance the chain.
	lastDest := opts.TrunkBranch

	for i, commit := range commits {
		id, ok := FromCommitMessage(commit.Body)
		if !ok {
			return Plan{}, stackprerrors.NewMissingChangeIDError(commit.SHA, commit.Title)
		}
		if prev, dup := seen[id]; dup {
			return Plan{}, fmt.Errorf(
				"commits %.8s and %.8s share Change-Id %s; each commit in the stack needs its own",
				prev, commit.SHA, id,
			)
		}
		seen[id] = commit.SHA

		pull, matched := remaining.Pop(id)

		local := LocalChange{
			ChangeID:   id,
			SHA:        commit.SHA,
			Title:      commit.Title,
			Body:       commit.Body,
			BaseBranch: lastDest,
			DestBranch: opts.StackPrefix + "/" + id.String(),
		}
		if matched {
			local.Pull = pull
		}

		switch {
		case opts.NextOnly && i > 0:
			local.Action = ActionSkipNextOnly
		case !matched && opts.OnlyUpdateExisting:
			local.Action = ActionSkipCreate
		case !matched:
			local.Action = ActionCreate
		case pull.Merged():
			local.Action = ActionSkipMerged
		case pull.HeadSHA == commit.SHA:
			local.Action = ActionSkipUpToDate
		default:
			local.Action = ActionUpdate
		}

		if local.Action != ActionSkipCreate {
			lastDest = local.DestBranch
		}

		locals = append(locals, local)
	}

	var orphans []OrphanChange
	for id, pull := range remaining {
		if pull.State == "open" {
			orphans = append(orphans, OrphanChange{ChangeID: id, Pull: pull})
		}
	}
	sort.Slice(orphans, func(i, j int) bool {
		return orphans[i].ChangeID < orphans[j].ChangeID
	})

	return Plan{Locals: locals, Orphans: orphans}, nil
}
