package changes

import (
	stackprerrors "stackit.dev/stackpr/internal/errors"
	"stackit.dev/stackpr/internal/github"
)

// RemoteChanges maps each Change-Id to at most one remote pull request.
// Within one reconciliation pass there must never be two open pull requests
// claiming the same Change-Id.
type RemoteChanges map[ChangeID]*github.PullRequest

// Add inserts a pull request under the given Change-Id. Collision policy:
// an open PR beats a closed one; two closed PRs are resolved arbitrarily
// (last wins); two open PRs sharing a Change-Id is an invariant violation
// and fails loudly.
func (rc RemoteChanges) Add(id ChangeID, pull *github.PullRequest) error {
	existing, ok := rc[id]
	if !ok {
		rc[id] = pull
		return nil
	}

	existingOpen := existing.State == "open"
	incomingOpen := pull.State == "open"

	switch {
	case existingOpen && incomingOpen:
		return stackprerrors.NewChangeIDCollisionError(id.String(), existing.Number, pull.Number)
	case incomingOpen:
		rc[id] = pull
	case existingOpen:
		// keep the open one
	default:
		// both closed: last wins
		rc[id] = pull
	}
	return nil
}

// Pop removes and returns the entry for id, if present.
func (rc RemoteChanges) Pop(id ChangeID) (*github.PullRequest, bool) {
	pull, ok := rc[id]
	if ok {
		delete(rc, id)
	}
	return pull, ok
}

// Clone returns a shallow copy. Reconcile mutates its working copy while
// walking the commit list; the caller's index stays untouched.
func (rc RemoteChanges) Clone() RemoteChanges {
	clone := make(RemoteChanges, len(rc))
	for id, pull := range rc {
		clone[id] = pull
	}
	return clone
}
