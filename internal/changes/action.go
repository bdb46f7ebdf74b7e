package changes

// Action is the terminal classification of one local commit for one run.
type Action string

const (
	// ActionCreate opens a new pull request for the commit.
	ActionCreate Action = "create"
	// ActionUpdate patches the existing pull request (head moved, retitled,
	// or rebased onto a different base).
	ActionUpdate Action = "update"
	// ActionSkipMerged leaves a commit alone because its pull request has
	// already been merged.
	ActionSkipMerged Action = "skip-merged"
	// ActionSkipUpToDate leaves a commit alone because the remote head SHA
	// already matches.
	ActionSkipUpToDate Action = "skip-up-to-date"
	// ActionSkipCreate suppresses creation when only updating existing pulls.
	ActionSkipCreate Action = "skip-create"
	// ActionSkipNextOnly skips every commit beyond the first in next-only mode.
	ActionSkipNextOnly Action = "skip-next-only"
)

// Mutates reports whether the action pushes a branch or touches a pull request.
func (a Action) Mutates() bool {
	return a == ActionCreate || a == ActionUpdate
}

// Describe returns a human-readable phrase for the action. In planned mode
// (dry-run) the phrasing is prospective ("to create"), otherwise past tense.
func (a Action) Describe(planned bool) string {
	if planned {
		switch a {
		case ActionCreate:
			return "to create"
		case ActionUpdate:
			return "to update"
		case ActionSkipMerged:
			return "to skip (merged)"
		case ActionSkipUpToDate:
			return "to skip (up to date)"
		case ActionSkipCreate:
			return "to skip (no existing pull)"
		case ActionSkipNextOnly:
			return "to skip (next-only)"
		}
		return string(a)
	}

	switch a {
	case ActionCreate:
		return "created"
	case ActionUpdate:
		return "updated"
	case ActionSkipMerged:
		return "skipped (merged)"
	case ActionSkipUpToDate:
		return "skipped (up to date)"
	case ActionSkipCreate:
		return "skipped (no existing pull)"
	case ActionSkipNextOnly:
		return "skipped (next-only)"
	}
	return string(a)
}
