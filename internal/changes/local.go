package changes

import (
	"fmt"

	stackprerrors "stackit.dev/stackpr/internal/errors"
	"stackit.dev/stackpr/internal/git"
)

// ValidateIdentities checks that every commit carries a Change-Id trailer and
// that no two commits share one. The executor calls this before any remote
// I/O so identity errors never leave the remote half-touched.
func ValidateIdentities(commits []git.Commit) error {
	seen := make(map[ChangeID]string, len(commits))
	for _, commit := range commits {
		id, ok := FromCommitMessage(commit.Body)
		if !ok {
			return stackprerrors.NewMissingChangeIDError(commit.SHA, commit.Title)
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf(
				"commits %.8s and %.8s share Change-Id %s; each commit in the stack needs its own",
				prev, commit.SHA, id,
			)
		}
		seen[id] = commit.SHA
	}
	return nil
}
