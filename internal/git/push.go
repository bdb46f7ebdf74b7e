package git

import (
	"context"
	"fmt"
)

// ForcePushCommit force-pushes a single commit to the given remote branch.
// It parks a disposable local branch at the commit, pushes it, and deletes
// the local pointer again. The pointer deletion runs even when the push
// fails so a failed run never leaves stray branches behind.
func ForcePushCommit(ctx context.Context, runner *CommandRunner, sha, remote, destBranch string) error {
	tmpBranch := "stackpr-push-" + sha[:8]

	if _, err := runner.Run(ctx, "branch", "--no-track", "-f", tmpBranch, sha); err != nil {
		return fmt.Errorf("failed to create push pointer for %.8s: %w", sha, err)
	}
	defer func() {
		_, _ = runner.Run(ctx, "branch", "-D", tmpBranch)
	}()

	refspec := fmt.Sprintf("%s:refs/heads/%s", tmpBranch, destBranch)
	if _, err := runner.Run(ctx, "push", "-f", remote, refspec); err != nil {
		return fmt.Errorf("failed to push %.8s to %s/%s: %w", sha, remote, destBranch, err)
	}
	return nil
}

// FetchRemote fetches the given remote.
func FetchRemote(ctx context.Context, runner *CommandRunner, remote string) error {
	if _, err := runner.Run(ctx, "fetch", remote); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", remote, err)
	}
	return nil
}

// RebaseOnto rebases the current branch onto the given upstream ref.
func RebaseOnto(ctx context.Context, runner *CommandRunner, upstream string) error {
	if _, err := runner.Run(ctx, "rebase", upstream); err != nil {
		return fmt.Errorf("failed to rebase onto %s: %w", upstream, err)
	}
	return nil
}
