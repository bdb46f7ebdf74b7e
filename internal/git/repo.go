package git

import (
	"context"
	"fmt"
	"os"

	gogit "github.com/go-git/go-git/v5"

	stackprerrors "stackit.dev/stackpr/internal/errors"
)

// GetRepoRoot returns the root directory of the Git repository containing
// the current working directory.
func GetRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return GetRepoRootFrom(wd)
}

// GetRepoRootFrom returns the root directory of the Git repository containing dir.
func GetRepoRootFrom(dir string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// GetRemoteURL returns the first URL of the named remote.
func GetRemoteURL(repoRoot, remoteName string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(repoRoot, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("remote %q not found: %w", remoteName, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %q has no URL", remoteName)
	}
	return urls[0], nil
}

// CurrentBranch returns the branch HEAD points at.
// Returns ErrNotOnBranch when HEAD is detached.
func CurrentBranch(ctx context.Context, runner *CommandRunner) (string, error) {
	name, err := runner.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	if name == "HEAD" {
		return "", stackprerrors.ErrNotOnBranch
	}
	return name, nil
}
