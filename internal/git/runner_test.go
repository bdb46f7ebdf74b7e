package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	stackprerrors "stackit.dev/stackpr/internal/errors"
	"stackit.dev/stackpr/internal/git"
	"stackit.dev/stackpr/testhelpers"
)

func TestRunnerRun(t *testing.T) {
	repo := testhelpers.NewGitRepo(t)
	runner := git.NewCommandRunner(repo.Dir)

	out, err := runner.Run(context.Background(), "rev-parse", "--abbrev-ref", "HEAD")
	require.NoError(t, err)
	require.Equal(t, "main", out)
}

func TestRunnerRunFailure(t *testing.T) {
	repo := testhelpers.NewGitRepo(t)
	runner := git.NewCommandRunner(repo.Dir)

	_, err := runner.Run(context.Background(), "rev-parse", "--verify", "nosuchref")
	require.Error(t, err)

	var gitErr *stackprerrors.GitCommandError
	require.ErrorAs(t, err, &gitErr)
	require.Equal(t, []string{"rev-parse", "--verify", "nosuchref"}, gitErr.Args)
}

func TestConfigGet(t *testing.T) {
	repo := testhelpers.NewGitRepo(t)
	runner := git.NewCommandRunner(repo.Dir)
	ctx := context.Background()

	// Missing keys are not errors.
	value, err := runner.ConfigGet(ctx, "stackpr.trunk")
	require.NoError(t, err)
	require.Empty(t, value)

	repo.Git("config", "stackpr.trunk", "origin/develop")

	value, err = runner.ConfigGet(ctx, "stackpr.trunk")
	require.NoError(t, err)
	require.Equal(t, "origin/develop", value)
}

func TestCurrentBranch(t *testing.T) {
	repo := testhelpers.NewGitRepo(t)
	runner := git.NewCommandRunner(repo.Dir)
	ctx := context.Background()

	branch, err := git.CurrentBranch(ctx, runner)
	require.NoError(t, err)
	require.Equal(t, "main", branch)

	repo.Git("checkout", "--detach", "HEAD")
	_, err = git.CurrentBranch(ctx, runner)
	require.ErrorIs(t, err, stackprerrors.ErrNotOnBranch)
}

func TestGetRepoRootFrom(t *testing.T) {
	repo := testhelpers.NewGitRepo(t)
	repo.WriteFile("sub/dir/file.txt", "x\n")

	root, err := git.GetRepoRootFrom(repo.Dir + "/sub/dir")
	require.NoError(t, err)
	require.Equal(t, repo.Dir, root)

	_, err = git.GetRepoRootFrom(t.TempDir())
	require.Error(t, err)
}

func TestGetRemoteURL(t *testing.T) {
	repo := testhelpers.NewGitRepoWithRemote(t)

	url, err := git.GetRemoteURL(repo.Dir, "origin")
	require.NoError(t, err)
	require.Equal(t, repo.RemoteDir, url)

	_, err = git.GetRemoteURL(repo.Dir, "upstream")
	require.Error(t, err)
}
