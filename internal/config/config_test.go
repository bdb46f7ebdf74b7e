package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"stackit.dev/stackpr/internal/config"
	"stackit.dev/stackpr/internal/git"
	"stackit.dev/stackpr/testhelpers"
)

func TestLoadDefaults(t *testing.T) {
	repo := testhelpers.NewGitRepo(t)
	runner := git.NewCommandRunner(repo.Dir)

	cfg, err := config.Load(context.Background(), runner)
	require.NoError(t, err)
	require.Equal(t, "origin", cfg.Remote)
	require.Equal(t, "main", cfg.TrunkBranch)
	require.Equal(t, "stackpr", cfg.BranchPrefix)
	require.False(t, cfg.Draft)
	require.Empty(t, cfg.Author)
}

func TestLoadFromGitConfig(t *testing.T) {
	repo := testhelpers.NewGitRepo(t)
	repo.Git("config", "stackpr.trunk", "upstream/develop")
	repo.Git("config", "stackpr.branchPrefix", "stacks")
	repo.Git("config", "stackpr.draft", "true")
	repo.Git("config", "stackpr.author", "octocat")
	runner := git.NewCommandRunner(repo.Dir)

	cfg, err := config.Load(context.Background(), runner)
	require.NoError(t, err)
	require.Equal(t, "upstream", cfg.Remote)
	require.Equal(t, "develop", cfg.TrunkBranch)
	require.Equal(t, "stacks", cfg.BranchPrefix)
	require.True(t, cfg.Draft)
	require.Equal(t, "octocat", cfg.Author)
}

func TestLoadInvalidTrunk(t *testing.T) {
	repo := testhelpers.NewGitRepo(t)
	repo.Git("config", "stackpr.trunk", "nobranch")
	runner := git.NewCommandRunner(repo.Dir)

	_, err := config.Load(context.Background(), runner)
	require.Error(t, err)
}

func TestSplitTrunk(t *testing.T) {
	remote, branch, err := config.SplitTrunk("origin/main")
	require.NoError(t, err)
	require.Equal(t, "origin", remote)
	require.Equal(t, "main", branch)

	// Branch names may themselves contain slashes.
	remote, branch, err = config.SplitTrunk("origin/release/v2")
	require.NoError(t, err)
	require.Equal(t, "origin", remote)
	require.Equal(t, "release/v2", branch)

	for _, invalid := range []string{"", "main", "/main", "origin/"} {
		_, _, err := config.SplitTrunk(invalid)
		require.Error(t, err, invalid)
	}
}

func TestDerivedNames(t *testing.T) {
	cfg := config.Config{
		Remote:       "origin",
		TrunkBranch:  "main",
		LocalBranch:  "feature",
		BranchPrefix: "stackpr",
	}

	require.Equal(t, "stackpr/feature", cfg.StackPrefix())
	require.Equal(t, "stackpr/feature/Iabc", cfg.DestBranch("Iabc"))
	require.Equal(t, "origin/main", cfg.TrunkRef())
}
