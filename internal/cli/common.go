package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stackit.dev/stackpr/internal/config"
	"stackit.dev/stackpr/internal/git"
	"stackit.dev/stackpr/internal/github"
	"stackit.dev/stackpr/internal/output"
)

// runtime bundles the collaborators every command needs.
type runtime struct {
	Config config.Config
	Runner *git.CommandRunner
	Client github.Client
	Splog  *output.Splog
}

// commonFlags are the flags shared by the commands that parameterize the core.
type commonFlags struct {
	trunk        string
	branchPrefix string
	author       string
}

// newRuntime discovers the repository, loads configuration, and builds the
// authenticated GitHub client.
func newRuntime(ctx context.Context, flags commonFlags, verbose bool) (*runtime, error) {
	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return nil, err
	}
	runner := git.NewCommandRunner(repoRoot)

	cfg, err := config.Load(ctx, runner)
	if err != nil {
		return nil, err
	}
	cfg.Verbose = verbose

	if flags.trunk != "" {
		remote, branch, err := config.SplitTrunk(flags.trunk)
		if err != nil {
			return nil, err
		}
		cfg.Remote = remote
		cfg.TrunkBranch = branch
	}
	if flags.branchPrefix != "" {
		cfg.BranchPrefix = flags.branchPrefix
	}
	if flags.author != "" {
		cfg.Author = flags.author
	}

	remoteURL, err := git.GetRemoteURL(repoRoot, cfg.Remote)
	if err != nil {
		return nil, err
	}
	repoInfo, err := github.ParseRemoteURL(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("remote %q does not look like a GitHub repository: %w", cfg.Remote, err)
	}

	token, err := github.GetToken()
	if err != nil {
		return nil, err
	}
	client, err := github.NewClient(ctx, repoInfo.Hostname, token, repoInfo.Owner, repoInfo.Repo)
	if err != nil {
		return nil, err
	}

	return &runtime{
		Config: cfg,
		Runner: runner,
		Client: client,
		Splog:  output.NewSplog(verbose),
	}, nil
}

// registerCommonFlags registers the flags shared across commands.
func registerCommonFlags(cmd *cobra.Command, flags *commonFlags) {
	cmd.Flags().StringVarP(&flags.trunk, "trunk", "t", "", "Trunk the stack targets, as <remote>/<branch>. Defaults to git config stackpr.trunk or origin/main.")
	cmd.Flags().StringVar(&flags.branchPrefix, "branch-prefix", "", "Remote branch namespace for stacked branches. Defaults to git config stackpr.branchPrefix or \"stackpr\".")
	cmd.Flags().StringVar(&flags.author, "author", "", "GitHub login owning the stack's pull requests. Defaults to git config stackpr.author.")
}
