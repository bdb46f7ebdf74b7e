// Package config holds the explicit configuration value threaded through all
// core calls. Defaults come from git config, overridden by CLI flags; there
// is no ambient global state.
package config

import (
	"context"
	"fmt"
	"strings"

	"stackit.dev/stackpr/internal/git"
)

// Default values used when neither git config nor flags say otherwise.
const (
	DefaultRemote       = "origin"
	DefaultTrunkBranch  = "main"
	DefaultBranchPrefix = "stackpr"
)

// git config keys consulted by Load
const (
	keyTrunk        = "stackpr.trunk"
	keyBranchPrefix = "stackpr.branchPrefix"
	keyDraft        = "stackpr.draft"
	keyAuthor       = "stackpr.author"
)

// Config parameterizes a single run. It is built once per invocation and
// passed by value through the core.
type Config struct {
	// Remote is the git remote name, e.g. "origin".
	Remote string
	// TrunkBranch is the remote base branch of the stack, e.g. "main".
	TrunkBranch string
	// LocalBranch is the local branch being stacked.
	LocalBranch string
	// BranchPrefix is the remote branch namespace, e.g. "stackpr".
	BranchPrefix string
	// Author is the GitHub login owning the stack's pull requests.
	Author string

	Draft              bool
	DryRun             bool
	NextOnly           bool
	SkipRebase         bool
	OnlyUpdateExisting bool
	AssumeYes          bool
	Verbose            bool
}

// Load reads configuration defaults from git config. Flag values are merged
// in by the CLI layer after loading.
func Load(ctx context.Context, runner *git.CommandRunner) (Config, error) {
	cfg := Config{
		Remote:       DefaultRemote,
		TrunkBranch:  DefaultTrunkBranch,
		BranchPrefix: DefaultBranchPrefix,
	}

	if trunk, err := runner.ConfigGet(ctx, keyTrunk); err != nil {
		return Config{}, err
	} else if trunk != "" {
		remote, branch, err := SplitTrunk(trunk)
		if err != nil {
			return Config{}, err
		}
		cfg.Remote = remote
		cfg.TrunkBranch = branch
	}

	if prefix, err := runner.ConfigGet(ctx, keyBranchPrefix); err != nil {
		return Config{}, err
	} else if prefix != "" {
		cfg.BranchPrefix = prefix
	}

	if draft, err := runner.ConfigGet(ctx, keyDraft); err != nil {
		return Config{}, err
	} else if draft != "" {
		cfg.Draft = draft == "true" || draft == "1"
	}

	if author, err := runner.ConfigGet(ctx, keyAuthor); err != nil {
		return Config{}, err
	} else if author != "" {
		cfg.Author = author
	}

	return cfg, nil
}

// SplitTrunk parses a "<remote>/<branch>" trunk reference.
func SplitTrunk(trunk string) (remote, branch string, err error) {
	parts := strings.SplitN(trunk, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid trunk %q: expected <remote>/<branch>", trunk)
	}
	return parts[0], parts[1], nil
}

// StackPrefix returns the remote branch namespace for this local branch,
// "{branchPrefix}/{localBranch}". Every stacked branch lives under it.
func (c Config) StackPrefix() string {
	return c.BranchPrefix + "/" + c.LocalBranch
}

// DestBranch returns the remote branch name for one Change-Id.
func (c Config) DestBranch(changeID string) string {
	return c.StackPrefix() + "/" + changeID
}

// TrunkRef returns the remote-tracking ref of the trunk, e.g. "origin/main".
func (c Config) TrunkRef() string {
	return c.Remote + "/" + c.TrunkBranch
}
