// Package status implements the read-only stack listing.
package status

import (
	"context"
	"fmt"

	"stackit.dev/stackpr/internal/changes"
	"stackit.dev/stackpr/internal/config"
	"stackit.dev/stackpr/internal/git"
	"stackit.dev/stackpr/internal/github"
	"stackit.dev/stackpr/internal/output"
)

// Options contains the collaborators and configuration for the status action.
type Options struct {
	Config config.Config
	Runner *git.CommandRunner
	Client github.Client
	Splog  *output.Splog
}

// Action prints the current stack: each local commit with its classification
// and, when one exists, its pull request. Read-only; nothing is pushed,
// created, or deleted.
func Action(ctx context.Context, opts Options) error {
	cfg := opts.Config
	runner := opts.Runner
	splog := opts.Splog

	if cfg.LocalBranch == "" {
		branch, err := git.CurrentBranch(ctx, runner)
		if err != nil {
			return err
		}
		cfg.LocalBranch = branch
	}

	mergeBase, err := git.GetMergeBase(ctx, runner, cfg.TrunkRef(), cfg.LocalBranch)
	if err != nil {
		return fmt.Errorf("failed to find merge base with %s: %w", cfg.TrunkRef(), err)
	}
	shas, err := git.ListCommits(ctx, runner, mergeBase, cfg.LocalBranch)
	if err != nil {
		return err
	}
	if len(shas) == 0 {
		splog.Info("stack is empty")
		return nil
	}

	commits := make([]git.Commit, 0, len(shas))
	for _, sha := range shas {
		commit, err := git.GetCommit(ctx, runner, sha)
		if err != nil {
			return err
		}
		commits = append(commits, commit)
	}

	if err := changes.ValidateIdentities(commits); err != nil {
		return err
	}

	remote, err := changes.BuildRemoteChanges(ctx, opts.Client, cfg.Author, cfg.StackPrefix())
	if err != nil {
		return err
	}

	plan, err := changes.Reconcile(commits, remote, changes.ReconcileOptions{
		TrunkBranch:        cfg.TrunkBranch,
		StackPrefix:        cfg.StackPrefix(),
		OnlyUpdateExisting: cfg.OnlyUpdateExisting,
		NextOnly:           cfg.NextOnly,
	})
	if err != nil {
		return err
	}

	splog.Info("%s", output.Heading(fmt.Sprintf("Stack on %s (%d changes):", cfg.LocalBranch, len(plan.Locals))))
	for i := len(plan.Locals) - 1; i >= 0; i-- {
		local := plan.Locals[i]
		line := fmt.Sprintf("  %s %s", output.Subtle(shortSHA(local.SHA)), local.Title)
		if local.Pull != nil {
			line += " " + output.Subtle(fmt.Sprintf("#%d %s", local.Pull.Number, local.Pull.HTMLURL))
		}
		line += " " + describe(local.Action)
		splog.Info("%s", line)
	}

	for _, orphan := range plan.Orphans {
		splog.Info("  %s %s %s", output.Skip("orphan"), orphan.Pull.HeadRef,
			output.Subtle(fmt.Sprintf("(#%d)", orphan.Pull.Number)))
	}

	return nil
}

func describe(action changes.Action) string {
	switch action {
	case changes.ActionCreate:
		return output.Create("[new]")
	case changes.ActionUpdate:
		return output.Update("[out of date]")
	case changes.ActionSkipMerged:
		return output.Skip("[merged]")
	case changes.ActionSkipUpToDate:
		return output.Skip("[up to date]")
	default:
		return output.Skip("[" + string(action) + "]")
	}
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
