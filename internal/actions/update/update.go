// Package update implements the stackpr update action: reconciling the local
// commit stack against the remote pull requests and applying the resulting
// plan in order.
package update

import (
	"context"
	"fmt"

	"stackit.dev/stackpr/internal/changes"
	"stackit.dev/stackpr/internal/config"
	"stackit.dev/stackpr/internal/git"
	"stackit.dev/stackpr/internal/github"
	"stackit.dev/stackpr/internal/output"
)

// Options contains the collaborators and configuration for the update action.
type Options struct {
	Config config.Config
	Runner *git.CommandRunner
	Client github.Client
	Splog  *output.Splog
}

// Action runs one reconciliation pass and, unless dry-run is set, applies
// the plan: force-push each stacked branch, create or update each pull
// request with correct base chaining, refresh the stack comments, and clean
// up orphaned branches.
//
// Branch and PR sync are strictly sequential: each pull request's base must
// exist remotely before a dependent pull request references it. Comment sync
// and orphan cleanup are best-effort.
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

	if err := git.FetchRemote(ctx, runner, cfg.Remote); err != nil {
		return err
	}
	if !cfg.SkipRebase {
		splog.Debug("rebasing %s onto %s", cfg.LocalBranch, cfg.TrunkRef())
		if err := git.RebaseOnto(ctx, runner, cfg.TrunkRef()); err != nil {
			return err
		}
	}

	commits, err := loadStackCommits(ctx, runner, cfg)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		splog.Info("stack is empty, nothing to do")
		return nil
	}

	// Identity errors must surface before any remote I/O.
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

	if cfg.DryRun {
		printPlan(plan, splog)
		return nil
	}

	chain, applied, err := syncSequential(ctx, plan, opts)
	if err != nil {
		if applied > 0 {
			return fmt.Errorf(
				"stack partially updated (%d of %d changes applied), already-applied changes are kept and re-running is safe: %w",
				applied, len(plan.Locals), err,
			)
		}
		return err
	}

	syncStackComments(ctx, opts.Client, chain, splog)

	if confirmOrphanCleanup(plan.Orphans, cfg.AssumeYes, splog) {
		cleanupOrphans(ctx, opts.Client, plan.Orphans, splog)
	}

	return nil
}

// loadStackCommits enumerates the commits between the trunk fork point and
// the branch tip, oldest first, with titles and message bodies.
func loadStackCommits(ctx context.Context, runner *git.CommandRunner, cfg config.Config) ([]git.Commit, error) {
	mergeBase, err := git.GetMergeBase(ctx, runner, cfg.TrunkRef(), cfg.LocalBranch)
	if err != nil {
		return nil, fmt.Errorf("failed to find merge base with %s: %w", cfg.TrunkRef(), err)
	}

	shas, err := git.ListCommits(ctx, runner, mergeBase, cfg.LocalBranch)
	if err != nil {
		return nil, err
	}

	commits := make([]git.Commit, 0, len(shas))
	for _, sha := range shas {
		commit, err := git.GetCommit(ctx, runner, sha)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

// syncSequential applies the per-commit plan in order and returns the chain
// of pull requests for cross-linking plus the number of mutations applied.
func syncSequential(ctx context.Context, plan changes.Plan, opts Options) ([]*github.PullRequest, int, error) {
	cfg := opts.Config
	splog := opts.Splog

	var chain []*github.PullRequest
	var prevNumber *int
	applied := 0

	for _, local := range plan.Locals {
		if !local.Action.Mutates() {
			splog.Info("%s %s %s", styleAction(local.Action), local.Title, output.Subtle(shortSHA(local.SHA)))
			if local.Pull != nil {
				chain = append(chain, local.Pull)
				number := local.Pull.Number
				prevNumber = &number
			}
			continue
		}

		if err := git.ForcePushCommit(ctx, opts.Runner, local.SHA, cfg.Remote, local.DestBranch); err != nil {
			return chain, applied, err
		}

		body := FormatPullRequestBody(local.Body, prevNumber)

		var pull *github.PullRequest
		var err error
		switch local.Action {
		case changes.ActionCreate:
			pull, err = opts.Client.CreatePullRequest(ctx, github.CreatePROptions{
				Title: local.Title,
				Body:  body,
				Head:  local.DestBranch,
				Base:  local.BaseBranch,
				Draft: cfg.Draft,
			})
		case changes.ActionUpdate:
			pull, err = opts.Client.UpdatePullRequest(ctx, local.Pull.Number, github.UpdatePROptions{
				Title: &local.Title,
				Body:  &body,
				Base:  &local.BaseBranch,
			})
		}
		if err != nil {
			return chain, applied, err
		}

		applied++
		chain = append(chain, pull)
		number := pull.Number
		prevNumber = &number

		splog.Info("%s #%d %s %s", styleAction(local.Action), pull.Number, local.Title, output.Subtle(pull.HTMLURL))
	}

	return chain, applied, nil
}

// printPlan renders the dry-run plan. Nothing on the remote is touched.
func printPlan(plan changes.Plan, splog *output.Splog) {
	splog.Info("%s", output.Heading("Plan (dry run):"))
	for _, local := range plan.Locals {
		splog.Info("  %s %s %s -> %s",
			styleActionPlanned(local.Action), local.Title,
			output.Subtle(shortSHA(local.SHA)+" "+local.DestBranch), local.BaseBranch)
	}
	for _, orphan := range plan.Orphans {
		splog.Info("  %s %s %s",
			output.Skip("to delete orphan"), orphan.Pull.HeadRef,
			output.Subtle(fmt.Sprintf("(#%d)", orphan.Pull.Number)))
	}
}

func styleAction(action changes.Action) string {
	text := action.Describe(false)
	switch action {
	case changes.ActionCreate:
		return output.Create(text)
	case changes.ActionUpdate:
		return output.Update(text)
	default:
		return output.Skip(text)
	}
}

func styleActionPlanned(action changes.Action) string {
	text := action.Describe(true)
	switch action {
	case changes.ActionCreate:
		return output.Create(text)
	case changes.ActionUpdate:
		return output.Update(text)
	default:
		return output.Skip(text)
	}
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
