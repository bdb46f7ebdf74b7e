// Package ready toggles the draft state of every open pull request in the
// stack via the GraphQL API.
package ready

import (
	"context"

	"stackit.dev/stackpr/internal/changes"
	"stackit.dev/stackpr/internal/config"
	"stackit.dev/stackpr/internal/git"
	"stackit.dev/stackpr/internal/github"
	"stackit.dev/stackpr/internal/output"
)

// Options contains the collaborators and configuration for the ready action.
type Options struct {
	Config config.Config
	Runner *git.CommandRunner
	Client github.Client
	Splog  *output.Splog
	// Draft converts PRs to drafts instead of marking them ready for review.
	Draft bool
}

// Action flips every open pull request under the stack prefix to the
// requested draft state. PRs already in that state are left alone.
func Action(ctx context.Context, opts Options) error {
	cfg := opts.Config
	splog := opts.Splog

	if cfg.LocalBranch == "" {
		branch, err := git.CurrentBranch(ctx, opts.Runner)
		if err != nil {
			return err
		}
		cfg.LocalBranch = branch
	}

	remote, err := changes.BuildRemoteChanges(ctx, opts.Client, cfg.Author, cfg.StackPrefix())
	if err != nil {
		return err
	}

	toggled := 0
	for _, pull := range remote {
		if pull.State != "open" || pull.Merged() || pull.Draft == opts.Draft {
			continue
		}
		if err := opts.Client.SetDraft(ctx, pull.NodeID, opts.Draft); err != nil {
			return err
		}
		if opts.Draft {
			splog.Info("converted #%d to draft %s", pull.Number, output.Subtle(pull.Title))
		} else {
			splog.Info("marked #%d ready for review %s", pull.Number, output.Subtle(pull.Title))
		}
		toggled++
	}

	if toggled == 0 {
		splog.Info("no pull requests to change")
	}
	return nil
}
