package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/stackpr/internal/actions/update"
)

// newUpdateCmd creates the update command
func newUpdateCmd(verbose *bool) *cobra.Command {
	var (
		common             commonFlags
		dryRun             bool
		nextOnly           bool
		skipRebase         bool
		draft              bool
		onlyUpdateExisting bool
		assumeYes          bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Force push every commit in the stack and create or update its pull request",
		Long: `Walks the commits between the trunk fork point and the branch tip, matches
each one to a remote pull request by its Change-Id trailer, and applies the
minimal set of actions: new commits get branches and pull requests, amended
commits get force-pushed and their pull requests patched, unchanged and
merged commits are skipped, and remote branches with no matching local
commit are deleted. Safe to re-run after a partial failure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, err := newRuntime(ctx, common, *verbose)
			if err != nil {
				return err
			}

			cfg := rt.Config
			cfg.DryRun = dryRun
			cfg.NextOnly = nextOnly
			cfg.SkipRebase = skipRebase
			cfg.OnlyUpdateExisting = onlyUpdateExisting
			cfg.AssumeYes = assumeYes
			if cmd.Flags().Changed("draft") {
				cfg.Draft = draft
			}

			return update.Action(ctx, update.Options{
				Config: cfg,
				Runner: rt.Runner,
				Client: rt.Client,
				Splog:  rt.Splog,
			})
		},
	}

	registerCommonFlags(cmd, &common)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the plan and exit. No branches are pushed and no pull requests are touched.")
	cmd.Flags().BoolVar(&nextOnly, "next-only", false, "Only sync the bottom-most commit of the stack.")
	cmd.Flags().BoolVar(&skipRebase, "skip-rebase", false, "Don't rebase the branch onto the remote trunk before syncing.")
	cmd.Flags().BoolVarP(&draft, "draft", "d", false, "Create new pull requests as drafts.")
	cmd.Flags().BoolVar(&onlyUpdateExisting, "only-update-existing-pulls", false, "Never create pull requests; only push and update commits that already have one.")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Don't ask for confirmation before deleting orphaned branches.")

	return cmd
}
