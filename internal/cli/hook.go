package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/stackpr/internal/git"
	"stackit.dev/stackpr/internal/hooks"
	"stackit.dev/stackpr/internal/output"
)

// newHookCmd creates the hook command group
func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Manage the commit-msg hook that injects Change-Id trailers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Install the commit-msg hook into the current repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			repoRoot, err := git.GetRepoRoot()
			if err != nil {
				return err
			}
			if err := hooks.Install(repoRoot); err != nil {
				return err
			}
			output.NewSplog(false).Info("commit-msg hook installed")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:    "commit-msg <file>",
		Short:  "commit-msg git hook entry point",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return hooks.ProcessCommitMessage(args[0])
		},
	})

	return cmd
}
