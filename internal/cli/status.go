package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/stackpr/internal/actions/status"
)

// newStatusCmd creates the status command
func newStatusCmd(verbose *bool) *cobra.Command {
	var common commonFlags

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current stack and how each commit relates to its pull request",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, err := newRuntime(ctx, common, *verbose)
			if err != nil {
				return err
			}

			return status.Action(ctx, status.Options{
				Config: rt.Config,
				Runner: rt.Runner,
				Client: rt.Client,
				Splog:  rt.Splog,
			})
		},
	}

	registerCommonFlags(cmd, &common)
	return cmd
}
