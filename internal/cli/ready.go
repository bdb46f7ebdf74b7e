package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/stackpr/internal/actions/ready"
)

// newReadyCmd creates the ready command, or the draft command when toDraft
// is set. Both toggle the same GraphQL state in opposite directions.
func newReadyCmd(verbose *bool, toDraft bool) *cobra.Command {
	var common commonFlags

	use, short := "ready", "Mark every open pull request in the stack ready for review"
	if toDraft {
		use, short = "draft", "Convert every open pull request in the stack to a draft"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, err := newRuntime(ctx, common, *verbose)
			if err != nil {
				return err
			}

			return ready.Action(ctx, ready.Options{
				Config: rt.Config,
				Runner: rt.Runner,
				Client: rt.Client,
				Splog:  rt.Splog,
				Draft:  toDraft,
			})
		},
	}

	registerCommonFlags(cmd, &common)
	return cmd
}
