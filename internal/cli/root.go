// Package cli wires the cobra command surface. Commands are thin wrappers:
// they parse flags, build the runtime collaborators, and delegate to the
// action packages.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "stackpr",
		Short:   "Stackpr turns a linear sequence of commits into a chain of stacked pull requests",
		Version: version,
		Long: `Stackpr maps each commit on your branch to its own remote branch and pull
request, chained base to head. Commits are identified by a Change-Id trailer
injected by the commit-msg hook, so amending or reordering commits updates
the matching pull requests instead of opening new ones.`,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output.")
	rootCmd.SetVersionTemplate("stackpr {{.Version}} (" + commit + " " + date + ")\n")

	rootCmd.AddCommand(newUpdateCmd(&verbose))
	rootCmd.AddCommand(newStatusCmd(&verbose))
	rootCmd.AddCommand(newReadyCmd(&verbose, false))
	rootCmd.AddCommand(newReadyCmd(&verbose, true))
	rootCmd.AddCommand(newHookCmd())

	return rootCmd
}
