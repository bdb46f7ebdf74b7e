package update

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"

	"stackit.dev/stackpr/internal/changes"
	"stackit.dev/stackpr/internal/github"
	"stackit.dev/stackpr/internal/output"
)

// confirmOrphanCleanup asks before deleting orphaned branches when running
// interactively. Non-TTY runs and --yes skip the prompt.
func confirmOrphanCleanup(orphans []changes.OrphanChange, assumeYes bool, splog *output.Splog) bool {
	if len(orphans) == 0 {
		return false
	}

	splog.Info("%d orphaned remote change(s) no longer in the local stack:", len(orphans))
	for _, orphan := range orphans {
		splog.Info("  #%d %s %s", orphan.Pull.Number, orphan.Pull.Title, output.Subtle(orphan.Pull.HeadRef))
	}

	if assumeYes || !isatty.IsTerminal(os.Stdin.Fd()) {
		return true
	}

	confirmed := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Delete %d orphaned remote branch(es)?", len(orphans)),
		Default: true,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		splog.Warn("failed to read confirmation, skipping orphan cleanup: %v", err)
		return false
	}
	return confirmed
}

// cleanupOrphans deletes the backing branches of orphaned changes. GitHub
// closes the associated pull requests when their head branches disappear.
// Deletes run concurrently on disjoint refs; each one is independently
// fallible and a failure never aborts its siblings or the run.
func cleanupOrphans(ctx context.Context, client github.Client, orphans []changes.OrphanChange, splog *output.Splog) {
	var wg sync.WaitGroup
	for _, orphan := range orphans {
		wg.Add(1)
		go func(orphan changes.OrphanChange) {
			defer wg.Done()
			if err := client.DeleteBranch(ctx, orphan.Pull.HeadRef); err != nil {
				splog.Warn("failed to delete orphaned branch %s: %v", orphan.Pull.HeadRef, err)
				return
			}
			splog.Info("deleted orphaned branch %s %s", orphan.Pull.HeadRef, output.Subtle(fmt.Sprintf("(closes #%d)", orphan.Pull.Number)))
		}(orphan)
	}
	wg.Wait()
}
