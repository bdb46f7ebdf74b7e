package ready

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"stackit.dev/stackpr/internal/config"
	"stackit.dev/stackpr/internal/output"
	"stackit.dev/stackpr/testhelpers"
)

func changeID(n int) string {
	return fmt.Sprintf("I%040d", n)
}

func testConfig() config.Config {
	return config.Config{
		Remote:       config.DefaultRemote,
		TrunkBranch:  config.DefaultTrunkBranch,
		BranchPrefix: config.DefaultBranchPrefix,
		LocalBranch:  "feature",
	}
}

func TestActionMarksDraftsReady(t *testing.T) {
	client := testhelpers.NewFakeGitHubClient()

	draft := testhelpers.OpenPull(1, "stackpr/feature", changeID(1), "s1", "T1")
	draft.Draft = true
	client.AddPull(draft)

	already := testhelpers.OpenPull(2, "stackpr/feature", changeID(2), "s2", "T2")
	client.AddPull(already)

	merged := testhelpers.MergedPull(3, "stackpr/feature", changeID(3), "s3", "T3")
	merged.Draft = true
	client.AddPull(merged)

	err := Action(context.Background(), Options{
		Config: testConfig(),
		Client: client,
		Splog:  output.NewSplogWithWriter(io.Discard, false),
		Draft:  false,
	})
	require.NoError(t, err)

	// Only the open draft gets toggled; the already-ready and merged PRs
	// are left alone.
	require.Equal(t, []string{"node-1"}, client.DraftToggles)
	require.False(t, client.Pulls[1].Draft)
}

func TestActionConvertsToDraft(t *testing.T) {
	client := testhelpers.NewFakeGitHubClient()
	client.AddPull(testhelpers.OpenPull(1, "stackpr/feature", changeID(1), "s1", "T1"))

	err := Action(context.Background(), Options{
		Config: testConfig(),
		Client: client,
		Splog:  output.NewSplogWithWriter(io.Discard, false),
		Draft:  true,
	})
	require.NoError(t, err)

	require.Equal(t, []string{"node-1"}, client.DraftToggles)
	require.True(t, client.Pulls[1].Draft)
}
