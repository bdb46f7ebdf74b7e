package changes

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	stackprerrors "stackit.dev/stackpr/internal/errors"
	"stackit.dev/stackpr/internal/github"
)

func pullFixture(number int, state string) *github.PullRequest {
	return &github.PullRequest{
		Number:  number,
		HeadRef: fmt.Sprintf("stackpr/feature/I%040d", number),
		HeadSHA: fmt.Sprintf("sha-%d", number),
		BaseRef: "main",
		State:   state,
	}
}

func TestRemoteChangesAdd(t *testing.T) {
	id := ChangeID("I" + fmt.Sprintf("%040d", 1))

	t.Run("two open PRs is an invariant violation", func(t *testing.T) {
		index := make(RemoteChanges)
		require.NoError(t, index.Add(id, pullFixture(1, "open")))

		err := index.Add(id, pullFixture(2, "open"))
		require.Error(t, err)
		require.ErrorIs(t, err, stackprerrors.ErrChangeIDCollision)
	})

	t.Run("open beats closed in either order", func(t *testing.T) {
		index := make(RemoteChanges)
		require.NoError(t, index.Add(id, pullFixture(1, "closed")))
		require.NoError(t, index.Add(id, pullFixture(2, "open")))
		require.Equal(t, 2, index[id].Number)

		index = make(RemoteChanges)
		require.NoError(t, index.Add(id, pullFixture(2, "open")))
		require.NoError(t, index.Add(id, pullFixture(1, "closed")))
		require.Equal(t, 2, index[id].Number)
	})

	t.Run("two closed PRs: last wins", func(t *testing.T) {
		index := make(RemoteChanges)
		require.NoError(t, index.Add(id, pullFixture(1, "closed")))
		require.NoError(t, index.Add(id, pullFixture(2, "closed")))
		require.Equal(t, 2, index[id].Number)
	})
}

func TestRemoteChangesPop(t *testing.T) {
	id := ChangeID("I" + fmt.Sprintf("%040d", 7))
	index := make(RemoteChanges)
	require.NoError(t, index.Add(id, pullFixture(7, "open")))

	pull, ok := index.Pop(id)
	require.True(t, ok)
	require.Equal(t, 7, pull.Number)

	_, ok = index.Pop(id)
	require.False(t, ok)
}

func TestRemoteChangesClone(t *testing.T) {
	id := ChangeID("I" + fmt.Sprintf("%040d", 3))
	index := make(RemoteChanges)
	require.NoError(t, index.Add(id, pullFixture(3, "open")))

	clone := index.Clone()
	clone.Pop(id)

	_, ok := index[id]
	require.True(t, ok, "popping from the clone must not touch the original")
}
