package changes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromCommitMessage(t *testing.T) {
	id := "I" + strings.Repeat("ab12", 10)

	t.Run("extracts trailer", func(t *testing.T) {
		body := "Some detail.\n\nChange-Id: " + id
		got, ok := FromCommitMessage(body)
		require.True(t, ok)
		require.Equal(t, ChangeID(id), got)
	})

	t.Run("last trailer wins", func(t *testing.T) {
		older := "I" + strings.Repeat("00", 20)
		body := "Change-Id: " + older + "\n\nChange-Id: " + id
		got, ok := FromCommitMessage(body)
		require.True(t, ok)
		require.Equal(t, ChangeID(id), got)
	})

	t.Run("missing trailer", func(t *testing.T) {
		_, ok := FromCommitMessage("no trailers here")
		require.False(t, ok)
	})

	t.Run("rejects malformed tokens", func(t *testing.T) {
		_, ok := FromCommitMessage("Change-Id: Inotvalid")
		require.False(t, ok)

		_, ok = FromCommitMessage("Change-Id: " + strings.Repeat("a", 41))
		require.False(t, ok)
	})

	t.Run("tolerates carriage returns", func(t *testing.T) {
		got, ok := FromCommitMessage("Change-Id: " + id + "\r\n")
		require.True(t, ok)
		require.Equal(t, ChangeID(id), got)
	})
}

func TestFromBranch(t *testing.T) {
	id := "I" + strings.Repeat("0f", 20)

	got, ok := FromBranch("stackpr/feature/" + id)
	require.True(t, ok)
	require.Equal(t, ChangeID(id), got)

	_, ok = FromBranch("stackpr/feature/not-a-change-id")
	require.False(t, ok)

	_, ok = FromBranch("noslashes")
	require.False(t, ok)

	_, ok = FromBranch("trailing/slash/")
	require.False(t, ok)
}

func TestChangeIDValid(t *testing.T) {
	require.True(t, ChangeID("I"+strings.Repeat("a1", 20)).Valid())
	require.False(t, ChangeID("").Valid())
	require.False(t, ChangeID("I"+strings.Repeat("g", 40)).Valid())
	require.False(t, ChangeID(strings.Repeat("a", 41)).Valid())
}
