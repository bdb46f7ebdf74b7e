package hooks

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"stackit.dev/stackpr/internal/changes"
)

func writeMessage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readMessage(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestProcessCommitMessageAddsTrailer(t *testing.T) {
	path := writeMessage(t, "Add widget\n\nSome details.\n")

	require.NoError(t, ProcessCommitMessage(path))

	message := readMessage(t, path)
	id, ok := changes.FromCommitMessage(message)
	require.True(t, ok)
	require.True(t, id.Valid())

	// The trailer lands in its own paragraph at the end.
	require.Regexp(t, regexp.MustCompile(`Some details\.\n\nChange-Id: I[0-9a-f]{40}`), message)
}

func TestProcessCommitMessageKeepsExistingTrailer(t *testing.T) {
	existing := "I" + "0123456789abcdef0123456789abcdef01234567"
	original := "Add widget\n\nChange-Id: " + existing + "\n"
	path := writeMessage(t, original)

	require.NoError(t, ProcessCommitMessage(path))

	require.Equal(t, original, readMessage(t, path))
}

func TestProcessCommitMessageAppendsToTrailerBlock(t *testing.T) {
	path := writeMessage(t, "Add widget\n\nSigned-off-by: Test <test@example.com>\n")

	require.NoError(t, ProcessCommitMessage(path))

	message := readMessage(t, path)
	require.Regexp(t,
		regexp.MustCompile(`Signed-off-by: Test <test@example\.com>\nChange-Id: I[0-9a-f]{40}`),
		message)
}

func TestProcessCommitMessageIgnoresCommentedTrailer(t *testing.T) {
	// A Change-Id that only appears in git's commented-out template must not
	// count as present.
	path := writeMessage(t, "Add widget\n\n# Change-Id: I0123456789abcdef0123456789abcdef01234567\n")

	require.NoError(t, ProcessCommitMessage(path))

	_, ok := changes.FromCommitMessage(stripComments(readMessage(t, path)))
	require.True(t, ok)
}

func TestGenerateChangeID(t *testing.T) {
	seen := make(map[changes.ChangeID]bool)
	for i := 0; i < 10; i++ {
		id, err := GenerateChangeID()
		require.NoError(t, err)
		require.True(t, id.Valid(), id)
		require.False(t, seen[id], "duplicate Change-Id generated")
		seen[id] = true
	}
}

func TestInstall(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	require.False(t, Installed(root))
	require.NoError(t, Install(root))
	require.True(t, Installed(root))

	// Reinstalling over our own hook is fine.
	require.NoError(t, Install(root))

	info, err := os.Stat(filepath.Join(root, ".git", "hooks", "commit-msg"))
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&0o111)
}

func TestInstallRefusesForeignHook(t *testing.T) {
	root := t.TempDir()
	hooksDir := filepath.Join(root, ".git", "hooks")
	require.NoError(t, os.MkdirAll(hooksDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(hooksDir, "commit-msg"),
		[]byte("#!/bin/sh\nexit 0\n"), 0o755))

	require.Error(t, Install(root))
	require.False(t, Installed(root))
}
