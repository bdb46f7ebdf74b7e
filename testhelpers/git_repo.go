package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// GitRepo is a throwaway git repository for tests, with an optional bare
// "origin" remote so push plumbing can be exercised for real.
type GitRepo struct {
	Dir       string
	RemoteDir string
	t         *testing.T
}

// NewGitRepo initializes a repository with an initial commit on main.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()

	dir := t.TempDir()
	repo := &GitRepo{Dir: dir, t: t}

	repo.Git("-c", "init.defaultBranch=main", "init", "-b", "main", ".")
	repo.Git("config", "user.name", "Test User")
	repo.Git("config", "user.email", "test@example.com")
	repo.WriteFile("README.md", "test repo\n")
	repo.Git("add", ".")
	repo.Git("commit", "-m", "initial commit")

	return repo
}

// NewGitRepoWithRemote initializes a repository plus a bare origin remote
// with main pushed.
func NewGitRepoWithRemote(t *testing.T) *GitRepo {
	t.Helper()

	repo := NewGitRepo(t)
	repo.RemoteDir = t.TempDir()

	cmd := exec.Command("git", "init", "--bare", "-b", "main", repo.RemoteDir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to init bare remote: %v\n%s", err, out)
	}

	repo.Git("remote", "add", "origin", repo.RemoteDir)
	repo.Git("push", "-u", "origin", "main")

	return repo
}

// Git runs a git command in the repository and fails the test on error.
func (r *GitRepo) Git(args ...string) string {
	r.t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	out, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return string(out)
}

// WriteFile writes a file relative to the repository root.
func (r *GitRepo) WriteFile(name, content string) {
	r.t.Helper()
	path := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("failed to write %s: %v", name, err)
	}
}

// Commit creates a commit touching a unique file, with the given title and
// a Change-Id trailer, and returns its SHA.
func (r *GitRepo) Commit(title, changeID string) string {
	r.t.Helper()
	return r.CommitWithBody(title, fmt.Sprintf("Change-Id: %s", changeID))
}

// CommitWithBody creates a commit with an arbitrary message body and returns
// its SHA.
func (r *GitRepo) CommitWithBody(title, body string) string {
	r.t.Helper()

	name := fmt.Sprintf("file-%d.txt", r.commitCount())
	r.WriteFile(name, title+"\n")
	r.Git("add", ".")

	message := title
	if body != "" {
		message += "\n\n" + body
	}
	r.Git("commit", "-m", message)
	return r.Head()
}

// Head returns the SHA of HEAD.
func (r *GitRepo) Head() string {
	r.t.Helper()
	return strings.TrimSpace(r.Git("rev-parse", "HEAD"))
}

// RemoteBranches lists the branch names present on the bare remote.
func (r *GitRepo) RemoteBranches() []string {
	r.t.Helper()
	if r.RemoteDir == "" {
		r.t.Fatal("repository has no remote")
	}
	cmd := exec.Command("git", "for-each-ref", "--format=%(refname:short)", "refs/heads")
	cmd.Dir = r.RemoteDir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	out, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("failed to list remote branches: %v\n%s", err, out)
	}
	var branches []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			branches = append(branches, line)
		}
	}
	return branches
}

func (r *GitRepo) commitCount() int {
	out := r.Git("rev-list", "--count", "HEAD")
	count := 0
	fmt.Sscanf(out, "%d", &count)
	return count
}
