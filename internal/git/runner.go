// Package git provides low-level Git operations: command execution,
// repository discovery, commit enumeration and branch push plumbing.
package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	stackprerrors "stackit.dev/stackpr/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
}

// NewCommandRunner creates a new CommandRunner rooted at the given directory.
// An empty directory means the process working directory.
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// WorkingDir returns the directory commands run in.
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// Run executes a git command with the given context and returns the trimmed stdout.
// If the context carries no deadline, the default timeout is applied.
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", stackprerrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// ConfigGet returns a git config value, or the empty string if the key is unset.
// Only real execution failures (not missing keys) surface as errors.
func (r *CommandRunner) ConfigGet(ctx context.Context, key string) (string, error) {
	out, err := r.Run(ctx, "config", "--get", key)
	if err != nil {
		// git config --get exits 1 with empty stderr when the key does not exist
		var gitErr *stackprerrors.GitCommandError
		if errors.As(err, &gitErr) && gitErr.Stderr == "" {
			return "", nil
		}
		return "", err
	}
	return out, nil
}
