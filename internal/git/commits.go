package git

import (
	"context"
	"strings"
)

// Commit holds the subset of commit data the reconciler needs.
type Commit struct {
	SHA   string
	Title string
	Body  string
}

// GetMergeBase returns the fork point between the upstream ref (for example
// "origin/main") and the local branch. Falls back to a plain merge-base when
// no fork point is recorded in the reflog (fresh clones).
func GetMergeBase(ctx context.Context, runner *CommandRunner, upstream, branch string) (string, error) {
	base, err := runner.Run(ctx, "merge-base", "--fork-point", upstream, branch)
	if err == nil && base != "" {
		return base, nil
	}
	return runner.Run(ctx, "merge-base", upstream, branch)
}

// ListCommits returns the commit SHAs in base..head ordered oldest first.
// git log emits newest first, so the result is reversed before returning.
func ListCommits(ctx context.Context, runner *CommandRunner, base, head string) ([]string, error) {
	out, err := runner.Run(ctx, "log", "--format=%H", base+".."+head)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	lines := strings.Split(out, "\n")
	shas := make([]string, 0, len(lines))
	for i := len(lines) - 1; i >= 0; i-- {
		sha := strings.TrimSpace(lines[i])
		if sha != "" {
			shas = append(shas, sha)
		}
	}
	return shas, nil
}

// GetCommit loads the title and full message body for a single commit.
func GetCommit(ctx context.Context, runner *CommandRunner, sha string) (Commit, error) {
	title, err := runner.Run(ctx, "log", "-1", "--format=%s", sha)
	if err != nil {
		return Commit{}, err
	}
	body, err := runner.Run(ctx, "log", "-1", "--format=%b", sha)
	if err != nil {
		return Commit{}, err
	}
	return Commit{SHA: sha, Title: title, Body: body}, nil
}
