package update

import (
	"context"
	"fmt"
	"strings"

	"stackit.dev/stackpr/internal/github"
	"stackit.dev/stackpr/internal/output"
)

// StackCommentMarker is the fixed first line of the stack-summary comment.
// It is the idempotency key: future runs patch the comment that starts with
// it instead of posting a new one.
const StackCommentMarker = "This pull request is part of a stack:"

// StackCommentBody renders the cross-linking comment for one pull request in
// the chain. Every PR gets the same list, but the pointer emoji marks the PR
// the comment lives on, so the rendered body differs per target.
func StackCommentBody(chain []*github.PullRequest, target *github.PullRequest) string {
	var sb strings.Builder
	sb.WriteString(StackCommentMarker)
	sb.WriteString("\n")
	for _, pull := range chain {
		sb.WriteString(fmt.Sprintf("\n* #%d %s", pull.Number, pull.Title))
		if pull.Number == target.Number {
			sb.WriteString(" ⬅")
		}
	}
	return sb.String()
}

// syncStackComments creates or patches the stack-summary comment on every
// non-merged pull request in the chain. A single pull request is not a stack
// and gets no comment. Failures here are best-effort: they are logged and
// never abort the run.
func syncStackComments(ctx context.Context, client github.Client, chain []*github.PullRequest, splog *output.Splog) {
	if len(chain) < 2 {
		return
	}

	for _, pull := range chain {
		if pull.Merged() {
			continue
		}

		want := StackCommentBody(chain, pull)

		comments, err := client.ListComments(ctx, pull.Number)
		if err != nil {
			splog.Warn("failed to list comments on #%d: %v", pull.Number, err)
			continue
		}

		var existing *github.Comment
		for i := range comments {
			if strings.HasPrefix(comments[i].Body, StackCommentMarker) {
				existing = &comments[i]
				break
			}
		}

		switch {
		case existing == nil:
			if err := client.CreateComment(ctx, pull.Number, want); err != nil {
				splog.Warn("failed to comment on #%d: %v", pull.Number, err)
			}
		case existing.Body != want:
			if err := client.UpdateComment(ctx, existing.ID, want); err != nil {
				splog.Warn("failed to update stack comment on #%d: %v", pull.Number, err)
			}
		}
	}
}
