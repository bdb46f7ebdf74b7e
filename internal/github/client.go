// Package github provides a client for interacting with the GitHub API.
package github

import (
	"context"
	"time"
)

// PullRequest is the projection of a remote pull request the reconciler and
// executor work with. This is a simplified struct to avoid coupling callers
// to the go-github library.
type PullRequest struct {
	Number         int
	NodeID         string
	HTMLURL        string
	Title          string
	Body           string
	HeadRef        string
	HeadSHA        string
	BaseRef        string
	State          string // "open" or "closed"
	Draft          bool
	MergedAt       *time.Time
	MergeCommitSHA string
}

// Merged reports whether the pull request has been merged.
func (pr *PullRequest) Merged() bool {
	return pr.MergedAt != nil
}

// Comment is an issue comment on a pull request.
type Comment struct {
	ID   int64
	Body string
}

// CreatePROptions contains options for creating a pull request
type CreatePROptions struct {
	Title string
	Body  string
	Head  string
	Base  string
	Draft bool
}

// UpdatePROptions contains options for updating a pull request.
// Nil fields are left unchanged.
type UpdatePROptions struct {
	Title *string
	Body  *string
	Base  *string
}

// Client is an interface for GitHub API interactions
type Client interface {
	// GetOwnerRepo returns the repository owner and name
	GetOwnerRepo() (owner, repo string)

	// SearchPullRequests returns the PR numbers matching a search query,
	// across open and closed states.
	SearchPullRequests(ctx context.Context, query string) ([]int, error)

	// GetPullRequest fetches one pull request by number
	GetPullRequest(ctx context.Context, number int) (*PullRequest, error)

	// CreatePullRequest creates a new pull request
	CreatePullRequest(ctx context.Context, opts CreatePROptions) (*PullRequest, error)

	// UpdatePullRequest updates an existing pull request
	UpdatePullRequest(ctx context.Context, number int, opts UpdatePROptions) (*PullRequest, error)

	// ListComments lists the issue comments on a pull request
	ListComments(ctx context.Context, number int) ([]Comment, error)

	// CreateComment adds an issue comment to a pull request
	CreateComment(ctx context.Context, number int, body string) error

	// UpdateComment replaces the body of an existing issue comment
	UpdateComment(ctx context.Context, commentID int64, body string) error

	// DeleteBranch deletes the remote ref "heads/{branch}"
	DeleteBranch(ctx context.Context, branch string) error

	// SetDraft toggles a pull request between draft and ready-for-review
	// via the GraphQL API (the REST API cannot change draft status).
	SetDraft(ctx context.Context, nodeID string, draft bool) error
}
