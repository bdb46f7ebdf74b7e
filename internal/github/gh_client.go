package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// requestTimeout bounds every individual HTTP call so a hung connection
// fails fast instead of blocking the run.
const requestTimeout = 30 * time.Second

// RealClient implements Client against the GitHub API using go-github.
type RealClient struct {
	client     *github.Client
	httpClient *http.Client
	graphqlURL string
	token      string
	owner      string
	repo       string
}

// NewClient creates an authenticated client for the given host and repository.
// Supports both github.com and GitHub Enterprise instances.
func NewClient(ctx context.Context, hostname, token, owner, repo string) (*RealClient, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = requestTimeout

	client := github.NewClient(tc)
	graphqlURL := "https://api.github.com/graphql"

	if hostname != "github.com" {
		// GitHub Enterprise API endpoints:
		// REST: https://hostname/api/v3/, uploads: https://hostname/api/uploads/
		baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", hostname, err)
		}
		uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", hostname, err)
		}
		client.BaseURL = baseURL
		client.UploadURL = uploadURL
		graphqlURL = fmt.Sprintf("https://%s/api/graphql", hostname)
	}

	return &RealClient{
		client:     client,
		httpClient: tc,
		graphqlURL: graphqlURL,
		token:      token,
		owner:      owner,
		repo:       repo,
	}, nil
}

// NewClientForTesting wraps an existing go-github client. Used by tests that
// point at a mock server; graphqlURL may be empty when GraphQL is not exercised.
func NewClientForTesting(client *github.Client, graphqlURL, owner, repo string) *RealClient {
	return &RealClient{
		client:     client,
		httpClient: http.DefaultClient,
		graphqlURL: graphqlURL,
		owner:      owner,
		repo:       repo,
	}
}

// GetOwnerRepo returns the repository owner and name
func (c *RealClient) GetOwnerRepo() (string, string) {
	return c.owner, c.repo
}

// SearchPullRequests returns the PR numbers matching a search query
func (c *RealClient) SearchPullRequests(ctx context.Context, query string) ([]int, error) {
	var numbers []int
	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		result, resp, err := c.client.Search.Issues(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to search pull requests: %w", err)
		}
		for _, issue := range result.Issues {
			if issue.IsPullRequest() && issue.Number != nil {
				numbers = append(numbers, *issue.Number)
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return numbers, nil
}

// GetPullRequest fetches one pull request by number
func (c *RealClient) GetPullRequest(ctx context.Context, number int) (*PullRequest, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request #%d: %w", number, err)
	}
	return toPullRequest(pr)
}

// CreatePullRequest creates a new pull request
func (c *RealClient) CreatePullRequest(ctx context.Context, opts CreatePROptions) (*PullRequest, error) {
	newPR := &github.NewPullRequest{
		Title: github.String(opts.Title),
		Head:  github.String(opts.Head),
		Base:  github.String(opts.Base),
		Draft: github.Bool(opts.Draft),
	}
	if opts.Body != "" {
		newPR.Body = github.String(opts.Body)
	}

	created, _, err := c.client.PullRequests.Create(ctx, c.owner, c.repo, newPR)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	return toPullRequest(created)
}

// UpdatePullRequest updates an existing pull request
func (c *RealClient) UpdatePullRequest(ctx context.Context, number int, opts UpdatePROptions) (*PullRequest, error) {
	update := &github.PullRequest{
		Title: opts.Title,
		Body:  opts.Body,
	}
	if opts.Base != nil {
		update.Base = &github.PullRequestBranch{Ref: opts.Base}
	}

	updated, _, err := c.client.PullRequests.Edit(ctx, c.owner, c.repo, number, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update pull request #%d: %w", number, err)
	}
	return toPullRequest(updated)
}

// ListComments lists the issue comments on a pull request
func (c *RealClient) ListComments(ctx context.Context, number int) ([]Comment, error) {
	var comments []Comment
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		page, resp, err := c.client.Issues.ListComments(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments on #%d: %w", number, err)
		}
		for _, comment := range page {
			if comment.ID == nil {
				continue
			}
			comments = append(comments, Comment{
				ID:   *comment.ID,
				Body: comment.GetBody(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}

// CreateComment adds an issue comment to a pull request
func (c *RealClient) CreateComment(ctx context.Context, number int, body string) error {
	_, _, err := c.client.Issues.CreateComment(ctx, c.owner, c.repo, number, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to create comment on #%d: %w", number, err)
	}
	return nil
}

// UpdateComment replaces the body of an existing issue comment
func (c *RealClient) UpdateComment(ctx context.Context, commentID int64, body string) error {
	_, _, err := c.client.Issues.EditComment(ctx, c.owner, c.repo, commentID, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to update comment %d: %w", commentID, err)
	}
	return nil
}

// DeleteBranch deletes the remote ref "heads/{branch}"
func (c *RealClient) DeleteBranch(ctx context.Context, branch string) error {
	_, err := c.client.Git.DeleteRef(ctx, c.owner, c.repo, "heads/"+branch)
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branch, err)
	}
	return nil
}

// toPullRequest converts a go-github pull request into the local projection,
// rejecting responses that are missing required fields.
func toPullRequest(pr *github.PullRequest) (*PullRequest, error) {
	if pr == nil || pr.Number == nil {
		return nil, fmt.Errorf("malformed pull request response: missing number")
	}
	if pr.Head == nil || pr.Head.Ref == nil || pr.Head.SHA == nil {
		return nil, fmt.Errorf("malformed pull request response for #%d: missing head", *pr.Number)
	}
	if pr.Base == nil || pr.Base.Ref == nil {
		return nil, fmt.Errorf("malformed pull request response for #%d: missing base", *pr.Number)
	}

	result := &PullRequest{
		Number:         *pr.Number,
		NodeID:         pr.GetNodeID(),
		HTMLURL:        pr.GetHTMLURL(),
		Title:          pr.GetTitle(),
		Body:           pr.GetBody(),
		HeadRef:        *pr.Head.Ref,
		HeadSHA:        *pr.Head.SHA,
		BaseRef:        *pr.Base.Ref,
		State:          pr.GetState(),
		Draft:          pr.GetDraft(),
		MergeCommitSHA: pr.GetMergeCommitSHA(),
	}
	if pr.MergedAt != nil {
		t := pr.MergedAt.Time
		result.MergedAt = &t
	}
	return result, nil
}
