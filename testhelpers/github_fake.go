package testhelpers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"stackit.dev/stackpr/internal/github"
)

// FakeGitHubClient is an in-memory implementation of github.Client for tests
// that exercise the reconciler and executor without HTTP.
type FakeGitHubClient struct {
	mu sync.Mutex

	Owner string
	Repo  string

	// Pulls holds the remote state keyed by PR number.
	Pulls map[int]*github.PullRequest
	// Comments holds the issue comments keyed by PR number.
	Comments map[int][]github.Comment

	// Recorded mutations, in call order.
	CreatedPRs      []int
	UpdatedPRs      []int
	DeletedBranches []string
	CreatedComments []int
	UpdatedComments []int64
	DraftToggles    []string

	// MutationCalls counts every POST/PATCH/DELETE style call. Dry-run
	// purity tests assert it stays zero.
	MutationCalls int

	// Error injection.
	SearchErr       error
	GetPRErr        map[int]error
	CreatePRErr     error
	UpdatePRErr     map[int]error
	DeleteErr       map[string]error
	ListCommentsErr error

	nextNumber    int
	nextCommentID int64
}

// NewFakeGitHubClient creates an empty fake remote.
func NewFakeGitHubClient() *FakeGitHubClient {
	return &FakeGitHubClient{
		Owner:         "testorg",
		Repo:          "testrepo",
		Pulls:         make(map[int]*github.PullRequest),
		Comments:      make(map[int][]github.Comment),
		GetPRErr:      make(map[int]error),
		UpdatePRErr:   make(map[int]error),
		DeleteErr:     make(map[string]error),
		nextNumber:    100,
		nextCommentID: 1000,
	}
}

// AddPull registers an existing remote pull request.
func (c *FakeGitHubClient) AddPull(pull *github.PullRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *pull
	c.Pulls[pull.Number] = &copied
}

// GetOwnerRepo returns the repository owner and name
func (c *FakeGitHubClient) GetOwnerRepo() (string, string) {
	return c.Owner, c.Repo
}

// SearchPullRequests returns every PR number whose head ref matches the
// head: qualifier in the query, across open and closed states.
func (c *FakeGitHubClient) SearchPullRequests(_ context.Context, query string) ([]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SearchErr != nil {
		return nil, c.SearchErr
	}

	prefix := ""
	for _, field := range strings.Fields(query) {
		if strings.HasPrefix(field, "head:") {
			prefix = strings.TrimPrefix(field, "head:")
		}
	}

	var numbers []int
	for number, pull := range c.Pulls {
		if prefix == "" || strings.HasPrefix(pull.HeadRef, prefix) {
			numbers = append(numbers, number)
		}
	}
	return numbers, nil
}

// GetPullRequest fetches one pull request by number
func (c *FakeGitHubClient) GetPullRequest(_ context.Context, number int) (*github.PullRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.GetPRErr[number]; err != nil {
		return nil, err
	}
	pull, ok := c.Pulls[number]
	if !ok {
		return nil, fmt.Errorf("pull request #%d not found", number)
	}
	copied := *pull
	return &copied, nil
}

// CreatePullRequest creates a new pull request
func (c *FakeGitHubClient) CreatePullRequest(_ context.Context, opts github.CreatePROptions) (*github.PullRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MutationCalls++
	if c.CreatePRErr != nil {
		return nil, c.CreatePRErr
	}

	c.nextNumber++
	pull := &github.PullRequest{
		Number:  c.nextNumber,
		NodeID:  fmt.Sprintf("node-%d", c.nextNumber),
		HTMLURL: fmt.Sprintf("https://github.com/%s/%s/pull/%d", c.Owner, c.Repo, c.nextNumber),
		Title:   opts.Title,
		Body:    opts.Body,
		HeadRef: opts.Head,
		BaseRef: opts.Base,
		State:   "open",
		Draft:   opts.Draft,
	}
	c.Pulls[pull.Number] = pull
	c.CreatedPRs = append(c.CreatedPRs, pull.Number)

	copied := *pull
	return &copied, nil
}

// UpdatePullRequest updates an existing pull request
func (c *FakeGitHubClient) UpdatePullRequest(_ context.Context, number int, opts github.UpdatePROptions) (*github.PullRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MutationCalls++
	if err := c.UpdatePRErr[number]; err != nil {
		return nil, err
	}

	pull, ok := c.Pulls[number]
	if !ok {
		return nil, fmt.Errorf("pull request #%d not found", number)
	}
	if opts.Title != nil {
		pull.Title = *opts.Title
	}
	if opts.Body != nil {
		pull.Body = *opts.Body
	}
	if opts.Base != nil {
		pull.BaseRef = *opts.Base
	}
	c.UpdatedPRs = append(c.UpdatedPRs, number)

	copied := *pull
	return &copied, nil
}

// ListComments lists the issue comments on a pull request
func (c *FakeGitHubClient) ListComments(_ context.Context, number int) ([]github.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ListCommentsErr != nil {
		return nil, c.ListCommentsErr
	}
	return append([]github.Comment(nil), c.Comments[number]...), nil
}

// CreateComment adds an issue comment to a pull request
func (c *FakeGitHubClient) CreateComment(_ context.Context, number int, body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MutationCalls++
	c.nextCommentID++
	c.Comments[number] = append(c.Comments[number], github.Comment{ID: c.nextCommentID, Body: body})
	c.CreatedComments = append(c.CreatedComments, number)
	return nil
}

// UpdateComment replaces the body of an existing issue comment
func (c *FakeGitHubClient) UpdateComment(_ context.Context, commentID int64, body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MutationCalls++
	for number, comments := range c.Comments {
		for i := range comments {
			if comments[i].ID == commentID {
				c.Comments[number][i].Body = body
				c.UpdatedComments = append(c.UpdatedComments, commentID)
				return nil
			}
		}
	}
	return fmt.Errorf("comment %d not found", commentID)
}

// DeleteBranch deletes the remote ref "heads/{branch}" and closes the PRs
// whose head it was, mirroring GitHub's behavior.
func (c *FakeGitHubClient) DeleteBranch(_ context.Context, branch string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MutationCalls++
	if err := c.DeleteErr[branch]; err != nil {
		return err
	}
	c.DeletedBranches = append(c.DeletedBranches, branch)
	for _, pull := range c.Pulls {
		if pull.HeadRef == branch && pull.State == "open" {
			pull.State = "closed"
		}
	}
	return nil
}

// SetDraft toggles draft state by node id.
func (c *FakeGitHubClient) SetDraft(_ context.Context, nodeID string, draft bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MutationCalls++
	c.DraftToggles = append(c.DraftToggles, nodeID)
	for _, pull := range c.Pulls {
		if pull.NodeID == nodeID {
			pull.Draft = draft
			return nil
		}
	}
	return fmt.Errorf("pull request with node id %s not found", nodeID)
}

// OpenPull builds an open pull request fixture for a stacked branch.
func OpenPull(number int, stackPrefix, changeID, headSHA, title string) *github.PullRequest {
	return &github.PullRequest{
		Number:  number,
		NodeID:  fmt.Sprintf("node-%d", number),
		HTMLURL: fmt.Sprintf("https://github.com/testorg/testrepo/pull/%d", number),
		Title:   title,
		HeadRef: stackPrefix + "/" + changeID,
		HeadSHA: headSHA,
		BaseRef: "main",
		State:   "open",
	}
}

// MergedPull builds a merged pull request fixture.
func MergedPull(number int, stackPrefix, changeID, headSHA, title string) *github.PullRequest {
	pull := OpenPull(number, stackPrefix, changeID, headSHA, title)
	pull.State = "closed"
	mergedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	pull.MergedAt = &mergedAt
	pull.MergeCommitSHA = "merge-" + headSHA
	return pull
}
