// Package testhelpers provides test fixtures: an in-memory GitHub client, an
// httptest mock of the GitHub REST API, and throwaway git repositories.
package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	gogithub "github.com/google/go-github/v62/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	// Owner and Repo for the mock server
	Owner string
	Repo  string
	// Pulls maps PR numbers to PR data
	Pulls map[int]*gogithub.PullRequest
	// Comments maps PR numbers to issue comments
	Comments map[int][]*gogithub.IssueComment
	// CreatedPRs stores PRs that were created via POST
	CreatedPRs []*gogithub.PullRequest
	// PatchedPRs records the numbers of PRs updated via PATCH
	PatchedPRs []int
	// DeletedRefs records the git refs deleted via DELETE
	DeletedRefs []string
	// GraphQLMutations records the mutation operation names posted to /graphql
	GraphQLMutations []string
	// FailSearch makes the search endpoint return HTTP 500
	FailSearch bool
	// FailPullNumbers makes GET of these PRs return HTTP 500
	FailPullNumbers map[int]bool
	// FailGraphQL makes /graphql answer with a GraphQL errors array
	FailGraphQL bool

	nextNumber int
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		Owner:           "testorg",
		Repo:            "testrepo",
		Pulls:           make(map[int]*gogithub.PullRequest),
		Comments:        make(map[int][]*gogithub.IssueComment),
		FailPullNumbers: make(map[int]bool),
		nextNumber:      100,
	}
}

// NewMockGitHubServer creates an httptest server that mocks the GitHub API
// endpoints stackpr touches: issue search, pulls, issue comments, git refs.
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	mux := http.NewServeMux()
	repoPath := "/repos/" + config.Owner + "/" + config.Repo

	mux.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
		if config.FailSearch {
			writeError(w, http.StatusInternalServerError, "search exploded")
			return
		}
		prefix := headQualifier(r.URL.Query().Get("q"))
		var items []*gogithub.Issue
		for number, pull := range config.Pulls {
			if prefix != "" && !strings.HasPrefix(pull.Head.GetRef(), prefix) {
				continue
			}
			items = append(items, &gogithub.Issue{
				Number:           gogithub.Int(number),
				PullRequestLinks: &gogithub.PullRequestLinks{URL: gogithub.String("x")},
			})
		}
		writeJSON(w, http.StatusOK, &gogithub.IssuesSearchResult{
			Total:  gogithub.Int(len(items)),
			Issues: items,
		})
	})

	mux.HandleFunc(repoPath+"/pulls", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req gogithub.NewPullRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad body")
			return
		}
		config.nextNumber++
		pull := &gogithub.PullRequest{
			Number:  gogithub.Int(config.nextNumber),
			NodeID:  gogithub.String(fmt.Sprintf("node-%d", config.nextNumber)),
			HTMLURL: gogithub.String(fmt.Sprintf("https://github.test/pull/%d", config.nextNumber)),
			Title:   req.Title,
			Body:    req.Body,
			State:   gogithub.String("open"),
			Draft:   req.Draft,
			Head:    &gogithub.PullRequestBranch{Ref: req.Head, SHA: gogithub.String("sha-" + strconv.Itoa(config.nextNumber))},
			Base:    &gogithub.PullRequestBranch{Ref: req.Base},
		}
		config.Pulls[config.nextNumber] = pull
		config.CreatedPRs = append(config.CreatedPRs, pull)
		writeJSON(w, http.StatusCreated, pull)
	})

	mux.HandleFunc(repoPath+"/pulls/", func(w http.ResponseWriter, r *http.Request) {
		number, ok := trailingNumber(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		if config.FailPullNumbers[number] {
			writeError(w, http.StatusInternalServerError, "pull fetch exploded")
			return
		}
		pull, exists := config.Pulls[number]
		if !exists {
			writeError(w, http.StatusNotFound, "pull request not found")
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, pull)
		case http.MethodPatch:
			// The PATCH wire format carries base as a plain string, unlike
			// gogithub.PullRequest where Base is a struct.
			var req struct {
				Title *string `json:"title"`
				Body  *string `json:"body"`
				Base  *string `json:"base"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "bad body")
				return
			}
			if req.Title != nil {
				pull.Title = req.Title
			}
			if req.Body != nil {
				pull.Body = req.Body
			}
			if req.Base != nil {
				pull.Base = &gogithub.PullRequestBranch{Ref: gogithub.String(*req.Base)}
			}
			config.PatchedPRs = append(config.PatchedPRs, number)
			writeJSON(w, http.StatusOK, pull)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc(repoPath+"/issues/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, repoPath+"/issues/")
		parts := strings.Split(rest, "/")

		// /issues/comments/{id} - edit a comment
		if len(parts) == 2 && parts[0] == "comments" {
			commentID, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil || r.Method != http.MethodPatch {
				writeError(w, http.StatusNotFound, "not found")
				return
			}
			var req gogithub.IssueComment
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "bad body")
				return
			}
			for _, comments := range config.Comments {
				for _, comment := range comments {
					if comment.GetID() == commentID {
						comment.Body = req.Body
						writeJSON(w, http.StatusOK, comment)
						return
					}
				}
			}
			writeError(w, http.StatusNotFound, "comment not found")
			return
		}

		// /issues/{number}/comments - list or create
		if len(parts) == 2 && parts[1] == "comments" {
			number, err := strconv.Atoi(parts[0])
			if err != nil {
				writeError(w, http.StatusNotFound, "not found")
				return
			}
			switch r.Method {
			case http.MethodGet:
				writeJSON(w, http.StatusOK, config.Comments[number])
			case http.MethodPost:
				var req gogithub.IssueComment
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					writeError(w, http.StatusBadRequest, "bad body")
					return
				}
				comment := &gogithub.IssueComment{
					ID:   gogithub.Int64(int64(1000 + len(config.Comments[number]))),
					Body: req.Body,
				}
				config.Comments[number] = append(config.Comments[number], comment)
				writeJSON(w, http.StatusCreated, comment)
			default:
				writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			}
			return
		}

		writeError(w, http.StatusNotFound, "not found")
	})

	mux.HandleFunc(repoPath+"/git/refs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		ref := strings.TrimPrefix(r.URL.Path, repoPath+"/git/refs/")
		config.DeletedRefs = append(config.DeletedRefs, ref)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad body")
			return
		}

		mutation := "convertPullRequestToDraft"
		draft := true
		if strings.Contains(req.Query, "markPullRequestReadyForReview") {
			mutation = "markPullRequestReadyForReview"
			draft = false
		}
		config.GraphQLMutations = append(config.GraphQLMutations, mutation)

		if config.FailGraphQL {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"errors": []map[string]string{{"message": "node not found"}},
			})
			return
		}

		nodeID, _ := req.Variables["pullRequestId"].(string)
		for _, pull := range config.Pulls {
			if pull.GetNodeID() == nodeID {
				pull.Draft = gogithub.Bool(draft)
			}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": map[string]interface{}{
				mutation: map[string]interface{}{
					"pullRequest": map[string]interface{}{
						"id":      nodeID,
						"isDraft": draft,
					},
				},
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// NewMockGitHubGoClient returns a go-github client pointed at the mock server.
func NewMockGitHubGoClient(t *testing.T, server *httptest.Server) *gogithub.Client {
	t.Helper()
	client := gogithub.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	if err != nil {
		t.Fatalf("failed to parse mock server URL: %v", err)
	}
	client.BaseURL = baseURL
	client.UploadURL = baseURL
	return client
}

func headQualifier(query string) string {
	for _, field := range strings.Fields(query) {
		if strings.HasPrefix(field, "head:") {
			return strings.TrimPrefix(field, "head:")
		}
	}
	return ""
}

func trailingNumber(path string) (int, bool) {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return 0, false
	}
	number, err := strconv.Atoi(path[idx+1:])
	if err != nil {
		return 0, false
	}
	return number, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
