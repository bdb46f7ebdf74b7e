package github

import (
	"fmt"
	"os"
	"strings"
)

// RepoInfo contains parsed information from a git remote URL
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// GetToken returns the GitHub token from the environment.
func GetToken() (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}
	if token := os.Getenv("STACKPR_GITHUB_TOKEN"); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("no GitHub token found: set GITHUB_TOKEN")
}

// ParseRemoteURL parses a git remote URL and extracts hostname, owner, and repo.
// Supports both github.com and GitHub Enterprise URLs:
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
//   - https://github.company.com/owner/repo.git
//   - git@github.company.com:owner/repo.git
func ParseRemoteURL(remoteURL string) (*RepoInfo, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	remoteURL = strings.TrimSuffix(remoteURL, ".git")

	var hostname, path string

	if at := strings.Index(remoteURL, "@"); at >= 0 {
		// SSH format: git@hostname:owner/repo or git@hostname/owner/repo
		hostAndPath := remoteURL[at+1:]
		switch {
		case strings.Contains(hostAndPath, ":"):
			parts := strings.SplitN(hostAndPath, ":", 2)
			hostname = parts[0]
			path = parts[1]
		case strings.Contains(hostAndPath, "/"):
			parts := strings.SplitN(hostAndPath, "/", 2)
			hostname = parts[0]
			path = parts[1]
		default:
			return nil, fmt.Errorf("invalid SSH remote URL: missing path")
		}
	} else {
		// HTTPS format: https://hostname/owner/repo
		trimmed := strings.TrimPrefix(remoteURL, "https://")
		trimmed = strings.TrimPrefix(trimmed, "http://")
		parts := strings.SplitN(trimmed, "/", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid remote URL %q", remoteURL)
		}
		hostname = parts[0]
		path = parts[1]
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[len(segments)-1] == "" {
		return nil, fmt.Errorf("invalid remote URL %q: path must be owner/repo", remoteURL)
	}

	return &RepoInfo{
		Hostname: hostname,
		Owner:    segments[0],
		Repo:     segments[len(segments)-1],
	}, nil
}
