package changes

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"stackit.dev/stackpr/internal/github"
)

// BuildRemoteChanges queries the hosting API for every pull request (open and
// closed) whose head branch lives under the stack prefix and indexes them by
// Change-Id. Detail fetches run concurrently and join on an all-or-nothing
// barrier: a failure in any fetch fails the whole build, so the reconciler
// never sees a partial index.
func BuildRemoteChanges(ctx context.Context, client github.Client, author, stackPrefix string) (RemoteChanges, error) {
	owner, repo := client.GetOwnerRepo()

	query := fmt.Sprintf("type:pr repo:%s/%s head:%s/", owner, repo, stackPrefix)
	if author != "" {
		query += fmt.Sprintf(" author:%s", author)
	}

	numbers, err := client.SearchPullRequests(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search stack pull requests: %w", err)
	}

	pulls := make([]*github.PullRequest, len(numbers))
	errs := make([]error, len(numbers))

	var wg sync.WaitGroup
	for i, number := range numbers {
		wg.Add(1)
		go func(i, number int) {
			defer wg.Done()
			pulls[i], errs[i] = client.GetPullRequest(ctx, number)
		}(i, number)
	}
	wg.Wait()

	for _, fetchErr := range errs {
		if fetchErr != nil {
			return nil, fmt.Errorf("failed to fetch stack pull request: %w", fetchErr)
		}
	}

	index := make(RemoteChanges)
	for _, pull := range pulls {
		// The search matches on prefix but can over-match; only head refs
		// directly under the stack prefix with a valid Change-Id tail belong
		// to this stack.
		if !strings.HasPrefix(pull.HeadRef, stackPrefix+"/") {
			continue
		}
		id, ok := FromBranch(pull.HeadRef)
		if !ok {
			continue
		}
		if err := index.Add(id, pull); err != nil {
			return nil, err
		}
	}

	return index, nil
}
