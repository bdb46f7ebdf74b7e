package update

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	changeIDTrailer  = regexp.MustCompile(`^Change-Id:\s*\S+\s*$`)
	dependsOnTrailer = regexp.MustCompile(`^Depends-On:\s*\S+\s*$`)
)

// FormatPullRequestBody turns a commit message body into a pull request body.
// Pre-existing Change-Id and Depends-On trailers are stripped, then a single
// current Depends-On line pointing at the predecessor pull request is
// re-appended when the commit has one. Running this over an already formatted
// body yields the same result, which keeps PR updates idempotent.
func FormatPullRequestBody(commitBody string, prevPRNumber *int) string {
	var kept []string
	for _, line := range strings.Split(commitBody, "\n") {
		trimmed := strings.TrimRight(line, "\r")
		if changeIDTrailer.MatchString(trimmed) || dependsOnTrailer.MatchString(trimmed) {
			continue
		}
		kept = append(kept, trimmed)
	}

	body := strings.TrimRight(strings.Join(kept, "\n"), "\n")

	if prevPRNumber != nil {
		if body != "" {
			body += "\n\n"
		}
		body += fmt.Sprintf("Depends-On: #%d", *prevPRNumber)
	}

	return body
}
