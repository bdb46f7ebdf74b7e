// Package changes implements the core of stackpr: extracting stable commit
// identities, indexing remote pull requests by identity, and reconciling the
// ordered local commit list against the remote index into an action plan.
package changes

import (
	"regexp"
	"strings"
)

// ChangeID is the stable identity token embedded in a commit's Change-Id
// trailer. It is the sole join key between local commits and remote pull
// requests, and survives amends and rebases of the same logical change.
type ChangeID string

// changeIDPattern matches a Change-Id trailer line. The token is a capital I
// followed by 40 hex characters, the same shape the commit-msg hook writes.
var changeIDPattern = regexp.MustCompile(`^Change-Id:\s*(I[0-9a-f]{40})\s*$`)

// tokenPattern matches a bare Change-Id token.
var tokenPattern = regexp.MustCompile(`^I[0-9a-f]{40}$`)

// Valid reports whether id has the Change-Id token shape.
func (id ChangeID) Valid() bool {
	return tokenPattern.MatchString(string(id))
}

func (id ChangeID) String() string {
	return string(id)
}

// FromCommitMessage extracts the Change-Id from a commit message body.
// When several trailers are present the last one wins, which keeps amended
// commits stable even when an older trailer was preserved above the new one.
// Returns false if the body carries no Change-Id trailer.
func FromCommitMessage(body string) (ChangeID, bool) {
	var found ChangeID
	for _, line := range strings.Split(body, "\n") {
		if m := changeIDPattern.FindStringSubmatch(strings.TrimRight(line, "\r")); m != nil {
			found = ChangeID(m[1])
		}
	}
	return found, found != ""
}

// FromBranch extracts the Change-Id from the tail segment of a branch ref,
// e.g. "stackpr/feature/I0123...". Returns false when the tail segment is
// not a valid token.
func FromBranch(ref string) (ChangeID, bool) {
	idx := strings.LastIndex(ref, "/")
	if idx < 0 || idx == len(ref)-1 {
		return "", false
	}
	id := ChangeID(ref[idx+1:])
	if !id.Valid() {
		return "", false
	}
	return id, true
}
