package hooks

import (
	"crypto/rand"
	"crypto/sha1"
	"fmt"
	"os"
	"strings"

	"stackit.dev/stackpr/internal/changes"
)

// ProcessCommitMessage reads the commit message file git hands to the
// commit-msg hook and appends a freshly generated Change-Id trailer unless
// one is already present. The Change-Id is created exactly once per logical
// change; amends and rebases keep the existing trailer.
func ProcessCommitMessage(messageFile string) error {
	content, err := os.ReadFile(messageFile)
	if err != nil {
		return fmt.Errorf("failed to read commit message file: %w", err)
	}

	message := string(content)
	if _, ok := changes.FromCommitMessage(stripComments(message)); ok {
		return nil
	}

	id, err := GenerateChangeID()
	if err != nil {
		return err
	}

	updated := appendTrailer(message, "Change-Id: "+id.String())
	if err := os.WriteFile(messageFile, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("failed to write commit message file: %w", err)
	}
	return nil
}

// GenerateChangeID creates a new random Change-Id token: capital I followed
// by 40 hex characters.
func GenerateChangeID() (changes.ChangeID, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate Change-Id: %w", err)
	}
	sum := sha1.Sum(buf)
	return changes.ChangeID(fmt.Sprintf("I%x", sum)), nil
}

// stripComments drops git's comment lines so a Change-Id inside the commented
// template never counts as present.
func stripComments(message string) string {
	var kept []string
	for _, line := range strings.Split(message, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// appendTrailer adds a trailer line after the last non-comment content,
// separated by a blank line when the message has no trailer block yet.
func appendTrailer(message, trailer string) string {
	lines := strings.Split(message, "\n")

	// Find the last non-empty, non-comment line.
	last := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			last = i
		}
	}
	if last < 0 {
		return message
	}

	// A trailer block is a final paragraph of "Key: value" lines. If the
	// last paragraph already looks like one, append to it; otherwise start
	// a new paragraph.
	blockStart := last
	for blockStart > 0 && strings.TrimSpace(lines[blockStart-1]) != "" {
		blockStart--
	}
	isTrailerBlock := blockStart > 0
	for i := blockStart; i <= last && isTrailerBlock; i++ {
		if !strings.Contains(lines[i], ": ") {
			isTrailerBlock = false
		}
	}

	var insert []string
	if isTrailerBlock {
		insert = []string{trailer}
	} else {
		insert = []string{"", trailer}
	}

	result := make([]string, 0, len(lines)+len(insert))
	result = append(result, lines[:last+1]...)
	result = append(result, insert...)
	result = append(result, lines[last+1:]...)
	return strings.Join(result, "\n")
}
