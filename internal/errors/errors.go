// Package errors provides sentinel errors and custom error types for the stackpr application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrMissingChangeID indicates that a commit has no Change-Id trailer
	ErrMissingChangeID = errors.New("missing Change-Id trailer")

	// ErrChangeIDCollision indicates that two open pull requests claim the same Change-Id
	ErrChangeIDCollision = errors.New("Change-Id collision")
)

// MissingChangeIDError reports a commit that was made without the commit-msg hook.
type MissingChangeIDError struct {
	SHA   string
	Title string
}

func (e *MissingChangeIDError) Error() string {
	return fmt.Sprintf(
		"commit %.8s (%q) has no Change-Id trailer. Run 'stackpr hook install' and amend the commit",
		e.SHA, e.Title,
	)
}

// Is returns true if the target error is ErrMissingChangeID
func (e *MissingChangeIDError) Is(target error) bool {
	return target == ErrMissingChangeID
}

// NewMissingChangeIDError creates a new MissingChangeIDError
func NewMissingChangeIDError(sha, title string) *MissingChangeIDError {
	return &MissingChangeIDError{SHA: sha, Title: title}
}

// ChangeIDCollisionError reports two open pull requests sharing one Change-Id.
// This is an invariant violation: the remote index must never silently pick one.
type ChangeIDCollisionError struct {
	ChangeID string
	Numbers  []int
}

func (e *ChangeIDCollisionError) Error() string {
	nums := make([]string, len(e.Numbers))
	for i, n := range e.Numbers {
		nums[i] = fmt.Sprintf("#%d", n)
	}
	return fmt.Sprintf(
		"two open pull requests (%s) share Change-Id %s. Close one of them and re-run",
		strings.Join(nums, ", "), e.ChangeID,
	)
}

// Is returns true if the target error is ErrChangeIDCollision
func (e *ChangeIDCollisionError) Is(target error) bool {
	return target == ErrChangeIDCollision
}

// NewChangeIDCollisionError creates a new ChangeIDCollisionError
func NewChangeIDCollisionError(changeID string, numbers ...int) *ChangeIDCollisionError {
	return &ChangeIDCollisionError{ChangeID: changeID, Numbers: numbers}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
