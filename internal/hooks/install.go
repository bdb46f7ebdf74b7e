// Package hooks installs the commit-msg hook that injects the Change-Id
// trailer every commit in a stack needs.
package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const hookName = "commit-msg"

// hookScript is the installed commit-msg hook. It delegates to the stackpr
// binary so upgrades don't require reinstalling.
const hookScript = `#!/bin/bash
# Git hook: commit-msg
# Installed by stackpr - delegates to the stackpr binary
exec stackpr hook commit-msg "$@"
`

// Install writes the commit-msg hook into the repository's hooks directory.
// Refuses to overwrite a hook that was not installed by stackpr.
func Install(repoRoot string) error {
	hooksDir := filepath.Join(repoRoot, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}

	hookPath := filepath.Join(hooksDir, hookName)
	if existing, err := os.ReadFile(hookPath); err == nil && !isStackprHook(string(existing)) {
		return fmt.Errorf("a commit-msg hook already exists at %s; remove it first", hookPath)
	}

	if err := os.WriteFile(hookPath, []byte(hookScript), 0o755); err != nil {
		return fmt.Errorf("failed to write commit-msg hook: %w", err)
	}
	return nil
}

// Installed reports whether the stackpr commit-msg hook is present.
func Installed(repoRoot string) bool {
	content, err := os.ReadFile(filepath.Join(repoRoot, ".git", "hooks", hookName))
	if err != nil {
		return false
	}
	return isStackprHook(string(content))
}

func isStackprHook(content string) bool {
	return strings.Contains(content, "stackpr hook")
}
