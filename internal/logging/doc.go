// Package logging provides logging utilities for ccs.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("creating worktree", "repo", repoName, "branch", branch)
//	logging.Warn("worktree removal failed", "path", path, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Starting sandbox for %s...", repoName)
//	logging.UserSuccess("Created worktree at %s", path)
//	logging.UserWarning("No credentials found")
//	logging.UserError("Failed to start container: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging
