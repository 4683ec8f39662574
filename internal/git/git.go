// Package git reads commit history for release notes. Two sources implement the
// same log contract: ExecSource shells out to a git-compatible executable, and
// RepoSource walks the repository in-process with the go-git library.
//
// Neither source returns an error to its caller. Failures are reported through
// LogResult.Status so that a broken fetch renders as an empty release instead of
// failing the release pipeline.
package git

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// CommitSource lists the commits reachable from one revision but not another.
type CommitSource interface {
	// Log returns "<short-id> <subject>" lines for from..to, newest first.
	Log(ctx context.Context, from, to string) LogResult
}

var (
	_ CommitSource = (*ExecSource)(nil)
	_ CommitSource = (*RepoSource)(nil)
)

// LogStatus describes how a log query ended.
type LogStatus int

const (
	// LogEmpty means the query succeeded and the range holds no commits.
	LogEmpty LogStatus = iota
	// LogAvailable means the query succeeded with at least one commit.
	LogAvailable
	// LogUnavailable means the query could not run or failed.
	LogUnavailable
)

// String returns a human-readable name for the status.
func (s LogStatus) String() string {
	switch s {
	case LogEmpty:
		return "empty"
	case LogAvailable:
		return "available"
	case LogUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// LogResult carries the outcome of a log query.
type LogResult struct {
	// Lines holds one "<short-id> <subject>" entry per commit. Always empty
	// unless Status is LogAvailable.
	Lines []string
	// Status tells an empty range apart from a failed query.
	Status LogStatus
	// Err explains a LogUnavailable result. Diagnostic only.
	Err error
}

// Commits returns the log lines. Unavailable results have none, so callers can
// treat a failed fetch exactly like an empty range.
func (r LogResult) Commits() []string {
	if r.Status != LogAvailable {
		return nil
	}
	return r.Lines
}

// IsEmpty returns true if the result carries no commits, for any reason.
func (r LogResult) IsEmpty() bool {
	return len(r.Commits()) == 0
}

// resultFromLines wraps successfully fetched lines.
func resultFromLines(lines []string) LogResult {
	if len(lines) == 0 {
		return LogResult{Status: LogEmpty}
	}
	return LogResult{Lines: lines, Status: LogAvailable}
}

// unavailable wraps a failed fetch.
func unavailable(err error) LogResult {
	logDebug("[git] log unavailable: %v", err)
	return LogResult{Status: LogUnavailable, Err: err}
}

// SplitLogOutput splits raw log output into lines, dropping lines that are
// blank after trimming. Entirely blank output yields an empty slice.
func SplitLogOutput(out string) []string {
	trimmed := strings.TrimSpace(out)
	if trimmed == "" {
		return []string{}
	}

	raw := strings.Split(trimmed, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// RangeSpec returns the "from..to" revision range understood by git log.
func RangeSpec(from, to string) string {
	return from + ".." + to
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// IsGitRepository checks if path (or the current directory when empty) is
// within a git repository.
func IsGitRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsGitRepository(%q): %v", path, result)
	return result
}
