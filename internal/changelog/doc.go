// Package changelog turns commit log lines into categorized release notes.
//
// This package implements:
//   - Parsing "<short-id> <subject>" log lines
//   - Conventional Commits classification (feat, fix, perf, ...)
//   - Markdown rendering with a fixed section order and labels
//
// Subjects that do not follow the Conventional Commits grammar are kept
// verbatim under the "Other" section.
package changelog
