package changelog

import (
	"regexp"
	"strings"
)

// conventionalPattern matches "type: detail" and "type(scope): detail".
// The scope is matched but not captured for output. The separator after the
// colon accepts any Unicode whitespace (vertical tab, no-break and ideographic
// spaces included), which RE2's \s does not.
var conventionalPattern = regexp.MustCompile(
	`^(feat|fix|docs|refactor|perf|chore|build|ci|style|test|revert)(\(.+?\))?:` +
		`[\t\n\v\f\r\x1c-\x1f\x85\p{Z}]+(.+)$`,
)

// ParseLine splits a "<short-id> <subject>" log line on its first space.
// Returns false for blank lines and lines without a space.
func ParseLine(line string) (Commit, bool) {
	if strings.TrimSpace(line) == "" {
		return Commit{}, false
	}

	shortID, subject, ok := strings.Cut(line, " ")
	if !ok {
		return Commit{}, false
	}

	return Commit{ShortID: shortID, Subject: subject}, true
}

// ClassifyMessage resolves the category and detail text of a commit subject.
// Subjects outside the Conventional Commits grammar are CategoryOther with the
// subject unchanged as detail.
func ClassifyMessage(message string) (Category, string) {
	m := conventionalPattern.FindStringSubmatch(message)
	if m == nil {
		return CategoryOther, message
	}
	return Category(m[1]), m[3]
}

// Classify parses log lines and groups them by category.
// Lines that ParseLine rejects are dropped.
func Classify(lines []string) *Groups {
	groups := NewGroups()

	for _, line := range lines {
		commit, ok := ParseLine(line)
		if !ok {
			continue
		}

		category, detail := ClassifyMessage(commit.Subject)
		groups.Add(Entry{
			Category: category,
			Detail:   detail,
			ShortID:  commit.ShortID,
		})
	}

	return groups
}
