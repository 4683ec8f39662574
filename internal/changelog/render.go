package changelog

import (
	"fmt"
	"io"
	"strings"
)

// Title returns the document heading for a release.
func Title(tag string) string {
	return "# Release " + tag
}

// RenderMarkdown writes release notes for tag to w.
// Categories are written in RenderOrder; categories without entries are left
// out entirely. Lines are joined with "\n"; callers decide how the document
// is terminated.
//
// The function is idempotent - given the same input, it produces identical output.
func RenderMarkdown(tag string, g *Groups, w io.Writer) error {
	if _, err := io.WriteString(w, strings.Join(renderLines(tag, g), "\n")); err != nil {
		return fmt.Errorf("writing release notes: %w", err)
	}
	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(tag string, g *Groups) string {
	return strings.Join(renderLines(tag, g), "\n")
}

// renderLines builds the document line by line.
func renderLines(tag string, g *Groups) []string {
	lines := []string{Title(tag), ""}

	for _, category := range RenderOrder() {
		entries := g.Get(category)
		if len(entries) == 0 {
			continue
		}
		lines = append(lines, renderCategory(category, entries)...)
	}

	return lines
}

// renderCategory renders one section: heading, bullets, trailing blank line.
func renderCategory(category Category, entries []Entry) []string {
	lines := make([]string, 0, len(entries)+2)
	lines = append(lines, "## "+category.Label())

	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("- %s (%s)", e.Detail, e.ShortID))
	}

	return append(lines, "")
}
