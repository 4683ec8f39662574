// Package release runs the fetch, classify and render pipeline for one
// tag range.
package release

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/git"
)

// Generate returns the release notes for the commits between previous and
// current. It never fails: a range that could not be read renders exactly
// like one with no commits, as a bare "# Release <current>" heading.
func Generate(ctx context.Context, src git.CommitSource, previous, current string) string {
	res := src.Log(ctx, previous, current)

	event := log.Debug().
		Str("range", git.RangeSpec(previous, current)).
		Stringer("status", res.Status).
		Int("commits", len(res.Commits()))
	if res.Err != nil {
		event = event.Err(res.Err)
	}
	event.Msg("fetched commits")

	if res.IsEmpty() {
		return changelog.Title(current)
	}

	groups := changelog.Classify(res.Commits())
	log.Debug().Int("entries", groups.Count()).Msg("classified commits")
	return changelog.RenderMarkdownString(current, groups)
}
