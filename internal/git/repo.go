package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DefaultAbbrev is the short hash length used by RepoSource, matching git's
// minimum abbreviation.
const DefaultAbbrev = 7

// RepoSource reads history in-process with go-git, so no git executable is
// needed. Its output follows the same "<short-id> <subject>" contract as
// ExecSource.
type RepoSource struct {
	// Path is any directory inside the repository. Empty means the current directory.
	Path string
	// Abbrev is the number of hex digits in short ids. Zero means DefaultAbbrev.
	Abbrev int
}

// NewRepoSource creates a RepoSource for the repository containing path.
func NewRepoSource(path string) *RepoSource {
	return &RepoSource{Path: path}
}

// Log walks the commits reachable from to, newest first by committer time,
// skipping every commit reachable from from. An empty revision means HEAD.
func (s *RepoSource) Log(ctx context.Context, from, to string) LogResult {
	if err := ctx.Err(); err != nil {
		return unavailable(err)
	}

	repo, err := openRepo(s.Path)
	if err != nil {
		return unavailable(err)
	}

	toHash, err := resolveCommit(repo, to)
	if err != nil {
		return unavailable(err)
	}
	fromHash, err := resolveCommit(repo, from)
	if err != nil {
		return unavailable(err)
	}

	excluded, err := ancestors(ctx, repo, fromHash)
	if err != nil {
		return unavailable(fmt.Errorf("walking history of %q: %w", from, err))
	}

	lines, err := s.collect(ctx, repo, toHash, excluded)
	if err != nil {
		return unavailable(fmt.Errorf("walking history of %q: %w", to, err))
	}

	logDebug("[git] go-git log %s returned %d commits", RangeSpec(from, to), len(lines))
	return resultFromLines(lines)
}

// collect formats every commit reachable from start that is not excluded.
func (s *RepoSource) collect(ctx context.Context, repo *git.Repository, start plumbing.Hash, excluded map[plumbing.Hash]struct{}) ([]string, error) {
	iter, err := repo.Log(&git.LogOptions{From: start, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var lines []string
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, skip := excluded[c.Hash]; skip {
			return nil
		}
		lines = append(lines, s.formatCommit(c))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// formatCommit renders a commit as "<short-id> <subject>".
func (s *RepoSource) formatCommit(c *object.Commit) string {
	abbrev := s.Abbrev
	if abbrev <= 0 {
		abbrev = DefaultAbbrev
	}
	id := c.Hash.String()
	if abbrev < len(id) {
		id = id[:abbrev]
	}
	return id + " " + Subject(c.Message)
}

// ancestors returns the set of commits reachable from start, start included.
func ancestors(ctx context.Context, repo *git.Repository, start plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	iter, err := repo.Log(&git.LogOptions{From: start})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	seen := make(map[plumbing.Hash]struct{})
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seen, nil
}

// resolveCommit resolves a revision to a commit hash, peeling annotated tags.
func resolveCommit(repo *git.Repository, rev string) (plumbing.Hash, error) {
	if rev == "" {
		rev = "HEAD"
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving %q: %w", rev, err)
	}

	if _, err := repo.CommitObject(*hash); err == nil {
		return *hash, nil
	}

	tag, err := repo.TagObject(*hash)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving %q: not a commit or tag: %w", rev, err)
	}
	commit, err := tag.Commit()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving %q: tag does not point to a commit: %w", rev, err)
	}
	return commit.Hash, nil
}

// Subject returns the subject of a commit message the way git's %s does:
// leading blank lines are skipped, and the first paragraph, which ends at the
// first whitespace-only line, is joined with single spaces.
func Subject(message string) string {
	var kept []string
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(kept) > 0 {
				break
			}
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, " ")
}
