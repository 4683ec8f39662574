package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// fixtureEpoch is the author time of the first fixture commit. Later commits
// are one minute apart so committer-time ordering is deterministic.
var fixtureEpoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// GitRepo is a throwaway repository built with go-git, so tests do not need a
// git executable.
type GitRepo struct {
	t    *testing.T
	Dir  string
	Repo *git.Repository

	count int
}

// NewGitRepo initializes an empty repository in a temporary directory.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("initializing fixture repository: %v", err)
	}
	return &GitRepo{t: t, Dir: dir, Repo: repo}
}

// Commit records a commit with the given message and returns its full hash.
func (r *GitRepo) Commit(message string) string {
	r.t.Helper()

	r.count++
	path := filepath.Join(r.Dir, "CHANGES.txt")
	content := fmt.Sprintf("change %d\n", r.count)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("writing fixture file: %v", err)
	}

	wt, err := r.Repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}
	if _, err := wt.Add("CHANGES.txt"); err != nil {
		r.t.Fatalf("staging fixture file: %v", err)
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author:    r.signature(),
		Committer: r.signature(),
	})
	if err != nil {
		r.t.Fatalf("committing %q: %v", message, err)
	}
	return hash.String()
}

// Tag creates a lightweight tag at HEAD.
func (r *GitRepo) Tag(name string) {
	r.t.Helper()
	if _, err := r.Repo.CreateTag(name, r.head(), nil); err != nil {
		r.t.Fatalf("creating tag %s: %v", name, err)
	}
}

// AnnotatedTag creates an annotated tag at HEAD.
func (r *GitRepo) AnnotatedTag(name, message string) {
	r.t.Helper()
	opts := &git.CreateTagOptions{Tagger: r.signature(), Message: message}
	if _, err := r.Repo.CreateTag(name, r.head(), opts); err != nil {
		r.t.Fatalf("creating annotated tag %s: %v", name, err)
	}
}

func (r *GitRepo) head() plumbing.Hash {
	r.t.Helper()
	ref, err := r.Repo.Head()
	if err != nil {
		r.t.Fatalf("reading HEAD: %v", err)
	}
	return ref.Hash()
}

func (r *GitRepo) signature() *object.Signature {
	return &object.Signature{
		Name:  "Release Bot",
		Email: "release-bot@example.com",
		When:  fixtureEpoch.Add(time.Duration(r.count) * time.Minute),
	}
}
