package release

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/ariel-frischer/relnotes/internal/testutil"
)

// fakeSource returns a canned result and records the range it was asked for.
type fakeSource struct {
	result   git.LogResult
	from, to string
	calls    int
}

func (f *fakeSource) Log(_ context.Context, from, to string) git.LogResult {
	f.calls++
	f.from, f.to = from, to
	return f.result
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		result git.LogResult
		want   string
	}{
		"mixed commits": {
			result: git.LogResult{
				Status: git.LogAvailable,
				Lines: []string{
					"a1b2c3d feat(api): add users endpoint",
					"e4f5a6b fix: handle null pointer",
					"c7d8e9f update readme",
				},
			},
			want: "# Release v1.1.0\n" +
				"\n" +
				"## ✨ Features\n" +
				"- add users endpoint (a1b2c3d)\n" +
				"\n" +
				"## 🐛 Bug Fixes\n" +
				"- handle null pointer (e4f5a6b)\n" +
				"\n" +
				"## Other\n" +
				"- update readme (c7d8e9f)\n",
		},
		"empty range": {
			result: git.LogResult{Status: git.LogEmpty},
			want:   "# Release v1.1.0",
		},
		"unavailable": {
			result: git.LogResult{Status: git.LogUnavailable, Err: fmt.Errorf("unknown revision")},
			want:   "# Release v1.1.0",
		},
		"unavailable ignores stray lines": {
			result: git.LogResult{Status: git.LogUnavailable, Lines: []string{"a1b2c3d feat: x"}},
			want:   "# Release v1.1.0",
		},
		"only unparseable lines": {
			result: git.LogResult{Status: git.LogAvailable, Lines: []string{"a1b2c3d"}},
			want:   "# Release v1.1.0\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			src := &fakeSource{result: tt.result}

			got := Generate(context.Background(), src, "v1.0.0", "v1.1.0")

			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, src.calls)
			assert.Equal(t, "v1.0.0", src.from)
			assert.Equal(t, "v1.1.0", src.to)
		})
	}
}

func TestGenerate_RepoSource(t *testing.T) {
	t.Parallel()

	repo := testutil.NewGitRepo(t)
	repo.Commit("chore: initial import")
	repo.Tag("v0.1.0")
	feat := repo.Commit("feat(cli): add --version flag")
	docs := repo.Commit("docs: describe configuration")
	repo.Tag("v0.2.0")

	got := Generate(context.Background(), git.NewRepoSource(repo.Dir), "v0.1.0", "v0.2.0")

	want := "# Release v0.2.0\n" +
		"\n" +
		"## ✨ Features\n" +
		"- add --version flag (" + feat[:7] + ")\n" +
		"\n" +
		"## 📚 Documentation\n" +
		"- describe configuration (" + docs[:7] + ")\n"
	require.Equal(t, want, got)

	assert.Equal(t, "# Release v0.3.0",
		Generate(context.Background(), git.NewRepoSource(repo.Dir), "v0.2.0", "v0.3.0"))
}
