package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = origVersion, origCommit, origDate })

	tests := map[string]struct {
		version, commit, date string
		want                  string
		wantDev               bool
	}{
		"development build": {
			version: "dev", commit: "unknown", date: "unknown",
			want:    "dev (commit unknown, built unknown)",
			wantDev: true,
		},
		"release build": {
			version: "v1.2.0", commit: "a1b2c3d", date: "2025-06-01",
			want: "v1.2.0 (commit a1b2c3d, built 2025-06-01)",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			Version, Commit, BuildDate = tt.version, tt.commit, tt.date
			assert.Equal(t, tt.want, String())
			assert.Equal(t, tt.wantDev, IsDevBuild())
		})
	}
}
