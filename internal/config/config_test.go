package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with no user config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_Layers(t *testing.T) {
	tests := map[string]struct {
		user    string
		project string
		json    string
		env     map[string]string
		want    func(*Configuration)
	}{
		"user config": {
			user: "backend: go-git\nfetch_timeout: 30s\n",
			want: func(c *Configuration) {
				c.Backend = BackendGoGit
				c.FetchTimeout = 30 * time.Second
			},
		},
		"project overrides user": {
			user:    "git_cmd: /usr/local/bin/git\nprogress: false\n",
			project: "git_cmd: /opt/git/bin/git\n",
			want: func(c *Configuration) {
				c.GitCmd = "/opt/git/bin/git"
				c.Progress = false
			},
		},
		"legacy json project config": {
			json: `{"backend": "go-git", "debug": true}`,
			want: func(c *Configuration) {
				c.Backend = BackendGoGit
				c.Debug = true
			},
		},
		"yaml preferred over json": {
			project: "debug: true\n",
			json:    `{"backend": "go-git"}`,
			want: func(c *Configuration) {
				c.Debug = true
			},
		},
		"environment overrides files": {
			project: "backend: go-git\nfetch_timeout: 5s\n",
			env: map[string]string{
				"RELNOTES_BACKEND":       "exec",
				"RELNOTES_FETCH_TIMEOUT": "1m",
				"RELNOTES_PROGRESS":      "false",
			},
			want: func(c *Configuration) {
				c.FetchTimeout = time.Minute
				c.Progress = false
			},
		},
		"empty project file keeps defaults": {
			project: "   \n",
			want:    func(*Configuration) {},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			if tt.user != "" {
				writeFile(t, filepath.Join(dir, "xdg", "relnotes", "config.yml"), tt.user)
			}
			if tt.project != "" {
				writeFile(t, filepath.Join(dir, ProjectConfigPath()), tt.project)
			}
			if tt.json != "" {
				writeFile(t, filepath.Join(dir, LegacyProjectConfigPath()), tt.json)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			want := Defaults()
			tt.want(want)

			cfg, err := Load("")
			require.NoError(t, err)
			assert.Equal(t, want, cfg)
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ProjectConfigPath()), "backend: go-git\n")

	explicit := filepath.Join(dir, "ci", "relnotes.json")
	writeFile(t, explicit, `{"git_cmd": "git-2.45"}`)

	cfg, err := Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, BackendExec, cfg.Backend, "explicit path replaces the project config")
	assert.Equal(t, "git-2.45", cfg.GitCmd)

	_, err = Load(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadWithOptions_UserConfig(t *testing.T) {
	dir := isolate(t)
	userPath := filepath.Join(dir, "custom-user.yml")
	writeFile(t, userPath, "debug: true\n")

	cfg, err := LoadWithOptions(LoadOptions{UserConfigPath: userPath})
	require.NoError(t, err)
	assert.True(t, cfg.Debug)

	cfg, err = LoadWithOptions(LoadOptions{UserConfigPath: userPath, SkipUserConfig: true})
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]struct {
		project string
		env     map[string]string
		wantErr string
	}{
		"syntax error": {
			project: "backend: exec\n  debug: [true\n",
			wantErr: ".relnotes.yml",
		},
		"unknown backend": {
			project: "backend: libgit2\n",
			wantErr: "field 'backend': must be one of: exec, go-git",
		},
		"empty git command": {
			project: "git_cmd: \"\"\n",
			wantErr: "field 'git_cmd': is required",
		},
		"negative timeout": {
			env:     map[string]string{"RELNOTES_FETCH_TIMEOUT": "-5s"},
			wantErr: "field 'fetch_timeout'",
		},
		"unparseable timeout": {
			env:     map[string]string{"RELNOTES_FETCH_TIMEOUT": "soon"},
			wantErr: "unmarshal",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			if tt.project != "" {
				writeFile(t, filepath.Join(dir, ProjectConfigPath()), tt.project)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load("")
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ExpandsHomeInRepoPath(t *testing.T) {
	isolate(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RELNOTES_REPO_PATH", "~/src/project")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "src", "project"), cfg.RepoPath)
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		want string
	}{
		"simple":     {in: "RELNOTES_BACKEND", want: "backend"},
		"underscore": {in: "RELNOTES_FETCH_TIMEOUT", want: "fetch_timeout"},
		"git cmd":    {in: "RELNOTES_GIT_CMD", want: "git_cmd"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, envTransform(tt.in))
		})
	}
}

func TestUserConfigPath_RespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	path, err := UserConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg-test/relnotes/config.yml", path)
}
