package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHelperProcessFunc is the helper entry point for this package's tests.
func TestHelperProcessFunc(t *testing.T) {
	TestHelperProcess(t)
}

func TestCommandRecorder(t *testing.T) {
	tests := map[string]struct {
		config     HelperProcessConfig
		args       []string
		wantStdout string
		wantStderr string
		wantErr    bool
	}{
		"stdout only": {
			config:     HelperProcessConfig{Stdout: "abc1234 feat: x"},
			args:       []string{"log", "v1..v2"},
			wantStdout: "abc1234 feat: x",
		},
		"stderr and exit code": {
			config:     HelperProcessConfig{ExitCode: 128, Stderr: "fatal: bad revision"},
			args:       []string{"log", "nope..v2"},
			wantStderr: "fatal: bad revision",
			wantErr:    true,
		},
		"silent success": {
			config: HelperProcessConfig{},
			args:   []string{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := NewCommandRecorder(t, "TestHelperProcessFunc", tt.config)
			cmd := rec.CommandContext(context.Background(), "git", tt.args...)

			var stdout, stderr strings.Builder
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr
			err := cmd.Run()

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.config.ExitCode, cmd.ProcessState.ExitCode())
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantStdout, stdout.String())
			assert.Equal(t, tt.wantStderr, stderr.String())

			calls := rec.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, "git", calls[0].Name)
			assert.Equal(t, len(tt.args), len(calls[0].Args))
		})
	}
}

func TestBuildHelperEnv(t *testing.T) {
	env := buildHelperEnv(t, HelperProcessConfig{ExitCode: 2}, []string{"log"})

	found := map[string]bool{}
	for _, e := range env {
		for _, key := range []string{EnvWantHelperProcess, EnvHelperProcessConfig, EnvHelperProcessArgs} {
			if strings.HasPrefix(e, key+"=") {
				found[key] = true
			}
		}
	}

	assert.True(t, found[EnvWantHelperProcess])
	assert.True(t, found[EnvHelperProcessConfig])
	assert.True(t, found[EnvHelperProcessArgs])
}

func TestGetHelperProcessArgs(t *testing.T) {
	t.Setenv(EnvHelperProcessArgs, `["log","v1..v2"]`)
	args, err := GetHelperProcessArgs()
	require.NoError(t, err)
	assert.Equal(t, []string{"log", "v1..v2"}, args)

	t.Setenv(EnvHelperProcessArgs, `not json`)
	_, err = GetHelperProcessArgs()
	assert.Error(t, err)
}
