// Package testutil provides test helpers for relnotes tests. Its helper-process
// harness lets tests stand a fake executable in for git: the test binary re-runs
// itself and prints canned output instead of reading a real repository.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"sync"
	"testing"
)

// HelperProcessConfig configures the behavior of TestHelperProcess.
type HelperProcessConfig struct {
	// ExitCode is the exit code to return (default 0).
	ExitCode int `json:"exit_code"`
	// Stdout is the content to write to stdout.
	Stdout string `json:"stdout"`
	// Stderr is the content to write to stderr.
	Stderr string `json:"stderr"`
	// WantArgs, when set, makes the helper fail with ExitArgsMismatch unless
	// it was invoked with exactly these arguments.
	WantArgs []string `json:"want_args,omitempty"`
}

// ExitArgsMismatch is the helper exit code for unexpected arguments.
const ExitArgsMismatch = 97

// Environment variable names used by TestHelperProcess.
const (
	// EnvWantHelperProcess signals that the test binary should run as a helper process.
	EnvWantHelperProcess = "GO_WANT_HELPER_PROCESS"
	// EnvHelperProcessConfig contains JSON-encoded HelperProcessConfig.
	EnvHelperProcessConfig = "GO_HELPER_PROCESS_CONFIG"
	// EnvHelperProcessArgs contains the original command-line arguments (JSON array).
	EnvHelperProcessArgs = "GO_HELPER_PROCESS_ARGS"
)

// TestHelperProcess is called from a test function to implement the helper
// process pattern. When GO_WANT_HELPER_PROCESS=1 it behaves as the fake
// executable and exits without returning.
//
// Usage in test file:
//
//	func TestHelperProcess(t *testing.T) {
//	    testutil.TestHelperProcess(t)
//	}
func TestHelperProcess(t *testing.T) {
	if os.Getenv(EnvWantHelperProcess) != "1" {
		return
	}

	config := parseHelperConfig()
	runHelperProcess(config)
}

// parseHelperConfig parses HelperProcessConfig from environment variable.
func parseHelperConfig() HelperProcessConfig {
	config := HelperProcessConfig{}
	configJSON := os.Getenv(EnvHelperProcessConfig)
	if configJSON != "" {
		// Ignore parse errors; use defaults on failure
		_ = json.Unmarshal([]byte(configJSON), &config)
	}
	return config
}

// runHelperProcess writes the configured output and always exits.
func runHelperProcess(config HelperProcessConfig) {
	if config.WantArgs != nil {
		args, err := GetHelperProcessArgs()
		if err != nil || !slices.Equal(args, config.WantArgs) {
			fmt.Fprintf(os.Stderr, "unexpected arguments %q, want %q\n", args, config.WantArgs)
			os.Exit(ExitArgsMismatch)
		}
	}
	if config.Stdout != "" {
		fmt.Fprint(os.Stdout, config.Stdout)
	}
	if config.Stderr != "" {
		fmt.Fprint(os.Stderr, config.Stderr)
	}
	os.Exit(config.ExitCode)
}

// buildHelperEnv constructs the environment variables for helper process.
func buildHelperEnv(t *testing.T, config HelperProcessConfig, args []string) []string {
	t.Helper()

	env := os.Environ()
	env = append(env, EnvWantHelperProcess+"=1")

	if configJSON, err := json.Marshal(config); err == nil {
		env = append(env, EnvHelperProcessConfig+"="+string(configJSON))
	}
	if argsJSON, err := json.Marshal(args); err == nil {
		env = append(env, EnvHelperProcessArgs+"="+string(argsJSON))
	}

	return env
}

// RecordedCall is one command a CommandRecorder was asked to build.
type RecordedCall struct {
	Name string
	Args []string
}

// CommandRecorder replaces exec.CommandContext in code under test. Every
// command it builds runs the test binary as a helper process with the same
// canned behavior, and the requested name and arguments are recorded.
type CommandRecorder struct {
	t        *testing.T
	testName string
	config   HelperProcessConfig

	mu    sync.Mutex
	calls []RecordedCall
}

// NewCommandRecorder creates a recorder whose commands run the helper test
// named testName with the given behavior.
func NewCommandRecorder(t *testing.T, testName string, config HelperProcessConfig) *CommandRecorder {
	t.Helper()
	return &CommandRecorder{t: t, testName: testName, config: config}
}

// CommandContext has the signature of exec.CommandContext.
func (r *CommandRecorder) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	r.t.Helper()

	r.mu.Lock()
	r.calls = append(r.calls, RecordedCall{Name: name, Args: append([]string(nil), args...)})
	r.mu.Unlock()

	testBinary, err := os.Executable()
	if err != nil {
		r.t.Fatalf("failed to get test binary path: %v", err)
	}

	cmd := exec.CommandContext(ctx, testBinary, "-test.run=^"+r.testName+"$")
	cmd.Env = buildHelperEnv(r.t, r.config, args)
	return cmd
}

// Calls returns the commands built so far.
func (r *CommandRecorder) Calls() []RecordedCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedCall(nil), r.calls...)
}

// GetHelperProcessArgs retrieves the original arguments passed to the helper process.
func GetHelperProcessArgs() ([]string, error) {
	argsJSON := os.Getenv(EnvHelperProcessArgs)
	if argsJSON == "" {
		return nil, nil
	}

	var args []string
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return nil, fmt.Errorf("parsing helper process args: %w", err)
	}
	return args, nil
}
