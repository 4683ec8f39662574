package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultCommand is the executable ExecSource runs when none is configured.
const DefaultCommand = "git"

// LogFormat is the pretty format that yields "<short-id> <subject>" per commit.
const LogFormat = "%h %s"

// ExecSource reads history by running "<command> log from..to --pretty=format:%h %s".
// Any executable that honors those arguments can stand in for git.
type ExecSource struct {
	// Command is the executable name or path. Empty means DefaultCommand.
	Command string
	// Dir is the working directory. Empty means the current directory.
	Dir string

	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewExecSource creates an ExecSource for the given executable and directory.
func NewExecSource(command, dir string) *ExecSource {
	return &ExecSource{Command: command, Dir: dir}
}

// LogArgs returns the arguments passed to the executable for a range.
func LogArgs(from, to string) []string {
	return []string{"log", RangeSpec(from, to), "--pretty=format:" + LogFormat}
}

// Log runs the log query. A missing executable, a nonzero exit status or a
// cancelled context all produce a LogUnavailable result with no lines.
func (s *ExecSource) Log(ctx context.Context, from, to string) LogResult {
	name := s.Command
	if name == "" {
		name = DefaultCommand
	}

	newCmd := s.commandContext
	if newCmd == nil {
		newCmd = exec.CommandContext
	}

	args := LogArgs(from, to)
	cmd := newCmd(ctx, name, args...)
	if s.Dir != "" {
		cmd.Dir = s.Dir
	}

	logDebug("[git] running %s %s", name, strings.Join(args, " "))

	out, err := cmd.Output()
	if err != nil {
		return unavailable(describeExecError(name, err))
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return unavailable(fmt.Errorf("%s log: %w", name, ctxErr))
	}

	lines := SplitLogOutput(string(out))
	logDebug("[git] %s log returned %d commits", name, len(lines))
	return resultFromLines(lines)
}

// describeExecError attaches stderr to exit errors.
func describeExecError(name string, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		if stderr != "" {
			return fmt.Errorf("%s log exited with code %d: %s", name, exitErr.ExitCode(), stderr)
		}
		return fmt.Errorf("%s log exited with code %d", name, exitErr.ExitCode())
	}
	return fmt.Errorf("running %s log: %w", name, err)
}
