package tools

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Command describes one external tool invocation.
type Command struct {
	Argv []string
	Dir  string
}

func (c Command) String() string { return strings.Join(c.Argv, " ") }

// Runner executes a Command and returns its stdout. Implementations other than
// ExecRunner exist for tests.
type Runner interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

// ExecRunner runs commands as subprocesses.
type ExecRunner struct {
	Logger *slog.Logger
}

func (r *ExecRunner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// Run executes cmd and returns stdout. Stderr is logged; on failure it is
// attached to the returned error.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) ([]byte, error) {
	if len(cmd.Argv) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrToolExecutionFailed)
	}

	// #nosec G204 -- argv comes from resolved tool paths and configuration
	c := exec.CommandContext(ctx, cmd.Argv[0], cmd.Argv[1:]...)
	c.Dir = cmd.Dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	r.logger().Debug("Running external tool", "command", cmd.String(), "dir", cmd.Dir)
	err := c.Run()

	errStr := strings.TrimSpace(stderr.String())
	if errStr != "" {
		r.logger().Debug("Tool stderr", "command", cmd.Argv[0], "error_output", errStr)
	}

	if err != nil {
		if errStr != "" {
			return stdout.Bytes(), fmt.Errorf("%w: %w: %s", ErrToolExecutionFailed, err, errStr)
		}
		return stdout.Bytes(), fmt.Errorf("%w: %w", ErrToolExecutionFailed, err)
	}
	return stdout.Bytes(), nil
}
