package tools

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// Renderer abstracts the final documentation rendering step so the external
// binary can be replaced in tests.
type Renderer interface {
	Render(ctx context.Context, root string) error
}

// BinaryRenderer invokes a documentation generator binary such as sphinx-build.
type BinaryRenderer struct {
	Command string
	Args    []string
	Runner  Runner
	Logger  *slog.Logger

	// LookPath defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

func (b *BinaryRenderer) Render(ctx context.Context, root string) error {
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("render root not found: %w", err)
	}

	runner := b.Runner
	if runner == nil {
		runner = &ExecRunner{Logger: b.Logger}
	}
	lookPath := b.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(b.Command)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrToolNotFound, b.Command, err)
	}

	argv := append([]string{path}, b.Args...)
	out, err := runner.Run(ctx, Command{Argv: argv, Dir: root})
	if len(out) > 0 {
		logger := b.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Debug("renderer stdout", "output", string(out))
	}
	return err
}

// NoopRenderer performs no rendering.
type NoopRenderer struct{}

func (n *NoopRenderer) Render(_ context.Context, root string) error {
	slog.Debug("NoopRenderer skipping render", "dir", root)
	return nil
}
