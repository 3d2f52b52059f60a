package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Cloc runs the cloc line counter over a project root.
type Cloc struct {
	Root         string
	ExcludedDirs []string

	// Command overrides resolution when non-empty.
	Command  []string
	Runner   Runner
	Resolver *Resolver
	Logger   *slog.Logger
}

// Args returns the cloc arguments following the command itself.
func (c *Cloc) Args(byFile bool) []string {
	args := []string{"--json", "--quiet"}
	if len(c.ExcludedDirs) > 0 {
		args = append(args, "--exclude-dir="+strings.Join(c.ExcludedDirs, ","))
	}
	if byFile {
		args = append(args, "--by-file")
	}
	return append(args, c.Root)
}

// Run executes cloc and returns its raw JSON output. The output is checked to
// be a JSON object but not otherwise interpreted. A non-zero exit still yields
// data when cloc printed a JSON object.
func (c *Cloc) Run(ctx context.Context, byFile bool) ([]byte, error) {
	argv, err := c.command()
	if err != nil {
		return nil, err
	}
	argv = append(argv, c.Args(byFile)...)

	out, err := c.Runner.Run(ctx, Command{Argv: argv, Dir: c.Root})
	if err != nil {
		if !errors.Is(err, ErrToolExecutionFailed) || len(bytes.TrimSpace(out)) == 0 || ctx.Err() != nil {
			return nil, err
		}
		c.logger().Warn("cloc exited with an error; using its output", "by_file", byFile, "error", err)
	}
	return validateJSONObject(out)
}

func (c *Cloc) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Cloc) command() ([]string, error) {
	if len(c.Command) > 0 {
		return append([]string(nil), c.Command...), nil
	}
	resolver := c.Resolver
	if resolver == nil {
		resolver = NewResolver(c.Root)
	}
	return resolver.Resolve("cloc", "--yes", "cloc")
}

func validateJSONObject(out []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrToolOutputUnparseable)
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: output is not a JSON object", ErrToolOutputUnparseable)
	}
	return trimmed, nil
}

// Indent re-indents raw JSON with two spaces for persisting alongside reports.
func Indent(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrToolOutputUnparseable, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
