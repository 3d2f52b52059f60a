package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// TypeDoc generates API documentation with the typedoc CLI.
type TypeDoc struct {
	Root      string
	Options   string // path to typedoc.json
	OutputDir string
	Command   []string
	Runner    Runner
	Resolver  *Resolver
	Logger    *slog.Logger
}

// Index returns the path whose existence marks API docs as available.
func (t *TypeDoc) Index() string { return filepath.Join(t.OutputDir, "index.html") }

// Generate runs typedoc with --options and reports whether the index page
// exists afterwards. A non-zero exit is logged rather than returned when an
// index from a previous run is still present.
func (t *TypeDoc) Generate(ctx context.Context) (bool, error) {
	if _, err := os.Stat(t.Options); err != nil {
		return false, fmt.Errorf("%w: %s", ErrNotConfigured, t.Options)
	}

	argv, err := t.command()
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(t.OutputDir, 0o750); err != nil {
		return false, fmt.Errorf("create typedoc output: %w", err)
	}

	argv = append(argv, "--options", t.Options)
	_, runErr := t.Runner.Run(ctx, Command{Argv: argv, Dir: t.Root})

	ok, title := t.Available()
	if runErr != nil {
		if !ok {
			return false, runErr
		}
		t.logger().Warn("TypeDoc reported an error; using existing output", "error", runErr)
	}
	if !ok {
		return false, fmt.Errorf("%w: %s missing after typedoc run", ErrToolOutputUnparseable, t.Index())
	}
	t.logger().Debug("TypeDoc output available", "title", title)
	return true, nil
}

// Available reports whether the index page exists and parses as HTML, along
// with its <title>.
func (t *TypeDoc) Available() (bool, string) {
	f, err := os.Open(t.Index())
	if err != nil {
		return false, ""
	}
	defer func() { _ = f.Close() }()

	doc, err := html.Parse(f)
	if err != nil {
		return false, ""
	}
	return true, documentTitle(doc)
}

func documentTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		var b strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
		return strings.TrimSpace(b.String())
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := documentTitle(c); title != "" {
			return title
		}
	}
	return ""
}

func (t *TypeDoc) command() ([]string, error) {
	if len(t.Command) > 0 {
		return append([]string(nil), t.Command...), nil
	}
	resolver := t.Resolver
	if resolver == nil {
		resolver = NewResolver(t.Root)
	}
	return resolver.Resolve("typedoc", "typedoc")
}

func (t *TypeDoc) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.Default()
	}
	return t.Logger
}

// IsNotConfigured reports whether err means typedoc was never set up.
func IsNotConfigured(err error) bool { return errors.Is(err, ErrNotConfigured) }
