package tools

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls  []Command
	out    []byte
	err    error
	effect func(cmd Command)
}

func (f *fakeRunner) Run(_ context.Context, cmd Command) ([]byte, error) {
	f.calls = append(f.calls, cmd)
	if f.effect != nil {
		f.effect(cmd)
	}
	return f.out, f.err
}

func lookPathOnly(found ...string) func(string) (string, error) {
	return func(file string) (string, error) {
		for _, f := range found {
			if f == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestResolver(t *testing.T) {
	t.Run("prefers node_modules", func(t *testing.T) {
		root := t.TempDir()
		bin := filepath.Join(root, "node_modules", ".bin")
		require.NoError(t, os.MkdirAll(bin, 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(bin, "cloc"), []byte("#!/bin/sh\n"), 0o600))

		r := &Resolver{Root: root, LookPath: lookPathOnly("cloc", "npx")}
		argv, err := r.Resolve("cloc", "--yes", "cloc")
		require.NoError(t, err)
		require.Equal(t, []string{filepath.Join(bin, "cloc")}, argv)
	})

	t.Run("falls back to PATH", func(t *testing.T) {
		r := &Resolver{Root: t.TempDir(), LookPath: lookPathOnly("cloc", "npx")}
		argv, err := r.Resolve("cloc", "--yes", "cloc")
		require.NoError(t, err)
		require.Equal(t, []string{"/usr/bin/cloc"}, argv)
	})

	t.Run("falls back to npx", func(t *testing.T) {
		r := &Resolver{Root: t.TempDir(), LookPath: lookPathOnly("npx")}
		argv, err := r.Resolve("cloc", "--yes", "cloc")
		require.NoError(t, err)
		require.Equal(t, []string{"/usr/bin/npx", "--yes", "cloc"}, argv)
	})

	t.Run("not found", func(t *testing.T) {
		r := &Resolver{Root: t.TempDir(), LookPath: lookPathOnly()}
		_, err := r.Resolve("typedoc", "typedoc")
		require.ErrorIs(t, err, ErrToolNotFound)
	})
}

func TestClocArgs(t *testing.T) {
	c := &Cloc{Root: "/proj", ExcludedDirs: []string{"node_modules", ".git"}}
	require.Equal(t, []string{"--json", "--quiet", "--exclude-dir=node_modules,.git", "/proj"}, c.Args(false))
	require.Equal(t, []string{"--json", "--quiet", "--exclude-dir=node_modules,.git", "--by-file", "/proj"}, c.Args(true))

	c.ExcludedDirs = nil
	require.Equal(t, []string{"--json", "--quiet", "/proj"}, c.Args(false))
}

func TestClocRun(t *testing.T) {
	ctx := context.Background()

	t.Run("returns trimmed JSON", func(t *testing.T) {
		runner := &fakeRunner{out: []byte("\n  {\"header\": {}}\n")}
		c := &Cloc{Root: "/proj", Command: []string{"cloc"}, Runner: runner}
		out, err := c.Run(ctx, true)
		require.NoError(t, err)
		require.JSONEq(t, `{"header": {}}`, string(out))
		require.Len(t, runner.calls, 1)
		require.Equal(t, "/proj", runner.calls[0].Dir)
		require.Equal(t, "cloc", runner.calls[0].Argv[0])
		require.Contains(t, runner.calls[0].Argv, "--by-file")
	})

	t.Run("empty output", func(t *testing.T) {
		c := &Cloc{Root: "/proj", Command: []string{"cloc"}, Runner: &fakeRunner{out: []byte("  ")}}
		_, err := c.Run(ctx, false)
		require.ErrorIs(t, err, ErrToolOutputUnparseable)
	})

	t.Run("non-object output", func(t *testing.T) {
		c := &Cloc{Root: "/proj", Command: []string{"cloc"}, Runner: &fakeRunner{out: []byte("[1,2]")}}
		_, err := c.Run(ctx, false)
		require.ErrorIs(t, err, ErrToolOutputUnparseable)
	})

	t.Run("execution failure", func(t *testing.T) {
		runErr := errors.Join(ErrToolExecutionFailed, errors.New("exit status 2"))
		c := &Cloc{Root: "/proj", Command: []string{"cloc"}, Runner: &fakeRunner{err: runErr}}
		_, err := c.Run(ctx, false)
		require.ErrorIs(t, err, ErrToolExecutionFailed)
	})

	t.Run("non-zero exit with JSON output", func(t *testing.T) {
		runErr := errors.Join(ErrToolExecutionFailed, errors.New("exit status 1"))
		runner := &fakeRunner{out: []byte(`{"Go":{"nFiles":1,"code":1}}`), err: runErr}
		c := &Cloc{Root: "/proj", Command: []string{"cloc"}, Runner: runner}
		out, err := c.Run(ctx, false)
		require.NoError(t, err)
		require.JSONEq(t, `{"Go":{"nFiles":1,"code":1}}`, string(out))
	})

	t.Run("non-zero exit with garbage output", func(t *testing.T) {
		runErr := errors.Join(ErrToolExecutionFailed, errors.New("exit status 1"))
		c := &Cloc{Root: "/proj", Command: []string{"cloc"}, Runner: &fakeRunner{out: []byte("oops"), err: runErr}}
		_, err := c.Run(ctx, false)
		require.ErrorIs(t, err, ErrToolOutputUnparseable)
	})

	t.Run("unresolvable", func(t *testing.T) {
		c := &Cloc{
			Root:     t.TempDir(),
			Runner:   &fakeRunner{},
			Resolver: &Resolver{LookPath: lookPathOnly()},
		}
		_, err := c.Run(ctx, false)
		require.ErrorIs(t, err, ErrToolNotFound)
	})
}

func TestIndent(t *testing.T) {
	out, err := Indent([]byte(`{"a":{"b":1}}`))
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": {\n    \"b\": 1\n  }\n}\n", string(out))

	_, err = Indent([]byte("{"))
	require.ErrorIs(t, err, ErrToolOutputUnparseable)
}

func newTypeDoc(t *testing.T, runner Runner) *TypeDoc {
	t.Helper()
	root := t.TempDir()
	return &TypeDoc{
		Root:      root,
		Options:   filepath.Join(root, "typedoc.json"),
		OutputDir: filepath.Join(root, "docs", "build", "typedoc"),
		Command:   []string{"typedoc"},
		Runner:    runner,
	}
}

func writeIndex(t *testing.T, td *TypeDoc) {
	t.Helper()
	require.NoError(t, os.MkdirAll(td.OutputDir, 0o750))
	require.NoError(t, os.WriteFile(td.Index(), []byte("<html><head><title> API </title></head><body></body></html>"), 0o600))
}

func TestTypeDocGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		runner := &fakeRunner{}
		td := newTypeDoc(t, runner)
		ok, err := td.Generate(ctx)
		require.False(t, ok)
		require.True(t, IsNotConfigured(err))
		require.Empty(t, runner.calls)
	})

	t.Run("produces index", func(t *testing.T) {
		runner := &fakeRunner{}
		td := newTypeDoc(t, runner)
		runner.effect = func(Command) { writeIndex(t, td) }
		require.NoError(t, os.WriteFile(td.Options, []byte("{}"), 0o600))

		ok, err := td.Generate(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []string{"typedoc", "--options", td.Options}, runner.calls[0].Argv)
		require.Equal(t, td.Root, runner.calls[0].Dir)

		available, title := td.Available()
		require.True(t, available)
		require.Equal(t, "API", title)
	})

	t.Run("no index after run", func(t *testing.T) {
		td := newTypeDoc(t, &fakeRunner{})
		require.NoError(t, os.WriteFile(td.Options, []byte("{}"), 0o600))
		ok, err := td.Generate(ctx)
		require.False(t, ok)
		require.ErrorIs(t, err, ErrToolOutputUnparseable)
		require.DirExists(t, td.OutputDir)
	})

	t.Run("failure with previous output", func(t *testing.T) {
		td := newTypeDoc(t, &fakeRunner{err: ErrToolExecutionFailed})
		require.NoError(t, os.WriteFile(td.Options, []byte("{}"), 0o600))
		writeIndex(t, td)
		ok, err := td.Generate(ctx)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("failure without output", func(t *testing.T) {
		td := newTypeDoc(t, &fakeRunner{err: ErrToolExecutionFailed})
		require.NoError(t, os.WriteFile(td.Options, []byte("{}"), 0o600))
		ok, err := td.Generate(ctx)
		require.False(t, ok)
		require.ErrorIs(t, err, ErrToolExecutionFailed)
	})
}

func TestBinaryRenderer(t *testing.T) {
	root := t.TempDir()
	runner := &fakeRunner{}
	r := &BinaryRenderer{
		Command:  "sphinx-build",
		Args:     []string{"-b", "html", "src", "out"},
		Runner:   runner,
		LookPath: lookPathOnly("sphinx-build"),
	}
	require.NoError(t, r.Render(context.Background(), root))
	require.Equal(t, []string{"/usr/bin/sphinx-build", "-b", "html", "src", "out"}, runner.calls[0].Argv)
	require.Equal(t, root, runner.calls[0].Dir)

	r.LookPath = lookPathOnly()
	require.ErrorIs(t, r.Render(context.Background(), root), ErrToolNotFound)

	require.NoError(t, (&NoopRenderer{}).Render(context.Background(), root))
}

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "assets", "js"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.html"), []byte("<html></html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "assets", "js", "main.js"), []byte("x()"), 0o600))

	dst := filepath.Join(t.TempDir(), "html", "typedoc")
	require.NoError(t, os.MkdirAll(dst, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "stale.txt"), []byte("keep"), 0o600))

	require.NoError(t, CopyDir(src, dst))

	got, err := os.ReadFile(filepath.Join(dst, "assets", "js", "main.js"))
	require.NoError(t, err)
	require.Equal(t, "x()", string(got))
	require.FileExists(t, filepath.Join(dst, "index.html"))
	require.FileExists(t, filepath.Join(dst, "stale.txt"))

	require.Error(t, CopyDir(filepath.Join(src, "missing"), dst))
}
