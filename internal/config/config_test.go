package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docreports/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv(EnvClocSkip, "")
	t.Setenv(EnvTypeDocSkip, "")
	t.Setenv(EnvLogLevel, "")
	dir := t.TempDir()
	path := writeConfig(t, dir, "project:\n  name: Widget\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	require.Equal(t, abs, cfg.Paths.Root)
	require.Equal(t, "Widget", cfg.Project.Name)
	require.Equal(t, "package.json", cfg.Project.PackageJSON)
	require.Equal(t, DefaultExcludedDirs, cfg.Cloc.ExcludedDirs)
	require.Equal(t, "sphinx-build", cfg.Renderer.Command)
	require.Equal(t, 2, cfg.Renderer.HeadingAnchors)
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
	require.False(t, cfg.Cloc.Skip)
	require.False(t, cfg.TypeDoc.Skip)

	require.Equal(t, filepath.Join(abs, "docs", "source", "_generated", "cloc-report.md"), cfg.ClocReportPath())
	require.Equal(t, filepath.Join(abs, "docs", "source", "_generated", "coverage-report.md"), cfg.CoverageReportPath())
	require.Equal(t, filepath.Join(abs, "docs", "build", "coverage", "coverage-summary.json"), cfg.CoverageSummary())
	require.Equal(t, filepath.Join(abs, "docs", "build", "typedoc", "index.html"), cfg.TypeDocIndex())
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("DOCREPORTS_TEST_NAME", "Expanded")
	dir := t.TempDir()
	path := writeConfig(t, dir, "project:\n  name: ${DOCREPORTS_TEST_NAME}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Expanded", cfg.Project.Name)
}

func TestLoad_EnvironmentToggles(t *testing.T) {
	t.Setenv(EnvClocSkip, "1")
	t.Setenv(EnvTypeDocSkip, "yes")
	t.Setenv(EnvLogLevel, "DEBUG")
	dir := t.TempDir()
	path := writeConfig(t, dir, "logging:\n  level: error\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.Cloc.Skip)
	require.True(t, cfg.TypeDoc.Skip)
	require.Equal(t, LogLevelDebug, cfg.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "project: [unterminated\n")
	_, err := Load(path)
	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
}

func TestLoad_RejectsCommaInExcludedDir(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "cloc:\n  excluded_dirs: [\"a,b\"]\n")
	_, err := Load(path)
	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
}

func TestLoad_RendererCommandRequiredUnlessSkipped(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "renderer:\n  command: \" \"\n")
	_, err := Load(path)
	require.NoError(t, err, "blank command falls back to the default")

	cfg := Default()
	cfg.Paths.Root = dir
	cfg.Renderer.Command = ""
	require.Error(t, ValidateConfig(cfg))
	cfg.Renderer.Skip = true
	require.NoError(t, ValidateConfig(cfg))
}

func TestLoad_RootMustExist(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "paths:\n  root: missing\n")
	_, err := Load(path)
	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
}

func TestLoadOptional_FallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadOptional(DefaultFile)
	require.NoError(t, err)
	abs, err := filepath.Abs(".")
	require.NoError(t, err)
	require.Equal(t, abs, cfg.Paths.Root)
	require.Equal(t, "Documentation", cfg.Project.Name)
}

func TestLoadEnvFiles_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".env", []byte("DOCREPORTS_TEST_A=from-env\nDOCREPORTS_TEST_B=from-env\n"), 0o600))
	require.NoError(t, os.WriteFile(".env.local", []byte("DOCREPORTS_TEST_A=from-local\n"), 0o600))
	t.Setenv("DOCREPORTS_TEST_A", "")
	t.Setenv("DOCREPORTS_TEST_B", "preset")
	require.NoError(t, os.Unsetenv("DOCREPORTS_TEST_A"))

	loadEnvFiles()

	require.Equal(t, "from-local", os.Getenv("DOCREPORTS_TEST_A"))
	require.Equal(t, "preset", os.Getenv("DOCREPORTS_TEST_B"))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "My Project", cfg.Project.Name)
	require.Equal(t, 4, cfg.Renderer.ThemeOptions["navigation_depth"])
}

func TestRendererArgs(t *testing.T) {
	cfg := Default()
	cfg.Paths.Root = "/proj"
	require.Equal(t, []string{"-b", "html", filepath.FromSlash("/proj/docs/source"), filepath.FromSlash("/proj/docs/build/html")}, cfg.RendererArgs())

	cfg.Renderer.Args = []string{"-M", "html"}
	require.Equal(t, []string{"-M", "html"}, cfg.RendererArgs())
}

func TestNormalizeLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":        LogLevelInfo,
		"debug":   LogLevelDebug,
		" WARN ":  LogLevelWarn,
		"warning": LogLevelWarn,
		"error":   LogLevelError,
		"bogus":   LogLevelInfo,
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeLogLevel(in), in)
	}
	require.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
	require.Equal(t, LogFormatText, NormalizeLogFormat("xml"))
}
