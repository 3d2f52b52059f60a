package config

import "path/filepath"

// Resolve joins p to the project root unless it is absolute.
func (c *Config) Resolve(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Paths.Root, p)
}

// GeneratedDir holds every generated Markdown and JSON artifact.
func (c *Config) GeneratedDir() string { return c.Resolve(c.Paths.Generated) }

func (c *Config) ClocReportPath() string   { return filepath.Join(c.GeneratedDir(), "cloc-report.md") }
func (c *Config) ClocSummaryPath() string  { return filepath.Join(c.GeneratedDir(), "cloc-summary.json") }
func (c *Config) ClocFilesPath() string    { return filepath.Join(c.GeneratedDir(), "cloc-files.json") }
func (c *Config) DocsConfigPath() string   { return filepath.Join(c.GeneratedDir(), "docs-config.yaml") }
func (c *Config) ManifestPath() string     { return filepath.Join(c.GeneratedDir(), "reports-manifest.json") }
func (c *Config) CoverageSummary() string  { return c.Resolve(c.Coverage.Summary) }
func (c *Config) TypeDocOptions() string   { return c.Resolve(c.TypeDoc.Options) }
func (c *Config) TypeDocOutputDir() string { return c.Resolve(c.TypeDoc.Output) }
func (c *Config) TypeDocIndex() string     { return filepath.Join(c.TypeDocOutputDir(), "index.html") }
func (c *Config) DocsSourceDir() string    { return c.Resolve(c.Paths.DocsSource) }
func (c *Config) HTMLOutputDir() string    { return c.Resolve(c.Paths.HTMLOutput) }
func (c *Config) PackageJSONPath() string  { return c.Resolve(c.Project.PackageJSON) }

// CoverageReportPath defaults to coverage-report.md in the generated directory.
func (c *Config) CoverageReportPath() string {
	if c.Coverage.Output != "" {
		return c.Resolve(c.Coverage.Output)
	}
	return filepath.Join(c.GeneratedDir(), "coverage-report.md")
}

// RendererArgs returns the configured renderer arguments or the sphinx-build
// style default "-b html <source> <output>".
func (c *Config) RendererArgs() []string {
	if len(c.Renderer.Args) > 0 {
		return append([]string(nil), c.Renderer.Args...)
	}
	return []string{"-b", "html", c.DocsSourceDir(), c.HTMLOutputDir()}
}
