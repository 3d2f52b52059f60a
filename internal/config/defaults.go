package config

import (
	"fmt"
	"strings"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// DefaultExcludedDirs are never counted by the line counter.
var DefaultExcludedDirs = []string{
	"node_modules",
	"build",
	"typedoc",
	"out",
	".git",
	".venv",
	"dist",
	"coverage",
	".VSCodeCounter",
	".vscode-test",
	".github",
	".vscode",
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	cfg := &Config{}
	_ = applyDefaults(cfg)
	return cfg
}

func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		&ProjectDefaultApplier{},
		&PathsDefaultApplier{},
		&ToolsDefaultApplier{},
		&RendererDefaultApplier{},
		&LoggingDefaultApplier{},
	}
}

func applyDefaults(cfg *Config) error {
	for _, applier := range defaultAppliers() {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("apply %s defaults: %w", applier.Domain(), err)
		}
	}
	return nil
}

// ProjectDefaultApplier handles Project configuration defaults.
type ProjectDefaultApplier struct{}

func (p *ProjectDefaultApplier) Domain() string { return "project" }

func (p *ProjectDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Project.Name == "" {
		cfg.Project.Name = "Documentation"
	}
	if cfg.Project.PackageJSON == "" {
		cfg.Project.PackageJSON = "package.json"
	}
	return nil
}

// PathsDefaultApplier handles Paths configuration defaults.
type PathsDefaultApplier struct{}

func (p *PathsDefaultApplier) Domain() string { return "paths" }

func (p *PathsDefaultApplier) ApplyDefaults(cfg *Config) error {
	setDefault(&cfg.Paths.Root, ".")
	setDefault(&cfg.Paths.DocsSource, "docs/source")
	setDefault(&cfg.Paths.Generated, "docs/source/_generated")
	setDefault(&cfg.Paths.Build, "docs/build")
	setDefault(&cfg.Paths.HTMLOutput, "docs/build/html")
	return nil
}

// ToolsDefaultApplier handles cloc, TypeDoc and coverage defaults.
type ToolsDefaultApplier struct{}

func (t *ToolsDefaultApplier) Domain() string { return "tools" }

func (t *ToolsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Cloc.ExcludedDirs == nil {
		cfg.Cloc.ExcludedDirs = append([]string(nil), DefaultExcludedDirs...)
	}
	setDefault(&cfg.TypeDoc.Options, "typedoc.json")
	setDefault(&cfg.TypeDoc.Output, "docs/build/typedoc")
	setDefault(&cfg.Coverage.Summary, "docs/build/coverage/coverage-summary.json")
	return nil
}

// RendererDefaultApplier handles documentation renderer defaults.
type RendererDefaultApplier struct{}

func (r *RendererDefaultApplier) Domain() string { return "renderer" }

func (r *RendererDefaultApplier) ApplyDefaults(cfg *Config) error {
	rc := &cfg.Renderer
	setDefault(&rc.Command, "sphinx-build")
	setDefault(&rc.Theme, "sphinx_rtd_theme")
	if rc.Extensions == nil {
		rc.Extensions = []string{"myst_parser", "sphinxcontrib.mermaid", "sphinx.ext.ifconfig", "sphinx_rtd_dark_mode"}
	}
	if rc.MystExtensions == nil {
		rc.MystExtensions = []string{"colon_fence", "substitution"}
	}
	if rc.HeadingAnchors <= 0 {
		rc.HeadingAnchors = 2
	}
	if rc.DarkMode == nil {
		dark := true
		rc.DarkMode = &dark
	}
	if rc.ExcludePatterns == nil {
		rc.ExcludePatterns = []string{"_build", "Thumbs.db", ".DS_Store", "_generated/*"}
	}
	return nil
}

// LoggingDefaultApplier normalizes logging settings.
type LoggingDefaultApplier struct{}

func (l *LoggingDefaultApplier) Domain() string { return "logging" }

func (l *LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	return nil
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}
