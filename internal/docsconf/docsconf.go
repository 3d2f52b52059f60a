// Package docsconf produces the settings consumed by the documentation
// generator, including the availability flags for generated reports.
package docsconf

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docreports/internal/config"
	"git.home.luguber.info/inful/docreports/internal/report"
)

// Flags records which generated artifacts are available to the docs.
type Flags struct {
	HaveTypeDoc        bool `yaml:"have_typedoc"`
	HaveClocReport     bool `yaml:"have_cloc_report"`
	HaveCoverageReport bool `yaml:"have_coverage_report"`
}

// Settings is the documentation-generator configuration written for the renderer.
type Settings struct {
	Project   string `yaml:"project"`
	Author    string `yaml:"author,omitempty"`
	Copyright string `yaml:"copyright"`
	Version   string `yaml:"version,omitempty"`

	Extensions           []string          `yaml:"extensions"`
	SourceSuffix         map[string]string `yaml:"source_suffix"`
	MystHeadingAnchors   int               `yaml:"myst_heading_anchors"`
	MystEnableExtensions []string          `yaml:"myst_enable_extensions"`
	MystFenceAsDirective []string          `yaml:"myst_fence_as_directive"`
	TemplatesPath        []string          `yaml:"templates_path"`
	ExcludePatterns      []string          `yaml:"exclude_patterns"`

	HTMLTheme          string         `yaml:"html_theme"`
	HTMLThemeOptions   map[string]any `yaml:"html_theme_options"`
	HTMLStaticPath     []string       `yaml:"html_static_path"`
	HTMLCSSFiles       []string       `yaml:"html_css_files,omitempty"`
	HTMLTitle          string         `yaml:"html_title,omitempty"`
	HTMLShowSourceLink bool           `yaml:"html_show_sourcelink"`
	DefaultDarkMode    bool           `yaml:"default_dark_mode"`
	PygmentsStyle      string         `yaml:"pygments_style"`
	PygmentsDarkStyle  string         `yaml:"pygments_dark_style"`

	Flags `yaml:",inline"`
}

// Package holds the package.json fields used for the project title.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ReadPackage reads package metadata.
func ReadPackage(path string) (Package, error) {
	var pkg Package
	// #nosec G304 -- path is derived from the project root
	data, err := os.ReadFile(path)
	if err != nil {
		return pkg, err
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return pkg, fmt.Errorf("parse %s: %w", path, err)
	}
	return pkg, nil
}

// Build assembles Settings from configuration, package metadata and flags.
func Build(cfg *config.Config, flags Flags, now time.Time, logger *slog.Logger) Settings {
	if logger == nil {
		logger = slog.Default()
	}
	rc := cfg.Renderer

	// Phase 1: project information
	s := Settings{
		Project: cfg.Project.Name,
		Author:  cfg.Project.Author,
	}
	s.Copyright = strconv.Itoa(now.Year())
	if s.Author != "" {
		s.Copyright += ", " + s.Author
	}
	pkg, err := ReadPackage(cfg.PackageJSONPath())
	switch {
	case err != nil:
		logger.Warn("Unable to read package.json; version will be omitted", "path", cfg.PackageJSONPath(), "error", err)
	case pkg.Version != "":
		s.Version = pkg.Version
		s.Project += " - v" + pkg.Version
	}

	// Phase 2: source handling
	s.Extensions = append([]string(nil), rc.Extensions...)
	s.SourceSuffix = map[string]string{".rst": "restructuredtext", ".md": "markdown"}
	s.MystHeadingAnchors = rc.HeadingAnchors
	s.MystEnableExtensions = append([]string(nil), rc.MystExtensions...)
	if rc.Linkify && !slices.Contains(s.MystEnableExtensions, "linkify") {
		s.MystEnableExtensions = append(s.MystEnableExtensions, "linkify")
	}
	s.MystFenceAsDirective = []string{"mermaid"}
	s.TemplatesPath = []string{"_templates"}
	s.ExcludePatterns = append([]string(nil), rc.ExcludePatterns...)

	// Phase 3: HTML output
	s.HTMLTheme = rc.Theme
	s.HTMLThemeOptions = map[string]any{
		"collapse_navigation": false,
		"navigation_depth":    4,
		"body_max_width":      "100%",
	}
	for k, v := range rc.ThemeOptions {
		s.HTMLThemeOptions[k] = v
	}
	s.HTMLStaticPath = []string{"_static"}
	s.HTMLCSSFiles = append([]string(nil), rc.CSSFiles...)
	s.HTMLTitle = rc.Title
	s.DefaultDarkMode = rc.DarkMode == nil || *rc.DarkMode
	s.PygmentsStyle = "sphinx"
	s.PygmentsDarkStyle = "native"

	// Phase 4: computed availability
	s.Flags = flags
	return s
}

// Marshal renders Settings as YAML preceded by an edit warning.
func Marshal(s Settings) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal docs config: %w", err)
	}
	return append([]byte("# Automatically generated by docreports; do not edit manually.\n"), data...), nil
}

// Write marshals Settings to path.
func Write(path string, s Settings) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return report.Write(path, string(data))
}
