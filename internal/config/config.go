package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docreports/internal/errors"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "docreports.yaml"

// Config represents the application configuration
type Config struct {
	Project  ProjectConfig  `yaml:"project"`
	Paths    PathsConfig    `yaml:"paths"`
	Cloc     ClocConfig     `yaml:"cloc"`
	TypeDoc  TypeDocConfig  `yaml:"typedoc"`
	Coverage CoverageConfig `yaml:"coverage"`
	Renderer RendererConfig `yaml:"renderer"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics,omitempty"`
}

// ProjectConfig describes the documented project.
type ProjectConfig struct {
	Name        string `yaml:"name"`
	Author      string `yaml:"author,omitempty"`
	PackageJSON string `yaml:"package_json,omitempty"` // version source, relative to root
}

// PathsConfig holds the documentation tree layout. Everything except Root is
// relative to Root unless absolute.
type PathsConfig struct {
	Root       string `yaml:"root"`
	DocsSource string `yaml:"docs_source"`
	Generated  string `yaml:"generated"`
	Build      string `yaml:"build"`
	HTMLOutput string `yaml:"html_output"`
}

// ClocConfig configures the line counter.
type ClocConfig struct {
	Skip         bool     `yaml:"skip,omitempty"`
	Command      []string `yaml:"command,omitempty"` // overrides command resolution
	ExcludedDirs []string `yaml:"excluded_dirs"`
}

// TypeDocConfig configures the API documentation generator.
type TypeDocConfig struct {
	Skip    bool     `yaml:"skip,omitempty"`
	Command []string `yaml:"command,omitempty"`
	Options string   `yaml:"options"` // typedoc.json
	Output  string   `yaml:"output"`
}

// CoverageConfig configures the coverage report.
type CoverageConfig struct {
	Summary      string `yaml:"summary"`
	Output       string `yaml:"output,omitempty"`
	AllowMissing bool   `yaml:"allow_missing,omitempty"`
}

// RendererConfig configures the documentation renderer and the settings
// handed to it.
type RendererConfig struct {
	Skip            bool           `yaml:"skip,omitempty"`
	Command         string         `yaml:"command"`
	Args            []string       `yaml:"args,omitempty"`
	Title           string         `yaml:"title,omitempty"`
	Theme           string         `yaml:"theme"`
	ThemeOptions    map[string]any `yaml:"theme_options,omitempty"`
	Extensions      []string       `yaml:"extensions"`
	MystExtensions  []string       `yaml:"myst_extensions"`
	Linkify         bool           `yaml:"linkify,omitempty"`
	HeadingAnchors  int            `yaml:"heading_anchors"`
	ExcludePatterns []string       `yaml:"exclude_patterns"`
	CSSFiles        []string       `yaml:"css_files,omitempty"`
	DarkMode        *bool          `yaml:"dark_mode,omitempty"`
}

// LoggingConfig selects log level and format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig enables the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, derrors.ConfigNotFound(configPath)
	}

	// #nosec G304 -- configuration path is user supplied by design
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to unmarshal config").
			WithContext("path", configPath)
	}

	return finish(cfg, filepath.Dir(configPath))
}

// LoadOptional behaves like Load but falls back to defaults rooted at the
// current directory when the file does not exist.
func LoadOptional(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		loadEnvFiles()
		return finish(Default(), ".")
	}
	return Load(configPath)
}

func finish(cfg *Config, baseDir string) (*Config, error) {
	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	applyEnv(cfg)

	if !filepath.IsAbs(cfg.Paths.Root) {
		cfg.Paths.Root = filepath.Join(baseDir, cfg.Paths.Root)
	}
	root, err := filepath.Abs(cfg.Paths.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	cfg.Paths.Root = root

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Default()
	example.Project.Name = "My Project"
	example.Project.Author = "Project Maintainers"
	example.Renderer.ThemeOptions = map[string]any{
		"collapse_navigation": false,
		"navigation_depth":    4,
		"body_max_width":      "100%",
	}
	example.Renderer.CSSFiles = []string{"css/custom.css"}

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// #nosec G306 -- configuration file is meant to be shared
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
