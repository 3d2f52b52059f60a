// Package testutil builds throwaway project trees for end-to-end tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ProjectBuilder provides a fluent interface for laying out a test project.
type ProjectBuilder struct {
	t      *testing.T
	root   string
	config []string
	files  map[string]string
}

// Project is a materialized test project.
type Project struct {
	Root       string
	ConfigPath string
}

// NewProject creates a builder rooted in a fresh temporary directory.
func NewProject(t *testing.T) *ProjectBuilder {
	t.Helper()
	return &ProjectBuilder{
		t:     t,
		root:  t.TempDir(),
		files: map[string]string{},
	}
}

// WithConfig appends raw YAML to the project's configuration file.
func (pb *ProjectBuilder) WithConfig(yaml string) *ProjectBuilder {
	pb.config = append(pb.config, strings.TrimRight(yaml, "\n"))
	return pb
}

// WithFile adds a file at a slash-separated path relative to the root.
func (pb *ProjectBuilder) WithFile(rel, content string) *ProjectBuilder {
	pb.files[rel] = content
	return pb
}

// WithCoverageSummary writes a coverage summary at the default location.
func (pb *ProjectBuilder) WithCoverageSummary(json string) *ProjectBuilder {
	return pb.WithFile("docs/build/coverage/coverage-summary.json", json)
}

// WithPackageVersion writes a package.json carrying version.
func (pb *ProjectBuilder) WithPackageVersion(name, version string) *ProjectBuilder {
	return pb.WithFile("package.json", `{"name":"`+name+`","version":"`+version+`"}`)
}

// Build writes all files and returns the project.
func (pb *ProjectBuilder) Build() *Project {
	pb.t.Helper()
	for rel, content := range pb.files {
		writeFile(pb.t, filepath.Join(pb.root, filepath.FromSlash(rel)), content)
	}
	p := &Project{Root: pb.root, ConfigPath: filepath.Join(pb.root, "docreports.yaml")}
	writeFile(pb.t, p.ConfigPath, strings.Join(pb.config, "\n")+"\n")
	return p
}

// Path joins a slash-separated path to the project root.
func (p *Project) Path(rel string) string {
	return filepath.Join(p.Root, filepath.FromSlash(rel))
}

// CoverageStat renders one coverage metric object.
func CoverageStat(covered, total int, pct float64) string {
	return `{"total":` + itoa(total) + `,"covered":` + itoa(covered) + `,"pct":` + ftoa(pct) + `}`
}

// CoverageEntry renders a coverage entry where every metric shares stat.
func CoverageEntry(stat string) string {
	return `{"lines":` + stat + `,"statements":` + stat + `,"functions":` + stat + `,"branches":` + stat + `}`
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
