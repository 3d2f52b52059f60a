package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FileAssertions provides utilities for asserting generated files in tests
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{
		t:       t,
		baseDir: baseDir,
	}
}

// AssertFileExists validates that a file exists
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		fa.t.Errorf("Expected file to exist: %s", fullPath)
	}
	return fa
}

// AssertFileContains validates that a file contains expected content
func (fa *FileAssertions) AssertFileContains(relativePath, expectedContent string) *FileAssertions {
	fa.t.Helper()
	content, ok := fa.read(relativePath)
	if ok && !strings.Contains(content, expectedContent) {
		fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s",
			relativePath, expectedContent, content)
	}
	return fa
}

// AssertPlaceholder validates that a report is a placeholder with marker as
// its first line.
func (fa *FileAssertions) AssertPlaceholder(relativePath, marker string) *FileAssertions {
	fa.t.Helper()
	content, ok := fa.read(relativePath)
	if ok && !strings.HasPrefix(content, marker+"\n") {
		fa.t.Errorf("Expected %s to be a placeholder starting with %q\nActual content:\n%s",
			relativePath, marker, content)
	}
	return fa
}

// AssertNotPlaceholder validates that a report was rendered from data.
func (fa *FileAssertions) AssertNotPlaceholder(relativePath, marker string) *FileAssertions {
	fa.t.Helper()
	content, ok := fa.read(relativePath)
	if ok && strings.Contains(content, marker) {
		fa.t.Errorf("Expected %s to be rendered from data, got placeholder:\n%s", relativePath, content)
	}
	return fa
}

func (fa *FileAssertions) read(relativePath string) (string, bool) {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))
	// #nosec G304 -- test fixture path
	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", fullPath, err)
		return "", false
	}
	return string(content), true
}
