// Package report holds the output conventions shared by the generated Markdown
// reports: placeholder documents and idempotent file writes.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document joins lines with newlines and terminates the result with one.
func Document(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// Placeholder renders a stub document: an HTML comment marker and a message.
func Placeholder(marker, message string) string {
	return Document(marker, message)
}

// Write stores content at path, creating parent directories as needed.
func Write(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	// #nosec G306 -- generated documentation is world-readable by design of the docs tree
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
