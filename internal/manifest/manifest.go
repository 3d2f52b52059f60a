// Package manifest records what a build produced: one fingerprinted entry per
// generated report, plus the inputs the reports were derived from.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docreports/internal/report"
)

// ReportManifest represents a complete record of a build's inputs and outputs.
type ReportManifest struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Inputs    Inputs        `json:"inputs"`
	Reports   []ReportEntry `json:"reports"`
	Status    string        `json:"status"`
	Duration  int64         `json:"duration_ms"`
}

// Inputs captures content hashes of the JSON summaries reports were built from.
type Inputs struct {
	ConfigHash string            `json:"config_hash,omitempty"`
	Summaries  map[string]string `json:"summaries,omitempty"`
}

// ReportEntry describes one generated artifact.
type ReportEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Available   bool   `json:"available"`
	Fingerprint string `json:"fingerprint"`
}

// New returns an empty manifest for a build run.
func New(id string, now time.Time) *ReportManifest {
	return &ReportManifest{
		ID:        id,
		Timestamp: now.UTC(),
		Inputs:    Inputs{Summaries: map[string]string{}},
	}
}

// Fingerprint returns the content fingerprint of a generated report.
func Fingerprint(content []byte) string {
	return mdfp.CalculateFingerprintFromParts("", string(content))
}

// AddReport fingerprints the file at path and records it under name. Path is
// stored relative to root.
func (m *ReportManifest) AddReport(name, root, path string, available bool) error {
	// #nosec G304 -- path is a report this build just wrote
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read report %s: %w", name, err)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	m.Reports = append(m.Reports, ReportEntry{
		Name:        name,
		Path:        filepath.ToSlash(rel),
		Available:   available,
		Fingerprint: Fingerprint(content),
	})
	sort.Slice(m.Reports, func(i, j int) bool { return m.Reports[i].Name < m.Reports[j].Name })
	return nil
}

// AddInput records the sha256 of a summary input. Missing files are ignored.
func (m *ReportManifest) AddInput(name, path string) {
	// #nosec G304 -- path is a configured summary location
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if m.Inputs.Summaries == nil {
		m.Inputs.Summaries = map[string]string{}
	}
	m.Inputs.Summaries[name] = fmt.Sprintf("%x", sha256.Sum256(data))
}

// Report returns the entry recorded under name.
func (m *ReportManifest) Report(name string) (ReportEntry, bool) {
	for _, r := range m.Reports {
		if r.Name == name {
			return r, true
		}
	}
	return ReportEntry{}, false
}

// ToJSON serializes the manifest to JSON.
func (m *ReportManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*ReportManifest, error) {
	var m ReportManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Write stores the manifest at path.
func (m *ReportManifest) Write(path string) error {
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	return report.Write(path, string(data))
}

// Load reads a manifest written by a previous build. A missing file yields
// (nil, nil).
func Load(path string) (*ReportManifest, error) {
	// #nosec G304 -- manifest path is derived from configuration
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return FromJSON(data)
}

// Hash computes a deterministic hash of the manifest's inputs and report
// fingerprints. Build ID, timestamp and duration are excluded so identical
// reruns hash identically.
func (m *ReportManifest) Hash() (string, error) {
	hashInput := struct {
		Inputs  Inputs        `json:"inputs"`
		Reports []ReportEntry `json:"reports"`
	}{
		Inputs:  m.Inputs,
		Reports: m.Reports,
	}

	data, err := json.Marshal(hashInput)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}

// Changed lists report names whose fingerprint or availability differs from
// prev. A nil prev reports every entry as changed.
func (m *ReportManifest) Changed(prev *ReportManifest) []string {
	var changed []string
	for _, r := range m.Reports {
		if prev == nil {
			changed = append(changed, r.Name)
			continue
		}
		old, ok := prev.Report(r.Name)
		if !ok || old.Fingerprint != r.Fingerprint || old.Available != r.Available {
			changed = append(changed, r.Name)
		}
	}
	return changed
}
