// Package coverage renders an istanbul-style coverage-summary.json into a
// Markdown report with an overview table and a per-file table.
package coverage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	derrors "git.home.luguber.info/inful/docreports/internal/errors"
	"git.home.luguber.info/inful/docreports/internal/logfields"
	"git.home.luguber.info/inful/docreports/internal/report"
	"git.home.luguber.info/inful/docreports/internal/summary"
	"git.home.luguber.info/inful/docreports/internal/table"
)

const (
	// PlaceholderMarker opens every placeholder document.
	PlaceholderMarker = "<!-- Coverage data unavailable; generated placeholder. -->"
	editWarning       = "<!-- Automatically generated coverage summary; do not edit manually. -->"

	// DefaultSummaryPath is the summary location relative to the project root.
	DefaultSummaryPath = "docs/build/coverage/coverage-summary.json"

	// Unavailable is rendered for stats without numeric covered/total values.
	Unavailable = "—"

	noFileDetails = "Coverage details were not available."
)

// Reporter writes the coverage report for one project.
type Reporter struct {
	ProjectRoot string
	OutputPath  string
	// SummaryPath overrides DefaultSummaryPath; relative paths resolve against ProjectRoot.
	SummaryPath string
	// FailOnMissing marks absent data as a failure for the caller. It only
	// affects logging here; the CLI turns it into an exit status.
	FailOnMissing bool
	Logger        *slog.Logger
}

// Generate renders the report from the project's coverage summary. It returns
// false after writing a placeholder when the summary is missing or malformed.
func Generate(projectRoot, outputPath string, failOnMissing bool) (bool, error) {
	r := &Reporter{ProjectRoot: projectRoot, OutputPath: outputPath, FailOnMissing: failOnMissing}
	return r.Generate()
}

func (r *Reporter) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// SummaryFile returns the absolute-or-root-relative summary location.
func (r *Reporter) SummaryFile() string {
	p := r.SummaryPath
	if p == "" {
		p = filepath.FromSlash(DefaultSummaryPath)
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.ProjectRoot, p)
}

// Generate renders the report; see the package-level Generate.
func (r *Reporter) Generate() (bool, error) {
	summaryPath := r.SummaryFile()

	s, err := summary.ParseFile(summaryPath, summary.CoverageSentinels...)
	if err != nil {
		msg := fmt.Sprintf("Coverage summary not found at `%s`. Run `npm test` to generate coverage data.", summaryPath)
		var cause error = derrors.SummaryMissing(summaryPath, err)
		if !errors.Is(err, os.ErrNotExist) {
			cause = derrors.SummaryMalformed(summaryPath, err.Error())
		}
		return r.degrade(cause, msg)
	}

	total, ok := summary.CoverageTotal(s)
	if !ok {
		return r.degrade(
			derrors.SummaryMalformed(summaryPath, "missing total block"),
			"Coverage summary was missing the `total` coverage block; coverage results could not be rendered.",
		)
	}

	content := Render(total, summary.CoverageEntries(s), r.ProjectRoot, r.sourceLabel(summaryPath))
	if err := report.Write(r.OutputPath, content); err != nil {
		return false, derrors.WriteFailed(r.OutputPath, err)
	}
	r.logger().Info("Coverage report written",
		logfields.Output(r.OutputPath),
		logfields.Rows(s.Len()),
		logfields.Skipped(len(s.Skipped)))
	return true, nil
}

func (r *Reporter) sourceLabel(summaryPath string) string {
	return summary.RelativePath(r.ProjectRoot, summaryPath)
}

func (r *Reporter) degrade(cause error, message string) (bool, error) {
	derrors.LogDegraded(r.logger(), cause, r.FailOnMissing)
	if err := report.Write(r.OutputPath, report.Placeholder(PlaceholderMarker, message)); err != nil {
		return false, derrors.WriteFailed(r.OutputPath, err)
	}
	return false, nil
}

// Render produces the full Markdown document. source names the summary file
// in the attribution line.
func Render(total summary.CoverageEntry, files []summary.CoverageEntry, projectRoot, source string) string {
	fileSection := noFileDetails
	if ft := FileTable(files, projectRoot); ft.Len() > 0 {
		fileSection = ft.String()
	}
	return report.Document(
		editWarning,
		fmt.Sprintf("Generated from `%s`.", source),
		"",
		"## Overall coverage",
		OverviewTable(total).String(),
		"",
		"## Coverage by file",
		fileSection,
	)
}

// OverviewTable has one row per metric of the aggregate entry.
func OverviewTable(total summary.CoverageEntry) table.Table {
	rows := make([][]string, 0, len(summary.CoverageMetrics))
	for _, metric := range summary.CoverageMetrics {
		rows = append(rows, []string{metricLabel(metric), FormatCell(total.Stat(metric))})
	}
	return table.Table{
		Headers: []string{"Metric", "Coverage"},
		Rows:    rows,
		Numeric: []int{1},
	}
}

// FileTable lists per-file coverage sorted by case-insensitive path.
func FileTable(entries []summary.CoverageEntry, projectRoot string) table.Table {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := []string{table.Code(summary.RelativePath(projectRoot, e.Path))}
		for _, metric := range summary.CoverageMetrics {
			row = append(row, FormatCell(e.Stat(metric)))
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		li, lj := strings.ToLower(rows[i][0]), strings.ToLower(rows[j][0])
		if li != lj {
			return li < lj
		}
		return rows[i][0] < rows[j][0]
	})

	headers := []string{"File"}
	for _, metric := range summary.CoverageMetrics {
		headers = append(headers, metricLabel(metric))
	}
	return table.Table{
		Headers: headers,
		Rows:    rows,
		Numeric: []int{1, 2, 3, 4},
	}
}

// FormatCell renders a stat as "85.0% (17/20)", or Unavailable for invalid stats.
func FormatCell(stat summary.CoverageStat) string {
	if !stat.Valid {
		return Unavailable
	}
	return fmt.Sprintf("%.1f%% (%d/%d)", stat.Percent(), summary.ClampCount(stat.Covered), summary.ClampCount(stat.Total))
}

func metricLabel(metric string) string {
	if metric == "" {
		return metric
	}
	return strings.ToUpper(metric[:1]) + metric[1:]
}
