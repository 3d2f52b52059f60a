// Package codemetrics renders line counter summaries (cloc JSON output) into a
// Markdown report with a per-language and a per-file table.
package codemetrics

import (
	"fmt"
	"log/slog"
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
	PlaceholderMarker = "<!-- cloc data unavailable; generated placeholder. -->"
	editWarning       = "<!-- Automatically generated by docreports; do not edit manually. -->"

	// MessageSkipped explains a placeholder written because CLOC_SKIP is set.
	MessageSkipped = "`cloc` was skipped because CLOC_SKIP is set."
	// MessageUnavailable explains a placeholder written because cloc produced no usable data.
	MessageUnavailable = "Code metrics are unavailable because `cloc` could not produce data."
)

// Reporter writes the code metrics report for one project.
type Reporter struct {
	ProjectRoot string
	OutputPath  string
	Logger      *slog.Logger
}

func (r *Reporter) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Generate renders the report from raw per-language and per-file JSON. It
// returns false after writing a placeholder when either input is missing,
// empty or unparseable. The error is reserved for failures writing the output.
func (r *Reporter) Generate(languageJSON, fileJSON []byte) (bool, error) {
	lang, err := parseInput(languageJSON)
	if err != nil {
		return r.degrade(derrors.ToolOutputUnparseable("cloc", err).WithContext("input", "language"))
	}
	files, err := parseInput(fileJSON)
	if err != nil {
		return r.degrade(derrors.ToolOutputUnparseable("cloc", err).WithContext("input", "file"))
	}

	if err := report.Write(r.OutputPath, Render(lang, files, r.ProjectRoot)); err != nil {
		return false, derrors.WriteFailed(r.OutputPath, err)
	}
	r.logger().Info("Code metrics report written",
		logfields.Output(r.OutputPath),
		logfields.Rows(lang.Len()+files.Len()),
		logfields.Skipped(len(lang.Skipped)+len(files.Skipped)))
	return true, nil
}

func parseInput(data []byte) (*summary.Summary, error) {
	s, err := summary.Parse(data, summary.ClocSentinels...)
	if err != nil {
		return nil, err
	}
	if s.Empty() {
		return nil, summary.ErrEmpty
	}
	return s, nil
}

func (r *Reporter) degrade(cause error) (bool, error) {
	derrors.LogDegraded(r.logger(), cause, false)
	return false, r.WritePlaceholder(MessageUnavailable)
}

// WritePlaceholder writes a stub report explaining why metrics are missing.
func (r *Reporter) WritePlaceholder(message string) error {
	if err := report.Write(r.OutputPath, report.Placeholder(PlaceholderMarker, message)); err != nil {
		return derrors.WriteFailed(r.OutputPath, err)
	}
	return nil
}

// Render produces the full Markdown document. It is deterministic for a given input.
func Render(lang, files *summary.Summary, projectRoot string) string {
	return report.Document(
		editWarning,
		HeaderLine(summary.Header(lang)),
		"",
		"## Lines by language",
		LanguageTable(summary.Languages(lang)).String(),
		"",
		"## Lines by file",
		FileTable(summary.Files(files), projectRoot).String(),
	)
}

// HeaderLine summarizes the tool version and run time.
func HeaderLine(h summary.ToolHeader) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generated with `cloc` %s", h.Version)
	if h.ElapsedSeconds != nil {
		fmt.Fprintf(&b, " in %.2f seconds", *h.ElapsedSeconds)
	}
	b.WriteString(".")
	return b.String()
}

// LanguageTable sorts languages by code lines, largest first.
func LanguageTable(stats []summary.LanguageStat) table.Table {
	sorted := append([]summary.LanguageStat(nil), stats...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Code != sorted[j].Code {
			return sorted[i].Code > sorted[j].Code
		}
		return sorted[i].Language < sorted[j].Language
	})

	rows := make([][]string, 0, len(sorted))
	for _, s := range sorted {
		rows = append(rows, []string{
			s.Language,
			table.Count(s.Files),
			table.Count(s.Blank),
			table.Count(s.Comment),
			table.Count(s.Code),
		})
	}
	return table.Table{
		Headers: []string{"Language", "Files", "Blank", "Comment", "Code"},
		Rows:    rows,
		Numeric: []int{1, 2, 3, 4},
	}
}

// FileTable lists files by case-insensitive path, relative to projectRoot where possible.
func FileTable(stats []summary.FileStat, projectRoot string) table.Table {
	type fileRow struct {
		path string
		stat summary.FileStat
	}
	rows := make([]fileRow, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, fileRow{path: summary.RelativePath(projectRoot, s.Path), stat: s})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		li, lj := strings.ToLower(rows[i].path), strings.ToLower(rows[j].path)
		if li != lj {
			return li < lj
		}
		return rows[i].path < rows[j].path
	})

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			table.Code(r.path),
			r.stat.Language,
			table.Count(r.stat.Blank),
			table.Count(r.stat.Comment),
			table.Count(r.stat.Code),
		})
	}
	return table.Table{
		Headers: []string{"File", "Language", "Blank", "Comment", "Code"},
		Rows:    out,
		Numeric: []int{2, 3, 4},
	}
}
