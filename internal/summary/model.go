package summary

import "strconv"

// Sentinel keys used by the supported tools.
const (
	KeyHeader = "header"
	KeySum    = "SUM"
	KeyTotal  = "total"
)

// ClocSentinels are the reserved keys of cloc JSON output.
var ClocSentinels = []string{KeyHeader, KeySum}

// CoverageSentinels are the reserved keys of an istanbul coverage-summary.json.
var CoverageSentinels = []string{KeyTotal}

// LanguageStat is one row of a per-language line count summary.
type LanguageStat struct {
	Language string
	Files    int64
	Blank    int64
	Comment  int64
	Code     int64
}

// FileStat is one row of a per-file line count summary.
type FileStat struct {
	Path     string
	Language string
	Blank    int64
	Comment  int64
	Code     int64
}

// ToolHeader carries line counter metadata.
type ToolHeader struct {
	Version        string
	ElapsedSeconds *float64
}

// Languages returns the language statistics of a cloc summary in key order.
func Languages(s *Summary) []LanguageStat {
	if s == nil {
		return nil
	}
	stats := make([]LanguageStat, 0, len(s.Entries))
	for _, e := range s.Entries {
		stats = append(stats, LanguageStat{
			Language: e.Key,
			Files:    e.Value.Count("nFiles"),
			Blank:    e.Value.Count("blank"),
			Comment:  e.Value.Count("comment"),
			Code:     e.Value.Count("code"),
		})
	}
	return stats
}

// Files returns the file statistics of a by-file cloc summary in key order.
func Files(s *Summary) []FileStat {
	if s == nil {
		return nil
	}
	stats := make([]FileStat, 0, len(s.Entries))
	for _, e := range s.Entries {
		lang, _ := e.Value.String("language")
		stats = append(stats, FileStat{
			Path:     e.Key,
			Language: lang,
			Blank:    e.Value.Count("blank"),
			Comment:  e.Value.Count("comment"),
			Code:     e.Value.Count("code"),
		})
	}
	return stats
}

// Header extracts the tool header. Version defaults to "unknown".
func Header(s *Summary) ToolHeader {
	h := ToolHeader{Version: "unknown"}
	obj, ok := s.Sentinel(KeyHeader)
	if !ok {
		return h
	}
	if v, ok := obj.String("cloc_version"); ok {
		h.Version = v
	} else if f, ok := obj.Number("cloc_version"); ok {
		h.Version = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if f, ok := obj.Number("elapsed_seconds"); ok {
		h.ElapsedSeconds = &f
	}
	return h
}

// CoverageMetrics is the fixed, ordered set of coverage metrics.
var CoverageMetrics = []string{"lines", "statements", "functions", "branches"}

// CoverageStat is a single coverage metric. Valid is false when the stat was
// not an object or lacked numeric covered/total values.
type CoverageStat struct {
	Covered float64
	Total   float64
	Pct     *float64
	Valid   bool
}

// Percent returns Pct when present, otherwise covered/total*100, or 0 when the
// total is zero.
func (c CoverageStat) Percent() float64 {
	if c.Pct != nil {
		return *c.Pct
	}
	if c.Total == 0 {
		return 0
	}
	return c.Covered / c.Total * 100
}

// CoverageEntry maps metric names to stats for one file or the aggregate.
type CoverageEntry struct {
	Path  string
	Stats map[string]CoverageStat
}

// Stat returns the stat for metric; unknown metrics are invalid.
func (e CoverageEntry) Stat(metric string) CoverageStat {
	return e.Stats[metric]
}

func coverageEntry(path string, obj Object) CoverageEntry {
	entry := CoverageEntry{Path: path, Stats: make(map[string]CoverageStat, len(CoverageMetrics))}
	for _, metric := range CoverageMetrics {
		entry.Stats[metric] = parseCoverageStat(obj, metric)
	}
	return entry
}

func parseCoverageStat(parent Object, metric string) CoverageStat {
	obj, ok := parent.Object(metric)
	if !ok {
		return CoverageStat{}
	}
	covered, okCovered := obj.Number("covered")
	total, okTotal := obj.Number("total")
	if !okCovered || !okTotal {
		return CoverageStat{}
	}
	stat := CoverageStat{Covered: covered, Total: total, Valid: true}
	if pct, ok := obj.Number("pct"); ok {
		stat.Pct = &pct
	}
	return stat
}

// CoverageTotal returns the aggregate entry when the summary has a total object.
func CoverageTotal(s *Summary) (CoverageEntry, bool) {
	obj, ok := s.Sentinel(KeyTotal)
	if !ok {
		return CoverageEntry{}, false
	}
	return coverageEntry(KeyTotal, obj), true
}

// CoverageEntries returns per-file coverage entries in key order.
func CoverageEntries(s *Summary) []CoverageEntry {
	if s == nil {
		return nil
	}
	entries := make([]CoverageEntry, 0, len(s.Entries))
	for _, e := range s.Entries {
		entries = append(entries, coverageEntry(e.Key, e.Value))
	}
	return entries
}
