package summary

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_PartitionsSentinelsDataAndSkipped(t *testing.T) {
	data := []byte(`{
		"header": {"cloc_version": "1.98", "elapsed_seconds": 0.25},
		"SUM": {"nFiles": 3, "code": 30},
		"Go": {"nFiles": 2, "blank": 4, "comment": 1, "code": 20},
		"YAML": {"nFiles": 1, "code": 10},
		"broken": [1, 2, 3],
		"nothing": null
	}`)

	s, err := Parse(data, ClocSentinels...)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	require.Equal(t, "Go", s.Entries[0].Key)
	require.Equal(t, "YAML", s.Entries[1].Key)
	require.Equal(t, []string{"broken", "nothing"}, s.Skipped)

	_, ok := s.Sentinel(KeySum)
	require.True(t, ok)
	_, ok = s.Sentinel(KeyTotal)
	require.False(t, ok)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty", "", ErrEmpty},
		{"whitespace", "  \n", ErrEmpty},
		{"array", "[1]", ErrNotObject},
		{"null", "null", ErrNotObject},
		{"string", `"x"`, ErrNotObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse([]byte("{not json"))
	require.Error(t, err)
}

func TestParse_NonObjectSentinelIsAbsent(t *testing.T) {
	s, err := Parse([]byte(`{"total": 5, "a.ts": {}}`), CoverageSentinels...)
	require.NoError(t, err)
	_, ok := CoverageTotal(s)
	require.False(t, ok)
	require.Equal(t, 1, s.Len())
	require.Empty(t, s.Skipped)
}

func TestObject_Count(t *testing.T) {
	s, err := Parse([]byte(`{"x": {"a": 12, "b": -3, "c": "7", "d": true, "e": 2.9, "f": 1e19, "g": -1e19}}`))
	require.NoError(t, err)
	obj := s.Entries[0].Value

	require.Equal(t, int64(12), obj.Count("a"))
	require.Equal(t, int64(0), obj.Count("b"))
	require.Equal(t, int64(0), obj.Count("c"))
	require.Equal(t, int64(0), obj.Count("d"))
	require.Equal(t, int64(2), obj.Count("e"))
	require.Equal(t, int64(math.MaxInt64), obj.Count("f"))
	require.Equal(t, int64(0), obj.Count("g"))
	require.Equal(t, int64(0), obj.Count("missing"))
}

func TestLanguagesFilesAndHeader(t *testing.T) {
	lang, err := Parse([]byte(`{
		"header": {"cloc_version": "2.00", "elapsed_seconds": 1.5},
		"TypeScript": {"nFiles": 4, "blank": 10, "comment": 5, "code": 200}
	}`), ClocSentinels...)
	require.NoError(t, err)

	require.Equal(t, []LanguageStat{{Language: "TypeScript", Files: 4, Blank: 10, Comment: 5, Code: 200}}, Languages(lang))

	h := Header(lang)
	require.Equal(t, "2.00", h.Version)
	require.NotNil(t, h.ElapsedSeconds)
	require.InDelta(t, 1.5, *h.ElapsedSeconds, 1e-9)

	files, err := Parse([]byte(`{"src/a.ts": {"language": "TypeScript", "blank": 1, "comment": 2, "code": 3}, "SUM": {}}`), ClocSentinels...)
	require.NoError(t, err)
	require.Equal(t, []FileStat{{Path: "src/a.ts", Language: "TypeScript", Blank: 1, Comment: 2, Code: 3}}, Files(files))

	noHeader := Header(files)
	require.Equal(t, "unknown", noHeader.Version)
	require.Nil(t, noHeader.ElapsedSeconds)
}

func TestHeader_ElapsedNotNumeric(t *testing.T) {
	s, err := Parse([]byte(`{"header": {"elapsed_seconds": "fast"}}`), ClocSentinels...)
	require.NoError(t, err)
	h := Header(s)
	require.Equal(t, "unknown", h.Version)
	require.Nil(t, h.ElapsedSeconds)
}

func TestCoverageEntries(t *testing.T) {
	s, err := Parse([]byte(`{
		"total": {"lines": {"covered": 17, "total": 20}},
		"/repo/src/a.ts": {
			"lines": {"covered": 1, "total": 2, "pct": 50},
			"statements": {"covered": "1", "total": 2},
			"functions": 3
		}
	}`), CoverageSentinels...)
	require.NoError(t, err)

	total, ok := CoverageTotal(s)
	require.True(t, ok)
	require.True(t, total.Stat("lines").Valid)
	require.InDelta(t, 85.0, total.Stat("lines").Percent(), 1e-9)
	require.False(t, total.Stat("branches").Valid)

	entries := CoverageEntries(s)
	require.Len(t, entries, 1)
	e := entries[0]
	require.Equal(t, "/repo/src/a.ts", e.Path)
	require.True(t, e.Stat("lines").Valid)
	require.NotNil(t, e.Stat("lines").Pct)
	require.False(t, e.Stat("statements").Valid)
	require.False(t, e.Stat("functions").Valid)
	require.False(t, e.Stat("unknown").Valid)
}

func TestCoverageStat_PercentZeroTotal(t *testing.T) {
	require.Zero(t, CoverageStat{Covered: 0, Total: 0, Valid: true}.Percent())
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"total": {}}`), 0o600))

	s, err := ParseFile(path, CoverageSentinels...)
	require.NoError(t, err)
	_, ok := s.Sentinel(KeyTotal)
	require.True(t, ok)

	_, err = ParseFile(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRelativePath(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"absolute inside root", filepath.Join(root, "src", "a.ts"), "src/a.ts"},
		{"relative key resolves against root", filepath.Join("src", "b.ts"), "src/b.ts"},
		{"outside root falls back", filepath.Join(filepath.Dir(root), "elsewhere.ts"), filepath.Join(filepath.Dir(root), "elsewhere.ts")},
		{"escaping relative key falls back", filepath.Join("..", "x.ts"), filepath.Join("..", "x.ts")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, RelativePath(root, tt.key))
		})
	}
	require.Equal(t, "a.ts", RelativePath("", "a.ts"))
}

func TestSummary_Empty(t *testing.T) {
	s, err := Parse([]byte(`{}`), ClocSentinels...)
	require.NoError(t, err)
	require.True(t, s.Empty())

	s, err = Parse([]byte(`{"header": {}}`), ClocSentinels...)
	require.NoError(t, err)
	require.False(t, s.Empty())

	var missing *Summary
	require.True(t, missing.Empty())
	require.Zero(t, missing.Len())
}
