package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sample = "<!-- generated -->\n" +
	"Intro line.\n" +
	"\n" +
	"## Overall coverage\n" +
	"| Metric | Coverage |\n" +
	"| --- | ---: |\n" +
	"| Lines | 85.0% (17/20) |\n" +
	"| Branches | — |\n" +
	"\n" +
	"## Coverage by `file`\n" +
	"Coverage details were not available.\n"

func TestInspect(t *testing.T) {
	outline, err := Inspect([]byte(sample))
	require.NoError(t, err)

	require.Equal(t, []Heading{
		{Level: 2, Text: "Overall coverage"},
		{Level: 2, Text: "Coverage by file"},
	}, outline.Headings)

	require.Len(t, outline.Tables, 1)
	require.Equal(t, Table{Columns: 2, Rows: 2, RightAligned: []int{1}}, outline.Tables[0])
}

func TestCountTables(t *testing.T) {
	n, err := CountTables([]byte("no tables here\n"))
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = CountTables([]byte("| A |\n| --- |\n\n| B |\n| --- |\n| b |\n"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
