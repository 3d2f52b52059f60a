package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocument(t *testing.T) {
	require.Equal(t, "a\n\nb\n", Document("a", "", "b"))
}

func TestPlaceholder(t *testing.T) {
	require.Equal(t, "<!-- marker -->\nmessage\n", Placeholder("<!-- marker -->", "message"))
}

func TestWrite_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "report.md")
	require.NoError(t, Write(path, "one\n"))
	require.NoError(t, Write(path, "two\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "two\n", string(data))
}

func TestWrite_ParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := Write(filepath.Join(blocker, "report.md"), "content")
	require.Error(t, err)
}
