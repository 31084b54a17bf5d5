package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	content := "flask >= 2.0\n# comment\n\nrequests == 2.31.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	lines, err := NewManifestFileAdapter().ReadLines(path)
	require.NoError(t, err)

	want := []string{"flask >= 2.0", "# comment", "", "requests == 2.31.0", ""}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestManifestReadLinesCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("click >= 8.0\r\nitsdangerous\r\n"), 0644))

	lines, err := NewManifestFileAdapter().ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"click >= 8.0", "itsdangerous", ""}, lines)
}

func TestManifestReadLinesMissing(t *testing.T) {
	_, err := NewManifestFileAdapter().ReadLines(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requirements file not found")
}
