package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestService() Service {
	service := NewService()
	service.Clock = fixedClock
	return service
}

func writeFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const sampleManifest = `# direct dependencies
flask >= 2.0
requests[security] >= 2.25, < 3
pycodestyle == 2.8.0
-r extra.txt
`

const sampleExtra = `click >= 8.0
itsdangerous
`

const sampleIndex = `packages:
  flask:
    - "1.1.4"
    - "2.0.3"
    - "3.0.2"
  requests:
    - "2.25.1"
    - "2.31.0"
  pycodestyle:
    - "2.7.0"
    - "2.8.0"
  click:
    - "7.1.2"
    - "8.1.7"
  itsdangerous:
    - "2.1.2"
`

func writeSampleTree(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	manifest := writeFile(t, dir, "requirements.txt", sampleManifest)
	writeFile(t, dir, "extra.txt", sampleExtra)
	index := writeFile(t, dir, "index.yaml", sampleIndex)
	return manifest, index
}
