//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gopkg.in/yaml.v3"

	"reqlock/internal/adapters"
	"reqlock/internal/app"
	"reqlock/internal/types"
)

// TestBuildIndexAgainstContainer crawls a containerized simple index and
// then resolves a manifest against the resulting snapshot, exercising the
// whole index-then-resolve flow over real HTTP.
func TestBuildIndexAgainstContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startSimpleIndexMock(ctx, t)
	t.Cleanup(cleanup)

	root := t.TempDir()
	indexPath := filepath.Join(root, "index.yaml")

	service := app.NewService()
	buildResult, err := service.BuildIndex(ctx, app.BuildIndexRequest{
		SimpleIndex:      endpoint,
		Output:           indexPath,
		HTTPTimeoutSec:   10,
		HTTPRetries:      2,
		HTTPRetryDelayMs: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, buildResult.PackageCount)

	data, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	var snapshot types.PackageIndexFile
	require.NoError(t, yaml.Unmarshal(data, &snapshot))
	assert.Equal(t, []string{"2.0.3", "3.0.2"}, snapshot.Packages["flask"])
	assert.Equal(t, []string{"8.1.7"}, snapshot.Packages["click"])

	manifest := filepath.Join(root, "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("flask >= 2.0\nclick\n"), 0644))
	outputDir := filepath.Join(root, "out")

	resolveResult, err := service.Resolve(ctx, app.ResolveRequest{
		Manifest:  manifest,
		Index:     indexPath,
		OutputDir: outputDir,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resolveResult.Locked)

	lock, err := os.ReadFile(filepath.Join(outputDir, adapters.LockFileName))
	require.NoError(t, err)
	assert.Equal(t, "click==8.1.7\nflask==3.0.2\n", string(lock))
}

// TestBuildIndexNamedPackagesAgainstContainer limits the crawl to named
// packages and verifies the rest of the index is skipped.
func TestBuildIndexNamedPackagesAgainstContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startSimpleIndexMock(ctx, t)
	t.Cleanup(cleanup)

	indexPath := filepath.Join(t.TempDir(), "index.yaml")
	service := app.NewService()
	result, err := service.BuildIndex(ctx, app.BuildIndexRequest{
		SimpleIndex:      endpoint,
		Output:           indexPath,
		Packages:         []string{"Flask"},
		HTTPTimeoutSec:   10,
		HTTPRetries:      2,
		HTTPRetryDelayMs: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.PackageCount)
}

func startSimpleIndexMock(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-alpine",
		ExposedPorts: []string{"8080/tcp"},
		Cmd:          []string{"python", "-c", simpleIndexScript},
		WaitingFor:   wait.ForListeningPort("8080/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}

const simpleIndexScript = `
from http.server import BaseHTTPRequestHandler, ThreadingHTTPServer

pages = {
    "/simple/": '<a href="flask/">flask</a><a href="click/">click</a>',
    "/simple/flask/": '<a href="flask-2.0.3-py3-none-any.whl">w</a><a href="flask-3.0.2.tar.gz">s</a>',
    "/simple/click/": '<a href="click-8.1.7-py3-none-any.whl">w</a>',
}

class Handler(BaseHTTPRequestHandler):
    def do_GET(self):
        body = pages.get(self.path)
        if body is None:
            self.send_response(404)
            self.end_headers()
            return
        self.send_response(200)
        self.send_header("Content-Type", "text/html")
        self.end_headers()
        self.wfile.write(body.encode("utf-8"))

    def log_message(self, format, *args):
        return

def main():
    server = ThreadingHTTPServer(("0.0.0.0", 8080), Handler)
    server.serve_forever()

if __name__ == "__main__":
    main()
`
