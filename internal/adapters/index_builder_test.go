package adapters

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"reqlock/internal/ports"
	"reqlock/internal/types"
)

// ---------------------------------------------------------------------------
// HTML parsing
// ---------------------------------------------------------------------------

func TestParseSimpleNames(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "basic",
			html: `<a href="Foo/">Foo</a><a href="requests/">requests</a>`,
			want: []string{"foo", "requests"},
		},
		{
			name: "dedupe and normalize",
			html: `<a href="Django/">Django</a><a href="django/">django</a><a href="my_pkg/">my_pkg</a>`,
			want: []string{"django", "my-pkg"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			names := parseSimpleNames(tt.html)
			if diff := cmp.Diff(tt.want, names); diff != "" {
				t.Fatalf("unexpected names (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseVersionsFromSimple(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "wheel and sdist",
			html: `<a href="requests-2.31.0-py3-none-any.whl">whl</a>` +
				`<a href="requests-2.32.0.tar.gz">sdist</a>`,
			want: []string{"2.31.0", "2.32.0"},
		},
		{
			name: "strips fragments and query strings",
			html: `<a href="demo-1.0.0.tar.gz#sha256=abc">a</a><a href="demo-1.1.0.tar.gz?x=1">b</a>`,
			want: []string{"1.0.0", "1.1.0"},
		},
		{
			name: "filters invalid filenames",
			html: `<a href="demo.whl">bad</a><a href="demo-1.0.0.tar.gz">ok</a>`,
			want: []string{"1.0.0"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			versions := parseVersionsFromSimple(tt.html)
			sort.Strings(versions)
			if diff := cmp.Diff(tt.want, versions); diff != "" {
				t.Fatalf("unexpected versions (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseVersionFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{name: "wheel", filename: "demo-1.2.3-py3-none-any.whl", want: "1.2.3"},
		{name: "wheel with build tag", filename: "demo-1.2.3-1-py3-none-any.whl", want: "1.2.3"},
		{name: "sdist tar.gz", filename: "demo-4.5.6.tar.gz", want: "4.5.6"},
		{name: "sdist zip", filename: "demo-4.5.6.zip", want: "4.5.6"},
		{name: "missing version", filename: "demo.whl", want: ""},
		{name: "empty", filename: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseVersionFromFilename(tt.filename)); diff != "" {
				t.Fatalf("unexpected version (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeSimpleIndex(t *testing.T) {
	assert.Equal(t, "http://host/simple/", normalizeSimpleIndex("http://host"))
	assert.Equal(t, "http://host/simple/", normalizeSimpleIndex("http://host/"))
	assert.Equal(t, "http://host/simple/", normalizeSimpleIndex("http://host/simple"))
	assert.Equal(t, "http://host/simple/", normalizeSimpleIndex("http://host/simple/"))
}

func TestSortPep440Versions(t *testing.T) {
	got := sortPep440Versions([]string{"2.0.0", "1.10.0", "1.2.0", "1.0.0rc1"})
	want := []string{"1.0.0rc1", "1.2.0", "1.10.0", "2.0.0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// Build against a mock simple index
// ---------------------------------------------------------------------------

func simpleIndexServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/simple/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a href="flask/">flask</a><a href="click/">click</a>`)
	})
	mux.HandleFunc("/simple/flask/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a href="flask-2.0.3-py3-none-any.whl">a</a><a href="flask-3.0.2.tar.gz">b</a>`)
	})
	mux.HandleFunc("/simple/click/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a href="click-8.1.7-py3-none-any.whl">a</a>`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestIndexBuilderBuildAllPackages(t *testing.T) {
	server := simpleIndexServer(t)

	index, err := NewIndexBuilderAdapter().Build(t.Context(), ports.IndexBuildRequest{
		SimpleIndex: server.URL,
	})
	require.NoError(t, err)

	want := map[string][]string{
		"flask": {"2.0.3", "3.0.2"},
		"click": {"8.1.7"},
	}
	if diff := cmp.Diff(want, index.Packages); diff != "" {
		t.Fatalf("unexpected index (-want +got):\n%s", diff)
	}
}

func TestIndexBuilderBuildNamedPackages(t *testing.T) {
	server := simpleIndexServer(t)

	index, err := NewIndexBuilderAdapter().Build(t.Context(), ports.IndexBuildRequest{
		SimpleIndex: server.URL,
		Packages:    []string{"Flask"},
	})
	require.NoError(t, err)

	require.Contains(t, index.Packages, "flask")
	assert.NotContains(t, index.Packages, "click")
}

func TestIndexBuilderBuildMaxPackages(t *testing.T) {
	server := simpleIndexServer(t)

	index, err := NewIndexBuilderAdapter().Build(t.Context(), ports.IndexBuildRequest{
		SimpleIndex: server.URL,
		MaxPackages: 1,
	})
	require.NoError(t, err)
	assert.Len(t, index.Packages, 1)
}

func TestIndexBuilderBuildMissingPackagePage(t *testing.T) {
	server := simpleIndexServer(t)

	index, err := NewIndexBuilderAdapter().Build(t.Context(), ports.IndexBuildRequest{
		SimpleIndex: server.URL,
		Packages:    []string{"ghost"},
	})
	require.NoError(t, err)
	assert.Empty(t, index.Packages)
}

func TestIndexBuilderBuildRequiresURL(t *testing.T) {
	_, err := NewIndexBuilderAdapter().Build(t.Context(), ports.IndexBuildRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simple index URL is required")
}

func TestIndexBuilderBasicAuth(t *testing.T) {
	var sawAuth atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if ok && user == "api" && pass == "secret" {
			sawAuth.Store(true)
		}
		fmt.Fprint(w, `<a href="demo-1.0.0.tar.gz">a</a>`)
	}))
	t.Cleanup(server.Close)

	_, err := NewIndexBuilderAdapter().Build(t.Context(), ports.IndexBuildRequest{
		SimpleIndex: server.URL,
		APIKey:      "secret",
		Packages:    []string{"demo"},
	})
	require.NoError(t, err)
	assert.True(t, sawAuth.Load())
}

func TestIndexBuilderRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `<a href="demo-1.0.0.tar.gz">a</a>`)
	}))
	t.Cleanup(server.Close)

	index, err := NewIndexBuilderAdapter().Build(t.Context(), ports.IndexBuildRequest{
		SimpleIndex:      server.URL,
		Packages:         []string{"demo"},
		HTTPRetries:      3,
		HTTPRetryDelayMs: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0.0"}, index.Packages["demo"])
	assert.GreaterOrEqual(t, hits.Load(), int32(2))
}

// ---------------------------------------------------------------------------
// Writer
// ---------------------------------------------------------------------------

func TestIndexWriterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "index.yaml")
	index := types.PackageIndexFile{Packages: map[string][]string{
		"flask": {"3.0.2"},
	}}

	require.NoError(t, NewIndexWriterAdapter().Write(path, index))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var loaded types.PackageIndexFile
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	if diff := cmp.Diff(index.Packages, loaded.Packages); diff != "" {
		t.Fatalf("index did not survive write (-want +got):\n%s", diff)
	}
}

func TestIndexWriterRequiresPath(t *testing.T) {
	err := NewIndexWriterAdapter().Write("  ", types.PackageIndexFile{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output path is required")
}
