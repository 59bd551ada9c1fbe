package pkginfo

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/cra-labs/create-react-app/internal/issue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTarball builds an npm-style tarball with entries under "package/".
func createTarball(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	for name, content := range files {
		hdr := &tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}
		require.NoError(t, tw.WriteHeader(hdr))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func quietExtractor(w io.Writer) *Extractor {
	return &Extractor{Logger: log.New(w)}
}

func TestExtract_ParsedReferences(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want Info
	}{
		{"name at version", "react-scripts@1.2.3", Info{Name: "react-scripts", Version: "1.2.3"}},
		{"scoped name at version", "@acme/react-scripts@5.0.0-next.1", Info{Name: "@acme/react-scripts", Version: "5.0.0-next.1"}},
		{"template at tag", "cra-template-typescript@next", Info{Name: "cra-template-typescript", Version: "next"}},
		{"git with ref", "git+https://host/org/repo.git#v1.0", Info{Name: "repo"}},
		{"git without ref", "git+ssh://git@github.com/acme/scripts.git", Info{Name: "scripts"}},
		{"plain name", "react-scripts", Info{Name: "react-scripts"}},
		{"scoped plain name", "@acme/react-scripts", Info{Name: "@acme/react-scripts"}},
	}

	e := quietExtractor(io.Discard)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Extract(context.Background(), tt.ref, t.TempDir())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_RemoteTarball(t *testing.T) {
	data := createTarball(t, map[string]string{
		"package/package.json": `{"name":"react-scripts","version":"5.0.1"}`,
		"package/bin/cli.js":   "#!/usr/bin/env node\n",
	})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer server.Close()

	e := &Extractor{HTTPClient: server.Client(), Logger: log.New(io.Discard)}
	got, err := e.Extract(context.Background(), server.URL+"/react-scripts-5.0.1.tgz", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Info{Name: "react-scripts", Version: "5.0.1"}, got)
}

func TestExtract_RemoteTarballRetriesServerErrors(t *testing.T) {
	data := createTarball(t, map[string]string{
		"package/package.json": `{"name":"my-scripts","version":"1.0.0"}`,
	})
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write(data)
	}))
	defer server.Close()

	e := &Extractor{HTTPClient: server.Client(), Logger: log.New(io.Discard)}
	got, err := e.Extract(context.Background(), server.URL+"/my-scripts-1.0.0.tgz", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "my-scripts", got.Name)
	assert.Equal(t, int32(2), hits.Load())
}

func TestExtract_LocalTarballRelativeToOriginalDir(t *testing.T) {
	originalDir := t.TempDir()
	data := createTarball(t, map[string]string{
		"package/package.json": `{"name":"cra-template-acme","version":"0.3.0"}`,
	})
	require.NoError(t, os.WriteFile(filepath.Join(originalDir, "tpl.tar.gz"), data, 0644))

	e := quietExtractor(io.Discard)
	got, err := e.Extract(context.Background(), "tpl.tar.gz", originalDir)
	require.NoError(t, err)
	assert.Equal(t, Info{Name: "cra-template-acme", Version: "0.3.0"}, got)

	got, err = e.Extract(context.Background(), "file:"+filepath.Join(originalDir, "tpl.tar.gz"), "/")
	require.NoError(t, err)
	assert.Equal(t, "cra-template-acme", got.Name)
}

func TestExtract_UnreadableArchiveFallsBackToFileName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	var logs bytes.Buffer
	e := &Extractor{HTTPClient: server.Client(), Logger: log.New(&logs)}

	got, err := e.Extract(context.Background(), server.URL+"/dist/react-scripts-5.0.1.tgz", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Info{Name: "react-scripts"}, got)
	assert.Contains(t, logs.String(), "Could not extract the package name from the archive")
}

func TestExtract_ArchiveWithoutManifestFallsBack(t *testing.T) {
	dir := t.TempDir()
	data := createTarball(t, map[string]string{"package/index.js": "module.exports = {}"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "my-scripts-2.0.0.tgz"), data, 0644))

	e := quietExtractor(io.Discard)
	got, err := e.Extract(context.Background(), filepath.Join(dir, "my-scripts-2.0.0.tgz"), "/")
	require.NoError(t, err)
	assert.Equal(t, Info{Name: "my-scripts"}, got)
}

func TestExtract_RejectsPathTraversal(t *testing.T) {
	dest := t.TempDir()
	data := createTarball(t, map[string]string{"package/../../evil.txt": "x"})

	err := extractTarGz(bytes.NewReader(data), dest)
	assert.Error(t, err)
}

func TestExtract_LocalPath(t *testing.T) {
	originalDir := t.TempDir()
	pkgDir := filepath.Join(originalDir, "my-scripts")
	require.NoError(t, os.MkdirAll(pkgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "package.json"), []byte(`{"name":"my-scripts","version":"3.4.0"}`), 0644))

	e := quietExtractor(io.Discard)
	got, err := e.Extract(context.Background(), "file:my-scripts", originalDir)
	require.NoError(t, err)
	assert.Equal(t, Info{Name: "my-scripts", Version: "3.4.0"}, got)

	_, err = e.Extract(context.Background(), "file:missing", originalDir)
	require.Error(t, err)
	assert.True(t, issue.Is(err, issue.KindUnexpected))
}

func TestExtractBoth(t *testing.T) {
	e := quietExtractor(io.Discard)
	scripts, template, err := e.ExtractBoth(context.Background(), "react-scripts@5.0.1", "cra-template", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Info{Name: "react-scripts", Version: "5.0.1"}, scripts)
	assert.Equal(t, Info{Name: "cra-template"}, template)

	_, _, err = e.ExtractBoth(context.Background(), "file:nowhere", "cra-template", t.TempDir())
	assert.Error(t, err)
}

func TestArchiveName(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"https://example.com/react-scripts-5.0.1.tgz", "react-scripts"},
		{"./dist/cra-template-acme-1.0.0-beta.tar.gz", "cra-template-acme"},
		{"https://example.com/scripts.tgz", "scripts"},
		{"scripts-1.0.0.tgz", "scripts-1.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, ArchiveName(tt.ref))
		})
	}
}

func TestInfoString(t *testing.T) {
	assert.Equal(t, "react-scripts@5.0.1", Info{Name: "react-scripts", Version: "5.0.1"}.String())
	assert.Equal(t, "react-scripts", Info{Name: "react-scripts"}.String())
}
