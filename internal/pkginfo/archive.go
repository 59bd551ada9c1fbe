package pkginfo

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/cra-labs/create-react-app/internal/branding"
	"github.com/cra-labs/create-react-app/internal/httputil"
	"github.com/cra-labs/create-react-app/internal/manifest"
	"github.com/cra-labs/create-react-app/internal/resolve"
)

// readArchive unpacks ref into a scratch directory and reads its manifest.
// The scratch directory is removed before returning.
func (e *Extractor) readArchive(ctx context.Context, ref, originalDir string) (Info, error) {
	scratch, err := os.MkdirTemp("", branding.CLIName()+"-")
	if err != nil {
		return Info{}, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	stream, err := e.open(ctx, ref, originalDir)
	if err != nil {
		return Info{}, err
	}
	defer stream.Close()

	if err := extractTarGz(stream, scratch); err != nil {
		return Info{}, err
	}

	pkg, err := manifest.ReadPackage(scratch)
	if err != nil {
		return Info{}, err
	}
	return Info{Name: pkg.Name, Version: pkg.Version}, nil
}

// open returns a stream over a remote (http/https) or local archive.
func (e *Extractor) open(ctx context.Context, ref, originalDir string) (io.ReadCloser, error) {
	if strings.HasPrefix(ref, "http") {
		return e.download(ctx, ref)
	}
	path := resolve.LocalPath(ref)
	if !filepath.IsAbs(path) {
		path = filepath.Join(originalDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	return f, nil
}

func (e *Extractor) download(ctx context.Context, url string) (io.ReadCloser, error) {
	var body io.ReadCloser
	err := httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("creating download request: %w", err)
		}
		req.Header.Set("User-Agent", branding.CLIName())

		resp, err := e.client().Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: fmt.Errorf("downloading %s: %w", url, err)}
		}
		if err := httputil.CheckStatus(resp); err != nil {
			resp.Body.Close()
			return err
		}
		body = resp.Body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// extractTarGz unpacks a gzipped tarball into dest, dropping the leading
// path component ("package/" in npm tarballs). Entries escaping dest are
// rejected.
func extractTarGz(r io.Reader, dest string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		name := stripFirstComponent(hdr.Name)
		if name == "" {
			continue
		}
		target := filepath.Join(dest, filepath.FromSlash(name))
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes the extraction directory", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", name, err)
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr); err != nil {
				return fmt.Errorf("extracting %s: %w", name, err)
			}
		}
		// Links and special files are not needed to read the manifest.
	}
}

func writeEntry(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	_, copyErr := io.Copy(out, r)
	return errors.Join(copyErr, out.Close())
}

func stripFirstComponent(name string) string {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	_, rest, found := strings.Cut(name, "/")
	if !found {
		return ""
	}
	return rest
}
