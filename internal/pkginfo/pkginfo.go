package pkginfo

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cra-labs/create-react-app/internal/issue"
	"github.com/cra-labs/create-react-app/internal/manifest"
	"github.com/cra-labs/create-react-app/internal/resolve"
	"golang.org/x/sync/errgroup"
)

// Info is the resolved identity of a reference. An empty Version means the
// version could not be determined without installing.
type Info struct {
	Name    string
	Version string
}

var (
	gitNamePattern     = regexp.MustCompile(`([^/]+)\.git(#.*)?$`)
	archiveNamePattern = regexp.MustCompile(`^.+/(.+?)(?:-\d+.+)?\.(tgz|tar\.gz)$`)
	versionedPattern   = regexp.MustCompile(`.+@`)
)

// Extractor resolves references to Info.
type Extractor struct {
	// HTTPClient downloads remote archives; defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Logger receives the archive fallback warning; defaults to log.Default().
	Logger *log.Logger
}

// Extract returns the identity of ref. Relative paths resolve against
// originalDir. Only local file: references can fail; archives that cannot
// be read fall back to a name guessed from the file name.
func (e *Extractor) Extract(ctx context.Context, ref, originalDir string) (Info, error) {
	switch {
	case resolve.IsArchive(ref):
		return e.fromArchive(ctx, ref, originalDir), nil
	case resolve.IsGit(ref):
		return fromGit(ref), nil
	case versionedPattern.MatchString(ref):
		return fromVersioned(ref), nil
	case resolve.IsLocal(ref):
		return fromLocal(ref, originalDir)
	default:
		return Info{Name: ref}, nil
	}
}

// ExtractBoth resolves the scripts and template references concurrently.
func (e *Extractor) ExtractBoth(ctx context.Context, scriptsRef, templateRef, originalDir string) (scripts, template Info, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scripts, err = e.Extract(ctx, scriptsRef, originalDir)
		return err
	})
	g.Go(func() error {
		var err error
		template, err = e.Extract(ctx, templateRef, originalDir)
		return err
	})
	if err := g.Wait(); err != nil {
		return Info{}, Info{}, err
	}
	return scripts, template, nil
}

func (e *Extractor) fromArchive(ctx context.Context, ref, originalDir string) Info {
	info, err := e.readArchive(ctx, ref, originalDir)
	if err != nil {
		e.logger().Warnf("Could not extract the package name from the archive: %v", err)
		return Info{Name: ArchiveName(ref)}
	}
	return info
}

// ArchiveName guesses a package name from an archive file name by dropping
// the version suffix, e.g. ".../react-scripts-5.0.1.tgz" gives "react-scripts".
func ArchiveName(ref string) string {
	if m := archiveNamePattern.FindStringSubmatch(ref); m != nil {
		return m[1]
	}
	base := filepath.Base(ref)
	for _, ext := range []string{".tar.gz", ".tgz"} {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

func fromGit(ref string) Info {
	if m := gitNamePattern.FindStringSubmatch(ref); m != nil {
		return Info{Name: m[1]}
	}
	return Info{Name: ref}
}

// fromVersioned splits "name@version", keeping the @ of a scope.
func fromVersioned(ref string) Info {
	parts := strings.Split(ref[1:], "@")
	info := Info{Name: ref[:1] + parts[0]}
	if len(parts) > 1 {
		info.Version = parts[1]
	}
	return info
}

func fromLocal(ref, originalDir string) (Info, error) {
	path := resolve.LocalPath(ref)
	if !filepath.IsAbs(path) {
		path = filepath.Join(originalDir, path)
	}
	pkg, err := manifest.ReadPackage(path)
	if err != nil {
		return Info{}, issue.Wrap(issue.KindUnexpected, err, "reading package at %s", path)
	}
	return Info{Name: pkg.Name, Version: pkg.Version}, nil
}

func (e *Extractor) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

func (e *Extractor) client() *http.Client {
	if e.HTTPClient == nil {
		return http.DefaultClient
	}
	return e.HTTPClient
}

// String renders the identity as name@version.
func (i Info) String() string {
	if i.Version == "" {
		return i.Name
	}
	return fmt.Sprintf("%s@%s", i.Name, i.Version)
}
