package resolve

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Kind classifies a package reference.
type Kind int

const (
	KindScopedOrPlainName Kind = iota
	KindExactSemver
	KindNpmTag
	KindLocalPath
	KindTarballURL
	KindGitURL
)

func (k Kind) String() string {
	switch k {
	case KindExactSemver:
		return "exact-semver"
	case KindNpmTag:
		return "npm-tag"
	case KindLocalPath:
		return "local-path"
	case KindTarballURL:
		return "tarball-url"
	case KindGitURL:
		return "git-url"
	default:
		return "name"
	}
}

const (
	filePrefix = "file:"
	gitPrefix  = "git+"
)

var archivePattern = regexp.MustCompile(`^.+\.(tgz|tar\.gz)$`)

// Classify returns the kind of ref. Precedence: file: prefix, then URL or
// archive suffix, then scoped or tagged name, then bare semver, then plain
// name.
func Classify(ref string) Kind {
	switch {
	case IsLocal(ref):
		return KindLocalPath
	case IsGit(ref):
		return KindGitURL
	case IsArchive(ref) || IsURL(ref):
		return KindTarballURL
	case isDistTag(ref):
		return KindNpmTag
	case strings.Contains(ref, "@"):
		return KindScopedOrPlainName
	case isExactSemver(ref):
		return KindExactSemver
	default:
		return KindScopedOrPlainName
	}
}

// IsLocal reports whether ref carries the file: marker.
func IsLocal(ref string) bool { return strings.HasPrefix(ref, filePrefix) }

// LocalPath strips the file: marker.
func LocalPath(ref string) string { return strings.TrimPrefix(ref, filePrefix) }

// IsGit reports whether ref is a git+ URL.
func IsGit(ref string) bool { return strings.HasPrefix(ref, gitPrefix) }

// IsArchive reports whether ref names a .tgz or .tar.gz file.
func IsArchive(ref string) bool { return archivePattern.MatchString(ref) }

// IsURL reports whether ref has a URL scheme.
func IsURL(ref string) bool { return strings.Contains(ref, "://") }

// isDistTag matches "@next" style input: a leading @ and no scope slash.
func isDistTag(raw string) bool {
	return strings.HasPrefix(raw, "@") && !strings.Contains(raw, "/")
}

// exactSemver parses raw the way npm's semver.valid does: surrounding space
// is ignored and a single leading "v" is allowed.
func exactSemver(raw string) (*semver.Version, bool) {
	v, err := semver.StrictNewVersion(strings.TrimPrefix(strings.TrimSpace(raw), "v"))
	if err != nil {
		return nil, false
	}
	return v, true
}

func isExactSemver(raw string) bool {
	_, ok := exactSemver(raw)
	return ok
}

// canonicalVersion formats an exact version the way npm prints it, without
// build metadata.
func canonicalVersion(raw string) string {
	v, ok := exactSemver(raw)
	if !ok {
		return raw
	}
	s := fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
	if pre := v.Prerelease(); pre != "" {
		s += "-" + pre
	}
	return s
}

// absoluteFileRef resolves the path in a file: reference against base.
func absoluteFileRef(ref, base string) string {
	path := LocalPath(ref)
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	return filePrefix + filepath.Clean(path)
}
