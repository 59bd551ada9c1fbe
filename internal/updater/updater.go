package updater

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cra-labs/create-react-app/internal/branding"
	"github.com/cra-labs/create-react-app/internal/issue"
	"github.com/cra-labs/create-react-app/internal/runtime"
)

const (
	// DefaultRegistry serves the dist-tags endpoint.
	DefaultRegistry = "https://registry.npmjs.org"
	// DefaultCacheMaxAge is how long a lookup is reused.
	DefaultCacheMaxAge = 24 * time.Hour
	// GettingStartedURL documents the supported way to create an app.
	GettingStartedURL = "https://create-react-app.dev/docs/getting-started/"
)

// Updater compares the running version against the latest release.
type Updater struct {
	currentVersion string
	httpClient     *http.Client
	registry       string
	runner         runtime.Runner
	cacheDir       string
	cacheMaxAge    time.Duration
	logger         *log.Logger
	now            func() time.Time
}

// Option configures an Updater.
type Option func(*Updater)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) { u.httpClient = c }
}

// WithRegistry overrides the npm registry base URL.
func WithRegistry(url string) Option {
	return func(u *Updater) {
		if url != "" {
			u.registry = url
		}
	}
}

// WithRunner enables the "npm view" fallback.
func WithRunner(r runtime.Runner) Option {
	return func(u *Updater) { u.runner = r }
}

// WithCache stores lookups in dir for maxAge. Without it every check hits
// the network.
func WithCache(dir string, maxAge time.Duration) Option {
	return func(u *Updater) {
		u.cacheDir = dir
		if maxAge > 0 {
			u.cacheMaxAge = maxAge
		}
	}
}

// WithLogger sets the logger for degraded lookups.
func WithLogger(l *log.Logger) Option {
	return func(u *Updater) { u.logger = l }
}

// New creates an Updater for currentVersion.
func New(currentVersion string, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		registry:       DefaultRegistry,
		cacheMaxAge:    DefaultCacheMaxAge,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.logger == nil {
		u.logger = log.Default()
	}
	return u
}

// OutdatedError reports a binary older than the latest release.
type OutdatedError struct {
	Current string
	Latest  string
}

func (e *OutdatedError) Error() string {
	return fmt.Sprintf("%s is behind the latest release (%s); global installation of %s is no longer supported",
		e.Current, e.Latest, branding.DisplayName())
}

// Check refuses to continue when a newer release exists. The returned error
// is an *issue.ActionableError wrapping *OutdatedError. Dev builds are never
// checked, and a failed lookup is logged and ignored.
func (u *Updater) Check(ctx context.Context) error {
	if u.currentVersion == DevVersion {
		return nil
	}

	latest, err := u.latestCached(ctx)
	if err != nil {
		u.logger.Debug("could not determine the latest version", "kind", issue.KindOf(err), "err", err)
		return nil
	}

	behind, err := IsBehind(u.currentVersion, latest)
	if err != nil {
		u.logger.Debug("skipping version check", "err", err)
		return nil
	}
	if !behind {
		return nil
	}

	cli := branding.CLIName()
	return issue.NewActionable(
		fmt.Sprintf("run %s", cli),
		&OutdatedError{Current: u.currentVersion, Latest: latest},
		"Remove any global install: npm uninstall -g "+cli,
		"Or, with yarn: yarn global remove "+cli,
		"Instructions for creating a new app: "+GettingStartedURL,
	)
}

// latestCached serves Latest from the cache when it is fresh and refreshes
// it otherwise. Cache errors only cost a lookup.
func (u *Updater) latestCached(ctx context.Context) (string, error) {
	if u.cacheDir != "" {
		cache, err := LoadCache(u.cacheDir)
		if err != nil {
			u.logger.Debug("ignoring version cache", "err", err)
		} else if cache.Fresh(u.now(), u.cacheMaxAge) {
			return cache.LatestVersion, nil
		}
	}

	latest, err := u.Latest(ctx)
	if err != nil {
		return "", err
	}

	if u.cacheDir != "" {
		if err := SaveCache(u.cacheDir, &VersionCache{LatestVersion: latest, CheckedAt: u.now()}); err != nil {
			u.logger.Debug("saving version cache", "err", err)
		}
	}
	return latest, nil
}
