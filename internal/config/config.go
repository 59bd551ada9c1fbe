package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cra-labs/create-react-app/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood in config.yaml. Each can be overridden from the
// environment, e.g. CRA_REGISTRY_NPM for registry.npm.
const (
	KeyNpmRegistry    = "registry.npm"
	KeyYarnHost       = "registry.yarn_host"
	KeyYarnRegistry   = "registry.yarn_url"
	KeyCachedLockfile = "lockfile.cached"
	KeyUpdateCheck    = "update.check"
	KeyUpdateCacheTTL = "update.cache_ttl"
)

// Settings is the resolved configuration for a single run.
type Settings struct {
	NpmRegistry    string        // base URL of the npm registry API
	YarnHost       string        // hostname probed for connectivity when using yarn
	YarnRegistry   string        // registry URL that makes the cached lockfile valid
	CachedLockfile string        // optional yarn.lock copied into new projects
	UpdateCheck    bool          // whether to check for a newer release before bootstrapping
	UpdateCacheTTL time.Duration // how long a latest-version lookup is trusted
}

// Dir returns the path to the config directory (~/.create-react-app/).
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// New returns a viper instance reading from the config file and environment,
// with defaults for every known key.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(FilePath())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyNpmRegistry, "https://registry.npmjs.org")
	v.SetDefault(KeyYarnHost, "registry.yarnpkg.com")
	v.SetDefault(KeyYarnRegistry, "https://registry.yarnpkg.com")
	v.SetDefault(KeyCachedLockfile, "")
	v.SetDefault(KeyUpdateCheck, true)
	v.SetDefault(KeyUpdateCacheTTL, 24*time.Hour)
	return v
}

// Load reads the config file (if any) and environment into Settings.
// A missing config file is not an error.
func Load() (*Settings, error) {
	v := New()
	if _, err := os.Stat(FilePath()); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", FilePath(), err)
		}
	}
	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Settings {
	return &Settings{
		NpmRegistry:    strings.TrimRight(v.GetString(KeyNpmRegistry), "/"),
		YarnHost:       v.GetString(KeyYarnHost),
		YarnRegistry:   v.GetString(KeyYarnRegistry),
		CachedLockfile: v.GetString(KeyCachedLockfile),
		UpdateCheck:    v.GetBool(KeyUpdateCheck),
		UpdateCacheTTL: v.GetDuration(KeyUpdateCacheTTL),
	}
}
