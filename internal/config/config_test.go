package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CRA_HOME", t.TempDir())

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://registry.npmjs.org", s.NpmRegistry)
	assert.Equal(t, "registry.yarnpkg.com", s.YarnHost)
	assert.Equal(t, "https://registry.yarnpkg.com", s.YarnRegistry)
	assert.Empty(t, s.CachedLockfile)
	assert.True(t, s.UpdateCheck)
	assert.Equal(t, 24*time.Hour, s.UpdateCacheTTL)
}

func TestLoad_FileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CRA_HOME", home)
	t.Setenv("CRA_UPDATE_CHECK", "false")

	data := []byte("registry:\n  npm: https://npm.example.com/\nlockfile:\n  cached: /opt/yarn.lock.cached\n")
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), data, 0644))

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://npm.example.com", s.NpmRegistry)
	assert.Equal(t, "/opt/yarn.lock.cached", s.CachedLockfile)
	assert.False(t, s.UpdateCheck)
}

func TestLoad_MalformedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CRA_HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("registry: [\n"), 0644))

	_, err := Load()
	assert.Error(t, err)
}
