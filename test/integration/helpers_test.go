//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // CRA_HOME, holds config.yaml and the version cache
	BinDir     string // fake node and yarnpkg, first on PATH
	ProjectDir string // where the tool is invoked from
}

// setupTestEnv creates isolated temp directories, disables the update check
// and puts a fake toolchain first on PATH. Env vars are restored after the
// test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake toolchain is written as POSIX shell scripts")
	}

	env := &testEnv{
		HomeDir:    t.TempDir(),
		BinDir:     t.TempDir(),
		ProjectDir: t.TempDir(),
	}

	t.Setenv("CRA_HOME", env.HomeDir)
	t.Setenv("CRA_UPDATE_CHECK", "false")
	t.Setenv("CRA_REGISTRY_YARN_HOST", "localhost")
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	writeExecutable(t, filepath.Join(env.BinDir, "yarnpkg"), fakeYarn)
	writeExecutable(t, filepath.Join(env.BinDir, "node"), fakeNode)
	return env
}

// fakeYarn answers version and registry queries and, for "add", writes what
// a real install leaves behind. FAKE_YARN_FAIL makes the install fail after
// the files are written.
const fakeYarn = `#!/bin/sh
case "$1" in
  --version) echo 1.22.19; exit 0 ;;
  config) echo https://registry.yarnpkg.com; exit 0 ;;
  add) ;;
  *) exit 1 ;;
esac
root=""
prev=""
for arg in "$@"; do
  if [ "$prev" = "--cwd" ]; then root="$arg"; fi
  prev="$arg"
done
echo "$@" > "$root/.yarn-args"
mkdir -p "$root/node_modules/react-scripts"
echo '{"name":"react-scripts","version":"5.0.1","engines":{"node":">=14.0.0"}}' > "$root/node_modules/react-scripts/package.json"
echo '# yarn lockfile v1' > "$root/yarn.lock"
if [ -n "$FAKE_YARN_FAIL" ]; then rm -f "$root/.yarn-args"; exit 1; fi
name=$(basename "$root")
cat > "$root/package.json" <<JSON
{
  "name": "$name",
  "version": "0.1.0",
  "private": true,
  "dependencies": {
    "cra-template": "1.2.0",
    "react": "18.2.0",
    "react-dom": "18.2.0",
    "react-scripts": "5.0.1"
  }
}
JSON
`

// fakeNode reports its version and records the init payload, the last
// argument, in the directory it runs in.
const fakeNode = `#!/bin/sh
if [ "$1" = "--version" ]; then echo v18.17.0; exit 0; fi
for last in "$@"; do :; done
printf '%s' "$last" > init-args.json
`

func writeExecutable(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertNotExists fails the test if path exists.
func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected %s NOT to exist", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
