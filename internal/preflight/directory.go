package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// benignFiles may exist in a directory before a project is created in it.
var benignFiles = map[string]bool{
	".DS_Store":      true,
	".git":           true,
	".gitattributes": true,
	".gitignore":     true,
	".gitlab-ci.yml": true,
	".hg":            true,
	".hgcheck":       true,
	".hgignore":      true,
	".idea":          true,
	".npmignore":     true,
	".travis.yml":    true,
	"docs":           true,
	"LICENSE":        true,
	"README.md":      true,
	"mkdocs.yml":     true,
	"Thumbs.db":      true,
}

// errorLogPrefixes match logs left behind by a previous failed install.
var errorLogPrefixes = []string{"npm-debug.log", "yarn-error.log", "yarn-debug.log"}

func isErrorLog(name string) bool {
	for _, p := range errorLogPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func isBenign(name string) bool {
	return benignFiles[name] || strings.HasSuffix(name, ".iml") || isErrorLog(name)
}

// CheckDirectory verifies root holds nothing a new project could clash
// with. On conflicts the directory is left untouched and OK is false.
// Otherwise leftover error logs are removed.
func (c *Checker) CheckDirectory(root, appName string) (Result, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", root, err)
	}

	var conflicts []string
	for _, e := range entries {
		if isBenign(e.Name()) {
			continue
		}
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		conflicts = append(conflicts, name)
	}

	if len(conflicts) > 0 {
		c.Printer.Plain("The directory %s contains files that could conflict:", appName)
		c.Printer.Blank()
		for _, f := range conflicts {
			c.Printer.Detail("%s", f)
		}
		c.Printer.Blank()
		c.Printer.Plain("Either try using a new directory name, or remove the files listed above.")
		return Result{OK: false, Conflicts: conflicts}, nil
	}

	for _, e := range entries {
		if isErrorLog(e.Name()) {
			if err := os.RemoveAll(filepath.Join(root, e.Name())); err != nil {
				c.logger().Debug("removing stale log", "file", e.Name(), "err", err)
			}
		}
	}
	return pass(), nil
}
