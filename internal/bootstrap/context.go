package bootstrap

import "path/filepath"

// WorkingContext pins the two directories a run resolves paths against.
type WorkingContext struct {
	// OriginalDir is where the tool was invoked. Relative file: and
	// tarball references resolve against it.
	OriginalDir string
	// RootDir is the absolute path of the project being created.
	RootDir string
}

// NewWorkingContext resolves name against originalDir.
func NewWorkingContext(originalDir, name string) WorkingContext {
	root := name
	if !filepath.IsAbs(root) {
		root = filepath.Join(originalDir, name)
	}
	return WorkingContext{OriginalDir: originalDir, RootDir: filepath.Clean(root)}
}

// AppName is the project name, the last element of RootDir.
func (wc WorkingContext) AppName() string {
	return filepath.Base(wc.RootDir)
}

// Path joins elem onto RootDir.
func (wc WorkingContext) Path(elem ...string) string {
	return filepath.Join(append([]string{wc.RootDir}, elem...)...)
}

// Parent is the directory containing RootDir.
func (wc WorkingContext) Parent() string {
	return filepath.Dir(wc.RootDir)
}
