package pkgmanager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cra-labs/create-react-app/internal/issue"
	"github.com/cra-labs/create-react-app/internal/runtime"
)

// Kind is a supported package manager.
type Kind int

const (
	// Yarn is yarn classic, invoked as yarnpkg to avoid clashing with the
	// Hadoop yarn binary.
	Yarn Kind = iota
	// NPM is the npm client bundled with Node.js.
	NPM
)

// String returns the manager's user-facing name.
func (k Kind) String() string {
	if k == Yarn {
		return "yarn"
	}
	return "npm"
}

// Binary returns the executable name.
func (k Kind) Binary() string {
	if k == Yarn {
		return "yarnpkg"
	}
	return "npm"
}

// Detect picks npm when forced, otherwise yarn if it answers --version.
func Detect(ctx context.Context, runner runtime.Runner, useNpm bool) Kind {
	if useNpm {
		return NPM
	}
	if _, err := runner.Output(ctx, "", "yarnpkg", "--version"); err != nil {
		return NPM
	}
	return Yarn
}

// DefaultYarnRegistry is the registry a cached yarn.lock was resolved
// against.
const DefaultYarnRegistry = "https://registry.yarnpkg.com"

// CopyCachedLockfile copies src to root/yarn.lock when yarn is configured
// for wantRegistry. If yarn's registry cannot be read it is assumed to be
// the default. A missing src is skipped. Reports whether a copy was made.
func CopyCachedLockfile(ctx context.Context, runner runtime.Runner, src, root, wantRegistry string) (bool, error) {
	if src == "" {
		return false, nil
	}
	if wantRegistry == "" {
		wantRegistry = DefaultYarnRegistry
	}
	if out, err := runner.Output(ctx, root, "yarnpkg", "config", "get", "registry"); err == nil && out != wantRegistry {
		return false, nil
	}

	info, err := os.Stat(src)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading cached lockfile: %w", err)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return false, fmt.Errorf("reading cached lockfile: %w", err)
	}
	if err := os.WriteFile(filepath.Join(root, "yarn.lock"), data, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing yarn.lock: %w", err)
	}
	return true, nil
}

// Request describes one install.
type Request struct {
	Manager      Kind
	Root         string
	Dependencies []string
	UsePnp       bool
	Offline      bool
	Verbose      bool
}

// Command returns the executable and arguments for r.
//
//	yarnpkg add --exact [--offline] [--enable-pnp] <deps...> --cwd <root> [--verbose]
//	npm install --save --save-exact --loglevel error <deps...> [--verbose]
func (r Request) Command() (string, []string) {
	var args []string
	if r.Manager == Yarn {
		args = []string{"add", "--exact"}
		if r.Offline {
			args = append(args, "--offline")
		}
		if r.UsePnp {
			args = append(args, "--enable-pnp")
		}
		args = append(args, r.Dependencies...)
		args = append(args, "--cwd", r.Root)
	} else {
		args = append([]string{"install", "--save", "--save-exact", "--loglevel", "error"}, r.Dependencies...)
	}
	if r.Verbose {
		args = append(args, "--verbose")
	}
	return r.Manager.Binary(), args
}

// InstallError is a package manager run that did not succeed.
type InstallError struct {
	// Command is the full command line that failed.
	Command string
	Err     error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("%s has failed", e.Command)
}

// Unwrap returns the runner's error.
func (e *InstallError) Unwrap() error { return e.Err }

// Installer runs package manager installs.
type Installer interface {
	Install(ctx context.Context, req Request) error
}

// RunnerInstaller installs through a runtime.Runner, streaming the
// manager's output.
type RunnerInstaller struct {
	Runner runtime.Runner
}

// Install runs the command for req inside req.Root. A failure is returned as
// an install-kind issue wrapping *InstallError.
func (i *RunnerInstaller) Install(ctx context.Context, req Request) error {
	name, args := req.Command()
	if err := i.Runner.Run(ctx, req.Root, name, args...); err != nil {
		ie := &InstallError{Command: runtime.CommandLine(name, args...), Err: err}
		return issue.Wrap(issue.KindInstall, ie, "installing dependencies")
	}
	return nil
}
