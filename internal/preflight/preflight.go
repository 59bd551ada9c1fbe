package preflight

import (
	"context"
	"net"
	"os"
	goruntime "runtime"

	"github.com/charmbracelet/log"
	"github.com/cra-labs/create-react-app/internal/runtime"
	"github.com/cra-labs/create-react-app/internal/ui"
)

// Result is the outcome of one check.
type Result struct {
	// OK is false when the caller should abort.
	OK bool
	// Fallback asks the caller to switch to the legacy scripts package.
	Fallback bool
	// Version is the tool version observed by the check, if any.
	Version string
	// Conflicts lists entries blocking project creation in the target directory.
	Conflicts []string
}

func pass() Result { return Result{OK: true} }

// Resolver looks up hostnames. *net.Resolver satisfies it.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Checker runs the preflight checks.
type Checker struct {
	Runner   runtime.Runner
	DNS      Resolver
	Getenv   func(string) string
	GOOS     string
	YarnHost string
	Printer  *ui.Printer
	Logger   *log.Logger
}

// New returns a Checker using the real resolver, environment, and OS.
func New(runner runtime.Runner, printer *ui.Printer, logger *log.Logger) *Checker {
	return &Checker{
		Runner:   runner,
		DNS:      net.DefaultResolver,
		Getenv:   os.Getenv,
		GOOS:     goruntime.GOOS,
		YarnHost: "registry.yarnpkg.com",
		Printer:  printer,
		Logger:   logger,
	}
}

func (c *Checker) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}
