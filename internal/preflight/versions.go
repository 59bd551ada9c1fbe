package preflight

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/cra-labs/create-react-app/internal/runtime"
)

var (
	minNode    = semver.MustParse("10.0.0")
	minNpm     = semver.MustParse("6.0.0")
	minYarnPnp = semver.MustParse("1.12.0")
	maxYarnPnp = semver.MustParse("2.0.0")

	versionSuffix = regexp.MustCompile(`^(.+?)[-+].+$`)
)

// CheckNode compares the host Node.js version against the minimum the
// current scripts package supports. Below it, Fallback is set. A missing
// node binary is an error since nothing can be bootstrapped without it.
func (c *Checker) CheckNode(ctx context.Context) (Result, error) {
	node := runtime.Node{Runner: c.Runner}
	raw, err := node.Version(ctx)
	if err != nil {
		return Result{}, err
	}
	out := "v" + raw
	r := Result{OK: true, Version: raw}

	v, err := semver.NewVersion(raw)
	if err != nil {
		return r, fmt.Errorf("parsing node version %q: %w", out, err)
	}
	if v.LessThan(minNode) {
		r.Fallback = true
		c.Printer.Warning("You are using Node %s so the project will be bootstrapped with an old unsupported version of tools.", out)
		c.Printer.Warning("Please update to Node %d or higher for a better, fully supported experience.", minNode.Major())
	}
	return r, nil
}

// CheckNpm sets Fallback when npm is older than the minimum or cannot be
// queried. The warning is only shown when a version was read.
func (c *Checker) CheckNpm(ctx context.Context) Result {
	out, err := c.Runner.Output(ctx, "", "npm", "--version")
	if err != nil {
		c.logger().Debug("npm version unavailable", "err", err)
		return Result{OK: true, Fallback: true}
	}
	r := Result{OK: true, Version: out}

	v, err := semver.NewVersion(out)
	if err != nil || v.LessThan(minNpm) {
		r.Fallback = true
		c.Printer.Warning("You are using npm %s so the project will be bootstrapped with an old unsupported version of tools.", out)
		c.Printer.Warning("Please update to npm %d or higher for a better, fully supported experience.", minNpm.Major())
	}
	return r
}

// CheckYarnPnp reports whether Plug'n'Play can be used with the installed
// yarn. OK is false when the flag must be dropped; the run continues either
// way. Nothing is printed if yarn's version cannot be read.
func (c *Checker) CheckYarnPnp(ctx context.Context) Result {
	out, err := c.Runner.Output(ctx, "", "yarnpkg", "--version")
	if err != nil || out == "" {
		return pass()
	}
	r := Result{OK: true, Version: out}

	hasMin, hasMax := yarnPnpWindow(out)
	if !hasMin {
		r.OK = false
		c.Printer.Warning("You are using Yarn %s together with the --use-pnp flag, but Plug'n'Play is only supported starting from the 1.12 release.", out)
		c.Printer.Warning("Please update to Yarn 1.12 or higher for a better, fully supported experience.")
	}
	if !hasMax {
		r.OK = false
		c.Printer.Warning("The --use-pnp flag is no longer necessary with yarn 2 and will be deprecated and removed in a future release.")
	}
	return r
}

// yarnPnpWindow tests version against [1.12.0, 2.0.0). A version that is
// not valid semver is compared on the part before its first - or + suffix.
// An unreadable version is outside both bounds.
func yarnPnpWindow(version string) (hasMin, hasMax bool) {
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		m := versionSuffix.FindStringSubmatch(version)
		if m == nil {
			return false, false
		}
		if v, err = semver.StrictNewVersion(m[1]); err != nil {
			return false, false
		}
	}
	return !v.LessThan(minYarnPnp), v.LessThan(maxYarnPnp)
}
