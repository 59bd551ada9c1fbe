package preflight

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cra-labs/create-react-app/internal/ui"
)

const npmCwdPrefix = "; cwd = "

// CheckNpmCwd asks npm which directory it starts in and compares it with
// dir. A mismatch means the shell changes directory on startup (commonly an
// AutoRun registry entry on Windows); OK is false and remediation is
// printed. If npm cannot answer, the check passes.
func (c *Checker) CheckNpmCwd(ctx context.Context, dir string) Result {
	out, err := c.Runner.Output(ctx, dir, "npm", "config", "list")
	if err != nil || out == "" {
		return pass()
	}

	var npmCwd string
	found := false
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, npmCwdPrefix) {
			npmCwd = strings.TrimSpace(strings.TrimPrefix(line, npmCwdPrefix))
			found = true
			break
		}
	}
	if !found || samePath(npmCwd, dir) {
		return pass()
	}

	c.Printer.Error("Could not start an npm process in the right directory.")
	c.Printer.Blank()
	c.Printer.Plain("The current directory is: %s", ui.StyleHighlight.Render(dir))
	c.Printer.Plain("However, a newly started npm process runs in: %s", ui.StyleHighlight.Render(npmCwd))
	c.Printer.Blank()
	c.Printer.Plain("This is probably caused by a misconfigured system terminal shell.")
	if c.GOOS == "windows" {
		c.Printer.Plain("On Windows, this can usually be fixed by running:")
		c.Printer.Blank()
		for _, hint := range WindowsAutoRunFixes {
			c.Printer.Command(hint)
		}
		c.Printer.Blank()
		c.Printer.Plain("Try to run the above two lines in the terminal.")
		c.Printer.Plain("To learn more about this problem, read: https://blogs.msdn.microsoft.com/oldnewthing/20071121-00/?p=24433/")
	}
	return Result{OK: false}
}

// WindowsAutoRunFixes remove the Command Processor AutoRun entries that
// make cmd.exe change directory on startup.
var WindowsAutoRunFixes = []string{
	`reg delete "HKCU\Software\Microsoft\Command Processor" /v AutoRun /f`,
	`reg delete "HKLM\Software\Microsoft\Command Processor" /v AutoRun /f`,
}

// Proxy returns the configured HTTPS proxy, from https_proxy or npm's
// config. Lookup failures yield "".
func (c *Checker) Proxy(ctx context.Context) string {
	if p := c.Getenv("https_proxy"); p != "" {
		return p
	}
	out, err := c.Runner.Output(ctx, "", "npm", "config", "get", "https-proxy")
	if err != nil || out == "null" {
		return ""
	}
	return out
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ra, errA := filepath.EvalSymlinks(a)
	rb, errB := filepath.EvalSymlinks(b)
	return errA == nil && errB == nil && ra == rb
}
