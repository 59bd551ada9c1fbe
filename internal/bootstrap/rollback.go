package bootstrap

import (
	"errors"
	"os"

	"github.com/cra-labs/create-react-app/internal/issue"
	"github.com/cra-labs/create-react-app/internal/manifest"
	"github.com/cra-labs/create-react-app/internal/pkgmanager"
	"github.com/cra-labs/create-react-app/internal/runtime"
	"github.com/cra-labs/create-react-app/internal/ui"
)

// generatedFiles are the entries an install can leave in the project root.
var generatedFiles = map[string]bool{
	manifest.FileName: true,
	"yarn.lock":       true,
	"node_modules":    true,
}

// Rollback explains cause, removes generated files from the project root
// and removes the root itself if that leaves it empty. Removal is best
// effort; failures are logged.
func (b *Bootstrapper) Rollback(wc WorkingContext, cause error) {
	p := b.Printer
	p.Blank()
	p.Plain("Aborting installation.")

	var installErr *pkgmanager.InstallError
	var exitErr *runtime.ExitError
	switch {
	case errors.As(cause, &installErr):
		p.Plain("  %s has failed.", ui.StyleHighlight.Render(installErr.Command))
	case errors.As(cause, &exitErr):
		p.Plain("  %s has failed.", ui.StyleHighlight.Render(exitErr.Command))
	case issue.Is(cause, issue.KindPreflight):
		// Already explained by the check that failed.
	default:
		p.Error("Unexpected error. Please report it as a bug:")
		p.Plain("%v", cause)
	}
	p.Blank()

	entries, err := os.ReadDir(wc.RootDir)
	if err != nil {
		b.logger().Warn("listing project directory", "dir", wc.RootDir, "err", err)
		p.Plain("Done.")
		return
	}
	for _, e := range entries {
		if !generatedFiles[e.Name()] {
			continue
		}
		p.Plain("Deleting generated file... %s", ui.StyleHighlight.Render(e.Name()))
		if err := os.RemoveAll(wc.Path(e.Name())); err != nil {
			b.logger().Warn("removing generated file", "file", e.Name(), "err", err)
		}
	}

	if remaining, err := os.ReadDir(wc.RootDir); err == nil && len(remaining) == 0 {
		p.Plain("Deleting %s from %s",
			ui.StyleHighlight.Render(wc.AppName()+"/"),
			ui.StyleHighlight.Render(wc.Parent()))
		if err := os.Remove(wc.RootDir); err != nil {
			b.logger().Warn("removing project directory", "dir", wc.RootDir, "err", err)
		}
	}
	p.Plain("Done.")
}
