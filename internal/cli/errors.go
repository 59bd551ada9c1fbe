package cli

import (
	"errors"
	"io"

	"github.com/charmbracelet/fang"
	"github.com/cra-labs/create-react-app/internal/issue"
	"github.com/cra-labs/create-react-app/internal/ui"
)

// handleError prints err unless the command already explained it.
// Exit errors were reported by the code that raised them and a cancelled
// prompt is not a failure. Actionable errors show their suggestions.
func handleError(w io.Writer, styles fang.Styles, err error) {
	if errors.Is(err, issue.ErrCancelled) {
		return
	}
	var exitErr *issue.ExitError
	if errors.As(err, &exitErr) {
		return
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		p := ui.NewPrinter(w)
		p.Blank()
		p.Warning("%s", ae.Format())
		p.Blank()
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
