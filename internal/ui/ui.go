// Package ui renders user-facing status lines. Diagnostics go through the
// charmbracelet logger instead; this package is for the messages a user
// reads to understand what the tool did.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleHighlight for emphasized values such as paths and package names.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleCommand for commands the user can copy.
	StyleCommand = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)

	// StyleWarning for warning text.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for error text.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
)

var (
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

// Printer writes styled lines to an io.Writer.
type Printer struct {
	w io.Writer
}

// NewPrinter returns a Printer writing to w. A nil w means os.Stdout.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w}
}

// Writer returns the underlying writer, for child processes that stream
// their own output.
func (p *Printer) Writer() io.Writer { return p.w }

// Plain prints an unstyled line.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

// Error prints a line prefixed with a cross, in red.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconError.Render(iconError)+" "+StyleError.Render(fmt.Sprintf(format, args...)))
}

// Warning prints a line prefixed with an exclamation mark, in amber.
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// Info prints a status line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// Detail prints an indented, dimmed line.
func (p *Printer) Detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// Command prints an indented command the user can run.
func (p *Printer) Command(cmd string) {
	fmt.Fprintln(p.w, "  "+StyleCommand.Render(cmd))
}
