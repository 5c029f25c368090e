package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Printer writes styled messages. Results go to out, diagnostics to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	color  bool
	quiet  bool
}

// NewPrinter creates a printer. Styling is enabled only when out is a terminal.
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{
		out:    out,
		errOut: errOut,
		color:  IsTerminal(out),
	}
}

var defaultPrinter = NewPrinter(os.Stdout, os.Stderr)

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetColor forces styling on or off
func (p *Printer) SetColor(enabled bool) {
	p.color = enabled
}

// SetQuiet suppresses info, success and highlight messages
func (p *Printer) SetQuiet(quiet bool) {
	p.quiet = quiet
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// Banner prints a boxed title
func (p *Printer) Banner(title string) {
	if p.quiet {
		return
	}
	if !p.color {
		fmt.Fprintln(p.errOut, title)
		return
	}
	fmt.Fprintln(p.errOut, bannerStyle.Render(title))
}

// Error prints an error message in red
func (p *Printer) Error(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	fmt.Fprintln(p.errOut, p.render(errorStyle, msg))
}

// Warning prints a warning message in orange
func (p *Printer) Warning(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	fmt.Fprintln(p.errOut, p.render(warningStyle, msg))
}

// Success prints a success message in green
func (p *Printer) Success(msg string) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.errOut, p.render(successStyle, msg))
}

// Info prints a label and value pair
func (p *Printer) Info(label string, value string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.errOut, "%s: %s\n", p.render(labelStyle, label), p.render(valueStyle, value))
}

// Highlight prints a message in magenta
func (p *Printer) Highlight(msg string) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.errOut, p.render(highlightStyle, msg))
}

// Dim prints a de-emphasized message
func (p *Printer) Dim(msg string) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.errOut, p.render(dimStyle, msg))
}

// JSON prints a response body. With raw set the bytes are written unchanged.
func (p *Printer) JSON(body []byte, raw bool) {
	if raw {
		p.out.Write(body)
		if len(body) > 0 && body[len(body)-1] != '\n' {
			fmt.Fprintln(p.out)
		}
		return
	}
	fmt.Fprintln(p.out, RenderJSON(body, p.color))
}

// PrintError prints an error message in red to stderr
func PrintError(msg string, args ...interface{}) {
	defaultPrinter.Error(msg, args...)
}
