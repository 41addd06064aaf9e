// Package console is the terminal output formatter for user-facing status
// lines. It is injected into the components that narrate progress so that
// nothing writes colored output through package-level state.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type Printer struct {
	out  io.Writer
	warn *color.Color
	good *color.Color
}

// New returns a Printer writing to out. Colors degrade to plain text when
// out is not a terminal.
func New(out io.Writer) *Printer {
	return &Printer{
		out:  out,
		warn: color.New(color.FgRed, color.Bold),
		good: color.New(color.FgCyan, color.Bold),
	}
}

// Warn prints an attention line (red).
func (p *Printer) Warn(format string, args ...interface{}) {
	p.warn.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Good prints a progress line (cyan).
func (p *Printer) Good(format string, args ...interface{}) {
	p.good.Fprintln(p.out, fmt.Sprintf(format, args...))
}
