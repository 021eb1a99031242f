package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// PrintWidth is the width headers and centered text are laid out for
const PrintWidth = 80

// Colors used across the program
const (
	Plain  = color.Reset
	Cyan   = color.FgCyan
	Yellow = color.FgYellow
	Red    = color.FgRed
	White  = color.FgHiWhite
)

// Printer writes plain and colored lines to a console
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to out (os.Stdout when nil)
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{out: out}
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Println writes a plain line
func (p *Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

// Printf writes plain formatted text
func (p *Printer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}

// Print writes plain text without a newline
func (p *Printer) Print(a ...interface{}) {
	fmt.Fprint(p.out, a...)
}

// PrintWithColor writes text in a color, then resets the color
func (p *Printer) PrintWithColor(text string, c color.Attribute) {
	if c == Plain {
		fmt.Fprintln(p.out, text)
		return
	}
	color.New(c).Fprintln(p.out, text)
}

// Warn writes a yellow line
func (p *Printer) Warn(text string) {
	p.PrintWithColor(text, Yellow)
}

// Error writes a red line
func (p *Printer) Error(text string) {
	p.PrintWithColor(text, Red)
}

// PrintHeader writes a boxed, centered title and optional subtitle
func (p *Printer) PrintHeader(title, subtitle string, c color.Attribute) {
	border := strings.Repeat("═", PrintWidth-2)

	lines := []string{"╔" + border + "╗", Center(title, "║", PrintWidth)}
	if subtitle != "" {
		lines = append(lines, Center(subtitle, "║", PrintWidth))
	}
	lines = append(lines, "╚"+border+"╝")

	for _, line := range lines {
		p.PrintWithColor(line, c)
	}
}

// PrintCentered writes a one-line banner; text wider than the console is written as-is
func (p *Printer) PrintCentered(text string, c color.Attribute) {
	if utf8.RuneCountInString(text) > PrintWidth {
		p.PrintWithColor(text, c)
		return
	}
	p.PrintWithColor(Center(text, "", PrintWidth), c)
}

// Center returns text centered over width with edge on each side. Text that
// does not fit is returned with a single space between it and each edge.
func Center(text, edge string, width int) string {
	textLen := utf8.RuneCountInString(text)
	edgeLen := utf8.RuneCountInString(edge)

	inner := width - 2*edgeLen
	if inner < textLen {
		return edge + " " + text + " " + edge
	}

	left := inner/2 + textLen/2 - textLen
	right := inner - inner/2 - textLen/2
	if left < 0 {
		left = 0
	}
	return edge + strings.Repeat(" ", left) + text + strings.Repeat(" ", right) + edge
}
