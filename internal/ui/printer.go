package ui

import (
	"fmt"
	"io"
	"os"
)

// Printer provides methods for printing styled content to a writer.
// This is the primary way commands should output status information
// when not running the interactive dashboard.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// PrintLines writes multiple lines
func (p *Printer) PrintLines(lines ...string) {
	for _, line := range lines {
		_, _ = fmt.Fprintln(p.out, line)
	}
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintTitle prints a bold title line followed by a muted subtitle.
func (p *Printer) PrintTitle(title, subtitle string) {
	p.Println(TitleStyle.Render(title))
	if subtitle != "" {
		p.Println(SubtitleStyle.Render(subtitle))
	}
	p.Newline()
}

// PrintRow prints an aligned label/value status row.
func (p *Printer) PrintRow(label, value string) {
	p.Println(LabelStyle.Render(label) + ValueStyle.Render(value))
}

// PrintError prints an error line in the error style.
func (p *Printer) PrintError(err error) {
	p.Println(ErrorStyle.Render(FailureMarker + " " + err.Error()))
}
