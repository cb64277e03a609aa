package dispatch

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// newRenderer returns a lipgloss renderer for w that falls back to plain
// ASCII output when w is not a terminal
func newRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !isTerminal(w) {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// PrintUsage writes the usage summary listing every command in t
func PrintUsage(w io.Writer, program string, t Table) {
	r := newRenderer(w)

	titleStyle := r.NewStyle().Bold(true)
	nameStyle := r.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	dimStyle := r.NewStyle().Foreground(lipgloss.Color("#626262"))

	width := 0
	for _, cmd := range t {
		if len(cmd.Name) > width {
			width = len(cmd.Name)
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Usage: %s <command>", program)))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("Available commands:"))
	b.WriteString("\n")
	for _, cmd := range t {
		name := fmt.Sprintf("%-*s", width, cmd.Name)
		b.WriteString("  ")
		b.WriteString(nameStyle.Render(name))
		b.WriteString(dimStyle.Render(" - "))
		b.WriteString(cmd.Description)
		b.WriteString("\n")
	}

	fmt.Fprint(w, b.String())
}
