// Package render paints a list of Changes as coloured, captioned text
// blocks, citing the original source lines the change occurred at. The core
// diffing packages only produce Changes and Paths; everything about how
// they look in a terminal lives here.
package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"

	"github.com/felipesere/everdiff/internal/differ"
	"github.com/felipesere/everdiff/internal/value"
	"github.com/felipesere/everdiff/internal/yamldoc"
)

var (
	styleAdded    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	styleRemoved  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleModified = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	styleMoved    = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	stylePath     = lipgloss.NewStyle().Faint(true)
	styleCaption  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).Underline(true)
	styleLineNo   = lipgloss.NewStyle().Faint(true)
)

// Width returns the detected terminal width for fd, falling back to 100
// columns when detection fails (e.g. output is piped).
func Width(fd int) int {
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 100
	}

	return w
}

// Pair renders the changes found between a matched left/right document pair,
// captioned by its identity key.
func Pair(caption []string, left, right *yamldoc.Document, changes []differ.Change, width int) string {
	var b strings.Builder

	b.WriteString(styleCaption.Render(strings.Join(caption, " / ")))
	b.WriteByte('\n')

	if len(changes) == 0 {
		b.WriteString("  (no changes)\n")
		return b.String()
	}

	for _, c := range changes {
		b.WriteString(renderChange(c, left, right, width))
	}

	return b.String()
}

func renderChange(c differ.Change, left, right *yamldoc.Document, width int) string {
	var b strings.Builder

	switch c.Kind {
	case differ.Added:
		fmt.Fprintf(&b, "%s %s\n", styleAdded.Render("+ added"), stylePath.Render(c.Path.String()))
		b.WriteString(snippet(right, c.Right.Span, styleAdded, width))
	case differ.Removed:
		fmt.Fprintf(&b, "%s %s\n", styleRemoved.Render("- removed"), stylePath.Render(c.Path.String()))
		b.WriteString(snippet(left, c.Left.Span, styleRemoved, width))
	case differ.Modified:
		fmt.Fprintf(&b, "%s %s\n", styleModified.Render("~ modified"), stylePath.Render(c.Path.String()))
		b.WriteString(snippet(left, c.Left.Span, styleRemoved, width))
		b.WriteString(snippet(right, c.Right.Span, styleAdded, width))
	case differ.Moved:
		fmt.Fprintf(&b, "%s %s (from [%d] to [%d])\n",
			styleMoved.Render("→ moved"), stylePath.Render(c.Path.String()), c.MoveFrom, c.MoveTo)
	}

	return b.String()
}

// snippet re-slices doc's original source text by span and renders each
// line prefixed with its line number, styled with s.
func snippet(doc *yamldoc.Document, span value.Span, s lipgloss.Style, width int) string {
	if doc == nil || span.StartLine == 0 {
		return ""
	}

	lines := bytes.Split(doc.Source, []byte("\n"))

	var b strings.Builder

	for line := span.StartLine; line <= span.EndLine && line <= len(lines); line++ {
		text := string(lines[line-1])
		gutter := styleLineNo.Render(padLineNo(line, 5))
		b.WriteString(gutter)
		b.WriteByte(' ')
		b.WriteString(s.Render(truncate(text, width-7)))
		b.WriteByte('\n')
	}

	return b.String()
}

func padLineNo(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}

	return strings.Repeat(" ", width-len(s)) + s
}

func truncate(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}

	return s[:width] + "…"
}
