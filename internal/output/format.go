// Package output provides terminal output formatting utilities for the convlog CLI.
// Everything here writes to stderr-style streams; the changelog itself goes
// to stdout untouched.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/convlog/internal/changelog"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the width of the terminal behind f, defaulting to 80.
func GetTerminalWidth(f *os.File) int {
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// maxRuleWidth caps the summary rule on very wide terminals.
const maxRuleWidth = 60

// PrintSummary prints a per-section commit count for c, e.g.
//
//	1.4.0 (2019-05-25)
//	  Features          3
//	  Bug fixes         1
//	  BREAKING CHANGES  1
//	──────────────────────
//	  5 entries in 3 sections
//
// Breaking changes are highlighted in red.
func PrintSummary(out io.Writer, c *changelog.Changelog, width int) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(out, "%s %s\n", bold(c.Version), dim("("+c.Date+")"))
	if c.IsEmpty() {
		fmt.Fprintf(out, "  %s\n", dim("no commits"))
		return
	}

	pad := 0
	for _, s := range c.Sections {
		if len(s.Title) > pad {
			pad = len(s.Title)
		}
	}
	for _, s := range c.Sections {
		name := fmt.Sprintf("%-*s", pad, s.Title)
		if s.Kind == changelog.SectionBreakingChanges {
			name = red(name)
		}
		fmt.Fprintf(out, "  %s  %s\n", name, cyan(len(s.Commits)))
	}

	rule := width
	if rule > maxRuleWidth || rule <= 0 {
		rule = maxRuleWidth
	}
	fmt.Fprintln(out, dim(strings.Repeat("─", rule)))
	fmt.Fprintf(out, "  %d entries in %d sections\n", c.CommitCount(), len(c.Sections))
}

// PrintWritten prints a colored success message after the changelog is saved.
func PrintWritten(out io.Writer, checkmark, path string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green(checkmark), cyan("Changelog written to "+path))
}
