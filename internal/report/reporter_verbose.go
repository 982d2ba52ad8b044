package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yacobolo/csspurge/internal/summary"
)

// maxListed caps every verbose list.
const maxListed = 10

// VerboseReporter prints per-counter statistics and removed items
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs every non-zero reduction counter
func (r *VerboseReporter) PrintStatistics(sum *summary.Summary) {
	counts := Counts(sum.Counters)
	if len(counts) == 0 {
		return
	}

	r.section(StyleCyan, "Reduction Statistics")

	width := 0
	for _, c := range counts {
		width = max(width, len(c.Label))
	}
	for _, c := range counts {
		fmt.Fprintf(r.w, "%-*s %d\n", width+1, c.Label+":", c.N)
	}
}

// PrintFiles outputs input and output sizes
func (r *VerboseReporter) PrintFiles(sum *summary.Summary) {
	r.section(StyleCyan, "Files")
	for _, f := range sum.Inputs {
		fmt.Fprintf(r.w, "%s (%s)\n", f.Path, formatKB(f.Bytes))
	}
	for _, path := range sum.HTMLInputs {
		fmt.Fprintf(r.w, "%s %s\n", path, RenderStyle(StyleGray, "(html)", r.useColors))
	}
	if sum.Output.Path != "" {
		fmt.Fprintf(r.w, "→ %s (%s)\n", sum.Output.Path, formatKB(sum.Output.Bytes))
	}
}

// PrintRemoved lists merged rules, collapsed declarations and dropped
// selectors
func (r *VerboseReporter) PrintRemoved(sum *summary.Summary) {
	r.printRecords("Duplicate Rules", sum.DuplicateRules, func(rec summary.Record) string {
		return rec.Selector
	})
	r.printRecords("Duplicate Declarations", sum.DuplicateDeclarations, declarationLine)
	r.printRecords("Empty Declarations", sum.EmptyDeclarations, declarationLine)

	if len(sum.SelectorsRemoved) == 0 {
		return
	}
	r.section(StyleYellow, "Removed Selectors")
	for i, sel := range sum.SelectorsRemoved {
		if i >= maxListed {
			r.more(len(sum.SelectorsRemoved) - maxListed)
			break
		}
		fmt.Fprintf(r.w, "• %s\n", sel)
	}
}

func (r *VerboseReporter) printRecords(title string, records []summary.Record, line func(summary.Record) string) {
	if len(records) == 0 {
		return
	}
	r.section(StyleYellow, title)
	for i, rec := range records {
		if i >= maxListed {
			r.more(len(records) - maxListed)
			break
		}
		text := line(rec)
		if rec.Position != "" {
			text += " " + RenderStyle(StyleGray, "("+rec.Position+")", r.useColors)
		}
		fmt.Fprintf(r.w, "• %s\n", text)
	}
}

func (r *VerboseReporter) section(style lipgloss.Style, title string) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(style, title, r.useColors))
	fmt.Fprintln(r.w, strings.Repeat("-", len(title)+2))
}

func (r *VerboseReporter) more(n int) {
	fmt.Fprintln(r.w, RenderStyle(StyleGray, fmt.Sprintf("... and %d more", n), r.useColors))
}

func declarationLine(rec summary.Record) string {
	return fmt.Sprintf("%s { %s: %s }", rec.Selector, rec.Property, rec.Value)
}
