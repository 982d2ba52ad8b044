// Package report renders optimizer diagnostics and run summaries for the
// terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yacobolo/csspurge/internal/summary"
)

// Reporter handles formatting diagnostics and the run summary
type Reporter struct {
	w          io.Writer
	useColors  bool
	printLines bool
}

// NewReporter creates a reporter. printLines quotes the offending source
// line under each diagnostic.
func NewReporter(w io.Writer, useColors, printLines bool) *Reporter {
	return &Reporter{
		w:          w,
		useColors:  useColors,
		printLines: printLines,
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(explicit bool) bool {
	// Explicit flag wins
	if explicit {
		return true
	}

	// CI systems that render ANSI colors
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintDiagnostic outputs a diagnostic as file:line:col: message
func (r *Reporter) PrintDiagnostic(d *Diagnostic) {
	location := fmt.Sprintf("%s:%d:%d:", d.Pos.Filename, d.Pos.Line, d.Pos.Column)

	fmt.Fprintf(r.w, "%s %s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		RenderStyle(StyleRed, d.Text, r.useColors))

	if r.printLines && len(d.SourceLines) > 0 {
		for _, line := range d.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(d.SourceLines[0], d.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up with the source line.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	prefix := sourceLine[:prefixLen]

	var padding strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs sizes, savings and reduction counts of a run
func (r *Reporter) PrintSummary(sum *summary.Summary) {
	fmt.Fprintln(r.w, "")

	target := sum.Output.Path
	if target == "" {
		target = "stdout"
	}
	fmt.Fprintf(r.w, "Optimized %s into %s\n",
		pluralizeCount(len(sum.Inputs), "file", "files"),
		RenderStyle(StyleCyan, target, r.useColors))

	saved := fmt.Sprintf("saved %.2f KB", sum.SavingsKB())
	fmt.Fprintf(r.w, "Size: %s → %s (%s)\n",
		formatKB(sum.InputBytes()),
		formatKB(sum.Output.Bytes),
		RenderStyle(StyleGreen, saved, r.useColors))
	printProgressBar(r.w, sum.SavingsPercentage())

	counts := Counts(sum.Counters)
	total := 0
	for _, c := range counts {
		total += c.N
	}
	if total == 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Nothing to reduce", r.useColors))
		return
	}

	fmt.Fprintf(r.w, "\n%s:\n", pluralizeCount(total, "reduction", "reductions"))
	for _, ct := range totalsByCategory(counts) {
		fmt.Fprintf(r.w, "* %s: %d\n", ct.Category, ct.N)
	}
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

func formatKB(bytes int) string {
	return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
}

// printProgressBar draws a 20 cell bar for a percentage.
func printProgressBar(w io.Writer, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))
	filled = max(0, min(filled, barWidth))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %.1f%%\n", percentage)
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
