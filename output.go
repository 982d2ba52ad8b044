package csspurge

import (
	"io"

	"github.com/yacobolo/csspurge/internal/report"
)

// OutputFormat selects how a run is reported on the terminal
type OutputFormat string

const (
	OutputSummary OutputFormat = "summary" // Sizes and reduction totals
	OutputFull    OutputFormat = "full"    // Summary plus every counter and removed item
	OutputJSON    OutputFormat = "json"    // JSON report
	OutputNone    OutputFormat = "none"    // Nothing, exit code only
)

// DetermineOutputFormat selects the output format based on flags
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit --quiet flag wins
	if quiet {
		return OutputNone
	}

	switch formatFlag {
	case "summary":
		return OutputSummary
	case "full", "verbose":
		return OutputFull
	case "json":
		return OutputJSON
	case "none":
		return OutputNone
	default:
		return OutputSummary
	}
}

// WriteOutput writes the run result in the specified format
func WriteOutput(w io.Writer, result *Result, format OutputFormat, opts Options, useColors bool) error {
	switch format {
	case OutputSummary:
		report.NewReporter(w, useColors, false).PrintSummary(result.Summary)

	case OutputFull:
		reporter := report.NewReporter(w, useColors, false)
		reporter.PrintSummary(result.Summary)

		verbose := report.NewVerboseReporter(w, reporter.UseColors())
		verbose.PrintFiles(result.Summary)
		verbose.PrintStatistics(result.Summary)
		verbose.PrintRemoved(result.Summary)

	case OutputJSON:
		return WriteJSON(w, result, opts)
	}
	return nil
}

// PrintIssue writes a fatal diagnostic with its source line and caret
func PrintIssue(w io.Writer, issue *Issue, useColors bool) {
	report.NewReporter(w, useColors, true).PrintDiagnostic(issue)
}
