package csspurge

import (
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/yacobolo/csspurge/internal/summary"
	"go.uber.org/multierr"
)

// JSONReport is the schema of the run report
type JSONReport struct {
	Version               string           `json:"version"`
	Timestamp             string           `json:"timestamp"`
	Files                 JSONFiles        `json:"files"`
	OptionsUsed           Options          `json:"options_used"`
	Stats                 JSONStats        `json:"stats"`
	DuplicateRules        []summary.Record `json:"duplicate_rules"`
	DuplicateDeclarations []summary.Record `json:"duplicate_declarations"`
	EmptyDeclarations     []summary.Record `json:"empty_declarations"`
	SelectorsRemoved      []string         `json:"selectors_removed"`
}

// JSONFiles lists the files a run read and wrote
type JSONFiles struct {
	CSS    []string `json:"css"`
	HTML   []string `json:"html"`
	Output string   `json:"output,omitempty"`
}

// JSONStats holds sizes before and after the run and the reduction counts
type JSONStats struct {
	Before  JSONSize    `json:"before"`
	After   JSONSize    `json:"after"`
	Summary JSONSummary `json:"summary"`
}

// JSONSize is the size of a set of files
type JSONSize struct {
	TotalFileSizeKB float64            `json:"totalFileSizeKB"`
	Files           []summary.FileStat `json:"files"`
}

// JSONSummary holds the reduction counters and savings
type JSONSummary struct {
	summary.Counters
	SavingsKB         float64 `json:"savingsKB"`
	SavingsPercentage float64 `json:"savingsPercentage"`
}

// WriteJSON writes the run report as indented JSON
func WriteJSON(w io.Writer, result *Result, opts Options) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONReport(result, opts))
}

// WriteReportFile writes the JSON report to path
func WriteReportFile(path string, result *Result, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return WriteJSON(f, result, opts)
}

// buildJSONReport converts a Result to JSONReport
func buildJSONReport(result *Result, opts Options) JSONReport {
	sum := result.Summary

	css := make([]string, len(sum.Inputs))
	for i, f := range sum.Inputs {
		css[i] = f.Path
	}

	var after []summary.FileStat
	if sum.Output.Path != "" {
		after = []summary.FileStat{sum.Output}
	}

	return JSONReport{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Files: JSONFiles{
			CSS:    css,
			HTML:   orEmpty(sum.HTMLInputs),
			Output: sum.Output.Path,
		},
		OptionsUsed: opts,
		Stats: JSONStats{
			Before: JSONSize{
				TotalFileSizeKB: kb(sum.InputBytes()),
				Files:           orEmpty(sum.Inputs),
			},
			After: JSONSize{
				TotalFileSizeKB: kb(sum.Output.Bytes),
				Files:           orEmpty(after),
			},
			Summary: JSONSummary{
				Counters:          sum.Counters,
				SavingsKB:         sum.SavingsKB(),
				SavingsPercentage: sum.SavingsPercentage(),
			},
		},
		DuplicateRules:        orEmpty(sum.DuplicateRules),
		DuplicateDeclarations: orEmpty(sum.DuplicateDeclarations),
		EmptyDeclarations:     orEmpty(sum.EmptyDeclarations),
		SelectorsRemoved:      orEmpty(sum.SelectorsRemoved),
	}
}

// orEmpty keeps empty lists as [] in the report.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func kb(bytes int) float64 {
	return float64(int64(float64(bytes)/1024*100+0.5)) / 100
}
