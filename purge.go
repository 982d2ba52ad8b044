package csspurge

import (
	"errors"
	"fmt"
	"os"

	"github.com/yacobolo/csspurge/internal/cssast"
	"github.com/yacobolo/csspurge/internal/pipeline"
	"github.com/yacobolo/csspurge/internal/reduce"
	"github.com/yacobolo/csspurge/internal/summary"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrNoInput is returned when the CSS patterns match no file.
var ErrNoInput = errors.New("no input stylesheets")

// Config describes one optimizer run
type Config struct {
	CSS     []string    // Glob patterns of input stylesheets (supports **)
	HTML    []string    // Glob patterns of HTML documents checked for unused selectors
	Output  string      // Output file; empty keeps the result in Result.CSS only
	Options Options     // Reductions and serialization
	Logger  *zap.Logger // Nil discards logs
}

// Result is the outcome of a run
type Result struct {
	CSS     string    // Optimized stylesheet
	Summary *Summary  // Reductions and sizes
	Stats   ScanStats // Input discovery statistics
}

// Purge is the main entry point: it reads every matched stylesheet,
// optimizes their concatenation and writes the output and the optional
// JSON report.
func Purge(config Config) (*Result, error) {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("purge")
	opts := config.Options
	sum := summary.New()

	// 1. Find inputs
	files, stats, err := expandGlobPatternsWithStats(config.CSS, config.Output)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	if len(files) == 0 {
		return nil, ErrNoInput
	}
	log.Debug("inputs found",
		zap.Int("files", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped))

	// 2. Read and parse, keeping sources for diagnostics
	sources := make(map[string][]byte, len(files))
	sheet := &cssast.Stylesheet{}
	parser := cssast.NewParser(log)
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		sources[file] = src
		sum.AddInput(file, len(src))

		parsed, err := parser.Parse(src, file)
		if err != nil {
			return nil, newIssue(err, sources)
		}
		sheet.Nodes = append(sheet.Nodes, parsed.Nodes...)
	}

	// 3. Load HTML documents when unused selectors are removed
	var matcher reduce.SelectorMatcher
	if opts.SpecialReduceWithHTML && len(config.HTML) > 0 {
		htmlFiles, _, err := expandGlobPatternsWithStats(config.HTML, "")
		if err != nil {
			return nil, fmt.Errorf("scan html failed: %w", err)
		}
		m, err := loadHTML(htmlFiles, log)
		if err != nil {
			return nil, err
		}
		sum.HTMLInputs = htmlFiles
		matcher = m
	}

	// 4. Optimize
	if err := pipeline.New(opts, matcher, log).Run(sheet, sum); err != nil {
		return nil, newIssue(err, sources)
	}
	out := cssast.String(sheet, pipeline.PrintOptions(opts))
	sum.Output = summary.FileStat{Path: config.Output, Bytes: len(out)}

	result := &Result{CSS: out, Summary: sum, Stats: stats}

	// 5. Write output and report
	if config.Output != "" {
		if err := writeFile(config.Output, out); err != nil {
			return nil, fmt.Errorf("write failed: %w", err)
		}
	}
	if opts.GenerateReport {
		if err := WriteReportFile(opts.ReportFileLocation, result, opts); err != nil {
			return nil, fmt.Errorf("report failed: %w", err)
		}
	}

	log.Info("stylesheet optimized",
		zap.Int("files", len(files)),
		zap.Int("bytes_before", sum.InputBytes()),
		zap.Int("bytes_after", sum.Output.Bytes),
		zap.Float64("savings_percentage", sum.SavingsPercentage()))

	return result, nil
}

// Optimize runs the optimizer over a single in-memory stylesheet. Unused
// selector removal is skipped since no HTML is given.
func Optimize(src []byte, source string, opts Options) (string, *Summary, error) {
	sum := summary.New()
	sum.AddInput(source, len(src))

	out, err := pipeline.New(opts, nil, nil).Process(src, source, sum)
	if err != nil {
		return "", nil, newIssue(err, map[string][]byte{source: src})
	}
	sum.Output = summary.FileStat{Bytes: len(out)}
	return out, sum, nil
}

// writeFile creates path and writes content, reporting close errors.
func writeFile(path, content string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	_, err = f.WriteString(content)
	return err
}
