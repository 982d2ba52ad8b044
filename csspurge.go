// Package csspurge reduces CSS stylesheets: it merges duplicate rules and
// declarations, synthesizes shorthand properties, shortens zero values and
// colors, and optionally drops selectors unused by a set of HTML documents.
//
// # Optimizing files
//
//	result, err := csspurge.Purge(csspurge.Config{
//		CSS:     []string{"web/styles/**/*.css"},
//		Output:  "dist/site.css",
//		Options: csspurge.DefaultOptions(),
//	})
//
// # Optimizing a string
//
//	out, sum, err := csspurge.Optimize([]byte(src), "inline.css", csspurge.DefaultOptions())
//
// # Unused selectors
//
// With Options.SpecialReduceWithHTML set and Config.HTML naming documents,
// rules whose selectors match nothing in those documents are removed.
//
// # CLI Tool
//
// csspurge also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/csspurge/cmd/csspurge@latest
package csspurge

import (
	"github.com/yacobolo/csspurge/internal/options"
	"github.com/yacobolo/csspurge/internal/summary"
)

// Options controls which reductions run and how output is serialized.
type Options = options.Options

// Summary records every reduction of a run.
type Summary = summary.Summary

// DefaultOptions returns the options used when no configuration is given.
func DefaultOptions() Options {
	return options.Defaults()
}
