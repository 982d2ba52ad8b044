// Package main provides the csspurge CLI tool for optimizing stylesheets.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yacobolo/csspurge"
	"github.com/yacobolo/csspurge/internal/report"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes located errors with their source line and caret, and
// anything else as a plain message.
func printError(w io.Writer, err error) {
	useColors := report.ShouldUseColors(k.Bool("color"))

	var issue *csspurge.Issue
	if errors.As(err, &issue) {
		csspurge.PrintIssue(w, issue, useColors)
		return
	}
	if d, ok := report.FromError(err, nil); ok {
		csspurge.PrintIssue(w, d, useColors)
		return
	}
	if errors.Is(err, csspurge.ErrNoInput) {
		fmt.Fprintln(w, "Error: no input stylesheets (set --css or css: in "+defaultConfigFile+")")
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
