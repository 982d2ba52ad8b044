package csspurge

import (
	"github.com/yacobolo/csspurge/internal/report"
)

// Issue is a fatal diagnostic located in an input stylesheet: a syntax
// error or a font shorthand missing its size or family. Detect it with
// errors.As; Unwrap yields the underlying parse or decomposition error.
type Issue = report.Diagnostic

// IssuePos specifies the exact location of an issue
type IssuePos = report.Pos

// newIssue converts located errors into an Issue quoting the offending
// source line. Other errors are returned unchanged.
func newIssue(err error, sources map[string][]byte) error {
	d, ok := report.FromError(err, func(filename string) []byte {
		return sources[filename]
	})
	if !ok {
		return err
	}
	return d
}
