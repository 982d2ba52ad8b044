package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yacobolo/csspurge/internal/cssast"
	"github.com/yacobolo/csspurge/internal/shorthand"
)

// Diagnostic is a fatal problem located in an input stylesheet.
type Diagnostic struct {
	Text        string   `json:"text"`
	SourceLines []string `json:"source_lines,omitempty"`
	Pos         Pos      `json:"pos"`
	Err         error    `json:"-"`
}

// Pos specifies where a diagnostic was raised.
type Pos struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"` // 1-based
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.Pos.Filename, d.Pos.Line, d.Pos.Column, d.Text)
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// FromError builds a diagnostic from a parse or shorthand decomposition
// error. source returns the content of an input file so the offending line
// can be quoted; it may be nil.
func FromError(err error, source func(filename string) []byte) (*Diagnostic, bool) {
	var perr *cssast.ParseError
	if errors.As(err, &perr) {
		d := &Diagnostic{Text: perr.Message, Pos: posOf(perr.Position), Err: err}
		if perr.Line != "" {
			d.SourceLines = []string{perr.Line}
		}
		return d, true
	}

	var derr *shorthand.DecompositionError
	if errors.As(err, &derr) {
		d := &Diagnostic{
			Text: fmt.Sprintf("%s shorthand %q in %q: %v", derr.Property, derr.Value, derr.Selector, derr.Err),
			Pos:  posOf(derr.Position),
			Err:  err,
		}
		if source != nil {
			if line, ok := lineAt(source(derr.Position.Source), derr.Position.Line); ok {
				d.SourceLines = []string{line}
			}
		}
		return d, true
	}
	return nil, false
}

func posOf(p cssast.Position) Pos {
	return Pos{Filename: p.Source, Line: p.Line, Column: p.Column}
}

// lineAt returns the 1-based line of src.
func lineAt(src []byte, line int) (string, bool) {
	if len(src) == 0 || line < 1 {
		return "", false
	}
	lines := strings.Split(string(src), "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}
