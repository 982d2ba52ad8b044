package cssast

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// ParseError is a fatal syntax error with its source location.
type ParseError struct {
	Position Position
	Message  string
	Line     string // Offending source line
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// Parser builds stylesheet trees from CSS source.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a parser. A nil logger discards output.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("parser")}
}

// frame is an open at-rule block.
type frame struct {
	parent   *[]Node
	index    int // Position of the block node in parent
	group    *Grouping
	at       *AtRule
	rawStart int
}

// nodes returns the rule list rulesets are appended to inside the frame.
func (f *frame) nodes() *[]Node {
	if f.group != nil {
		return &f.group.Rules
	}
	f.at.Block = BlockRules
	return &f.at.Rules
}

type parseState struct {
	src     []byte
	source  string
	lines   lineIndex
	input   *parse.Input
	sheet   *Stylesheet
	frames  []*frame
	rule    *Rule // Open ruleset
	pending []string
	pendPos Position
}

// Parse parses src; source names the file in positions and errors.
func (p *Parser) Parse(src []byte, source string) (*Stylesheet, error) {
	s := &parseState{
		src:    src,
		source: source,
		lines:  newLineIndex(src),
		input:  parse.NewInputBytes(src),
		sheet:  &Stylesheet{},
	}
	parser := css.NewParser(s.input, false)

	p.log.Debug("parsing stylesheet", zap.String("source", source), zap.Int("bytes", len(src)))

	for {
		offset := s.input.Offset()
		start := skipBlank(src, offset, true)
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			err := parser.Err()
			if err == nil || errors.Is(err, io.EOF) {
				if len(s.frames) > 0 || s.rule != nil {
					return nil, s.errorAt(len(src), "unexpected end of input, missing '}'")
				}
				if len(s.pending) > 0 {
					return nil, s.errorAt(len(src), "unexpected end of input, missing '{'")
				}
				p.log.Debug("parsed stylesheet", zap.String("source", source), zap.Int("nodes", len(s.sheet.Nodes)))
				return s.sheet, nil
			}
			return nil, s.errorAt(start, err.Error())

		case css.CommentGrammar:
			text := strings.TrimSuffix(strings.TrimPrefix(string(data), "/*"), "*/")
			s.appendNode(&Comment{Text: text, Position: s.pos(skipBlank(src, offset, false))})

		case css.AtRuleGrammar:
			s.appendNode(&AtRule{
				Name:     strings.ToLower(string(data)),
				Prelude:  joinTokens(parser.Values()),
				Block:    BlockNone,
				Position: s.pos(start),
			})

		case css.BeginAtRuleGrammar:
			s.beginAtRule(strings.ToLower(string(data)), joinTokens(parser.Values()), s.pos(start))

		case css.EndAtRuleGrammar:
			if len(s.frames) == 0 {
				return nil, s.errorAt(start, "unexpected '}'")
			}
			f := s.frames[len(s.frames)-1]
			if f.at != nil && f.at.Block == BlockRaw {
				end := s.input.Offset()
				if end > f.rawStart && end <= len(src) {
					f.at.Raw = strings.TrimSpace(strings.TrimSuffix(string(src[f.rawStart:end]), "}"))
				}
			}
			s.frames = s.frames[:len(s.frames)-1]

		case css.TokenGrammar:
			s.rawBlock()

		case css.QualifiedRuleGrammar:
			s.addSelector(data, parser.Values(), start)

		case css.BeginRulesetGrammar:
			s.addSelector(data, parser.Values(), start)
			s.rule = &Rule{Selectors: s.pending, Position: s.pendPos}
			s.pending = nil
			s.appendNode(s.rule)

		case css.EndRulesetGrammar:
			s.rule = nil

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			decl := &Declaration{
				Kind:     KindProperty,
				Property: strings.ToLower(string(data)),
				Value:    joinTokens(parser.Values()),
				Position: s.pos(start),
			}
			if !s.appendDeclaration(decl) {
				return nil, s.errorAt(start, fmt.Sprintf("declaration %q outside of a block", decl.Property))
			}
		}
	}
}

func (s *parseState) beginAtRule(name, prelude string, pos Position) {
	parent := s.currentList()
	f := &frame{parent: parent, index: len(*parent)}

	switch GroupingKind(unprefixed(name)) {
	case GroupMedia, GroupDocument, GroupSupports:
		f.group = &Grouping{
			Kind:     GroupingKind(unprefixed(name)),
			Name:     name,
			Prelude:  prelude,
			Position: pos,
		}
		*parent = append(*parent, f.group)
	default:
		f.at = &AtRule{Name: name, Prelude: prelude, Position: pos}
		switch unprefixed(name) {
		case "page", "font-face":
			f.at.Block = BlockDeclarations
		case "keyframes":
			f.at.Block = BlockRules
		default:
			f.at.Block = BlockRaw
		}
		*parent = append(*parent, f.at)
	}
	f.rawStart = s.input.Offset()
	s.frames = append(s.frames, f)
}

// rawBlock switches the innermost frame to verbatim body capture; the
// underlying parser streams plain tokens for at-rules it does not know.
func (s *parseState) rawBlock() {
	if len(s.frames) == 0 {
		return
	}
	f := s.frames[len(s.frames)-1]
	if f.group != nil {
		f.at = &AtRule{Name: f.group.Name, Prelude: f.group.Prelude, Position: f.group.Position}
		(*f.parent)[f.index] = f.at
		f.group = nil
	}
	f.at.Block = BlockRaw
}

func (s *parseState) addSelector(data []byte, values []css.Token, start int) {
	if len(s.pending) == 0 {
		s.pendPos = s.pos(start)
	}
	sel := strings.TrimSpace(string(data) + joinTokens(values))
	if sel != "" {
		s.pending = append(s.pending, sel)
	}
}

func (s *parseState) currentList() *[]Node {
	if len(s.frames) == 0 {
		return &s.sheet.Nodes
	}
	return s.frames[len(s.frames)-1].nodes()
}

func (s *parseState) appendNode(n Node) {
	list := s.currentList()
	*list = append(*list, n)
}

func (s *parseState) appendDeclaration(d *Declaration) bool {
	if s.rule != nil {
		s.rule.Declarations = append(s.rule.Declarations, d)
		return true
	}
	if len(s.frames) > 0 {
		if at := s.frames[len(s.frames)-1].at; at != nil {
			at.Block = BlockDeclarations
			at.Declarations = append(at.Declarations, d)
			return true
		}
	}
	return false
}

func (s *parseState) pos(offset int) Position {
	line, col := s.lines.lineCol(offset)
	return Position{Source: s.source, Line: line, Column: col}
}

func (s *parseState) errorAt(offset int, msg string) *ParseError {
	if offset > len(s.src) {
		offset = len(s.src)
	}
	pos := s.pos(offset)
	return &ParseError{Position: pos, Message: msg, Line: s.lines.text(s.src, pos.Line)}
}

// joinTokens rebuilds text from parser tokens, collapsing whitespace runs.
func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	space := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// skipBlank advances offset past whitespace, and past comments when
// comments is set.
func skipBlank(src []byte, offset int, comments bool) int {
	for offset < len(src) {
		switch {
		case src[offset] == ' ' || src[offset] == '\t' || src[offset] == '\n' || src[offset] == '\r' || src[offset] == '\f':
			offset++
		case comments && offset+1 < len(src) && src[offset] == '/' && src[offset+1] == '*':
			end := bytes.Index(src[offset+2:], []byte("*/"))
			if end < 0 {
				return len(src)
			}
			offset += end + 4
		default:
			return offset
		}
	}
	return offset
}

// lineIndex holds the byte offset of every line start.
type lineIndex []int

func newLineIndex(src []byte) lineIndex {
	idx := lineIndex{0}
	for i, c := range src {
		if c == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

// lineCol converts a byte offset to a 1-based line and column.
func (li lineIndex) lineCol(offset int) (int, int) {
	line := sort.SearchInts(li, offset+1) - 1
	if line < 0 {
		line = 0
	}
	return line + 1, offset - li[line] + 1
}

// text returns the content of a 1-based line.
func (li lineIndex) text(src []byte, line int) string {
	if line < 1 || line > len(li) {
		return ""
	}
	start := li[line-1]
	end := len(src)
	if line < len(li) {
		end = li[line] - 1
	}
	if start > end {
		return ""
	}
	return strings.TrimRight(string(src[start:end]), "\r")
}
