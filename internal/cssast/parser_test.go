package cssast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Stylesheet {
	t.Helper()
	sheet, err := NewParser(nil).Parse([]byte(src), "test.css")
	require.NoError(t, err)
	return sheet
}

func TestParse_Rule(t *testing.T) {
	sheet := mustParse(t, ".a, .b { color: red; margin: 0 auto !important }")

	require.Len(t, sheet.Nodes, 1)
	rule, ok := sheet.Nodes[0].(*Rule)
	require.True(t, ok)

	assert.Equal(t, []string{".a", ".b"}, rule.Selectors)
	require.Len(t, rule.Declarations, 2)
	assert.Equal(t, "color", rule.Declarations[0].Property)
	assert.Equal(t, "red", rule.Declarations[0].Value)
	assert.Equal(t, "margin", rule.Declarations[1].Property)
	assert.Equal(t, "0 auto !important", rule.Declarations[1].Value)
}

func TestParse_PropertyNamesLowercased(t *testing.T) {
	sheet := mustParse(t, ".a{COLOR:red}")
	rule := sheet.Nodes[0].(*Rule)
	assert.Equal(t, "color", rule.Declarations[0].Property)
}

func TestParse_Grouping(t *testing.T) {
	sheet := mustParse(t, "@media screen { .a { color: red } .b { color: blue } }")

	require.Len(t, sheet.Nodes, 1)
	group, ok := sheet.Nodes[0].(*Grouping)
	require.True(t, ok)

	assert.Equal(t, GroupMedia, group.Kind)
	assert.Equal(t, "@media", group.Name)
	assert.Equal(t, "screen", group.Prelude)
	assert.Equal(t, "@media screen", group.Label())
	require.Len(t, group.Rules, 2)
	assert.Equal(t, []string{".b"}, group.Rules[1].(*Rule).Selectors)
}

func TestRules(t *testing.T) {
	sheet := mustParse(t, ".a{top:0}@media print{.b{top:0}}@keyframes k{from{top:0}}/* x */.c{top:0}")

	var selectors []string
	for _, r := range Rules(sheet.Nodes) {
		selectors = append(selectors, r.SelectorText())
	}
	assert.Equal(t, []string{".a", ".c", ".b", "from"}, selectors)
}

func TestParse_AtRules(t *testing.T) {
	src := `@charset "UTF-8";
@font-face { font-family: Foo; src: url(foo.woff) }
@keyframes spin { from { opacity: 0 } to { opacity: 1 } }`
	sheet := mustParse(t, src)

	require.Len(t, sheet.Nodes, 3)

	charset := sheet.Nodes[0].(*AtRule)
	assert.Equal(t, "charset", charset.Kind())
	assert.Equal(t, BlockNone, charset.Block)
	assert.Equal(t, `"UTF-8"`, charset.Prelude)

	fontFace := sheet.Nodes[1].(*AtRule)
	assert.Equal(t, BlockDeclarations, fontFace.Block)
	require.Len(t, fontFace.Declarations, 2)
	assert.Equal(t, "font-family", fontFace.Declarations[0].Property)

	keyframes := sheet.Nodes[2].(*AtRule)
	assert.Equal(t, "keyframes", keyframes.Kind())
	assert.Equal(t, "spin", keyframes.Prelude)
	require.Len(t, keyframes.Rules, 2)
	assert.Equal(t, []string{"from"}, keyframes.Rules[0].(*Rule).Selectors)
}

func TestParse_TopLevelComment(t *testing.T) {
	sheet := mustParse(t, "/* header */\n.a{color:red}")

	require.Len(t, sheet.Nodes, 2)
	comment, ok := sheet.Nodes[0].(*Comment)
	require.True(t, ok)
	assert.Equal(t, " header ", comment.Text)
	assert.Equal(t, 1, comment.Position.Line)
}

func TestParse_Positions(t *testing.T) {
	sheet := mustParse(t, ".a { color: red }\n.b {\n  font: bold;\n}")

	require.Len(t, sheet.Nodes, 2)
	first := sheet.Nodes[0].(*Rule)
	second := sheet.Nodes[1].(*Rule)

	assert.Equal(t, Position{Source: "test.css", Line: 1, Column: 1}, first.Position)
	assert.Equal(t, 2, second.Position.Line)
	assert.Equal(t, 1, second.Position.Column)
	assert.Equal(t, 3, second.Declarations[0].Position.Line)
	assert.Equal(t, 3, second.Declarations[0].Position.Column)
}

func TestLineIndex(t *testing.T) {
	src := []byte("ab\ncde\n\nf")
	li := newLineIndex(src)

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{5, 2, 3},
		{7, 3, 1},
		{8, 4, 1},
	}
	for _, tt := range tests {
		line, col := li.lineCol(tt.offset)
		assert.Equal(t, tt.wantLine, line, "offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "offset %d", tt.offset)
	}

	assert.Equal(t, "cde", li.text(src, 2))
	assert.Equal(t, "", li.text(src, 3))
	assert.Equal(t, "f", li.text(src, 4))
}

func TestParseError_Format(t *testing.T) {
	err := &ParseError{
		Position: Position{Source: "site.css", Line: 4, Column: 7},
		Message:  "unexpected '}'",
	}
	assert.Equal(t, "site.css:4:7: unexpected '}'", err.Error())
}

func TestSkipBlank(t *testing.T) {
	src := []byte("  /* c */ .a")
	assert.Equal(t, 10, skipBlank(src, 0, true))
	assert.Equal(t, 2, skipBlank(src, 0, false))
}
