// Package cssast defines the stylesheet tree consumed and mutated by the
// optimizer passes, together with its parser and serializer.
package cssast

import (
	"fmt"
	"strings"
)

// Position locates a node in its source file.
type Position struct {
	Source string // File the node was parsed from, empty for generated nodes
	Line   int    // 1-based
	Column int    // 1-based
}

// String formats the position as file:line:col.
func (p Position) String() string {
	if p.Source == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Source, p.Line, p.Column)
}

// IsZero reports whether the position is unset.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// Node is a member of a rule list.
type Node interface {
	Pos() Position
	node()
}

// Stylesheet is an ordered rule list.
type Stylesheet struct {
	Nodes []Node
}

// Rule is a style rule: selectors and their declaration block.
type Rule struct {
	Selectors    []string
	Declarations []*Declaration
	Position     Position
}

// DeclarationKind distinguishes properties from comments inside a block.
type DeclarationKind int

// Declaration kinds
const (
	KindProperty DeclarationKind = iota
	KindComment
)

// Declaration is one property: value pair, or a comment, in a block.
// Value keeps a trailing !important verbatim; comments keep their text in Value.
type Declaration struct {
	Kind     DeclarationKind
	Property string // Lowercase property name
	Value    string
	Position Position
}

// Comment is a comment at rule-list level. Text excludes the delimiters.
type Comment struct {
	Text     string
	Position Position
}

// GroupingKind identifies the conditional group at-rules.
type GroupingKind string

// Grouping kinds
const (
	GroupMedia    GroupingKind = "media"
	GroupDocument GroupingKind = "document"
	GroupSupports GroupingKind = "supports"
)

// Grouping is an @media, @document or @supports block wrapping nested rules.
type Grouping struct {
	Kind     GroupingKind
	Name     string // At-keyword as written, e.g. "@-moz-document"
	Prelude  string // Condition text, the duplicate-merge key
	Rules    []Node
	Position Position
}

// BlockKind describes what an at-rule block holds.
type BlockKind int

// Block kinds
const (
	BlockNone         BlockKind = iota // Statement at-rule ending with ';'
	BlockDeclarations                  // @page, @font-face
	BlockRules                         // @keyframes
	BlockRaw                           // Unknown at-rule, body kept as text
)

// AtRule is any at-rule that is not a Grouping.
type AtRule struct {
	Name         string // At-keyword as written, e.g. "@-webkit-keyframes"
	Prelude      string
	Block        BlockKind
	Declarations []*Declaration
	Rules        []Node
	Raw          string
	Position     Position
}

func (r *Rule) node() {}
func (c *Comment) node() {}
func (g *Grouping) node() {}
func (a *AtRule) node() {}
func (r *Rule) Pos() Position { return r.Position }
func (c *Comment) Pos() Position { return c.Position }
func (g *Grouping) Pos() Position { return g.Position }
func (a *AtRule) Pos() Position { return a.Position }

// SelectorText joins the selectors the way duplicate detection compares them.
func (r *Rule) SelectorText() string {
	return strings.Join(r.Selectors, ",")
}

// Label is the text recorded when a grouping is reported, e.g. "@media screen".
func (g *Grouping) Label() string {
	return strings.TrimSpace(g.Name + " " + g.Prelude)
}

// Kind returns the at-keyword without '@' and vendor prefix, e.g. "keyframes".
func (a *AtRule) Kind() string {
	return unprefixed(a.Name)
}

// IsComment reports whether the declaration is a comment.
func (d *Declaration) IsComment() bool {
	return d.Kind == KindComment
}

// unprefixed strips '@' and a leading vendor prefix from an at-keyword.
func unprefixed(name string) string {
	name = strings.ToLower(strings.TrimPrefix(name, "@"))
	if strings.HasPrefix(name, "-") {
		if i := strings.Index(name[1:], "-"); i >= 0 {
			return name[i+2:]
		}
	}
	return name
}

// IndexOf returns the index of the last declaration named property, or -1.
func IndexOf(decls []*Declaration, property string) int {
	for i := len(decls) - 1; i >= 0; i-- {
		if !decls[i].IsComment() && decls[i].Property == property {
			return i
		}
	}
	return -1
}

// Contains reports whether any declaration is named property.
func Contains(decls []*Declaration, property string) bool {
	return IndexOf(decls, property) >= 0
}

// ContainsAny reports whether any declaration is named by one of properties.
func ContainsAny(decls []*Declaration, properties ...string) bool {
	for _, p := range properties {
		if Contains(decls, p) {
			return true
		}
	}
	return false
}

// Walk calls fn for every rule list in nodes: the list itself, then the
// nested lists of groupings and block at-rules, depth first.
func Walk(nodes *[]Node, fn func(list *[]Node)) {
	fn(nodes)
	for _, n := range *nodes {
		switch v := n.(type) {
		case *Grouping:
			Walk(&v.Rules, fn)
		case *AtRule:
			if v.Block == BlockRules {
				Walk(&v.Rules, fn)
			}
		}
	}
}

// Rules returns every style rule in nodes, including nested ones.
func Rules(nodes []Node) []*Rule {
	var rules []*Rule
	Walk(&nodes, func(list *[]Node) {
		for _, n := range *list {
			if r, ok := n.(*Rule); ok {
				rules = append(rules, r)
			}
		}
	})
	return rules
}
