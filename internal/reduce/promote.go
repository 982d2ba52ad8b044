package reduce

import (
	"regexp"

	"github.com/yacobolo/csspurge/internal/cssast"
	"github.com/yacobolo/csspurge/internal/summary"
)

// descendantPattern matches ".parent .child" where both are plain classes.
var descendantPattern = regexp.MustCompile(`^(\.-?[_a-zA-Z][_a-zA-Z0-9-]*)\s+\.-?[_a-zA-Z][_a-zA-Z0-9-]*$`)

// parentSelector returns the parent class of a class-descendant selector.
func parentSelector(selector string) (string, bool) {
	m := descendantPattern.FindStringSubmatch(selector)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// PromoteCommon moves declarations shared by every ".parent .child" rule
// of a parent into a new ".parent" rule placed before the first child. Only
// single-selector rules of exactly that shape take part.
func PromoteCommon(nodes []cssast.Node, sum *summary.Summary) []cssast.Node {
	children := make(map[string][]*cssast.Rule)
	var parents []string
	for _, n := range nodes {
		r, ok := n.(*cssast.Rule)
		if !ok || len(r.Selectors) != 1 {
			continue
		}
		parent, ok := parentSelector(r.Selectors[0])
		if !ok {
			continue
		}
		if _, seen := children[parent]; !seen {
			parents = append(parents, parent)
		}
		children[parent] = append(children[parent], r)
	}

	inserts := make(map[*cssast.Rule]*cssast.Rule)
	for _, parent := range parents {
		family := children[parent]
		if len(family) < 2 {
			continue
		}
		common := commonDeclarations(family)
		if len(common) == 0 {
			continue
		}
		for _, r := range family {
			r.Declarations = without(r.Declarations, common)
			sum.Counters.CommonDeclarationsMoved += len(common)
		}
		promoted := &cssast.Rule{Selectors: []string{parent}, Position: family[0].Position}
		for _, key := range common {
			promoted.Declarations = append(promoted.Declarations, &cssast.Declaration{
				Kind:     cssast.KindProperty,
				Property: key.property,
				Value:    key.value,
			})
		}
		inserts[family[0]] = promoted
	}
	if len(inserts) == 0 {
		return nodes
	}

	out := make([]cssast.Node, 0, len(nodes)+len(inserts))
	for _, n := range nodes {
		if r, ok := n.(*cssast.Rule); ok {
			if promoted, ok := inserts[r]; ok {
				out = append(out, promoted)
			}
			if Empty(r) {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

type declKey struct {
	property string
	value    string
}

// commonDeclarations returns the property and value pairs present in every
// rule, in the order of the first rule.
func commonDeclarations(rules []*cssast.Rule) []declKey {
	var common []declKey
	for _, decl := range rules[0].Declarations {
		if decl.IsComment() {
			continue
		}
		key := declKey{decl.Property, decl.Value}
		shared := true
		for _, r := range rules[1:] {
			if !hasDeclaration(r.Declarations, key) {
				shared = false
				break
			}
		}
		if shared && !hasKey(common, key) {
			common = append(common, key)
		}
	}
	return common
}

func hasDeclaration(decls []*cssast.Declaration, key declKey) bool {
	for _, d := range decls {
		if !d.IsComment() && d.Property == key.property && d.Value == key.value {
			return true
		}
	}
	return false
}

func hasKey(keys []declKey, key declKey) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func without(decls []*cssast.Declaration, keys []declKey) []*cssast.Declaration {
	out := make([]*cssast.Declaration, 0, len(decls))
	for _, d := range decls {
		if !d.IsComment() && hasKey(keys, declKey{d.Property, d.Value}) {
			continue
		}
		out = append(out, d)
	}
	return out
}
