package cssast

import (
	"fmt"
	"strings"

	tp "github.com/xlab/treeprint"
)

// Dump renders the tree structure of sheet for debugging.
func Dump(sheet *Stylesheet) string {
	p := tp.New()
	dumpNodes(p, sheet.Nodes)
	return p.String()
}

func dumpNodes(p tp.Tree, nodes []Node) {
	for _, n := range nodes {
		switch v := n.(type) {
		case *Rule:
			branch := p.AddBranch(fmt.Sprintf("rule %s (%s)", strings.Join(v.Selectors, ", "), v.Position))
			dumpDeclarations(branch, v.Declarations)
		case *Comment:
			p.AddNode(fmt.Sprintf("comment %q", strings.TrimSpace(v.Text)))
		case *Grouping:
			branch := p.AddBranch(fmt.Sprintf("%s %s", v.Kind, v.Prelude))
			dumpNodes(branch, v.Rules)
		case *AtRule:
			label := strings.TrimSpace(v.Name + " " + v.Prelude)
			switch v.Block {
			case BlockDeclarations:
				dumpDeclarations(p.AddBranch(label), v.Declarations)
			case BlockRules:
				dumpNodes(p.AddBranch(label), v.Rules)
			default:
				p.AddNode(label)
			}
		}
	}
}

func dumpDeclarations(p tp.Tree, decls []*Declaration) {
	for _, d := range decls {
		if d.IsComment() {
			p.AddNode(fmt.Sprintf("comment %q", strings.TrimSpace(d.Value)))
			continue
		}
		p.AddNode(d.Property + ": " + d.Value)
	}
}
