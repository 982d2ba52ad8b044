// Package reduce removes redundant nodes from a stylesheet: duplicate rules
// and declarations, empty blocks, unused selectors, and declarations that a
// class-descendant family shares with its parent.
package reduce

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/yacobolo/csspurge/internal/cssast"
	"github.com/yacobolo/csspurge/internal/cssvalue"
	"github.com/yacobolo/csspurge/internal/options"
	"github.com/yacobolo/csspurge/internal/summary"
	"go.uber.org/zap"
)

// Deduper merges duplicate rules and collapses duplicate declarations.
type Deduper struct {
	opts options.Options
	sum  *summary.Summary
	log  *zap.Logger
}

// NewDeduper creates a Deduper. A nil logger discards output.
func NewDeduper(opts options.Options, sum *summary.Summary, log *zap.Logger) *Deduper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Deduper{opts: opts, sum: sum, log: log.Named("dedupe")}
}

// List de-duplicates one rule list and, recursively, the lists nested in
// groupings that are not bypassed. Each scope is handled on its own.
func (d *Deduper) List(nodes []cssast.Node) []cssast.Node {
	nodes = d.mergeDuplicates(nodes)

	for _, n := range nodes {
		switch v := n.(type) {
		case *cssast.Rule:
			v.Declarations = d.Declarations(v.SelectorText(), v.Declarations)
		case *cssast.Grouping:
			if !d.bypassed(v.Kind) {
				v.Rules = d.List(v.Rules)
			}
		case *cssast.AtRule:
			switch {
			case v.Block == cssast.BlockRules:
				v.Rules = d.List(v.Rules)
			case v.Block == cssast.BlockDeclarations && v.Kind() == "page":
				if !d.opts.BypassPageRules {
					v.Declarations = d.Declarations(v.Name, v.Declarations)
				}
			case v.Block == cssast.BlockDeclarations:
				v.Declarations = d.dropEmpty(v.Name, v.Declarations)
			}
		}
	}
	return d.prune(nodes)
}

func (d *Deduper) bypassed(kind cssast.GroupingKind) bool {
	switch kind {
	case cssast.GroupMedia:
		return d.opts.BypassMediaRules
	case cssast.GroupDocument:
		return d.opts.BypassDocumentRules
	case cssast.GroupSupports:
		return d.opts.BypassSupportsRules
	}
	return false
}

func (d *Deduper) trimComments() bool {
	return d.opts.TrimEnabled(d.opts.TrimComments)
}

func (d *Deduper) dropNode(out []cssast.Node) []cssast.Node {
	return dropPreviousComment(out, d.opts, d.sum)
}

// dropPreviousComment is called for a node left out of out. It removes the
// comment immediately before that node when configured to.
func dropPreviousComment(out []cssast.Node, opts options.Options, sum *summary.Summary) []cssast.Node {
	if !opts.TrimRemovedRulesPreviousComment || len(out) == 0 {
		return out
	}
	if _, ok := out[len(out)-1].(*cssast.Comment); ok {
		sum.Counters.CommentsRemoved++
		return out[:len(out)-1]
	}
	return out
}

// mergeDuplicates folds every rule with an already seen selector text, and
// every grouping with an already seen kind and prelude, into the first one.
func (d *Deduper) mergeDuplicates(nodes []cssast.Node) []cssast.Node {
	rules := make(map[string]*cssast.Rule)
	groups := make(map[string]*cssast.Grouping)
	out := make([]cssast.Node, 0, len(nodes))

	for _, n := range nodes {
		switch v := n.(type) {
		case *cssast.Comment:
			if d.trimComments() {
				d.sum.Counters.CommentsRemoved++
				continue
			}
		case *cssast.Rule:
			key := v.SelectorText()
			if first, ok := rules[key]; ok {
				first.Declarations = append(first.Declarations, v.Declarations...)
				d.sum.AddDuplicateRule(key, v.Position)
				d.log.Debug("duplicate rule merged", zap.String("selector", key), zap.Stringer("position", v.Position))
				out = d.dropNode(out)
				continue
			}
			rules[key] = v
		case *cssast.Grouping:
			if d.bypassed(v.Kind) {
				break
			}
			key := string(v.Kind) + "\x00" + v.Prelude
			if first, ok := groups[key]; ok {
				first.Rules = append(first.Rules, v.Rules...)
				d.sum.AddDuplicateRule(v.Label(), v.Position)
				d.log.Debug("duplicate grouping merged", zap.String("label", v.Label()), zap.Stringer("position", v.Position))
				out = d.dropNode(out)
				continue
			}
			groups[key] = v
		}
		out = append(out, n)
	}
	return out
}

// Declarations removes empty and duplicate declarations from one block.
// Properties configured for by-name reduction keep a single declaration;
// every other property only loses exact property and value repeats.
func (d *Deduper) Declarations(selector string, decls []*cssast.Declaration) []*cssast.Declaration {
	decls = d.dropEmpty(selector, decls)

	// Exact repeats: the last occurrence keeps its cascade position.
	seen := make(map[uint64]bool)
	drop := make([]bool, len(decls))
	for i := len(decls) - 1; i >= 0; i-- {
		decl := decls[i]
		if decl.IsComment() || d.opts.ReduceByName(selector, decl.Property) {
			continue
		}
		h := xxhash.Sum64String(decl.Property + "\x00" + decl.Value)
		if seen[h] {
			drop[i] = true
			continue
		}
		seen[h] = true
	}

	// By name: !important beats a later plain declaration, otherwise the
	// later one wins.
	winner := make(map[string]int)
	for i, decl := range decls {
		if drop[i] || decl.IsComment() || !d.opts.ReduceByName(selector, decl.Property) {
			continue
		}
		prev, ok := winner[decl.Property]
		if !ok {
			winner[decl.Property] = i
			continue
		}
		if cssvalue.IsImportant(decls[prev].Value) && !cssvalue.IsImportant(decl.Value) {
			drop[i] = true
			continue
		}
		drop[prev] = true
		winner[decl.Property] = i
	}

	out := make([]*cssast.Declaration, 0, len(decls))
	for i, decl := range decls {
		if drop[i] {
			d.sum.AddDuplicateDeclaration(selector, decl)
			continue
		}
		out = append(out, decl)
	}
	return out
}

// dropEmpty removes declarations without a value and, when comments are
// trimmed, comment entries.
func (d *Deduper) dropEmpty(selector string, decls []*cssast.Declaration) []*cssast.Declaration {
	out := make([]*cssast.Declaration, 0, len(decls))
	for _, decl := range decls {
		switch {
		case decl.IsComment():
			if d.trimComments() {
				d.sum.Counters.CommentsRemoved++
				continue
			}
		case strings.TrimSpace(decl.Value) == "":
			d.sum.AddEmptyDeclaration(selector, decl)
			continue
		}
		out = append(out, decl)
	}
	return out
}

// prune removes rules without declarations, groupings without rules and
// keyframes without frames.
func (d *Deduper) prune(nodes []cssast.Node) []cssast.Node {
	out := make([]cssast.Node, 0, len(nodes))
	for _, n := range nodes {
		if Empty(n) {
			d.log.Debug("empty node pruned", zap.Stringer("position", n.Pos()))
			out = d.dropNode(out)
			continue
		}
		out = append(out, n)
	}
	return out
}

// Empty reports whether n has nothing left to apply.
func Empty(n cssast.Node) bool {
	switch v := n.(type) {
	case *cssast.Rule:
		for _, decl := range v.Declarations {
			if !decl.IsComment() {
				return false
			}
		}
		return true
	case *cssast.Grouping:
		return len(v.Rules) == 0
	case *cssast.AtRule:
		return v.Block == cssast.BlockRules && v.Kind() == "keyframes" && len(v.Rules) == 0
	}
	return false
}
