package reduce

import (
	"strings"

	"github.com/yacobolo/csspurge/internal/cssast"
	"github.com/yacobolo/csspurge/internal/options"
	"github.com/yacobolo/csspurge/internal/summary"
)

// SelectorMatcher reports which of the given selectors are referenced by
// the documents it was built from.
type SelectorMatcher interface {
	Used(selectors []string) (map[string]bool, error)
}

// Selectors returns the distinct selectors of every style rule in nodes and
// in nested groupings, leaving out those matching an ignore pattern.
func Selectors(nodes []cssast.Node, opts options.Options) []string {
	var out []string
	seen := make(map[string]bool)
	eachStyleList(nodes, func(list []cssast.Node) {
		for _, n := range list {
			r, ok := n.(*cssast.Rule)
			if !ok {
				continue
			}
			for _, s := range r.Selectors {
				if seen[s] || opts.IgnoredByHTML(s) {
					continue
				}
				seen[s] = true
				out = append(out, s)
			}
		}
	})
	return out
}

// eachStyleList calls fn for nodes and every grouping list below it.
// Keyframe lists are skipped since their selectors are not element selectors.
func eachStyleList(nodes []cssast.Node, fn func([]cssast.Node)) {
	fn(nodes)
	for _, n := range nodes {
		if g, ok := n.(*cssast.Grouping); ok {
			eachStyleList(g.Rules, fn)
		}
	}
}

// isUsed matches a selector against the used set, allowing an optional
// leading '.' on either side. Ignored selectors always count as used.
func isUsed(selector string, used map[string]bool, opts options.Options) bool {
	if opts.IgnoredByHTML(selector) {
		return true
	}
	bare := strings.TrimPrefix(selector, ".")
	return used[selector] || used[bare] || used["."+bare]
}

// RemoveUnused drops every rule none of whose selectors is used. A rule
// with at least one used selector is kept whole. Groupings emptied by the
// removal are dropped as well.
func RemoveUnused(nodes []cssast.Node, used map[string]bool, opts options.Options, sum *summary.Summary) []cssast.Node {
	out := make([]cssast.Node, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case *cssast.Rule:
			keep := false
			for _, s := range v.Selectors {
				if isUsed(s, used, opts) {
					keep = true
					break
				}
			}
			if !keep {
				sum.AddRemovedSelectors(v.Selectors...)
				out = dropPreviousComment(out, opts, sum)
				continue
			}
		case *cssast.Grouping:
			v.Rules = RemoveUnused(v.Rules, used, opts, sum)
			if Empty(v) {
				out = dropPreviousComment(out, opts, sum)
				continue
			}
		}
		out = append(out, n)
	}
	return out
}
