package reduce

import (
	"github.com/yacobolo/csspurge/internal/cssast"
)

// Charset keeps a single @charset: the first one, and only if it is the
// first node of the stylesheet. Browsers ignore @charset anywhere else.
// It returns the new list and the number of rules removed.
func Charset(nodes []cssast.Node) ([]cssast.Node, int) {
	out := make([]cssast.Node, 0, len(nodes))
	removed := 0
	for i, n := range nodes {
		if a, ok := n.(*cssast.AtRule); ok && a.Kind() == "charset" && i > 0 {
			removed++
			continue
		}
		out = append(out, n)
	}
	return out, removed
}
