package shorthand

import (
	"github.com/yacobolo/csspurge/internal/cssast"
	"go.uber.org/zap"
)

var borderSides = []string{"border-top", "border-right", "border-bottom", "border-left"}

// borderSideLonghands are the properties that would be reordered relative to
// a side shorthand when the four sides collapse into one border.
var borderSideLonghands = []string{
	"border-width", "border-style", "border-color",
	"border-top-width", "border-top-style", "border-top-color",
	"border-right-width", "border-right-style", "border-right-color",
	"border-bottom-width", "border-bottom-style", "border-bottom-color",
	"border-left-width", "border-left-style", "border-left-color",
}

// mergeBorderSides replaces four identical border side shorthands with one
// border declaration at the position of the first.
func (s *Synthesizer) mergeBorderSides(selector string, decls []*cssast.Declaration) []*cssast.Declaration {
	at := make(map[string]int, 4)
	first, last := len(decls), -1
	for i, d := range decls {
		if d.IsComment() || !contains(borderSides, d.Property) {
			continue
		}
		if _, dup := at[d.Property]; dup {
			return decls
		}
		at[d.Property] = i
		first = min(first, i)
		last = max(last, i)
	}
	if len(at) != 4 {
		return decls
	}
	value := decls[at["border-top"]].Value
	for _, side := range borderSides[1:] {
		if decls[at[side]].Value != value {
			return decls
		}
	}
	for i := first + 1; i < last; i++ {
		if !decls[i].IsComment() && (decls[i].Property == "border" || contains(borderSideLonghands, decls[i].Property)) {
			return decls
		}
	}
	for i := 0; i < first; i++ {
		if !decls[i].IsComment() && decls[i].Property == "border-image" {
			return decls
		}
	}

	out := make([]*cssast.Declaration, 0, len(decls)-3)
	for i, d := range decls {
		switch {
		case i == first:
			out = append(out, &cssast.Declaration{
				Kind:     cssast.KindProperty,
				Property: "border",
				Value:    value,
				Position: d.Position,
			})
		case !d.IsComment() && contains(borderSides, d.Property):
		default:
			out = append(out, d)
		}
	}
	s.sum.Counters.BorderSidesMerged++
	s.log.Debug("border sides merged", zap.String("selector", selector), zap.String("value", value))
	return out
}
