// Package shorthand merges longhand declarations into shorthand properties.
//
// Every shorthand family (font, background, margin, border-top, ...) is a
// table entry; one generic synthesizer applies the entries to a rule's
// declaration list in a fixed order.
package shorthand

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yacobolo/csspurge/internal/cssast"
	"github.com/yacobolo/csspurge/internal/cssvalue"
	"github.com/yacobolo/csspurge/internal/options"
	"github.com/yacobolo/csspurge/internal/summary"
	"go.uber.org/zap"
)

// Sentinels wrapped by DecompositionError for font shorthands.
var (
	ErrCheckSize   = errors.New("check size")
	ErrCheckFamily = errors.New("check family")
)

// errUnsupported makes a family skip a value it cannot decompose safely.
var errUnsupported = errors.New("unsupported shorthand value")

// DecompositionError reports a shorthand missing a required component that
// no later longhand supplies.
type DecompositionError struct {
	Selector string
	Property string
	Value    string
	Position cssast.Position
	Err      error
	slot     int
}

func (e *DecompositionError) Error() string {
	return fmt.Sprintf("%s: %s shorthand %q in %q: %v", e.Position, e.Property, e.Value, e.Selector, e.Err)
}

func (e *DecompositionError) Unwrap() error {
	return e.Err
}

// Family describes one shorthand property and its longhands.
type Family struct {
	Name      string
	Longhands []string // Canonical output order
	Reset     []string // Slots used when the shorthand value is exactly "none"

	// Decompose splits a shorthand value (without !important) into slots.
	Decompose func(value string) ([]string, error)
	// Compose joins slots into a shorthand value.
	Compose func(slots []string) (string, bool)
	// Complete reports whether longhands alone carry enough to synthesize.
	Complete func(slots []string) bool
	// Guard returns a reason to skip the family for the matched declarations.
	Guard func(matched []*cssast.Declaration) string

	Overlaps []string // Properties that also set the longhands
	Resets   []string // Properties reset by the shorthand but not among its longhands

	Enabled func(options.Options) bool
	Count   func(*summary.Counters)
}

func (f *Family) index(property string) int {
	for i, l := range f.Longhands {
		if l == property {
			return i
		}
	}
	return -1
}

func (f *Family) member(property string) bool {
	return property == f.Name || f.index(property) >= 0
}

func contains(list []string, property string) bool {
	for _, p := range list {
		if p == property {
			return true
		}
	}
	return false
}

// Synthesizer applies every enabled family to rule declaration lists.
type Synthesizer struct {
	opts     options.Options
	sum      *summary.Summary
	log      *zap.Logger
	families []*Family
}

// New creates a synthesizer. A nil logger discards output.
func New(opts options.Options, sum *summary.Summary, log *zap.Logger) *Synthesizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Synthesizer{
		opts:     opts,
		sum:      sum,
		log:      log.Named("shorthand"),
		families: Families(opts),
	}
}

// Rule synthesizes shorthands in decls and returns the new list. The only
// error is a *DecompositionError for a malformed font shorthand.
func (s *Synthesizer) Rule(selector string, decls []*cssast.Declaration) ([]*cssast.Declaration, error) {
	prepareFont(decls, s.opts)

	for _, f := range s.families {
		if !f.Enabled(s.opts) {
			continue
		}
		if f.Name == "border" {
			decls = s.mergeBorderSides(selector, decls)
		}
		var err error
		if decls, err = s.synthesize(f, selector, decls); err != nil {
			return nil, err
		}
	}
	return decls, nil
}

func (s *Synthesizer) synthesize(f *Family, selector string, decls []*cssast.Declaration) ([]*cssast.Declaration, error) {
	var matched []int
	for i, d := range decls {
		if !d.IsComment() && f.member(d.Property) {
			matched = append(matched, i)
		}
	}
	if len(matched) == 0 {
		return decls, nil
	}
	first, last := matched[0], matched[len(matched)-1]

	skip := func(reason string) ([]*cssast.Declaration, error) {
		s.log.Debug("shorthand skipped",
			zap.String("family", f.Name),
			zap.String("selector", selector),
			zap.String("reason", reason))
		return decls, nil
	}

	important := 0
	hasShorthand := false
	picked := make([]*cssast.Declaration, 0, len(matched))
	for _, i := range matched {
		d := decls[i]
		if cssvalue.HasCSSWideKeyword(d.Value) {
			return skip("css-wide keyword")
		}
		if cssvalue.IsVariable(d.Value) {
			return skip("custom property reference")
		}
		if cssvalue.IsImportant(d.Value) {
			important++
		}
		if d.Property == f.Name {
			hasShorthand = true
		}
		picked = append(picked, d)
	}
	if important > 0 && important < len(matched) {
		return skip("mixed !important")
	}
	if f.Guard != nil {
		if reason := f.Guard(picked); reason != "" {
			return skip(reason)
		}
	}
	for i := first + 1; i < last; i++ {
		if !decls[i].IsComment() && contains(f.Overlaps, decls[i].Property) {
			return skip("overlapping " + decls[i].Property)
		}
	}
	if !hasShorthand {
		for i := 0; i < first; i++ {
			if !decls[i].IsComment() && contains(f.Resets, decls[i].Property) {
				return skip("would reset " + decls[i].Property)
			}
		}
	}

	slots := make([]string, len(f.Longhands))
	var pending *DecompositionError
	for _, i := range matched {
		d := decls[i]
		value := cssvalue.StripImportant(d.Value)
		if d.Property != f.Name {
			slots[f.index(d.Property)] = value
			continue
		}
		if f.Reset != nil && strings.EqualFold(value, "none") {
			copy(slots, f.Reset)
			pending = nil
			continue
		}
		parts, err := f.Decompose(value)
		var derr *DecompositionError
		switch {
		case errors.As(err, &derr):
			derr.Selector = selector
			derr.Property = d.Property
			derr.Value = d.Value
			derr.Position = d.Position
			pending = derr
		case err != nil:
			return skip(err.Error())
		default:
			pending = nil
		}
		copy(slots, parts)
	}
	if pending != nil && slots[pending.slot] == "" {
		return nil, pending
	}
	if !hasShorthand && f.Complete != nil && !f.Complete(slots) {
		return skip("incomplete longhands")
	}
	if strings.Join(slots, "") == "" {
		return decls, nil
	}

	value, ok := f.Compose(slots)
	if !ok {
		return skip("cannot compose")
	}
	if important > 0 {
		value = cssvalue.WithImportant(value)
	}
	if len(matched) == 1 && hasShorthand && decls[first].Value == value {
		return decls, nil
	}

	merged := &cssast.Declaration{
		Kind:     cssast.KindProperty,
		Property: f.Name,
		Value:    value,
		Position: decls[first].Position,
	}
	out := make([]*cssast.Declaration, 0, len(decls)-len(matched)+1)
	m := 0
	for i, d := range decls {
		if m < len(matched) && matched[m] == i {
			if i == first {
				out = append(out, merged)
			}
			m++
			continue
		}
		out = append(out, d)
	}

	f.Count(&s.sum.Counters)
	s.log.Debug("shorthand synthesized",
		zap.String("family", f.Name),
		zap.String("selector", selector),
		zap.String("value", value),
		zap.Int("merged", len(matched)))
	return out, nil
}

// allFilled reports whether every slot has a value.
func allFilled(slots []string) bool {
	for _, s := range slots {
		if s == "" {
			return false
		}
	}
	return true
}

// joinFilled joins non-empty slots with single spaces.
func joinFilled(slots []string) string {
	parts := make([]string, 0, len(slots))
	for _, s := range slots {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
