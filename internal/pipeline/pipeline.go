// Package pipeline runs the optimizer passes over a parsed stylesheet in
// their fixed order and serializes the result.
package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yacobolo/csspurge/internal/canon"
	"github.com/yacobolo/csspurge/internal/cssast"
	"github.com/yacobolo/csspurge/internal/options"
	"github.com/yacobolo/csspurge/internal/reduce"
	"github.com/yacobolo/csspurge/internal/shorthand"
	"github.com/yacobolo/csspurge/internal/summary"
	"go.uber.org/zap"
)

// Pipeline holds the configuration of one optimizer run.
type Pipeline struct {
	opts    options.Options
	matcher reduce.SelectorMatcher
	log     *zap.Logger
}

// New creates a pipeline. matcher may be nil, in which case unused
// selectors are never removed. A nil logger discards output.
func New(opts options.Options, matcher reduce.SelectorMatcher, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{opts: opts, matcher: matcher, log: log.Named("pipeline")}
}

// Run optimizes sheet in place, recording every reduction in sum. Passes:
// charset cleanup, value canonicalization, de-duplication, shorthand
// synthesis, common-parent promotion, unused-selector removal, and the
// root font-size rule for rem conversion.
func (p *Pipeline) Run(sheet *cssast.Stylesheet, sum *summary.Summary) error {
	opts := p.opts

	if !opts.BypassCharset {
		var removed int
		sheet.Nodes, removed = reduce.Charset(sheet.Nodes)
		if removed > 0 {
			p.log.Debug("misplaced @charset removed", zap.Int("count", removed))
		}
	}

	p.canonicalize(sheet, sum)

	sheet.Nodes = reduce.NewDeduper(opts, sum, p.log).List(sheet.Nodes)
	p.log.Debug("de-duplicated",
		zap.Int("rules", sum.Counters.DuplicateRules),
		zap.Int("declarations", sum.Counters.DuplicateDeclarations))

	synth := shorthand.New(opts, sum, p.log)
	for _, r := range cssast.Rules(sheet.Nodes) {
		decls, err := synth.Rule(r.SelectorText(), r.Declarations)
		if err != nil {
			return fmt.Errorf("synthesize shorthands: %w", err)
		}
		r.Declarations = decls
	}

	if opts.MoveCommonDeclarationsIntoParent {
		cssast.Walk(&sheet.Nodes, func(list *[]cssast.Node) {
			*list = reduce.PromoteCommon(*list, sum)
		})
	}

	if opts.SpecialReduceWithHTML && p.matcher != nil {
		selectors := reduce.Selectors(sheet.Nodes, opts)
		used, err := p.matcher.Used(selectors)
		if err != nil {
			return fmt.Errorf("match selectors: %w", err)
		}
		sheet.Nodes = reduce.RemoveUnused(sheet.Nodes, used, opts, sum)
		p.log.Debug("unused selectors removed",
			zap.Int("checked", len(selectors)),
			zap.Int("removed", sum.Counters.SelectorsRemoved))
	}

	if opts.SpecialConvertRem && opts.SpecialConvertRemFontSize {
		sheet.Nodes = insertRootFontSize(sheet.Nodes, opts)
	}
	return nil
}

func (p *Pipeline) canonicalize(sheet *cssast.Stylesheet, sum *summary.Summary) {
	opts := p.opts
	zero := opts.ShortenEnabled(opts.ShortenZero)
	color := opts.ShortenEnabled(opts.ShortenHexColor)
	if !zero && !color {
		return
	}
	apply := func(decls []*cssast.Declaration) {
		if zero {
			canon.Zeros(decls, opts, sum)
		}
		if color {
			canon.Colors(decls, opts, sum)
		}
	}
	cssast.Walk(&sheet.Nodes, func(list *[]cssast.Node) {
		for _, n := range *list {
			switch v := n.(type) {
			case *cssast.Rule:
				apply(v.Declarations)
			case *cssast.AtRule:
				if v.Block == cssast.BlockDeclarations {
					apply(v.Declarations)
				}
			}
		}
	})
}

// insertRootFontSize adds html{font-size:N%} after any leading @charset and
// @import rules unless a top-level html rule already sets a font size.
func insertRootFontSize(nodes []cssast.Node, opts options.Options) []cssast.Node {
	if opts.SpecialConvertRemBrowserDefaultPx <= 0 {
		return nodes
	}
	at := 0
	for i, n := range nodes {
		if r, ok := n.(*cssast.Rule); ok {
			for _, s := range r.Selectors {
				if strings.EqualFold(s, "html") && cssast.ContainsAny(r.Declarations, "font-size", "font") {
					return nodes
				}
			}
		}
		if a, ok := n.(*cssast.AtRule); ok && at == i && (a.Kind() == "charset" || a.Kind() == "import") {
			at = i + 1
		}
	}

	pct := strconv.FormatFloat(opts.SpecialConvertRemDesiredHTMLPx/opts.SpecialConvertRemBrowserDefaultPx*100, 'f', 4, 64)
	pct = strings.TrimRight(strings.TrimRight(pct, "0"), ".")
	rule := &cssast.Rule{
		Selectors:    []string{"html"},
		Declarations: []*cssast.Declaration{{Kind: cssast.KindProperty, Property: "font-size", Value: pct + "%"}},
	}

	out := make([]cssast.Node, 0, len(nodes)+1)
	out = append(out, nodes[:at]...)
	out = append(out, rule)
	return append(out, nodes[at:]...)
}

// PrintOptions maps the trim options onto serializer settings.
func PrintOptions(opts options.Options) cssast.PrintOptions {
	return cssast.PrintOptions{
		TrimWhitespace:    opts.TrimEnabled(opts.TrimWhitespace),
		TrimBreaklines:    opts.TrimEnabled(opts.TrimBreaklines),
		TrimLastSemicolon: opts.TrimEnabled(opts.TrimLastSemicolon),
	}
}

// Process parses src, runs the pipeline and returns the serialized result.
func (p *Pipeline) Process(src []byte, source string, sum *summary.Summary) (string, error) {
	sheet, err := cssast.NewParser(p.log).Parse(src, source)
	if err != nil {
		return "", err
	}
	if err := p.Run(sheet, sum); err != nil {
		return "", err
	}
	return cssast.String(sheet, PrintOptions(p.opts)), nil
}
