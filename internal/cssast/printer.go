package cssast

import (
	"strings"
)

// PrintOptions controls serialization whitespace.
type PrintOptions struct {
	TrimWhitespace    bool // Drop optional spaces and indentation
	TrimBreaklines    bool // Drop newlines
	TrimLastSemicolon bool // Drop the ';' after the last declaration of a block
}

// Printer serializes a stylesheet tree back to CSS text.
type Printer struct {
	opts PrintOptions
	sb   strings.Builder
}

// NewPrinter creates a printer with the given options.
func NewPrinter(opts PrintOptions) *Printer {
	return &Printer{opts: opts}
}

// Print returns the CSS text of sheet.
func (p *Printer) Print(sheet *Stylesheet) string {
	p.sb.Reset()
	p.nodes(sheet.Nodes, 0)
	return p.sb.String()
}

// String serializes sheet with opts.
func String(sheet *Stylesheet, opts PrintOptions) string {
	return NewPrinter(opts).Print(sheet)
}

func (p *Printer) nl() string {
	if p.opts.TrimBreaklines {
		return ""
	}
	return "\n"
}

func (p *Printer) sp() string {
	if p.opts.TrimWhitespace {
		return ""
	}
	return " "
}

func (p *Printer) indent(depth int) string {
	if p.opts.TrimWhitespace || p.opts.TrimBreaklines {
		return ""
	}
	return strings.Repeat("  ", depth)
}

func (p *Printer) nodes(nodes []Node, depth int) {
	for _, n := range nodes {
		switch v := n.(type) {
		case *Rule:
			p.block(strings.Join(v.Selectors, ","+p.sp()), depth)
			p.declarations(v.Declarations, depth+1)
			p.closeBlock(depth)
		case *Comment:
			p.sb.WriteString(p.indent(depth) + "/*" + v.Text + "*/" + p.nl())
		case *Grouping:
			p.block(header(v.Name, v.Prelude), depth)
			p.nodes(v.Rules, depth+1)
			p.closeBlock(depth)
		case *AtRule:
			p.atRule(v, depth)
		}
	}
}

func (p *Printer) atRule(a *AtRule, depth int) {
	switch a.Block {
	case BlockNone:
		p.sb.WriteString(p.indent(depth) + header(a.Name, a.Prelude) + ";" + p.nl())
	case BlockDeclarations:
		p.block(header(a.Name, a.Prelude), depth)
		p.declarations(a.Declarations, depth+1)
		p.closeBlock(depth)
	case BlockRules:
		p.block(header(a.Name, a.Prelude), depth)
		p.nodes(a.Rules, depth+1)
		p.closeBlock(depth)
	case BlockRaw:
		p.block(header(a.Name, a.Prelude), depth)
		if a.Raw != "" {
			p.sb.WriteString(p.indent(depth+1) + a.Raw + p.nl())
		}
		p.closeBlock(depth)
	}
}

func (p *Printer) block(head string, depth int) {
	p.sb.WriteString(p.indent(depth) + head + p.sp() + "{" + p.nl())
}

func (p *Printer) closeBlock(depth int) {
	p.sb.WriteString(p.indent(depth) + "}" + p.nl())
}

func (p *Printer) declarations(decls []*Declaration, depth int) {
	last := -1
	for i, d := range decls {
		if !d.IsComment() {
			last = i
		}
	}
	for i, d := range decls {
		if d.IsComment() {
			p.sb.WriteString(p.indent(depth) + "/*" + d.Value + "*/" + p.nl())
			continue
		}
		value := d.Value
		if p.opts.TrimWhitespace {
			value = strings.Replace(value, " !important", "!important", 1)
		}
		p.sb.WriteString(p.indent(depth) + d.Property + ":" + p.sp() + value)
		if i != last || !p.opts.TrimLastSemicolon {
			p.sb.WriteByte(';')
		}
		p.sb.WriteString(p.nl())
	}
}

func header(name, prelude string) string {
	if prelude == "" {
		return name
	}
	return name + " " + prelude
}
