package shorthand

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/csspurge/internal/cssast"
	"github.com/yacobolo/csspurge/internal/options"
	"github.com/yacobolo/csspurge/internal/summary"
)

// decls builds a declaration list from "prop:value" pairs.
func decls(pairs ...string) []*cssast.Declaration {
	out := make([]*cssast.Declaration, 0, len(pairs))
	for i, p := range pairs {
		prop, value, _ := strings.Cut(p, ":")
		out = append(out, &cssast.Declaration{
			Kind:     cssast.KindProperty,
			Property: prop,
			Value:    value,
			Position: cssast.Position{Source: "test.css", Line: i + 1, Column: 1},
		})
	}
	return out
}

func render(list []*cssast.Declaration) string {
	parts := make([]string, len(list))
	for i, d := range list {
		parts[i] = d.Property + ":" + d.Value
	}
	return strings.Join(parts, ";")
}

func run(t *testing.T, opts options.Options, in []*cssast.Declaration) (string, *summary.Summary) {
	t.Helper()
	sum := summary.New()
	out, err := New(opts, sum, nil).Rule(".a", in)
	require.NoError(t, err)
	return render(out), sum
}

func TestRule_Families(t *testing.T) {
	tests := []struct {
		name string
		in   []*cssast.Declaration
		want string
	}{
		{
			name: "margin all equal",
			in:   decls("margin-top:0", "margin-right:0", "margin-bottom:0", "margin-left:0"),
			want: "margin:0",
		},
		{
			name: "padding vertical horizontal",
			in:   decls("padding-top:1px", "padding-right:2px", "padding-bottom:1px", "padding-left:2px"),
			want: "padding:1px 2px",
		},
		{
			name: "margin three values",
			in:   decls("margin-top:1px", "margin-right:2px", "margin-bottom:3px", "margin-left:2px"),
			want: "margin:1px 2px 3px",
		},
		{
			name: "margin incomplete left alone",
			in:   decls("margin-top:1px", "margin-left:2px"),
			want: "margin-top:1px;margin-left:2px",
		},
		{
			name: "later longhand overrides shorthand slot",
			in:   decls("margin:0", "margin-left:auto"),
			want: "margin:0 0 0 auto",
		},
		{
			name: "earlier longhand overridden by shorthand",
			in:   decls("margin-left:auto", "margin:0"),
			want: "margin:0",
		},
		{
			name: "shorthand compacted",
			in:   decls("padding:1px 1px 1px 1px"),
			want: "padding:1px",
		},
		{
			name: "merged at first position",
			in:   decls("color:red", "margin-top:0", "display:block", "margin-right:0", "margin-bottom:0", "margin-left:0"),
			want: "color:red;margin:0;display:block",
		},
		{
			name: "border radius collapses to one value",
			in: decls("border-top-left-radius:3px", "border-top-right-radius:3px",
				"border-bottom-right-radius:3px", "border-bottom-left-radius:3px"),
			want: "border-radius:3px",
		},
		{
			name: "border radius diagonal pairs",
			in: decls("border-top-left-radius:1px", "border-top-right-radius:2px",
				"border-bottom-right-radius:1px", "border-bottom-left-radius:2px"),
			want: "border-radius:1px 2px",
		},
		{
			name: "border radius elliptical corner skipped",
			in: decls("border-top-left-radius:1px 2px", "border-top-right-radius:2px",
				"border-bottom-right-radius:1px", "border-bottom-left-radius:2px"),
			want: "border-top-left-radius:1px 2px;border-top-right-radius:2px;border-bottom-right-radius:1px;border-bottom-left-radius:2px",
		},
		{
			name: "outline from longhands",
			in:   decls("outline-color:red", "outline-width:1px", "outline-style:solid"),
			want: "outline:1px solid red",
		},
		{
			name: "outline none resets to zero",
			in:   decls("outline:none"),
			want: "outline:0",
		},
		{
			name: "border top none kept",
			in:   decls("border-top:none"),
			want: "border-top:none",
		},
		{
			name: "border right none resets to zero",
			in:   decls("border-right:none"),
			want: "border-right:0",
		},
		{
			name: "list style from longhands",
			in:   decls("list-style-type:square", "list-style-position:inside", "list-style-image:none"),
			want: "list-style:square inside none",
		},
		{
			name: "border triple",
			in:   decls("border-width:1px", "border-style:solid", "border-color:red"),
			want: "border:1px solid red",
		},
		{
			name: "border triple with per side colors skipped",
			in:   decls("border-width:1px", "border-style:solid", "border-color:red blue"),
			want: "border-width:1px;border-style:solid;border-color:red blue",
		},
		{
			name: "four identical sides merge",
			in:   decls("border-top:1px solid red", "border-right:1px solid red", "border-bottom:1px solid red", "border-left:1px solid red"),
			want: "border:1px solid red",
		},
		{
			name: "four differing sides kept",
			in:   decls("border-top:1px solid red", "border-right:1px solid red", "border-bottom:1px solid red", "border-left:2px solid red"),
			want: "border-top:1px solid red;border-right:1px solid red;border-bottom:1px solid red;border-left:2px solid red",
		},
		{
			name: "border side from longhands",
			in:   decls("border-top-width:1px", "border-top-style:dashed", "border-top-color:#000"),
			want: "border-top:1px dashed #000",
		},
		{
			name: "overlap between matched declarations blocks merge",
			in:   decls("border-top-width:1px", "border-color:blue", "border-top-style:dashed", "border-top-color:#000"),
			want: "border-top-width:1px;border-color:blue;border-top-style:dashed;border-top-color:#000",
		},
		{
			name: "important on every declaration survives",
			in: decls("margin-top:0 !important", "margin-right:0 !important",
				"margin-bottom:0 !important", "margin-left:0 !important"),
			want: "margin:0 !important",
		},
		{
			name: "mixed important left alone",
			in:   decls("margin-top:0 !important", "margin-right:0", "margin-bottom:0", "margin-left:0"),
			want: "margin-top:0 !important;margin-right:0;margin-bottom:0;margin-left:0",
		},
		{
			name: "inherit guard",
			in:   decls("font-size:inherit", "font-family:Arial"),
			want: "font-size:inherit;font-family:Arial",
		},
		{
			name: "variable guard",
			in:   decls("margin-top:var(--x)", "margin-right:0", "margin-bottom:0", "margin-left:0"),
			want: "margin-top:var(--x);margin-right:0;margin-bottom:0;margin-left:0",
		},
		{
			name: "gradient guard",
			in:   decls("background-color:red", "background-image:linear-gradient(red, blue)"),
			want: "background-color:red;background-image:linear-gradient(red, blue)",
		},
		{
			name: "background from longhands",
			in:   decls("background-color:#fff", "background-image:url(a.png)", "background-repeat:no-repeat"),
			want: "background:#fff url(a.png) no-repeat",
		},
		{
			name: "background below minimum",
			in:   decls("background-color:#fff"),
			want: "background-color:#fff",
		},
		{
			name: "background layers",
			in:   decls("background-image:url(a.png), url(b.png)", "background-repeat:no-repeat", "background-color:red"),
			want: "background:url(a.png) no-repeat, red url(b.png) no-repeat",
		},
		{
			name: "background size reset blocks merge",
			in:   decls("background-size:cover", "background-color:#fff", "background-image:url(a.png)"),
			want: "background-size:cover;background-color:#fff;background-image:url(a.png)",
		},
		{
			name: "background with size component skipped",
			in:   decls("background:url(a.png) center / cover", "background-color:red"),
			want: "background:url(a.png) center / cover;background-color:red",
		},
		{
			name: "font from longhands",
			in:   decls("font-weight:bold", "font-size:12px", "line-height:1.5", "font-family:Arial, sans-serif"),
			want: "font:700 12px/1.5 Arial,sans-serif",
		},
		{
			name: "font family quoted",
			in:   decls("font-size:12px", "font-family:Times New Roman, serif"),
			want: `font:12px "Times New Roman",serif`,
		},
		{
			name: "font normal weight dropped",
			in:   decls("font-style:italic", "font-weight:normal", "font-size:1em", "font-family:serif"),
			want: "font:italic 1em serif",
		},
		{
			name: "font shorthand normalized",
			in:   decls("font:bold 12px / 20px Arial"),
			want: "font:700 12px/20px Arial",
		},
		{
			name: "font later family longhand",
			in:   decls("font:12px Arial", "font-family:Georgia"),
			want: "font:12px Georgia",
		},
		{
			name: "font without size left alone",
			in:   decls("font-weight:bold", "font-family:Arial"),
			want: "font-weight:700;font-family:Arial",
		},
		{
			name: "font system keyword left alone",
			in:   decls("font:menu"),
			want: "font:menu",
		},
		{
			name: "font initial left alone",
			in:   decls("font:initial"),
			want: "font:initial",
		},
		{
			name: "font unset left alone",
			in:   decls("font:unset"),
			want: "font:unset",
		},
		{
			name: "font revert with longhands left alone",
			in:   decls("font:revert", "font-size:12px"),
			want: "font:revert;font-size:12px",
		},
		{
			name: "margin initial guard",
			in:   decls("margin-top:initial", "margin-right:0", "margin-bottom:0", "margin-left:0"),
			want: "margin-top:initial;margin-right:0;margin-bottom:0;margin-left:0",
		},
		{
			name: "font variant reset blocks merge",
			in:   decls("font-variant-numeric:tabular-nums", "font-size:12px", "font-family:Arial"),
			want: "font-variant-numeric:tabular-nums;font-size:12px;font-family:Arial",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := run(t, options.Defaults(), tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRule_Idempotent(t *testing.T) {
	inputs := [][]*cssast.Declaration{
		decls("margin-top:0", "margin-right:1px", "margin-bottom:0", "margin-left:1px"),
		decls("font-weight:bold", "font-size:12px", "font-family:Arial"),
		decls("border-top:1px solid red", "border-right:1px solid red", "border-bottom:1px solid red", "border-left:1px solid red"),
		decls("outline:none"),
		decls("background-color:#fff", "background-image:url(a.png)"),
	}
	for _, in := range inputs {
		first, _ := run(t, options.Defaults(), in)
		second, sum := run(t, options.Defaults(), decls(strings.Split(first, ";")...))
		assert.Equal(t, first, second)
		assert.Equal(t, summary.Counters{}, sum.Counters, "no family may re-trigger on %q", first)
	}
}

func TestRule_Counters(t *testing.T) {
	_, sum := run(t, options.Defaults(), decls(
		"margin-top:0", "margin-right:0", "margin-bottom:0", "margin-left:0",
		"border-top:1px solid", "border-right:1px solid", "border-bottom:1px solid", "border-left:1px solid",
		"outline:none",
	))
	assert.Equal(t, 1, sum.Counters.MarginsShortened)
	assert.Equal(t, 1, sum.Counters.BorderSidesMerged)
	assert.Equal(t, 1, sum.Counters.OutlinesShortened)
	assert.Zero(t, sum.Counters.BordersShortened)
}

func TestRule_DisabledFamily(t *testing.T) {
	opts := options.Defaults()
	opts.Shorten = false
	opts.ShortenPadding = true

	got, _ := run(t, opts, decls(
		"margin-top:0", "margin-right:0", "margin-bottom:0", "margin-left:0",
		"padding-top:0", "padding-right:0", "padding-bottom:0", "padding-left:0",
	))
	assert.Equal(t, "margin-top:0;margin-right:0;margin-bottom:0;margin-left:0;padding:0", got)
}

func TestRule_FontDecompositionError(t *testing.T) {
	tests := []struct {
		name string
		in   []*cssast.Declaration
		want error
	}{
		{"missing size", decls("font:bold Arial"), ErrCheckSize},
		{"missing family", decls("color:red", "font:12px"), ErrCheckFamily},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(options.Defaults(), summary.New(), nil).Rule(".title", tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))

			var derr *DecompositionError
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, ".title", derr.Selector)
			assert.Equal(t, "test.css", derr.Position.Source)
			assert.Contains(t, err.Error(), "test.css:")
		})
	}

	t.Run("rescued by later longhand", func(t *testing.T) {
		got, _ := run(t, options.Defaults(), decls("font:12px", "font-family:Arial"))
		assert.Equal(t, "font:12px Arial", got)
	})
}

func TestRule_ConvertRem(t *testing.T) {
	opts := options.Defaults()
	opts.SpecialConvertRem = true

	got, _ := run(t, opts, decls("font-size:15px", "color:red"))
	assert.Equal(t, "font-size:1.5rem;color:red", got)

	got, _ = run(t, opts, decls("font:bold 12px/1.2 Arial"))
	assert.Equal(t, "font:700 1.2rem/1.2 Arial", got)
}

func TestPxToRem(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"10px", "1rem", true},
		{"13px", "1.3rem", true},
		{"12.5px", "1.25rem", true},
		{"1em", "1em", false},
		{"large", "large", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := PxToRem(tt.in, 10)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestFormatFamilies(t *testing.T) {
	assert.Equal(t, `"Helvetica Neue",Arial,sans-serif`, FormatFamilies("Helvetica Neue, Arial, sans-serif"))
	assert.Equal(t, `'Open Sans',serif`, FormatFamilies("'Open Sans', serif"))
	assert.Equal(t, "monospace", FormatFamilies("monospace"))
}
