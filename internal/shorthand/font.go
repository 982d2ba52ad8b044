package shorthand

import (
	"strconv"
	"strings"

	"github.com/yacobolo/csspurge/internal/cssast"
	"github.com/yacobolo/csspurge/internal/cssvalue"
	"github.com/yacobolo/csspurge/internal/options"
	"github.com/yacobolo/csspurge/internal/summary"
)

// Font slot indexes.
const (
	fontStyle = iota
	fontVariant
	fontWeight
	fontStretch
	fontSize
	lineHeight
	fontFamilies
)

var (
	fontStyles    = map[string]bool{"italic": true, "oblique": true}
	fontVariants  = map[string]bool{"normal": true, "small-caps": true}
	fontWeightsKW = map[string]bool{"bold": true, "bolder": true, "lighter": true}
	fontStretches = map[string]bool{
		"ultra-condensed": true, "extra-condensed": true, "condensed": true, "semi-condensed": true,
		"semi-expanded": true, "expanded": true, "extra-expanded": true, "ultra-expanded": true,
	}
	fontSizes = map[string]bool{
		"xx-small": true, "x-small": true, "small": true, "medium": true, "large": true,
		"x-large": true, "xx-large": true, "xxx-large": true, "larger": true, "smaller": true,
	}
	systemFonts = map[string]bool{
		"caption": true, "icon": true, "menu": true, "message-box": true,
		"small-caption": true, "status-bar": true,
	}
	genericFamilies = map[string]bool{
		"serif": true, "sans-serif": true, "monospace": true, "cursive": true, "fantasy": true,
		"system-ui": true, "ui-serif": true, "ui-sans-serif": true, "ui-monospace": true,
		"ui-rounded": true, "math": true, "emoji": true, "fangsong": true,
	}
)

func fontFamily() *Family {
	return &Family{
		Name: "font",
		Longhands: []string{
			"font-style", "font-variant", "font-weight", "font-stretch",
			"font-size", "line-height", "font-family",
		},
		Decompose: decomposeFont,
		Compose:   composeFont,
		Complete: func(slots []string) bool {
			return slots[fontSize] != "" && slots[fontFamilies] != ""
		},
		Resets: []string{
			"font-size-adjust", "font-kerning", "font-optical-sizing", "font-variation-settings",
			"font-feature-settings", "font-language-override",
			"font-variant-caps", "font-variant-ligatures", "font-variant-numeric",
			"font-variant-east-asian", "font-variant-alternates", "font-variant-position",
		},
		Enabled: func(o options.Options) bool { return o.ShortenEnabled(o.ShortenFont) },
		Count:   func(c *summary.Counters) { c.FontsShortened++ },
	}
}

// isFontSize reports whether token (optionally carrying /line-height) is a
// font size. Unitless numbers are weights, not sizes.
func isFontSize(token string) bool {
	size, _, _ := strings.Cut(strings.ToLower(token), "/")
	if fontSizes[size] || size == "0" {
		return true
	}
	if !cssvalue.IsNumeric(size) {
		return false
	}
	last := size[len(size)-1]
	return last == '%' || last >= 'a' && last <= 'z'
}

func isFontWeight(token string) bool {
	t := strings.ToLower(token)
	if fontWeightsKW[t] {
		return true
	}
	n, err := strconv.Atoi(t)
	return err == nil && n >= 1 && n <= 1000
}

// decomposeFont splits a font shorthand into its seven slots. A missing
// size or family yields a *DecompositionError with the other slots filled.
func decomposeFont(value string) ([]string, error) {
	slots := make([]string, 7)
	tokens := cssvalue.Split(value)
	if len(tokens) == 1 && (systemFonts[strings.ToLower(tokens[0])] || cssvalue.IsCSSWideKeyword(tokens[0])) {
		return nil, errUnsupported
	}

	sizeAt := -1
	for i, tok := range tokens {
		if isFontSize(tok) {
			sizeAt = i
			break
		}
		t := strings.ToLower(tok)
		slot := -1
		switch {
		case t == "normal":
			continue
		case fontStyles[t]:
			slot = fontStyle
		case t == "small-caps":
			slot = fontVariant
		case isFontWeight(t):
			slot = fontWeight
			tok = normalizeWeight(tok)
		case fontStretches[t]:
			slot = fontStretch
		default:
			slots[fontFamilies] = strings.Join(tokens[i:], " ")
			return slots, &DecompositionError{Err: ErrCheckSize, slot: fontSize}
		}
		if slots[slot] != "" {
			return nil, errUnsupported
		}
		slots[slot] = tok
	}
	if sizeAt < 0 {
		return slots, &DecompositionError{Err: ErrCheckSize, slot: fontSize}
	}

	size, lh, _ := strings.Cut(tokens[sizeAt], "/")
	rest := tokens[sizeAt+1:]
	if lh == "" && len(rest) > 0 && strings.HasPrefix(rest[0], "/") {
		lh = strings.TrimPrefix(rest[0], "/")
		rest = rest[1:]
		if lh == "" && len(rest) > 0 {
			lh, rest = rest[0], rest[1:]
		}
	}
	slots[fontSize] = size
	slots[lineHeight] = lh
	if len(rest) == 0 {
		return slots, &DecompositionError{Err: ErrCheckFamily, slot: fontFamilies}
	}
	slots[fontFamilies] = strings.Join(rest, " ")
	return slots, nil
}

func composeFont(slots []string) (string, bool) {
	if slots[fontSize] == "" || slots[fontFamilies] == "" {
		return "", false
	}
	if v := strings.ToLower(slots[fontVariant]); v != "" && !fontVariants[v] {
		return "", false
	}
	if s := strings.ToLower(slots[fontStretch]); s != "" && s != "normal" && !fontStretches[s] {
		return "", false
	}
	if s := strings.ToLower(slots[fontStyle]); s != "" && s != "normal" && !fontStyles[s] {
		return "", false
	}

	parts := make([]string, 0, 6)
	for _, i := range []int{fontStyle, fontVariant, fontWeight, fontStretch} {
		v := slots[i]
		if i == fontWeight {
			v = normalizeWeight(v)
		}
		if v != "" && !strings.EqualFold(v, "normal") && v != "400" {
			parts = append(parts, v)
		}
	}
	size := slots[fontSize]
	if slots[lineHeight] != "" {
		size += "/" + slots[lineHeight]
	}
	parts = append(parts, size, slots[fontFamilies])
	return strings.Join(parts, " "), true
}

// normalizeWeight maps the absolute weight keywords to numbers.
func normalizeWeight(weight string) string {
	switch strings.ToLower(weight) {
	case "normal":
		return "400"
	case "bold":
		return "700"
	}
	return weight
}

// FormatFamilies quotes multi-word family names. Generic families and
// already quoted names are kept.
func FormatFamilies(value string) string {
	parts := cssvalue.SplitCommas(value)
	for i, p := range parts {
		if p == "" || p[0] == '"' || p[0] == '\'' || genericFamilies[strings.ToLower(p)] {
			continue
		}
		if words := strings.Fields(p); len(words) > 1 {
			parts[i] = `"` + strings.Join(words, " ") + `"`
		}
	}
	return strings.Join(parts, ",")
}

// PxToRem converts a px font size to rem against the desired root size.
func PxToRem(size string, desiredPx float64) (string, bool) {
	lower := strings.ToLower(size)
	if desiredPx <= 0 || !strings.HasSuffix(lower, "px") {
		return size, false
	}
	px, err := strconv.ParseFloat(size[:len(size)-2], 64)
	if err != nil {
		return size, false
	}
	rem := strconv.FormatFloat(px/desiredPx, 'f', 4, 64)
	rem = strings.TrimRight(strings.TrimRight(rem, "0"), ".")
	if rem == "" || rem == "-" {
		rem = "0"
	}
	return rem + "rem", true
}

// convertFontSizeToken rewrites the size part of a size[/line-height] token.
func convertFontSizeToken(token string, desiredPx float64) string {
	size, lh, hasLH := strings.Cut(token, "/")
	rem, ok := PxToRem(size, desiredPx)
	if !ok {
		return token
	}
	if hasLH {
		return rem + "/" + lh
	}
	return rem
}

// prepareFont normalizes font declarations before synthesis: weight
// keywords become numbers, multi-word families are quoted, and px sizes
// become rem when conversion is enabled.
func prepareFont(decls []*cssast.Declaration, opts options.Options) {
	shorten := opts.ShortenEnabled(opts.ShortenFont)
	toRem := opts.SpecialConvertRem && opts.SpecialConvertRemFontSize

	for _, d := range decls {
		if d.IsComment() || cssvalue.IsVariable(d.Value) {
			continue
		}
		important := cssvalue.IsImportant(d.Value)
		value := cssvalue.StripImportant(d.Value)
		switch d.Property {
		case "font-weight":
			if !shorten {
				continue
			}
			value = normalizeWeight(value)
		case "font-family":
			if !shorten || !opts.FormatFontFamily {
				continue
			}
			value = FormatFamilies(value)
		case "font-size":
			if !toRem {
				continue
			}
			value, _ = PxToRem(value, opts.SpecialConvertRemDesiredHTMLPx)
		case "font":
			if !toRem {
				continue
			}
			tokens := cssvalue.Split(value)
			for i, tok := range tokens {
				if isFontSize(tok) {
					tokens[i] = convertFontSizeToken(tok, opts.SpecialConvertRemDesiredHTMLPx)
					break
				}
			}
			value = strings.Join(tokens, " ")
		default:
			continue
		}
		if important {
			value = cssvalue.WithImportant(value)
		}
		d.Value = value
	}
}
