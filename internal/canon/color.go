package canon

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/yacobolo/csspurge/internal/cssast"
	"github.com/yacobolo/csspurge/internal/cssvalue"
	"github.com/yacobolo/csspurge/internal/options"
	"github.com/yacobolo/csspurge/internal/summary"
)

var (
	rgbPattern = regexp.MustCompile(`(?i)\brgba?\(\s*([^()]*)\)`)
	hslPattern = regexp.MustCompile(`(?i)\bhsla?\(\s*([^()]*)\)`)
	hexPattern = regexp.MustCompile(`#[0-9a-fA-F]{3,8}\b`)
)

// ColorConfig selects the color rewrites.
type ColorConfig struct {
	Uppercase     bool // Emit hex digits in uppercase
	ExtendedNames bool // Rewrite names from the extended color table
}

// ColorCounts reports how many colors of each notation were shortened.
type ColorCounts struct {
	Named, Hex, RGB, HSL int
}

// Colors shortens color tokens in color-bearing declarations. Values using
// Microsoft filter syntax are never touched.
func Colors(decls []*cssast.Declaration, opts options.Options, sum *summary.Summary) {
	cfg := ColorConfig{
		Uppercase:     opts.ShortenHexColorUppercase,
		ExtendedNames: opts.ShortenHexColorExtendedNames,
	}
	for _, d := range decls {
		if d.IsComment() || !cssvalue.IsColorBearing(d.Property) || strings.Contains(d.Value, "Microsoft") {
			continue
		}
		value, counts := ShortenColor(d.Value, cfg)
		d.Value = value
		sum.Counters.NamedColorsShortened += counts.Named
		sum.Counters.HexColorsShortened += counts.Hex
		sum.Counters.RGBColorsShortened += counts.RGB
		sum.Counters.HSLColorsShortened += counts.HSL
	}
}

// ShortenColor rewrites every color in value to its shortest form: names
// become hex when that is shorter, opaque rgb() and hsl() become hex, and
// six digit hex collapses to three digits when each channel repeats.
func ShortenColor(value string, cfg ColorConfig) (string, ColorCounts) {
	var counts ColorCounts
	out := cssvalue.MapUnprotected(value, func(seg string) string {
		seg = replaceNames(seg, cfg, &counts)
		seg = rgbPattern.ReplaceAllStringFunc(seg, func(m string) string {
			hex, ok := parseRGB(rgbPattern.FindStringSubmatch(m)[1])
			if !ok {
				return m
			}
			counts.RGB++
			return shortHex(hex)
		})
		seg = hslPattern.ReplaceAllStringFunc(seg, func(m string) string {
			hex, ok := parseHSL(hslPattern.FindStringSubmatch(m)[1])
			if !ok {
				return m
			}
			counts.HSL++
			return shortHex(hex)
		})
		return hexPattern.ReplaceAllStringFunc(seg, func(m string) string {
			short := shortHex(m)
			if len(short) < len(m) {
				counts.Hex++
			}
			if cfg.Uppercase {
				return strings.ToUpper(short)
			}
			return strings.ToLower(short)
		})
	}, "url", "var")
	return out, counts
}

// replaceNames swaps color keywords for hex when the hex form is shorter.
func replaceNames(seg string, cfg ColorConfig, counts *ColorCounts) string {
	var sb strings.Builder
	for i := 0; i < len(seg); {
		if !isLetter(seg[i]) || (i > 0 && (isIdent(seg[i-1]) || seg[i-1] == '#' || seg[i-1] == '.')) {
			sb.WriteByte(seg[i])
			i++
			continue
		}
		j := i
		for j < len(seg) && isIdent(seg[j]) {
			j++
		}
		word := seg[i:j]
		if j < len(seg) && seg[j] == '(' {
			sb.WriteString(word)
			i = j
			continue
		}
		if hex, ok := cssvalue.ColorKeyword(word, cfg.ExtendedNames); ok {
			if short := shortHex(hex); len(short) < len(word) {
				counts.Named++
				word = short
			}
		}
		sb.WriteString(word)
		i = j
	}
	return sb.String()
}

// shortHex collapses #aabbcc to #abc.
func shortHex(hex string) string {
	if len(hex) != 7 {
		return hex
	}
	h := strings.ToLower(hex)
	if h[1] == h[2] && h[3] == h[4] && h[5] == h[6] {
		return "#" + h[1:2] + h[3:4] + h[5:6]
	}
	return h
}

// colorArgs splits function arguments on commas, spaces and the alpha slash.
func colorArgs(args string) []string {
	return strings.FieldsFunc(args, func(r rune) bool {
		return r == ',' || r == ' ' || r == '/' || r == '\t'
	})
}

// opaque reports whether an optional alpha argument is fully opaque.
func opaque(args []string) bool {
	if len(args) == 3 {
		return true
	}
	if len(args) != 4 {
		return false
	}
	a := args[3]
	if strings.HasSuffix(a, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
		return err == nil && v == 100
	}
	v, err := strconv.ParseFloat(a, 64)
	return err == nil && v == 1
}

func parseRGB(args string) (string, bool) {
	parts := colorArgs(args)
	if !opaque(parts) {
		return "", false
	}
	var rgb [3]int
	for i := 0; i < 3; i++ {
		p := parts[i]
		var v float64
		var err error
		if strings.HasSuffix(p, "%") {
			v, err = strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
			v = v * 255 / 100
		} else {
			v, err = strconv.ParseFloat(p, 64)
		}
		if err != nil || v < 0 || v > 255 {
			return "", false
		}
		rgb[i] = int(math.Round(v))
	}
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2]), true
}

func parseHSL(args string) (string, bool) {
	parts := colorArgs(args)
	if !opaque(parts) {
		return "", false
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(parts[0]), "deg"), 64)
	if err != nil {
		return "", false
	}
	var sl [2]float64
	for i, p := range parts[1:3] {
		if !strings.HasSuffix(p, "%") {
			return "", false
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil || v < 0 || v > 100 {
			return "", false
		}
		sl[i] = v / 100
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, sl[0], sl[1]).Clamped().RGB255()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b), true
}

func isIdent(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '_'
}
