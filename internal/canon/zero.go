// Package canon rewrites declaration values into shorter equivalent forms:
// zero lengths and color notations.
package canon

import (
	"strings"

	"github.com/yacobolo/csspurge/internal/cssast"
	"github.com/yacobolo/csspurge/internal/cssvalue"
	"github.com/yacobolo/csspurge/internal/options"
	"github.com/yacobolo/csspurge/internal/summary"
)

// zeroProtected are functions whose arguments must keep their units.
var zeroProtected = []string{"url", "calc", "min", "max", "clamp", "var", "env", "rgb", "rgba", "hsl", "hsla", "attr", "format", "local"}

// Zeros shortens numeric tokens of every declaration that is not excluded
// by zero_ignore_declaration. Custom properties are left alone.
func Zeros(decls []*cssast.Declaration, opts options.Options, sum *summary.Summary) {
	units := make(map[string]bool)
	for _, u := range opts.ZeroUnitList() {
		units[u] = true
	}
	for _, d := range decls {
		if d.IsComment() || strings.HasPrefix(d.Property, "--") || opts.IgnoresZero(d.Property) {
			continue
		}
		value, n := ShortenZero(d.Value, units)
		if n > 0 {
			d.Value = value
			sum.Counters.ZerosShortened += n
		}
	}
}

// ShortenZero strips redundant zeros from the numeric tokens of value and
// collapses zero lengths whose unit is in units to a bare 0. It returns the
// new value and the number of tokens rewritten.
func ShortenZero(value string, units map[string]bool) (string, int) {
	changed := 0
	out := cssvalue.MapUnprotected(value, func(seg string) string {
		s, n := shortenZeroSegment(seg, units)
		changed += n
		return s
	}, zeroProtected...)
	return out, changed
}

func shortenZeroSegment(seg string, units map[string]bool) (string, int) {
	var sb strings.Builder
	changed := 0
	for i := 0; i < len(seg); {
		if !numberBoundary(seg, i) || !cssvalue.IsNumeric(seg[i:]) {
			sb.WriteByte(seg[i])
			i++
			continue
		}
		j := scanNumber(seg, i)
		k := j
		for k < len(seg) && (isLetter(seg[k]) || seg[k] == '%') {
			k++
		}
		if k < len(seg) && (isDigit(seg[k]) || seg[k] == '-' || seg[k] == '_' || seg[k] == '.') {
			// Not a plain dimension, e.g. 1e3 or a hyphenated identifier.
			sb.WriteString(seg[i:k])
			i = k
			continue
		}
		token := seg[i:k]
		short := shortenNumber(seg[i:j], seg[j:k], units)
		if short != token {
			changed++
		}
		sb.WriteString(short)
		i = k
	}
	return sb.String(), changed
}

// numberBoundary reports whether a number may start at i.
func numberBoundary(s string, i int) bool {
	if i == 0 {
		return true
	}
	switch s[i-1] {
	case ' ', '\t', '\n', ',', '(', '/':
		return true
	}
	return false
}

func scanNumber(s string, i int) int {
	if s[i] == '-' || s[i] == '+' {
		i++
	}
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	return i
}

func shortenNumber(num, unit string, units map[string]bool) string {
	sign := ""
	if num[0] == '-' || num[0] == '+' {
		sign, num = num[:1], num[1:]
	}
	intPart, frac, _ := strings.Cut(num, ".")
	if strings.Trim(intPart+frac, "0") == "" {
		if unit == "" || units[strings.ToLower(unit)] {
			return "0"
		}
		return "0" + unit
	}
	if intPart != "" {
		intPart = strings.TrimLeft(intPart, "0")
		if intPart == "" {
			intPart = "0"
		}
	}
	frac = strings.TrimRight(frac, "0")
	if frac != "" {
		return sign + intPart + "." + frac + unit
	}
	return sign + intPart + unit
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
