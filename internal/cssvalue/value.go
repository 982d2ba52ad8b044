// Package cssvalue provides shape utilities over raw declaration values:
// token splitting, !important handling, box-side expansion and collapsing.
package cssvalue

import (
	"strings"
)

const important = "!important"

// Split breaks a value on top-level whitespace. Parentheses and quoted
// strings are kept intact.
func Split(value string) []string {
	return split(value, func(c byte) bool {
		return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
	}, false)
}

// SplitCommas breaks a value on top-level commas and trims each part.
func SplitCommas(value string) []string {
	parts := split(value, func(c byte) bool { return c == ',' }, true)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func split(value string, sep func(byte) bool, keepEmpty bool) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && sep(c):
			if keepEmpty || i > start {
				parts = append(parts, value[start:i])
			}
			start = i + 1
		}
	}
	if keepEmpty || start < len(value) {
		parts = append(parts, value[start:])
	}
	return parts
}

// IsImportant reports whether the value carries !important.
func IsImportant(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if !strings.HasSuffix(v, "important") {
		return false
	}
	v = strings.TrimSpace(strings.TrimSuffix(v, "important"))
	return strings.HasSuffix(v, "!")
}

// StripImportant removes a trailing !important and surrounding space.
func StripImportant(value string) string {
	if !IsImportant(value) {
		return strings.TrimSpace(value)
	}
	v := strings.TrimSpace(value)
	v = strings.TrimSpace(v[:len(v)-len("important")])
	return strings.TrimSpace(strings.TrimSuffix(v, "!"))
}

// WithImportant appends !important to value.
func WithImportant(value string) string {
	return value + " " + important
}

// cssWideKeywords are accepted by every property and never combine with
// other tokens.
var cssWideKeywords = []string{"inherit", "initial", "unset", "revert", "revert-layer"}

// IsCSSWideKeyword reports whether token is inherit, initial, unset, revert
// or revert-layer.
func IsCSSWideKeyword(token string) bool {
	t := strings.ToLower(strings.TrimSpace(token))
	for _, kw := range cssWideKeywords {
		if t == kw {
			return true
		}
	}
	return false
}

// HasCSSWideKeyword reports whether the value contains a CSS-wide keyword.
func HasCSSWideKeyword(value string) bool {
	lower := strings.ToLower(value)
	for _, kw := range cssWideKeywords {
		if containsWord(lower, kw) {
			return true
		}
	}
	return false
}

// HasGradient reports whether the value contains a gradient function.
func HasGradient(value string) bool {
	return strings.Contains(strings.ToLower(value), "gradient(")
}

// containsWord reports whether word appears in s delimited by non-identifier bytes.
func containsWord(s, word string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], word)
		if j < 0 {
			return false
		}
		j += i
		end := j + len(word)
		if (j == 0 || !isIdentByte(s[j-1])) && (end == len(s) || !isIdentByte(s[end])) {
			return true
		}
		i = j + 1
	}
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// Box side indexes in top, right, bottom, left order. Corner values use the
// same slots in top-left, top-right, bottom-right, bottom-left order.
const (
	Top = iota
	Right
	Bottom
	Left
)

// Sides expands a 1 to 4 value box shorthand into its four sides. It fails
// for any other count.
func Sides(value string) ([4]string, bool) {
	var sides [4]string
	parts := Split(value)
	switch len(parts) {
	case 1:
		sides = [4]string{parts[0], parts[0], parts[0], parts[0]}
	case 2:
		sides = [4]string{parts[0], parts[1], parts[0], parts[1]}
	case 3:
		sides = [4]string{parts[0], parts[1], parts[2], parts[1]}
	case 4:
		sides = [4]string{parts[0], parts[1], parts[2], parts[3]}
	default:
		return sides, false
	}
	return sides, true
}

// Side returns one side of a box shorthand value, or "" when it cannot be
// expanded.
func Side(value string, side int) string {
	sides, ok := Sides(value)
	if !ok {
		return ""
	}
	return sides[side]
}

// Collapse returns the shortest box shorthand form of four side values.
func Collapse(sides [4]string) []string {
	t, r, b, l := sides[Top], sides[Right], sides[Bottom], sides[Left]
	switch {
	case t == r && r == b && b == l:
		return []string{t}
	case t == b && r == l:
		return []string{t, r}
	case r == l:
		return []string{t, r, b}
	default:
		return []string{t, r, b, l}
	}
}
