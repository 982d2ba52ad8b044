package cssvalue

import (
	"strings"
)

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

var widthKeywords = map[string]bool{"thin": true, "medium": true, "thick": true}

var listStylePositions = map[string]bool{"inside": true, "outside": true}

// IsNumeric reports whether token starts like a CSS number or dimension.
func IsNumeric(token string) bool {
	if token == "" {
		return false
	}
	i := 0
	if token[0] == '-' || token[0] == '+' {
		i++
	}
	if i < len(token) && token[i] == '.' {
		i++
	}
	return i < len(token) && token[i] >= '0' && token[i] <= '9'
}

// IsLength reports whether token can be a border or outline width.
func IsLength(token string) bool {
	t := strings.ToLower(token)
	return IsNumeric(t) || widthKeywords[t] || strings.HasPrefix(t, "calc(")
}

// IsBorderStyle reports whether token is a border-style keyword.
func IsBorderStyle(token string) bool {
	return borderStyles[strings.ToLower(token)]
}

// IsVariable reports whether the value references a custom property.
func IsVariable(value string) bool {
	return strings.Contains(strings.ToLower(value), "var(")
}

// SplitLine classifies the tokens of a border, border side or outline value
// into width, style and color. It fails when two tokens claim the same slot.
func SplitLine(value string) ([3]string, bool) {
	var out [3]string
	for _, tok := range Split(value) {
		slot := 2
		switch {
		case IsBorderStyle(tok):
			slot = 1
		case IsLength(tok):
			slot = 0
		}
		if out[slot] != "" {
			return out, false
		}
		out[slot] = tok
	}
	return out, true
}

// SplitListStyle classifies list-style tokens into type, position and image.
func SplitListStyle(value string) ([3]string, bool) {
	var out [3]string
	for _, tok := range Split(value) {
		t := strings.ToLower(tok)
		slot := 0
		switch {
		case listStylePositions[t]:
			slot = 1
		case strings.HasPrefix(t, "url(") || HasGradient(t):
			slot = 2
		}
		if out[slot] != "" {
			return out, false
		}
		out[slot] = tok
	}
	return out, true
}
