package cssvalue

import "strings"

// MapUnprotected applies fn to every part of value outside quoted strings
// and outside calls to the named functions (lowercase, without '('). Protected
// parts are copied verbatim.
func MapUnprotected(value string, fn func(string) string, functions ...string) string {
	var sb strings.Builder
	free := 0
	for i := 0; i < len(value); {
		c := value[i]
		if c == '"' || c == '\'' {
			end := skipString(value, i)
			sb.WriteString(fn(value[free:i]))
			sb.WriteString(value[i:end])
			i, free = end, end
			continue
		}
		if name, ok := functionAt(value, i, functions); ok {
			end := skipCall(value, i+len(name))
			sb.WriteString(fn(value[free:i]))
			sb.WriteString(value[i:end])
			i, free = end, end
			continue
		}
		i++
	}
	sb.WriteString(fn(value[free:]))
	return sb.String()
}

// functionAt reports which of functions starts at i, including its '('.
func functionAt(value string, i int, functions []string) (string, bool) {
	if i > 0 && isIdentByte(value[i-1]) {
		return "", false
	}
	for _, f := range functions {
		call := f + "("
		if len(value)-i >= len(call) && strings.EqualFold(value[i:i+len(call)], call) {
			return call, true
		}
	}
	return "", false
}

// skipString returns the index after the string literal starting at i.
func skipString(value string, i int) int {
	quote := value[i]
	for j := i + 1; j < len(value); j++ {
		switch value[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		}
	}
	return len(value)
}

// skipCall returns the index after the ')' balancing an already consumed '('
// at i-1.
func skipCall(value string, i int) int {
	depth := 1
	for j := i; j < len(value); j++ {
		switch value[j] {
		case '"', '\'':
			j = skipString(value, j) - 1
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j + 1
			}
		}
	}
	return len(value)
}
