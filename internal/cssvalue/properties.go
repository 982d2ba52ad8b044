package cssvalue

import "strings"

// colorProperties lists properties whose values may hold color tokens.
var colorProperties = map[string]bool{
	"color":                 true,
	"background":            true,
	"background-color":      true,
	"background-image":      true,
	"border":                true,
	"border-color":          true,
	"border-top":            true,
	"border-right":          true,
	"border-bottom":         true,
	"border-left":           true,
	"border-top-color":      true,
	"border-right-color":    true,
	"border-bottom-color":   true,
	"border-left-color":     true,
	"border-block":          true,
	"border-block-color":    true,
	"border-inline":         true,
	"border-inline-color":   true,
	"outline":               true,
	"outline-color":         true,
	"box-shadow":            true,
	"text-shadow":           true,
	"text-decoration":       true,
	"text-decoration-color": true,
	"column-rule":           true,
	"column-rule-color":     true,
	"caret-color":           true,
	"fill":                  true,
	"stroke":                true,
}

// ColorKeyword returns the six digit hex form of a color name. Extended
// names are only looked up when extended is set.
func ColorKeyword(name string, extended bool) (string, bool) {
	name = strings.ToLower(name)
	if hex, ok := standardColors[name]; ok {
		return hex, true
	}
	if extended {
		hex, ok := extendedColors[name]
		return hex, ok
	}
	return "", false
}

// IsColorBearing reports whether property may carry a color value.
func IsColorBearing(property string) bool {
	property = strings.ToLower(property)
	if colorProperties[property] {
		return true
	}
	// Vendor prefixed variants, e.g. -webkit-box-shadow
	if strings.HasPrefix(property, "-") {
		if i := strings.Index(property[1:], "-"); i >= 0 {
			return colorProperties[property[i+2:]]
		}
	}
	return false
}
