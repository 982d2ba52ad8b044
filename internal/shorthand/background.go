package shorthand

import (
	"strings"

	"github.com/yacobolo/csspurge/internal/cssast"
	"github.com/yacobolo/csspurge/internal/cssvalue"
	"github.com/yacobolo/csspurge/internal/options"
	"github.com/yacobolo/csspurge/internal/summary"
)

// Background slot indexes.
const (
	bgColor = iota
	bgImage
	bgRepeat
	bgAttachment
	bgPosition
)

var (
	bgRepeats     = map[string]bool{"repeat": true, "repeat-x": true, "repeat-y": true, "no-repeat": true, "space": true, "round": true}
	bgAttachments = map[string]bool{"scroll": true, "fixed": true, "local": true}
	bgPositions   = map[string]bool{"left": true, "right": true, "top": true, "bottom": true, "center": true}
	bgBoxes       = map[string]bool{"border-box": true, "padding-box": true, "content-box": true, "text": true}
)

func backgroundFamily(minLonghands int) *Family {
	return &Family{
		Name: "background",
		Longhands: []string{
			"background-color", "background-image", "background-repeat",
			"background-attachment", "background-position",
		},
		Decompose: decomposeBackground,
		Compose:   composeBackground,
		Complete: func(slots []string) bool {
			n := 0
			for _, s := range slots {
				if s != "" {
					n++
				}
			}
			return n >= minLonghands
		},
		Guard: func(matched []*cssast.Declaration) string {
			for _, d := range matched {
				if cssvalue.HasGradient(d.Value) {
					return "gradient"
				}
			}
			return ""
		},
		Overlaps: []string{"background-position-x", "background-position-y"},
		Resets:   []string{"background-size", "background-origin", "background-clip"},
		Enabled:  func(o options.Options) bool { return o.ShortenEnabled(o.ShortenBackground) },
		Count:    func(c *summary.Counters) { c.BackgroundsShortened++ },
	}
}

func isColorToken(token string) bool {
	t := strings.ToLower(token)
	if strings.HasPrefix(t, "#") || t == "transparent" || t == "currentcolor" {
		return true
	}
	for _, fn := range []string{"rgb(", "rgba(", "hsl(", "hsla(", "hwb(", "lab(", "lch(", "oklab(", "oklch(", "color("} {
		if strings.HasPrefix(t, fn) {
			return true
		}
	}
	_, ok := cssvalue.ColorKeyword(t, true)
	return ok
}

// decomposeBackground handles single-layer values without size or box
// components.
func decomposeBackground(value string) ([]string, error) {
	if len(cssvalue.SplitCommas(value)) > 1 || strings.Contains(value, "/") {
		return nil, errUnsupported
	}
	slots := make([]string, 5)
	set := func(slot int, tok string) error {
		if slots[slot] != "" {
			return errUnsupported
		}
		slots[slot] = tok
		return nil
	}
	for _, tok := range cssvalue.Split(value) {
		t := strings.ToLower(tok)
		var err error
		switch {
		case bgBoxes[t]:
			return nil, errUnsupported
		case t == "none" || strings.HasPrefix(t, "url(") || strings.HasPrefix(t, "image-set("):
			err = set(bgImage, tok)
		case bgRepeats[t]:
			slots[bgRepeat] = strings.TrimSpace(slots[bgRepeat] + " " + tok)
		case bgAttachments[t]:
			err = set(bgAttachment, tok)
		case bgPositions[t] || cssvalue.IsNumeric(t):
			slots[bgPosition] = strings.TrimSpace(slots[bgPosition] + " " + tok)
		case isColorToken(t):
			err = set(bgColor, tok)
		default:
			return nil, errUnsupported
		}
		if err != nil {
			return nil, err
		}
	}
	return slots, nil
}

// composeBackground joins the slots. Comma separated longhands produce one
// layer per entry, with the color in the final layer.
func composeBackground(slots []string) (string, bool) {
	layers := 1
	lists := make([][]string, len(slots))
	for i, s := range slots {
		if s == "" {
			continue
		}
		lists[i] = cssvalue.SplitCommas(s)
		if n := len(lists[i]); n > 1 {
			if i == bgColor || (layers > 1 && n != layers) {
				return "", false
			}
			layers = n
		}
	}
	if layers == 1 {
		return joinFilled(slots), true
	}

	out := make([]string, layers)
	for l := 0; l < layers; l++ {
		layer := make([]string, len(slots))
		for i, list := range lists {
			switch {
			case len(list) == 0:
			case i == bgColor:
				if l == layers-1 {
					layer[i] = list[0]
				}
			case len(list) == 1:
				layer[i] = list[0]
			default:
				layer[i] = list[l]
			}
		}
		if out[l] = joinFilled(layer); out[l] == "" {
			return "", false
		}
	}
	return strings.Join(out, ", "), true
}
