package shorthand

import (
	"strings"

	"github.com/yacobolo/csspurge/internal/cssast"
	"github.com/yacobolo/csspurge/internal/cssvalue"
	"github.com/yacobolo/csspurge/internal/options"
	"github.com/yacobolo/csspurge/internal/summary"
)

// Families returns the shorthand families in application order. Border
// sides run first so that four identical sides can merge into border.
func Families(opts options.Options) []*Family {
	return []*Family{
		fontFamily(),
		backgroundFamily(opts.ShortenBackgroundMin),
		boxFamily("margin", func(o options.Options) bool { return o.ShortenEnabled(o.ShortenMargin) },
			func(c *summary.Counters) { c.MarginsShortened++ }),
		boxFamily("padding", func(o options.Options) bool { return o.ShortenEnabled(o.ShortenPadding) },
			func(c *summary.Counters) { c.PaddingsShortened++ }),
		{
			Name:      "list-style",
			Longhands: []string{"list-style-type", "list-style-position", "list-style-image"},
			Reset:     []string{"none", "", ""},
			Decompose: func(value string) ([]string, error) {
				parts, ok := cssvalue.SplitListStyle(value)
				if !ok {
					return nil, errUnsupported
				}
				return parts[:], nil
			},
			Compose:  composeLine,
			Complete: allFilled,
			Enabled:  func(o options.Options) bool { return o.ShortenEnabled(o.ShortenListStyle) },
			Count:    func(c *summary.Counters) { c.ListStylesShortened++ },
		},
		lineFamily("outline", []string{"0", "", ""}, nil,
			func(o options.Options) bool { return o.ShortenEnabled(o.ShortenOutline) },
			func(c *summary.Counters) { c.OutlinesShortened++ }),
		borderSide("top", func(o options.Options) bool { return o.ShortenEnabled(o.ShortenBorderTop) },
			func(c *summary.Counters) { c.BorderTopsShortened++ }),
		borderSide("right", func(o options.Options) bool { return o.ShortenEnabled(o.ShortenBorderRight) },
			func(c *summary.Counters) { c.BorderRightsShortened++ }),
		borderSide("bottom", func(o options.Options) bool { return o.ShortenEnabled(o.ShortenBorderBottom) },
			func(c *summary.Counters) { c.BorderBottomsShortened++ }),
		borderSide("left", func(o options.Options) bool { return o.ShortenEnabled(o.ShortenBorderLeft) },
			func(c *summary.Counters) { c.BorderLeftsShortened++ }),
		borderFamily(),
		radiusFamily(),
	}
}

// boxFamily builds margin and padding: four sides in top, right, bottom,
// left order.
func boxFamily(name string, enabled func(options.Options) bool, count func(*summary.Counters)) *Family {
	return &Family{
		Name:      name,
		Longhands: []string{name + "-top", name + "-right", name + "-bottom", name + "-left"},
		Decompose: decomposeSides,
		Compose:   composeSides,
		Complete:  allFilled,
		Overlaps: []string{
			name + "-block", name + "-inline",
			name + "-block-start", name + "-block-end",
			name + "-inline-start", name + "-inline-end",
		},
		Enabled: enabled,
		Count:   count,
	}
}

func radiusFamily() *Family {
	return &Family{
		Name: "border-radius",
		Longhands: []string{
			"border-top-left-radius", "border-top-right-radius",
			"border-bottom-right-radius", "border-bottom-left-radius",
		},
		Decompose: func(value string) ([]string, error) {
			if strings.Contains(value, "/") {
				return nil, errUnsupported
			}
			return decomposeSides(value)
		},
		Compose:  composeSides,
		Complete: allFilled,
		Guard: func(matched []*cssast.Declaration) string {
			for _, d := range matched {
				if d.Property != "border-radius" && len(cssvalue.Split(cssvalue.StripImportant(d.Value))) != 1 {
					return "elliptical corner"
				}
			}
			return ""
		},
		Overlaps: []string{
			"border-start-start-radius", "border-start-end-radius",
			"border-end-start-radius", "border-end-end-radius",
		},
		Enabled: func(o options.Options) bool { return o.ShortenEnabled(o.ShortenBorderRadius) },
		Count:   func(c *summary.Counters) { c.BorderRadiusShortened++ },
	}
}

func decomposeSides(value string) ([]string, error) {
	sides, ok := cssvalue.Sides(value)
	if !ok {
		return nil, errUnsupported
	}
	return sides[:], nil
}

func composeSides(slots []string) (string, bool) {
	if !allFilled(slots) {
		return "", false
	}
	return strings.Join(cssvalue.Collapse([4]string{slots[0], slots[1], slots[2], slots[3]}), " "), true
}

// lineFamily builds a width, style, color shorthand such as outline.
func lineFamily(name string, reset, overlaps []string, enabled func(options.Options) bool, count func(*summary.Counters)) *Family {
	return &Family{
		Name:      name,
		Longhands: []string{name + "-width", name + "-style", name + "-color"},
		Reset:     reset,
		Decompose: decomposeLine,
		Compose:   composeLine,
		Complete:  allFilled,
		Overlaps:  overlaps,
		Enabled:   enabled,
		Count:     count,
	}
}

func borderSide(side string, enabled func(options.Options) bool, count func(*summary.Counters)) *Family {
	reset := []string{"none", "", ""}
	if side == "right" {
		reset = []string{"0", "", ""}
	}
	return lineFamily("border-"+side, reset,
		[]string{"border", "border-width", "border-style", "border-color"},
		enabled, count)
}

func borderFamily() *Family {
	var overlaps []string
	for _, side := range []string{"top", "right", "bottom", "left"} {
		overlaps = append(overlaps, "border-"+side,
			"border-"+side+"-width", "border-"+side+"-style", "border-"+side+"-color")
	}
	f := lineFamily("border", []string{"0", "", ""}, overlaps,
		func(o options.Options) bool { return o.ShortenEnabled(o.ShortenBorder) },
		func(c *summary.Counters) { c.BordersShortened++ })
	f.Resets = []string{"border-image"}
	f.Guard = func(matched []*cssast.Declaration) string {
		for _, d := range matched {
			if d.Property != "border" && len(cssvalue.Split(cssvalue.StripImportant(d.Value))) != 1 {
				return "per-side " + d.Property
			}
		}
		return ""
	}
	return f
}

func decomposeLine(value string) ([]string, error) {
	parts, ok := cssvalue.SplitLine(value)
	if !ok {
		return nil, errUnsupported
	}
	return parts[:], nil
}

func composeLine(slots []string) (string, bool) {
	return joinFilled(slots), true
}
