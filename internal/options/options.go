// Package options holds the optimizer configuration shared by every pass.
package options

import "strings"

// Options controls which reductions run and how the result is serialized.
// Keys follow the csspurge configuration file format.
type Options struct {
	// Shortening
	Shorten                      bool `koanf:"shorten" json:"shorten"` // Master switch for every shorten_* option
	ShortenZero                  bool `koanf:"shorten_zero" json:"shorten_zero"`
	ShortenHexColor              bool `koanf:"shorten_hexcolor" json:"shorten_hexcolor"`
	ShortenHexColorUppercase     bool `koanf:"shorten_hexcolor_uppercase" json:"shorten_hexcolor_uppercase"`
	ShortenHexColorExtendedNames bool `koanf:"shorten_hexcolor_extended_names" json:"shorten_hexcolor_extended_names"`
	ShortenFont                  bool `koanf:"shorten_font" json:"shorten_font"`
	ShortenBackground            bool `koanf:"shorten_background" json:"shorten_background"`
	ShortenBackgroundMin         int  `koanf:"shorten_background_min" json:"shorten_background_min"` // Longhands required without a background shorthand
	ShortenMargin                bool `koanf:"shorten_margin" json:"shorten_margin"`
	ShortenPadding               bool `koanf:"shorten_padding" json:"shorten_padding"`
	ShortenListStyle             bool `koanf:"shorten_list_style" json:"shorten_list_style"`
	ShortenOutline               bool `koanf:"shorten_outline" json:"shorten_outline"`
	ShortenBorder                bool `koanf:"shorten_border" json:"shorten_border"`
	ShortenBorderTop             bool `koanf:"shorten_border_top" json:"shorten_border_top"`
	ShortenBorderRight           bool `koanf:"shorten_border_right" json:"shorten_border_right"`
	ShortenBorderBottom          bool `koanf:"shorten_border_bottom" json:"shorten_border_bottom"`
	ShortenBorderLeft            bool `koanf:"shorten_border_left" json:"shorten_border_left"`
	ShortenBorderRadius          bool `koanf:"shorten_border_radius" json:"shorten_border_radius"`
	FormatFontFamily             bool `koanf:"format_font_family" json:"format_font_family"` // Quote multi-word font families

	// Serialization
	Trim                            bool `koanf:"trim" json:"trim"` // Master switch for every trim_* option
	TrimComments                    bool `koanf:"trim_comments" json:"trim_comments"`
	TrimWhitespace                  bool `koanf:"trim_whitespace" json:"trim_whitespace"`
	TrimBreaklines                  bool `koanf:"trim_breaklines" json:"trim_breaklines"`
	TrimLastSemicolon               bool `koanf:"trim_last_semicolon" json:"trim_last_semicolon"`
	TrimRemovedRulesPreviousComment bool `koanf:"trim_removed_rules_previous_comment" json:"trim_removed_rules_previous_comment"`

	// Scopes left untouched by the de-duplicator
	BypassMediaRules    bool `koanf:"bypass_media_rules" json:"bypass_media_rules"`
	BypassDocumentRules bool `koanf:"bypass_document_rules" json:"bypass_document_rules"`
	BypassSupportsRules bool `koanf:"bypass_supports_rules" json:"bypass_supports_rules"`
	BypassPageRules     bool `koanf:"bypass_page_rules" json:"bypass_page_rules"`
	BypassCharset       bool `koanf:"bypass_charset" json:"bypass_charset"`

	// px to rem conversion of font sizes
	SpecialConvertRem                 bool    `koanf:"special_convert_rem" json:"special_convert_rem"`
	SpecialConvertRemBrowserDefaultPx float64 `koanf:"special_convert_rem_browser_default_px" json:"special_convert_rem_browser_default_px"`
	SpecialConvertRemDesiredHTMLPx    float64 `koanf:"special_convert_rem_desired_html_px" json:"special_convert_rem_desired_html_px"`
	SpecialConvertRemFontSize         bool    `koanf:"special_convert_rem_font_size" json:"special_convert_rem_font_size"`

	// Unused selector elimination
	SpecialReduceWithHTML                bool     `koanf:"special_reduce_with_html" json:"special_reduce_with_html"`
	SpecialReduceWithHTMLIgnoreSelectors []string `koanf:"special_reduce_with_html_ignore_selectors" json:"special_reduce_with_html_ignore_selectors"`

	ZeroUnits             string   `koanf:"zero_units" json:"zero_units"` // Comma separated unit suffixes
	ZeroIgnoreDeclaration []string `koanf:"zero_ignore_declaration" json:"zero_ignore_declaration"`

	MoveCommonDeclarationsIntoParent bool `koanf:"move_common_declarations_into_parent" json:"move_common_declarations_into_parent"`

	ReduceDeclarations ReduceDeclarations `koanf:"reduce_declarations" json:"reduce_declarations"`

	GenerateReport     bool   `koanf:"generate_report" json:"generate_report"`
	ReportFileLocation string `koanf:"report_file_location" json:"report_file_location"`
}

// ReduceDeclarations configures by-name duplicate declaration collapsing.
type ReduceDeclarations struct {
	DeclarationNames []string            `koanf:"declaration_names" json:"declaration_names"`
	Selectors        map[string][]string `koanf:"selectors" json:"selectors"` // Selector to property list, "*" for all
}

// AllProperties in a selector-scoped list matches every property.
const AllProperties = "*"

// Defaults returns the options used when no configuration is given.
func Defaults() Options {
	return Options{
		Shorten:                           true,
		ShortenHexColorExtendedNames:      true,
		ShortenBackgroundMin:              2,
		FormatFontFamily:                  true,
		Trim:                              true,
		TrimRemovedRulesPreviousComment:   true,
		SpecialConvertRemBrowserDefaultPx: 16,
		SpecialConvertRemDesiredHTMLPx:    10,
		SpecialConvertRemFontSize:         true,
		SpecialReduceWithHTMLIgnoreSelectors: []string{
			":-ms-", "::-moz-", "::-webkit-", "::", ":valid", ":invalid",
			":checked", ":focus", ":hover", ":active", ":visited",
		},
		ZeroUnits:             "em, ex, %, px, cm, mm, in, pt, pc, ch, rem, vh, vw, vmin, vmax",
		ZeroIgnoreDeclaration: []string{"filter"},
		ReduceDeclarations: ReduceDeclarations{
			DeclarationNames: []string{
				"font", "margin", "padding", "list-style", "outline",
				"border", "border-top", "border-right", "border-bottom", "border-left",
				"border-radius", "border-color", "border-style", "border-width",
			},
			Selectors: map[string][]string{},
		},
		ReportFileLocation: "csspurge_report.json",
	}
}

// ShortenEnabled reports whether a per-family shorten flag is active.
func (o Options) ShortenEnabled(flag bool) bool {
	return o.Shorten || flag
}

// TrimEnabled reports whether a per-feature trim flag is active.
func (o Options) TrimEnabled(flag bool) bool {
	return o.Trim || flag
}

// ZeroUnitList splits ZeroUnits into trimmed, lowercase unit suffixes.
func (o Options) ZeroUnitList() []string {
	var units []string
	for _, u := range strings.Split(o.ZeroUnits, ",") {
		u = strings.ToLower(strings.TrimSpace(u))
		if u != "" {
			units = append(units, u)
		}
	}
	return units
}

// IgnoresZero reports whether zero shortening skips the property.
func (o Options) IgnoresZero(property string) bool {
	for _, p := range o.ZeroIgnoreDeclaration {
		if strings.EqualFold(strings.TrimSpace(p), property) {
			return true
		}
	}
	return false
}

// ReduceByName reports whether duplicates of property are collapsed by name
// inside a rule with the given selector text. Selector-scoped lists take
// precedence over the global declaration name list.
func (o Options) ReduceByName(selector, property string) bool {
	if props, ok := o.ReduceDeclarations.Selectors[selector]; ok {
		for _, p := range props {
			if p == AllProperties || strings.EqualFold(p, property) {
				return true
			}
		}
		return false
	}
	for _, p := range o.ReduceDeclarations.DeclarationNames {
		if strings.EqualFold(p, property) {
			return true
		}
	}
	return false
}

// IgnoredByHTML reports whether selector matches one of the configured
// ignore patterns and must be treated as used.
func (o Options) IgnoredByHTML(selector string) bool {
	for _, pattern := range o.SpecialReduceWithHTMLIgnoreSelectors {
		if pattern != "" && strings.Contains(selector, pattern) {
			return true
		}
	}
	return false
}
