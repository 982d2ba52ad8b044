package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .csspurge.yaml config file",
	Long:  `Create a .csspurge.yaml configuration file in the current directory with the default options.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created "+defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# csspurge configuration
# Docs: https://github.com/yacobolo/csspurge

# Inputs and output
css:
  - "web/styles/**/*.css"
html: []                   # documents checked by special_reduce_with_html
output: dist/site.css      # empty prints to stdout
format: summary            # summary | full | json | none

# Shorthands and values (shorten enables every shorten_* option)
shorten: true
shorten_zero: false
shorten_hexcolor: false
shorten_hexcolor_uppercase: false
shorten_hexcolor_extended_names: true
shorten_font: false
shorten_background: false
shorten_background_min: 2
shorten_margin: false
shorten_padding: false
shorten_list_style: false
shorten_outline: false
shorten_border: false
shorten_border_top: false
shorten_border_right: false
shorten_border_bottom: false
shorten_border_left: false
shorten_border_radius: false
format_font_family: true

# Output (trim enables every trim_* option)
trim: true
trim_comments: false
trim_whitespace: false
trim_breaklines: false
trim_last_semicolon: false
trim_removed_rules_previous_comment: true

# Scopes the de-duplicator leaves alone
bypass_media_rules: false
bypass_document_rules: false
bypass_supports_rules: false
bypass_page_rules: false
bypass_charset: false

# px to rem
special_convert_rem: false
special_convert_rem_browser_default_px: 16
special_convert_rem_desired_html_px: 10
special_convert_rem_font_size: true

# Unused selectors
special_reduce_with_html: false
special_reduce_with_html_ignore_selectors:
  - ":-ms-"
  - "::-moz-"
  - "::-webkit-"
  - "::"
  - ":valid"
  - ":invalid"
  - ":checked"
  - ":focus"
  - ":hover"
  - ":active"
  - ":visited"

zero_units: "em, ex, %, px, cm, mm, in, pt, pc, ch, rem, vh, vw, vmin, vmax"
zero_ignore_declaration:
  - filter

move_common_declarations_into_parent: false

# Same-named declarations collapsed to the winning one
reduce_declarations:
  declaration_names:
    - font
    - margin
    - padding
    - list-style
    - outline
    - border
    - border-top
    - border-right
    - border-bottom
    - border-left
    - border-radius
    - border-color
    - border-style
    - border-width
  selectors: {}            # selector: [properties], "*" for all
# reduce_declarations_file_location: reduce.json

generate_report: false
report_file_location: csspurge_report.json
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
