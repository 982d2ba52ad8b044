package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/csspurge"
	"github.com/yacobolo/csspurge/internal/options"
	"github.com/yacobolo/csspurge/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Optimize stylesheets",
	Long: `Read every stylesheet matched by --css, optimize their concatenation and
write the result to --output (or stdout).`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runPurge,
}

func init() {
	addRunFlags(runCmd.Flags())
}

// addRunFlags registers the flags shared by the root, run and watch
// commands. Option flags default to options.Defaults().
func addRunFlags(f *pflag.FlagSet) {
	d := options.Defaults()
	f.StringSlice("css", nil, "Glob patterns of input stylesheets")
	f.StringSlice("html", nil, "Glob patterns of HTML documents for unused selector removal")
	f.StringP("output", "o", "", "Output file (default: stdout)")
	f.String("format", "summary", "Report format: summary|full|json|none")
	f.Bool("shorten", d.Shorten, "Enable every shorthand and value reduction")
	f.Bool("trim", d.Trim, "Minify the output")
	f.Bool("special-reduce-with-html", d.SpecialReduceWithHTML, "Remove selectors unused by the --html documents")
	f.Bool("special-convert-rem", d.SpecialConvertRem, "Convert px font sizes to rem")
	f.Bool("move-common-declarations-into-parent", d.MoveCommonDeclarationsIntoParent, "Hoist declarations shared by .parent .child rules")
	f.Bool("generate-report", d.GenerateReport, "Write the JSON report")
	f.String("report-file-location", d.ReportFileLocation, "JSON report path")
	f.String("reduce-declarations-file-location", "", "YAML or JSON file with reduce_declarations settings")
}

func runPurge(cmd *cobra.Command, _ []string) error {
	useColors := report.ShouldUseColors(k.Bool("color"))
	log := newLogger(cmd.ErrOrStderr(), k.Bool("verbose"), k.Bool("quiet"), useColors)
	defer func() { _ = log.Sync() }()

	config, err := buildPurgeConfig(log)
	if err != nil {
		return err
	}

	result, err := csspurge.Purge(config)
	if err != nil {
		return err
	}
	return writeResult(cmd, config, result, useColors)
}

// writeResult prints the stylesheet when no output file is set, then the
// run report. The report goes to stderr whenever stdout carries CSS.
func writeResult(cmd *cobra.Command, config csspurge.Config, result *csspurge.Result, useColors bool) error {
	var w io.Writer = cmd.OutOrStdout()
	if config.Output == "" {
		fmt.Fprintln(w, result.CSS)
		w = cmd.ErrOrStderr()
	}

	format := csspurge.DetermineOutputFormat(k.String("format"), k.Bool("quiet"))
	return csspurge.WriteOutput(w, result, format, config.Options, useColors)
}
