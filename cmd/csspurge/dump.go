package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/csspurge/internal/cssast"
	"github.com/yacobolo/csspurge/internal/pipeline"
	"github.com/yacobolo/csspurge/internal/summary"
)

var dumpCmd = &cobra.Command{
	Use:   "dump FILE...",
	Short: "Print the parsed tree of stylesheets",
	Long: `Parse each stylesheet and print its rules, groupings and declarations as a
tree. With --optimized the tree is printed after the optimizer ran.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().Bool("optimized", false, "Dump the tree after optimization")
}

func runDump(cmd *cobra.Command, args []string) error {
	optimized, _ := cmd.Flags().GetBool("optimized")
	opts, err := buildOptions()
	if err != nil {
		return err
	}

	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		sheet, err := cssast.NewParser(nil).Parse(src, path)
		if err != nil {
			return err
		}
		if optimized {
			if err := pipeline.New(opts, nil, nil).Run(sheet, summary.New()); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		fmt.Fprint(cmd.OutOrStdout(), cssast.Dump(sheet))
	}
	return nil
}
