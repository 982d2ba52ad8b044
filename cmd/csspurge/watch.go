package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yacobolo/csspurge"
	"github.com/yacobolo/csspurge/internal/report"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-optimize whenever an input changes",
	Long: `Run once, then again on every change to a stylesheet or HTML document in a
watched directory. Stop with Ctrl+C.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	addRunFlags(watchCmd.Flags())
}

func runWatch(cmd *cobra.Command, _ []string) error {
	useColors := report.ShouldUseColors(k.Bool("color"))
	log := newLogger(cmd.ErrOrStderr(), k.Bool("verbose"), k.Bool("quiet"), useColors)
	defer func() { _ = log.Sync() }()

	config, err := buildPurgeConfig(log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return csspurge.Watch(ctx, config, func(result *csspurge.Result, err error) {
		if err != nil {
			printError(cmd.ErrOrStderr(), err)
			return
		}
		if err := writeResult(cmd, config, result, useColors); err != nil {
			log.Error("writing result", zap.Error(err))
		}
	})
}
