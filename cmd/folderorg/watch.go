package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"folderorg/internal/config"
	"folderorg/internal/orchestrator"
	"folderorg/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Organize a directory, then keep organizing files as they arrive",
		Long: `watch organizes the files already in <directory> and then each new file once
it has stopped changing for the debounce period. Press Ctrl+C to stop; the
whole session can then be undone as one run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(sigCtx, ctx, args[0])
		},
	}

	cmd.Flags().Duration("debounce", watcher.DefaultWatchConfig().Debounce, "Quiet period before a new file is organized")
	cmd.Flags().StringSlice("ignore", nil, "Glob patterns of files to leave alone (default temporary download names)")
	_ = ctx.v.BindPFlag(config.KeyWatchDebounce, cmd.Flags().Lookup("debounce"))
	_ = ctx.v.BindPFlag(config.KeyWatchIgnore, cmd.Flags().Lookup("ignore"))

	return cmd
}

func runWatch(sigCtx context.Context, ctx *commandContext, directory string) error {
	cfg, err := ctx.loadConfig(directory)
	if err != nil {
		return err
	}
	log, closeLog, err := ctx.openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	out := ctx.output(cfg)
	run := orchestrator.NewRun(runOptions(cfg), log).WithObserver(out)
	w := watcher.New(&cfg.Watch, log)

	out.Info("Watching %s (Ctrl+C to stop)", cfg.Directory)
	result, err := run.Watch(sigCtx, w)
	if err != nil {
		return err
	}
	return finishRun(ctx, cfg, out, run, result)
}
