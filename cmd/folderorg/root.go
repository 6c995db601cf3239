package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"folderorg/internal/config"
	"folderorg/internal/orchestrator"
	"folderorg/internal/output"
	"folderorg/internal/prompt"
)

func newRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "folderorg <directory>",
		Short: "Sort the files of a directory into subdirectories",
		Long: `folderorg moves every file directly inside <directory> into a subdirectory
named after its extension (--sort type) or its creation date (--sort date).
Every action is appended to the activity log. After a real run the moves can
be undone once.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(ctx, args[0])
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&ctx.cfgFile, "config", "", "Configuration file (default $HOME/.folderorg.yaml)")
	flags.StringP("sort", "s", "type", "Sort by file type or creation date (type|date)")
	flags.BoolP("dry-run", "n", false, "Log the moves that would be made without touching any file")
	flags.String("log-file", "", "Activity log path (default file_organizer.log)")
	flags.String("undo", "", "Offer to undo the run: ask, always or never (default ask)")
	flags.BoolP("verbose", "v", false, "List every file as it is processed")

	for _, key := range []string{config.KeySort, config.KeyDryRun, config.KeyLogFile, config.KeyUndo, config.KeyVerbose} {
		_ = ctx.v.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.AddCommand(newWatchCommand(ctx))
	return rootCmd
}

func runOrganize(ctx *commandContext, directory string) error {
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

	result, err := run.Organize()
	if err != nil {
		return err
	}
	return finishRun(ctx, cfg, out, run, result)
}

func runOptions(cfg *config.Config) orchestrator.Options {
	opts := orchestrator.Options{
		Directory: cfg.Directory,
		Mode:      cfg.Mode,
		DryRun:    cfg.DryRun,
	}
	if p := cfg.LogPath(); p != "" {
		opts.Exclude = []string{p}
	}
	return opts
}

// finishRun prints the summary, applies the undo policy and reports whether
// any file was left behind.
func finishRun(ctx *commandContext, cfg *config.Config, out *output.Output, run *orchestrator.Run, result *orchestrator.RunResult) error {
	summary := orchestrator.GenerateSummary(result, cfg.Verbose)
	out.PrintSummary(summary, result.DryRun)

	if run.CanUndo() {
		undo, err := wantUndo(ctx, cfg, run.Ledger().Len())
		if err != nil {
			return err
		}
		if undo {
			undoResult, err := run.Undo()
			if err != nil {
				return err
			}
			out.PrintUndo(undoResult)
			if undoResult.Failed > 0 {
				return fmt.Errorf("%d moves could not be undone", undoResult.Failed)
			}
			return nil
		}
	}
	run.Finish()

	if summary.HasErrors() {
		return fmt.Errorf("%d files could not be organized", summary.Failed)
	}
	return nil
}

func wantUndo(ctx *commandContext, cfg *config.Config, moves int) (bool, error) {
	switch cfg.UndoPolicy.Resolve(ctx.interactive()) {
	case config.UndoAlways:
		return true, nil
	case config.UndoAsk:
		return prompt.New(ctx.stdin, ctx.stdout).ConfirmUndo(moves)
	default:
		return false, nil
	}
}
