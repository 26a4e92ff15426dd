package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"synscan/internal/diagfmt"
	"synscan/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:          "watch [directory]",
	Short:        "Re-check files under a directory whenever they change",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	watchCmd.Flags().String("lang", "", "force a language label or tag instead of detection")
	watchCmd.Flags().Bool("strict-semicolons", false, "report missing semicolons in languages where they are optional")
	watchCmd.Flags().StringSlice("exclude", nil, "doublestar patterns to skip, relative to the directory")
	watchCmd.Flags().Bool("codes", false, "show diagnostic codes")
	watchCmd.Flags().Duration("debounce", 0, "quiet period before re-checking (default from synscan.toml, 100ms)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	var flags checkFlags
	var err error
	if flags.label, err = cmd.Flags().GetString("lang"); err != nil {
		return fmt.Errorf("failed to get lang flag: %w", err)
	}
	if flags.strictSemicolons, err = cmd.Flags().GetBool("strict-semicolons"); err != nil {
		return fmt.Errorf("failed to get strict-semicolons flag: %w", err)
	}
	if flags.exclude, err = cmd.Flags().GetStringSlice("exclude"); err != nil {
		return fmt.Errorf("failed to get exclude flag: %w", err)
	}
	codes, err := cmd.Flags().GetBool("codes")
	if err != nil {
		return fmt.Errorf("failed to get codes flag: %w", err)
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}

	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}
	opts, err := baseDriverOptions(cmd, cfg)
	if err != nil {
		return err
	}
	if err := flags.apply(&opts); err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = cfg.WatchDebounce
	}

	w, err := watch.New(dir, watch.Options{
		Driver:   opts,
		Debounce: debounce,
		Out:      cmd.OutOrStdout(),
		Err:      cmd.ErrOrStderr(),
		Problems: diagfmt.ProblemsOpts{Color: useColor(cmd), Codes: codes},
	})
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Run(ctx)
}
