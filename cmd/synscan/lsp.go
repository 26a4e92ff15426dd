package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"synscan/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the synscan language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func init() {
	lspCmd.Flags().Bool("verbose", false, "log every check to stderr")
	lspCmd.Flags().Bool("strict-semicolons", false, "report missing semicolons in languages where they are optional")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	strict, err := cmd.Flags().GetBool("strict-semicolons")
	if err != nil {
		return fmt.Errorf("failed to get strict-semicolons flag: %w", err)
	}
	cfg, err := loadConfig(cmd, ".")
	if err != nil {
		return err
	}
	opts, err := baseDriverOptions(cmd, cfg)
	if err != nil {
		return err
	}
	if err := (checkFlags{strictSemicolons: strict}).apply(&opts); err != nil {
		return err
	}

	server := lsp.NewServer(lsp.ServerOptions{
		Debounce: cfg.LSPDebounce,
		Driver:   opts,
		Verbose:  verbose,
	})
	if err := server.Serve(cmd.Context(), lsp.Stdio()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
