package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/julianshen/mermaidfix/internal/output"
	"github.com/julianshen/mermaidfix/internal/runner"
)

func batchCmd() *cobra.Command {
	var (
		formatFlag      string
		concurrencyFlag int
		inPlaceFlag     bool
		strictFlag      bool
	)

	cmd := &cobra.Command{
		Use:   "batch <path>...",
		Short: "Repair many files in parallel",
		Long: `Collect every file with a watched extension under the given paths, repair
them in parallel and print one report per file in path order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			files, err := runner.CollectFiles(args, a.cfg.Watch.Extensions)
			if err != nil {
				return err
			}

			concurrency := a.cfg.Batch.Concurrency
			if cmd.Flags().Changed("concurrency") {
				concurrency = concurrencyFlag
			}

			fn := a.runner.RunFile
			if inPlaceFlag {
				fn = func(ctx context.Context, path string) *output.Report {
					if _, err := a.runner.RewriteFile(path); err != nil {
						a.log.Warn("in-place repair failed", zap.String("source", path), zap.Error(err))
					}
					return a.runner.RunFile(ctx, path)
				}
			}

			reports := runner.RunBatch(cmd.Context(), files, concurrency, fn)
			if journalRequested(cmd, a) {
				recordReports(a, reports)
			}
			if err := writeReports(cmd, a, reports, formatFlag, usePretty(cmd, a)); err != nil {
				return err
			}

			invalid := 0
			for _, r := range reports {
				invalid += r.Invalid()
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d file(s), %d invalid diagram(s)\n", len(reports), invalid)

			if code := runner.ExitCodeFromReports(reports, strictFlag); code != 0 {
				return &runner.ExitError{Code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "", "output format: markdown, json, map (default from config)")
	cmd.Flags().IntVar(&concurrencyFlag, "concurrency", 4, "max files repaired in parallel (default from config)")
	cmd.Flags().BoolVarP(&inPlaceFlag, "in-place", "i", false, "rewrite files before reporting")
	cmd.Flags().BoolVar(&strictFlag, "strict", false, "exit 1 when any repaired diagram is still invalid")
	cmd.Flags().Bool("pretty", false, "render markdown output for the terminal")
	cmd.Flags().Bool("journal", false, "record the runs in the repair journal")
	return cmd
}
