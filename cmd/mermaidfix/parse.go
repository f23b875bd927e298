package main

import (
	"github.com/spf13/cobra"

	"github.com/julianshen/mermaidfix/internal/output"
	"github.com/julianshen/mermaidfix/internal/runner"
)

func parseCmd() *cobra.Command {
	var (
		textFlag   string
		formatFlag string
		strictFlag bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Extract, repair and validate every diagram in generated text",
		Long: `Extract every diagram from generated text (fenced blocks, concatenated
diagrams or bare headers), repair each one and report its validation result.
Use --format map for the plain name to diagram mapping.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			source, content, err := resolveSource(cmd, textFlag, args)
			if err != nil {
				return err
			}

			reports := []*output.Report{a.runner.Run(cmd.Context(), source, content)}
			if journalRequested(cmd, a) {
				recordReports(a, reports)
			}
			if err := writeReports(cmd, a, reports, formatFlag, usePretty(cmd, a)); err != nil {
				return err
			}

			if code := runner.ExitCodeFromReports(reports, strictFlag); code != 0 {
				return &runner.ExitError{Code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&textFlag, "text", "", "generated text to parse")
	cmd.Flags().StringVar(&formatFlag, "format", "", "output format: markdown, json, map (default from config)")
	cmd.Flags().BoolVar(&strictFlag, "strict", false, "exit 1 when any repaired diagram is still invalid")
	cmd.Flags().Bool("pretty", false, "render markdown output for the terminal")
	cmd.Flags().Bool("journal", false, "record the run in the repair journal")
	return cmd
}
