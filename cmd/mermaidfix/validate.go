package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julianshen/mermaidfix/internal/output"
	"github.com/julianshen/mermaidfix/internal/runner"
	"github.com/julianshen/mermaidfix/internal/tui"
)

func validateCmd() *cobra.Command {
	var (
		textFlag   string
		fixFlag    bool
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a single diagram for common syntax problems",
		Long: `Run the heuristic validator over one diagram and list the issues found
with a suggestion for each. Exits with status 1 when the diagram is invalid.`,
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
			if fixFlag {
				content = a.repairer.Fix(content)
			}

			report := a.runner.Check(source, content)
			reports := []*output.Report{report}
			if usePretty(cmd, a) && (formatFlag == "" || formatFlag == "markdown") {
				r := tui.NewReportRenderer(terminalWidth(cmd.OutOrStdout()))
				fmt.Fprint(cmd.OutOrStdout(), r.RenderReport(report))
			} else if err := writeReports(cmd, a, reports, formatFlag, false); err != nil {
				return err
			}

			if code := runner.ExitCodeFromReports(reports, true); code != 0 {
				return &runner.ExitError{Code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&textFlag, "text", "", "diagram text to validate")
	cmd.Flags().BoolVar(&fixFlag, "fix", false, "repair the diagram before validating")
	cmd.Flags().StringVar(&formatFlag, "format", "", "output format: markdown, json, map (default from config)")
	cmd.Flags().Bool("pretty", false, "render styled output for the terminal")
	return cmd
}
