package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/julianshen/mermaidfix/internal/output"
	"github.com/julianshen/mermaidfix/internal/store"
	"github.com/julianshen/mermaidfix/internal/tui"
)

// usePretty reports whether terminal styling applies. An explicit --pretty
// wins; otherwise the config decides, and only when stdout is a terminal.
func usePretty(cmd *cobra.Command, a *app) bool {
	if cmd.Flags().Changed("pretty") {
		pretty, _ := cmd.Flags().GetBool("pretty")
		return pretty
	}
	return a.cfg.Output.Pretty && isTerminal(cmd.OutOrStdout())
}

// writeReports formats each report and writes it to the command output.
// Markdown output is rendered through glamour when pretty is set.
func writeReports(cmd *cobra.Command, a *app, reports []*output.Report, format string, pretty bool) error {
	if format == "" {
		format = a.cfg.Output.Format
	}
	formatter, err := output.NewFormatter(format)
	if err != nil {
		return err
	}

	var md *tui.MarkdownRenderer
	if pretty {
		if _, ok := formatter.(*output.MarkdownFormatter); ok {
			md, err = tui.NewMarkdownRenderer(terminalWidth(cmd.OutOrStdout()), "auto")
			if err != nil {
				return err
			}
		}
	}

	out := cmd.OutOrStdout()
	for _, r := range reports {
		data, err := formatter.Format(r)
		if err != nil {
			return fmt.Errorf("formatting output: %w", err)
		}
		text := string(data)
		if md != nil {
			if text, err = md.Render(text); err != nil {
				return fmt.Errorf("rendering output: %w", err)
			}
		}
		fmt.Fprint(out, text)
	}
	return nil
}

// recordReports journals reports. Journal failures are logged and never fail
// the command.
func recordReports(a *app, reports []*output.Report) {
	path := a.cfg.Journal.JournalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		a.log.Warn("journal unavailable", zap.String("path", path), zap.Error(err))
		return
	}
	s, err := store.NewStore(path)
	if err != nil {
		a.log.Warn("journal unavailable", zap.String("path", path), zap.Error(err))
		return
	}
	defer s.Close()

	for _, r := range reports {
		id, err := s.RecordReport(r)
		if err != nil {
			a.log.Warn("journaling report failed", zap.String("source", r.Source), zap.Error(err))
			continue
		}
		a.log.Debug("journaled report", zap.String("source", r.Source), zap.String("run_id", id))
	}
}

func journalRequested(cmd *cobra.Command, a *app) bool {
	if cmd.Flags().Changed("journal") {
		on, _ := cmd.Flags().GetBool("journal")
		return on
	}
	return a.cfg.Journal.Enabled
}
