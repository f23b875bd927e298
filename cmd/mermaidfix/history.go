package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/julianshen/mermaidfix/internal/output"
	"github.com/julianshen/mermaidfix/internal/store"
)

func historyCmd() *cobra.Command {
	var (
		limitFlag  int
		statsFlag  bool
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Review journaled repair runs",
		Long: `List the runs recorded in the repair journal, show one run in full, or
with --stats count journaled diagrams per family.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			path := a.cfg.Journal.JournalPath()
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("no journal at %s: run parse or batch with --journal first", path)
			}
			s, err := store.NewStore(path)
			if err != nil {
				return fmt.Errorf("opening journal: %w", err)
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			switch {
			case statsFlag:
				stats, err := s.FamilyStats()
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "FAMILY\tTOTAL\tINVALID")
				for _, st := range stats {
					fmt.Fprintf(w, "%s\t%d\t%d\n", st.Family, st.Total, st.Invalid)
				}
				return w.Flush()

			case len(args) == 1:
				run, diagrams, err := s.GetRun(args[0])
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("run %s not found", args[0])
				}
				report := &output.Report{
					Source:     run.Source,
					RunID:      run.ID,
					DurationMs: run.DurationMs,
					Error:      run.Error,
					Diagrams:   make([]output.DiagramResult, 0, len(diagrams)),
				}
				for _, d := range diagrams {
					report.Diagrams = append(report.Diagrams, output.DiagramResult{
						Key:     d.Key,
						Family:  d.Family,
						Content: d.Content,
						Valid:   d.Valid,
						Issues:  d.Issues,
					})
				}
				return writeReports(cmd, a, []*output.Report{report}, formatFlag, false)

			default:
				runs, err := s.ListRuns(limitFlag)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded.")
					return nil
				}
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tCREATED\tSOURCE\tDIAGRAMS\tINVALID")
				for _, r := range runs {
					source := filepath.Base(r.Source)
					if r.Error != "" {
						source += " (error)"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
						r.ID, r.CreatedAt.Format("2006-01-02 15:04"), source, r.DiagramCount, r.InvalidCount)
				}
				return w.Flush()
			}
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 20, "number of runs to list (0 for all)")
	cmd.Flags().BoolVar(&statsFlag, "stats", false, "count journaled diagrams per family")
	cmd.Flags().StringVar(&formatFlag, "format", "", "output format for a single run: markdown, json, map")
	return cmd
}
