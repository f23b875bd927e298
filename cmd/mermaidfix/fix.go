package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/julianshen/mermaidfix/internal/runner"
)

func fixCmd() *cobra.Command {
	var (
		textFlag    string
		inPlaceFlag bool
	)

	cmd := &cobra.Command{
		Use:   "fix [file]",
		Short: "Repair a diagram or the mermaid blocks of a markdown document",
		Long: `Repair a single diagram, or every fenced mermaid block of a markdown
document, and print the result. With --in-place the file is rewritten only
when something changed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			if inPlaceFlag {
				if len(args) == 0 {
					return fmt.Errorf("--in-place needs a file argument")
				}
				changed, err := a.runner.RewriteFile(args[0])
				if err != nil {
					return err
				}
				status := "unchanged"
				if changed {
					status = "fixed"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", status, args[0])
				return nil
			}

			source, content, err := resolveSource(cmd, textFlag, args)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), fixContent(a, source, content))
			return nil
		},
	}

	cmd.Flags().StringVar(&textFlag, "text", "", "diagram text to repair")
	cmd.Flags().BoolVarP(&inPlaceFlag, "in-place", "i", false, "rewrite the file instead of printing")
	return cmd
}

// fixContent treats content as markdown when it comes from a markdown file
// or carries mermaid fences, and as a bare diagram otherwise.
func fixContent(a *app, source, content string) string {
	if runner.HasExtension(source, []string{".md", ".markdown"}) || strings.Contains(content, "```mermaid") {
		fixed, _ := a.repairer.RewriteMarkdown(content)
		return fixed
	}
	return a.repairer.Fix(content)
}
