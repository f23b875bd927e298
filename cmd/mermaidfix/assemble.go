package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julianshen/mermaidfix/internal/wiki"
)

func assembleCmd() *cobra.Command {
	var (
		textFlag   string
		titleFlag  string
		formatFlag string
		outputFlag string
	)

	defaults := wiki.DefaultRendererConfig()
	cmd := &cobra.Command{
		Use:   "assemble [file]",
		Short: "Assemble repaired diagrams into documentation pages",
		Long: `Extract and repair every diagram of generated text, sort them into the
architecture, database, user-flow and sequence pages by name or diagram type,
and write the pages as plain markdown or as a Hugo or Docusaurus site.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			_, content, err := resolveSource(cmd, textFlag, args)
			if err != nil {
				return err
			}

			docs := wiki.Assemble(titleFlag, a.repairer.ParseAndFix(content))
			cfg := wiki.RendererConfig{Format: formatFlag, OutputDir: outputFlag, SiteTitle: titleFlag}
			if err := wiki.Render(docs, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d document(s) to %s\n", len(docs), outputFlag)
			return nil
		},
	}

	cmd.Flags().StringVar(&textFlag, "text", "", "generated text to assemble")
	cmd.Flags().StringVar(&titleFlag, "title", defaults.SiteTitle, "title of the index page")
	cmd.Flags().StringVar(&formatFlag, "format", defaults.Format, "output format: raw-md, hugo, docusaurus")
	cmd.Flags().StringVar(&outputFlag, "output", defaults.OutputDir, "output directory")
	return cmd
}
