// internal/output/markdown.go
package output

import (
	"fmt"
	"strings"
)

// MarkdownFormatter outputs a Report as human-readable Markdown with every
// diagram in a mermaid fence.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format renders the Report as Markdown.
func (f *MarkdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	if report.Error != "" {
		b.WriteString("## Error\n\n")
		b.WriteString(report.Error)
		b.WriteString("\n")
		return []byte(b.String()), nil
	}

	if report.Source != "" {
		b.WriteString(fmt.Sprintf("# %s\n\n", report.Source))
	}

	for _, d := range report.Diagrams {
		b.WriteString(fmt.Sprintf("## %s (%s)\n\n", d.Key, d.Family))
		b.WriteString("```mermaid\n")
		b.WriteString(d.Content)
		if !strings.HasSuffix(d.Content, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("```\n\n")
		if len(d.Issues) > 0 {
			b.WriteString("**Issues**\n\n")
			for _, issue := range d.Issues {
				b.WriteString("- " + issue + "\n")
			}
			b.WriteString("\n")
		}
		if len(d.Suggestions) > 0 {
			b.WriteString("**Suggestions**\n\n")
			for _, s := range d.Suggestions {
				b.WriteString("- " + s + "\n")
			}
			b.WriteString("\n")
		}
	}

	diagramLabel := "diagrams"
	if len(report.Diagrams) == 1 {
		diagramLabel = "diagram"
	}
	b.WriteString(fmt.Sprintf("---\n*%d %s, %d invalid, %dms*\n",
		len(report.Diagrams), diagramLabel, report.Invalid(), report.DurationMs))

	return []byte(b.String()), nil
}
