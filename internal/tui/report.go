package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianshen/mermaidfix/internal/output"
)

const maxDiagramLines = 20

// ReportRenderer renders repair reports as bordered boxes, one per diagram,
// with a green border for valid diagrams and a red one for the rest.
type ReportRenderer struct {
	width      int
	validBox   lipgloss.Style
	invalidBox lipgloss.Style
	header     lipgloss.Style
	issue      lipgloss.Style
	suggestion lipgloss.Style
	muted      lipgloss.Style
}

// NewReportRenderer creates a renderer with the given terminal width.
func NewReportRenderer(width int) *ReportRenderer {
	boxWidth := width - 4
	if boxWidth < 20 {
		boxWidth = 20
	}
	base := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(boxWidth).
		Padding(0, 1)

	return &ReportRenderer{
		width:      width,
		validBox:   base.BorderForeground(lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#66BB6A"}),
		invalidBox: base.BorderForeground(lipgloss.Color("#FF0000")),
		header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#EEEEEE"}),
		issue:      lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF5350"}),
		suggestion: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}),
		muted:      lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}),
	}
}

// RenderDiagram renders one diagram with its validation outcome. Long
// diagrams are cut to the first lines.
func (r *ReportRenderer) RenderDiagram(d output.DiagramResult) string {
	mark := "✓"
	box := r.validBox
	if !d.Valid {
		mark = "✗"
		box = r.invalidBox
	}

	var b strings.Builder
	b.WriteString(r.header.Render(fmt.Sprintf("%s %s (%s)", mark, d.Key, d.Family)))
	b.WriteString("\n\n")

	lines := strings.Split(d.Content, "\n")
	if len(lines) > maxDiagramLines {
		hidden := len(lines) - maxDiagramLines
		lines = append(lines[:maxDiagramLines], r.muted.Render(fmt.Sprintf("[%d more lines]", hidden)))
	}
	b.WriteString(strings.Join(lines, "\n"))

	if len(d.Issues) > 0 {
		b.WriteString("\n")
		for _, issue := range d.Issues {
			b.WriteString("\n" + r.issue.Render("• "+issue))
		}
		for _, s := range d.Suggestions {
			b.WriteString("\n" + r.suggestion.Render("→ "+s))
		}
	}
	return box.Render(b.String()) + "\n"
}

// RenderReport renders every diagram of report followed by a summary line.
func (r *ReportRenderer) RenderReport(report *output.Report) string {
	var b strings.Builder
	b.WriteString(r.header.Render(report.Source) + "\n")

	if report.Error != "" {
		b.WriteString(r.invalidBox.Render(r.issue.Render("error: "+report.Error)) + "\n")
		return b.String()
	}

	for _, d := range report.Diagrams {
		b.WriteString(r.RenderDiagram(d))
	}
	summary := fmt.Sprintf("%d diagram(s), %d invalid, %dms", len(report.Diagrams), report.Invalid(), report.DurationMs)
	b.WriteString(r.muted.Render(summary) + "\n")
	return b.String()
}
