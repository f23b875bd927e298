// internal/output/formatter.go
package output

import (
	"fmt"
	"time"

	"github.com/julianshen/mermaidfix/internal/mermaid"
)

// Report holds the repaired diagrams extracted from one source.
type Report struct {
	Source     string          `json:"source"`
	RunID      string          `json:"run_id,omitempty"`
	Diagrams   []DiagramResult `json:"diagrams"`
	DurationMs int64           `json:"duration_ms"`
	Error      string          `json:"error,omitempty"`
}

// DiagramResult is one repaired diagram with its validation outcome.
type DiagramResult struct {
	Key         string   `json:"key"`
	Family      string   `json:"family"`
	Content     string   `json:"content"`
	Valid       bool     `json:"valid"`
	Issues      []string `json:"issues,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// NewReport validates every diagram of m and collects the results in map
// order.
func NewReport(source string, m *mermaid.DiagramMap, elapsed time.Duration) *Report {
	r := &Report{Source: source, Diagrams: []DiagramResult{}, DurationMs: elapsed.Milliseconds()}
	for key, content := range m.All() {
		v := mermaid.Validate(content)
		r.Diagrams = append(r.Diagrams, DiagramResult{
			Key:         key,
			Family:      mermaid.Classify(content).String(),
			Content:     content,
			Valid:       v.Valid,
			Issues:      v.Issues,
			Suggestions: v.Suggestions,
		})
	}
	return r
}

// Invalid returns the number of diagrams that still fail validation.
func (r *Report) Invalid() int {
	n := 0
	for _, d := range r.Diagrams {
		if !d.Valid {
			n++
		}
	}
	return n
}

// DiagramMap rebuilds the ordered name to diagram map of the report.
func (r *Report) DiagramMap() *mermaid.DiagramMap {
	m := mermaid.NewDiagramMap()
	for _, d := range r.Diagrams {
		m.Set(d.Key, d.Content)
	}
	return m
}

// Formatter formats a Report into output bytes.
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case "", "markdown", "md":
		return NewMarkdownFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "map":
		return NewMapFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", name)
	}
}
