// internal/runner/repair.go
package runner

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/julianshen/mermaidfix/internal/mermaid"
	"github.com/julianshen/mermaidfix/internal/output"
)

// Runner repairs one source at a time and collects a Report.
type Runner struct {
	repairer *mermaid.Repairer
	log      *zap.Logger
}

// NewRunner creates a Runner. A nil logger disables logging.
func NewRunner(repairer *mermaid.Repairer, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{repairer: repairer, log: log}
}

// Run extracts and repairs every diagram of content.
func (r *Runner) Run(ctx context.Context, source, content string) *output.Report {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return errorReport(source, start, err)
	}

	m := r.repairer.ParseAndFix(content)
	report := output.NewReport(source, m, time.Since(start))
	r.log.Info("repaired source",
		zap.String("source", source),
		zap.Int("diagrams", len(report.Diagrams)),
		zap.Int("invalid", report.Invalid()))
	return report
}

// RunFile reads path and repairs it. Read failures are recorded on the
// report rather than returned.
func (r *Runner) RunFile(ctx context.Context, path string) *output.Report {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		r.log.Warn("reading source failed", zap.String("source", path), zap.Error(err))
		return errorReport(path, start, err)
	}
	return r.Run(ctx, path, string(data))
}

// Check validates content as a single diagram without repairing it.
func (r *Runner) Check(source, content string) *output.Report {
	start := time.Now()
	m := mermaid.NewDiagramMap()
	m.Set("diagram1", content)
	return output.NewReport(source, m, time.Since(start))
}

func errorReport(source string, start time.Time, err error) *output.Report {
	return &output.Report{
		Source:     source,
		Diagrams:   []output.DiagramResult{},
		DurationMs: time.Since(start).Milliseconds(),
		Error:      err.Error(),
	}
}
