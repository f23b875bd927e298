// internal/runner/repair_test.go
package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/julianshen/mermaidfix/internal/mermaid"
)

func TestRunnerRun(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewRunner(mermaid.DefaultRepairer(), zap.New(core))

	report := r.Run(context.Background(), "stdin", "```mermaid\ngraph TD\nA-->B\n```")
	assert.Equal(t, "stdin", report.Source)
	assert.Empty(t, report.Error)
	require.Len(t, report.Diagrams, 1)
	assert.Equal(t, "diagram1", report.Diagrams[0].Key)
	assert.Equal(t, "graph TD\n    A --> B\n", report.Diagrams[0].Content)
	assert.True(t, report.Diagrams[0].Valid)

	entries := logs.FilterMessage("repaired source").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["diagrams"])
}

func TestRunnerRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := NewRunner(mermaid.DefaultRepairer(), nil).Run(ctx, "stdin", "graph TD\nA-->B")
	assert.Contains(t, report.Error, "context canceled")
	assert.Empty(t, report.Diagrams)
}

func TestRunnerRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "er.md")
	require.NoError(t, os.WriteFile(path, []byte("erDiagram\nA ||--o{ B : x\nerDiagram\nC ||--o{ D : y"), 0644))

	r := NewRunner(mermaid.DefaultRepairer(), nil)
	report := r.RunFile(context.Background(), path)
	assert.Equal(t, path, report.Source)
	require.Len(t, report.Diagrams, 2)
	assert.Equal(t, "erDiagram1", report.Diagrams[0].Key)
	assert.Equal(t, "er", report.Diagrams[0].Family)

	missing := r.RunFile(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
	assert.NotEmpty(t, missing.Error)
}

func TestRunnerCheckDoesNotRepair(t *testing.T) {
	report := NewRunner(mermaid.DefaultRepairer(), nil).Check("stdin", "graph TD\nA[Start --> B")
	require.Len(t, report.Diagrams, 1)
	assert.Equal(t, "graph TD\nA[Start --> B", report.Diagrams[0].Content)
	assert.False(t, report.Diagrams[0].Valid)
}
