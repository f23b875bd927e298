package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/mermaidfix/internal/output"
)

func sampleReport(source string) *output.Report {
	return &output.Report{
		Source:     source,
		DurationMs: 12,
		Diagrams: []output.DiagramResult{
			{Key: "erDiagram1", Family: "er", Content: "erDiagram\n    A ||--o{ B : \"has\"", Valid: true},
			{Key: "diagram2", Family: "unknown", Content: "A[x", Valid: false,
				Issues: []string{"No valid diagram type detected", "Mismatched square brackets: 1 '[' vs 0 ']'"}},
		},
	}
}

func TestNewStoreInMemory(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.NoError(t, s.Close())
}

func TestRecordReportAssignsRunID(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	report := sampleReport("doc.md")
	id, err := s.RecordReport(report)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, report.RunID)

	other, err := s.RecordReport(sampleReport("doc.md"))
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestGetRun(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	id, err := s.RecordReport(sampleReport("doc.md"))
	require.NoError(t, err)

	run, diagrams, err := s.GetRun(id)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "doc.md", run.Source)
	assert.Equal(t, 2, run.DiagramCount)
	assert.Equal(t, 1, run.InvalidCount)
	assert.Equal(t, int64(12), run.DurationMs)
	assert.WithinDuration(t, time.Now(), run.CreatedAt, 24*time.Hour)

	require.Len(t, diagrams, 2)
	assert.Equal(t, "erDiagram1", diagrams[0].Key)
	assert.True(t, diagrams[0].Valid)
	assert.Empty(t, diagrams[0].Issues)
	assert.Equal(t, "diagram2", diagrams[1].Key)
	assert.False(t, diagrams[1].Valid)
	assert.Equal(t, []string{"No valid diagram type detected", "Mismatched square brackets: 1 '[' vs 0 ']'"}, diagrams[1].Issues)
	assert.Equal(t, "A[x", diagrams[1].Content)
}

func TestGetRunNotFound(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	run, diagrams, err := s.GetRun("nonexistent")
	require.NoError(t, err)
	assert.Nil(t, run)
	assert.Nil(t, diagrams)
}

func TestRecordReportWithError(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	id, err := s.RecordReport(&output.Report{Source: "missing.md", Error: "open missing.md: no such file"})
	require.NoError(t, err)

	run, diagrams, err := s.GetRun(id)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "open missing.md: no such file", run.Error)
	assert.Zero(t, run.DiagramCount)
	assert.Empty(t, diagrams)
}

func TestListRunsNewestFirst(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	for _, src := range []string{"a.md", "b.md", "c.md"} {
		_, err := s.RecordReport(sampleReport(src))
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c.md", runs[0].Source)
	assert.Equal(t, "b.md", runs[1].Source)

	all, err := s.ListRuns(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListRunsEmpty(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestFamilyStats(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.RecordReport(sampleReport("a.md"))
	require.NoError(t, err)
	_, err = s.RecordReport(&output.Report{Source: "b.md", Diagrams: []output.DiagramResult{
		{Key: "erDiagram1", Family: "er", Content: "erDiagram", Valid: false, Issues: []string{"x"}},
	}})
	require.NoError(t, err)

	stats, err := s.FamilyStats()
	require.NoError(t, err)
	assert.Equal(t, []FamilyStat{
		{Family: "er", Total: 2, Invalid: 1},
		{Family: "unknown", Total: 1, Invalid: 1},
	}, stats)
}

func TestDeleteRun(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	id, err := s.RecordReport(sampleReport("doc.md"))
	require.NoError(t, err)
	require.NoError(t, s.DeleteRun(id))

	run, _, err := s.GetRun(id)
	require.NoError(t, err)
	assert.Nil(t, run)

	stats, err := s.FamilyStats()
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestForeignKeyEnforcement(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.db.Exec(
		`INSERT INTO run_diagrams (run_id, position, key, family, content, valid) VALUES (?, ?, ?, ?, ?, ?)`,
		"nonexistent-run", 0, "diagram1", "unknown", "x", false,
	)
	require.Error(t, err, "foreign key constraint should reject orphan diagram")
}

func TestStoreOperationsAfterClose(t *testing.T) {
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.RecordReport(sampleReport("x"))
	assert.Error(t, err, "RecordReport after close should fail")

	_, _, err = s.GetRun("x")
	assert.Error(t, err, "GetRun after close should fail")

	_, err = s.ListRuns(10)
	assert.Error(t, err, "ListRuns after close should fail")

	_, err = s.FamilyStats()
	assert.Error(t, err, "FamilyStats after close should fail")

	assert.Error(t, s.DeleteRun("x"), "DeleteRun after close should fail")
}
