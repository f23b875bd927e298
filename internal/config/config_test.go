package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/mermaidfix/internal/mermaid"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, []string{"er", "sequence", "flowchart", "class", "state"}, cfg.Repair.SplitOrder)
	assert.Equal(t, []string{"error", "response", "unauthorized", "confirmed"}, cfg.Repair.QuoteKeywords)
	assert.Equal(t, 10, cfg.Repair.MinBlockLength)
	assert.Equal(t, 100, cfg.Repair.HeaderLookback)
	assert.Equal(t, "<br/>", cfg.Repair.LineBreakToken)
	assert.Equal(t, "markdown", cfg.Output.Format)
	assert.False(t, cfg.Journal.Enabled)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.Equal(t, []string{".md", ".mmd"}, cfg.Watch.Extensions)
	assert.Equal(t, "dev", cfg.Log.Mode)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestDefaultRepairOptionsMatchEngine(t *testing.T) {
	opts, err := DefaultConfig().Repair.Options()
	require.NoError(t, err)
	assert.Equal(t, mermaid.DefaultOptions(), opts)
}

func TestLoadFromFile(t *testing.T) {
	tomlContent := `
[repair]
split_order = ["sequence", "er"]
quote_keywords = ["timeout"]
min_block_length = 20

[output]
format = "json"
pretty = true

[journal]
enabled = true
path = "/tmp/journal.db"

[batch]
concurrency = 8

[log]
mode = "prod"
level = "debug"
`
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(tomlContent), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"sequence", "er"}, cfg.Repair.SplitOrder)
	assert.Equal(t, []string{"timeout"}, cfg.Repair.QuoteKeywords)
	assert.Equal(t, 20, cfg.Repair.MinBlockLength)
	// Defaults should still be set for fields not specified in TOML
	assert.Equal(t, 100, cfg.Repair.HeaderLookback)
	assert.Equal(t, []string{".md", ".mmd"}, cfg.Watch.Extensions)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Pretty)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, "/tmp/journal.db", cfg.Journal.JournalPath())
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	assert.Equal(t, "prod", cfg.Log.Mode)

	opts, err := cfg.Repair.Options()
	require.NoError(t, err)
	assert.Equal(t, []mermaid.Family{mermaid.FamilySequence, mermaid.FamilyER}, opts.SplitOrder)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.Output.Format)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
}

func TestLoadInvalidTOML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("[invalid toml..."), 0644))

	_, err := Load(tmpFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoadRejectsUnknownFamily(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("[repair]\nsplit_order = [\"gantt\"]\n"), 0644))

	_, err := Load(tmpFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repair.split_order")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Output.Format = "json"
	cfg.Batch.Concurrency = 2

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestJournalPathDefault(t *testing.T) {
	assert.Equal(t, filepath.Join(Dir(), "journal.db"), JournalConfig{}.JournalPath())
	assert.Equal(t, filepath.Join(Dir(), "config.toml"), DefaultPath())
}
