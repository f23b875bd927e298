package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/mermaidfix/internal/config"
	"github.com/julianshen/mermaidfix/internal/runner"
)

// tempConfig writes a default config whose journal lives in a temp dir and
// returns the config path.
func tempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Journal.Path = filepath.Join(dir, "journal.db")
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, config.Save(path, cfg))
	return path
}

// executeCmd runs the root command with args and returns everything written
// to stdout and stderr.
func executeCmd(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	var exitErr *runner.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, code, exitErr.Code)
}

func TestVersionString(t *testing.T) {
	s := versionString()
	assert.Contains(t, s, "mermaidfix")
	assert.Contains(t, s, version)
	assert.Contains(t, s, commit)
	assert.Contains(t, s, date)
}

func TestVersionStringDefaults(t *testing.T) {
	s := versionString()
	assert.Contains(t, s, "dev")
	assert.Contains(t, s, "none")
	assert.Contains(t, s, "unknown")
}

func TestVersionCmd(t *testing.T) {
	out, err := executeCmd(t, tempConfig(t), "", "version")
	require.NoError(t, err)
	assert.Equal(t, versionString()+"\n", out)
}

func TestRootRegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range newRootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"fix", "validate", "parse", "batch", "watch", "history", "assemble", "init", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, writeFile(path, "[repair]\nsplit_order = [\"gantt\"]\n"))

	_, err := executeCmd(t, path, "", "fix", "--text", "graph TD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestInitWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := executeCmd(t, path, "", "init")
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+"\n", out)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	_, err = executeCmd(t, path, "", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeCmd(t, path, "", "init", "--force")
	require.NoError(t, err)
}
