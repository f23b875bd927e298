package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// markdownExtensions hold prose with fenced diagrams; any other file is
// treated as a single bare diagram.
var markdownExtensions = []string{".md", ".markdown"}

// Rewrite repairs content the way RewriteFile would for a file named path.
func (r *Runner) Rewrite(path, content string) (string, bool) {
	if HasExtension(path, markdownExtensions) {
		return r.repairer.RewriteMarkdown(content)
	}
	if strings.TrimSpace(content) == "" {
		return content, false
	}
	fixed := r.repairer.Fix(content)
	return fixed, fixed != content
}

// RewriteFile repairs path in place and reports whether it was modified.
// Files already in repaired form are left untouched, so rewriting the output
// of a previous run is a no-op.
func (r *Runner) RewriteFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("rewriting %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("rewriting %s: %w", path, err)
	}

	fixed, changed := r.Rewrite(path, string(data))
	if !changed {
		r.log.Debug("source already repaired", zap.String("source", path))
		return false, nil
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(fixed), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("rewriting %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return false, fmt.Errorf("rewriting %s: %w", path, err)
	}
	r.log.Info("rewrote source", zap.String("source", filepath.Clean(path)))
	return true, nil
}
