// internal/runner/batch.go
package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/julianshen/mermaidfix/internal/output"
)

// SourceFunc produces the report for one path.
type SourceFunc func(ctx context.Context, path string) *output.Report

// RunBatch runs fn over paths with at most concurrency goroutines. Reports
// are returned in the order of paths. Paths not yet started when ctx is
// cancelled get an error report.
func RunBatch(ctx context.Context, paths []string, concurrency int, fn SourceFunc) []*output.Report {
	if concurrency < 1 {
		concurrency = 1
	}
	reports := make([]*output.Report, len(paths))

	p := pool.New().WithMaxGoroutines(concurrency)
	for i, path := range paths {
		p.Go(func() {
			if err := ctx.Err(); err != nil {
				reports[i] = &output.Report{Source: path, Diagrams: []output.DiagramResult{}, Error: err.Error()}
				return
			}
			reports[i] = fn(ctx, path)
		})
	}
	p.Wait()
	return reports
}

// CollectFiles expands roots into a sorted, de-duplicated list of files.
// Directories are walked recursively and only files whose extension is in
// exts are kept; files named explicitly are always kept.
func CollectFiles(roots, exts []string) ([]string, error) {
	var files []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("collecting files: %w", err)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if HasExtension(path, exts) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// HasExtension reports whether path ends in one of exts, compared
// case-insensitively. An empty exts matches everything.
func HasExtension(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
