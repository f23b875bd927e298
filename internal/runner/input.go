// internal/runner/input.go
package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoInput is returned when no source provided any text.
var ErrNoInput = errors.New("no input provided: use --text, a file argument, or pipe to stdin")

// ResolveInput determines the text to repair from the available sources.
// Priority: text > filePath > stdinReader.
// stdinReader may be nil if stdin is a TTY (no pipe). The text is returned
// untrimmed so markdown rewrites keep the document's own layout.
func ResolveInput(text, filePath string, stdinReader io.Reader) (string, error) {
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("reading input file: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", fmt.Errorf("input file is empty: %s: %w", filePath, ErrNoInput)
		}
		return string(data), nil
	}

	if stdinReader != nil {
		data, err := io.ReadAll(stdinReader)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) != "" {
			return string(data), nil
		}
	}

	return "", ErrNoInput
}
