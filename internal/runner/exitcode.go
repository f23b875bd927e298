package runner

import (
	"fmt"

	"github.com/julianshen/mermaidfix/internal/output"
)

// ExitError is returned when the CLI should exit with a non-zero code.
// Using a typed error instead of os.Exit ensures deferred cleanup runs.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCodeFromReports returns 1 if any report carries an error, or, when
// strict is set, if any repaired diagram still fails validation. It returns 0
// otherwise.
func ExitCodeFromReports(reports []*output.Report, strict bool) int {
	for _, r := range reports {
		if r == nil {
			continue
		}
		if r.Error != "" {
			return 1
		}
		if strict && r.Invalid() > 0 {
			return 1
		}
	}
	return 0
}
