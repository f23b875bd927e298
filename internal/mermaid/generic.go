package mermaid

import "strings"

var smartQuotes = strings.NewReplacer(
	"“", `"`, "”", `"`, "„", `"`, "«", `"`, "»", `"`,
	"‘", "'", "’", "'", "‚", "'",
)

// repairGeneric handles text of no known family: quote characters are
// normalised and unmatched '[' are closed on the last non-blank line.
func repairGeneric(text string) string {
	text = smartQuotes.Replace(text)
	missing := strings.Count(text, "[") - strings.Count(text, "]")
	if missing <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			lines[i] += strings.Repeat("]", missing)
			break
		}
	}
	return strings.Join(lines, "\n")
}
