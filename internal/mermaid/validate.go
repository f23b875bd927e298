package mermaid

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationResult reports structural problems of a diagram. Validation is
// advisory: it never changes the text.
type ValidationResult struct {
	Valid       bool     `json:"valid"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

var validatePatterns = struct {
	subgraph *regexp.Regexp
	end      *regexp.Regexp
	numbered *regexp.Regexp
}{
	subgraph: regexp.MustCompile(`(?m)^[ \t]*subgraph\b`),
	end:      regexp.MustCompile(`(?m)^[ \t]*end[ \t]*$`),
	numbered: regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]`),
}

// Validate runs the structural checks against diagram.
func Validate(diagram string) ValidationResult {
	res := ValidationResult{Issues: []string{}, Suggestions: []string{}}
	add := func(issue, suggestion string) {
		res.Issues = append(res.Issues, issue)
		if suggestion != "" {
			res.Suggestions = append(res.Suggestions, suggestion)
		}
	}

	if _, ok := DetectType(diagram); !ok {
		add("No valid diagram type detected",
			"Start the diagram with a type keyword such as graph TD, sequenceDiagram or erDiagram")
	}

	if open, closed := strings.Count(diagram, "["), strings.Count(diagram, "]"); open != closed {
		add(fmt.Sprintf("Mismatched square brackets: %d '[' vs %d ']'", open, closed),
			"Close every '[' node label with a matching ']'")
	}

	if n := strings.Count(diagram, `"`); n%2 != 0 {
		add(fmt.Sprintf("Unbalanced double quotes: %d found", n),
			"Make sure every quoted label has an opening and a closing quote")
	}

	if strings.Contains(diagram, "subgraph") {
		subs := len(validatePatterns.subgraph.FindAllStringIndex(diagram, -1))
		ends := len(validatePatterns.end.FindAllStringIndex(diagram, -1))
		if subs != ends {
			add(fmt.Sprintf("Mismatched subgraph blocks: %d subgraph vs %d end", subs, ends),
				"Add an end line for every subgraph")
		}
	}

	if validatePatterns.numbered.MatchString(diagram) {
		add("Numbered list markers found at line starts",
			"Remove list numbering such as '1. ' from diagram lines")
	}

	if occ := scanOccurrences(diagram); len(occ) > 1 {
		names := make([]string, len(occ))
		for i, o := range occ {
			names[i] = o.keyword
		}
		add(fmt.Sprintf("Multiple diagram headers found: %s", strings.Join(names, ", ")),
			"Split the content so each diagram is rendered on its own")
	}

	res.Valid = len(res.Issues) == 0
	return res
}
