// Package mermaid repairs Mermaid diagram source produced by language models.
// It classifies diagram text into a family, applies family-specific heuristic
// repairs, splits concatenated diagrams apart and reports structural problems.
// Every entry point is a pure string transformation that degrades gracefully:
// malformed input produces best-effort output, never an error.
package mermaid

import (
	"fmt"
	"regexp"
	"strings"
)

// Family is the diagram sub-grammar a block of text belongs to.
type Family int

const (
	FamilyUnknown Family = iota
	FamilySequence
	FamilyFlow
	FamilyClass
	FamilyER
	FamilyState
)

// String returns the short configuration name of the family.
func (f Family) String() string {
	switch f {
	case FamilySequence:
		return "sequence"
	case FamilyFlow:
		return "flowchart"
	case FamilyClass:
		return "class"
	case FamilyER:
		return "er"
	case FamilyState:
		return "state"
	default:
		return "unknown"
	}
}

// Key returns the prefix used when naming diagrams of this family in a
// DiagramMap. Unknown diagrams use "diagram".
func (f Family) Key() string {
	switch f {
	case FamilySequence:
		return "sequenceDiagram"
	case FamilyFlow:
		return "flowchart"
	case FamilyClass:
		return "classDiagram"
	case FamilyER:
		return "erDiagram"
	case FamilyState:
		return "stateDiagram"
	default:
		return "diagram"
	}
}

// ParseFamily maps a configuration name back to a Family.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequence", "sequencediagram":
		return FamilySequence, nil
	case "flowchart", "flow", "graph":
		return FamilyFlow, nil
	case "class", "classdiagram":
		return FamilyClass, nil
	case "er", "erdiagram", "entity-relationship":
		return FamilyER, nil
	case "state", "statediagram":
		return FamilyState, nil
	default:
		return FamilyUnknown, fmt.Errorf("unknown diagram family: %q", s)
	}
}

// typeKeywords is the closed vocabulary of diagram type keywords, in match
// priority order.
var typeKeywords = []string{
	"graph",
	"flowchart",
	"sequenceDiagram",
	"classDiagram",
	"erDiagram",
	"stateDiagram",
	"gantt",
	"pie",
	"journey",
	"gitGraph",
	"requirement",
	"mindmap",
	"timeline",
	"quadrantChart",
	"sankey",
	"C4Context",
	"C4Container",
}

// keywordRes holds one word-start matcher per entry of typeKeywords.
var keywordRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(typeKeywords))
	for i, kw := range typeKeywords {
		res[i] = regexp.MustCompile(`\b` + strings.ToLower(kw))
	}
	return res
}()

// DetectType returns the diagram type keyword found on the first non-blank
// line of text, skipping %% comment and directive lines. The first keyword
// of the vocabulary that matches wins.
func DetectType(text string) (string, bool) {
	line := strings.ToLower(firstNonBlankLine(text))
	if line == "" {
		return "", false
	}
	for i, re := range keywordRes {
		if re.MatchString(line) {
			return typeKeywords[i], true
		}
	}
	return "", false
}

// Classify maps text to its diagram family. Recognised types that have no
// dedicated repairer (gantt, pie, ...) classify as FamilyUnknown.
func Classify(text string) Family {
	kw, ok := DetectType(text)
	if !ok {
		return FamilyUnknown
	}
	switch kw {
	case "graph", "flowchart":
		return FamilyFlow
	case "sequenceDiagram":
		return FamilySequence
	case "classDiagram":
		return FamilyClass
	case "erDiagram":
		return FamilyER
	case "stateDiagram":
		return FamilyState
	default:
		return FamilyUnknown
	}
}

func firstNonBlankLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "%%") {
			return trimmed
		}
	}
	return ""
}
