package mermaid

import (
	"regexp"
	"strings"
)

var statePatterns = struct {
	transition   *regexp.Regexp
	bare         *regexp.Regexp
	idAsLabel    *regexp.Regexp
	labelAsID    *regexp.Regexp
	compositeBeg *regexp.Regexp
}{
	transition:   regexp.MustCompile(`^(\S+?)\s*-->\s*(\S+?)\s*:\s*(.*)$`),
	bare:         regexp.MustCompile(`^(\S+?)\s*-->\s*(\S+)$`),
	idAsLabel:    regexp.MustCompile(`^state\s+(\w+)\s+as\s+"?([^"]+?)"?$`),
	labelAsID:    regexp.MustCompile(`^state\s+"([^"]+)"\s+as\s+(\w+)$`),
	compositeBeg: regexp.MustCompile(`\{$`),
}

type stateState struct {
	inDiagram bool
	depth     int
}

func (s stateState) step(line string) (stateState, []string) {
	trimmed := strings.TrimSpace(line)
	if !s.inDiagram {
		if strings.Contains(trimmed, "stateDiagram") {
			s.inDiagram = true
		}
		return s, []string{trimmed}
	}
	if trimmed == "" {
		return s, []string{""}
	}
	if trimmed == "}" {
		if s.depth == 0 {
			return s, nil
		}
		s.depth--
		return s, []string{indent(1+s.depth) + "}"}
	}
	out := indent(1+s.depth) + formatStateLine(trimmed)
	if statePatterns.compositeBeg.MatchString(trimmed) {
		s.depth++
	}
	return s, []string{out}
}

func repairState(text string) string {
	var (
		st  stateState
		out []string
	)
	for _, line := range strings.Split(text, "\n") {
		var emitted []string
		st, emitted = st.step(line)
		out = append(out, emitted...)
	}
	for d := st.depth - 1; d >= 0; d-- {
		out = append(out, indent(1+d)+"}")
	}
	return strings.Join(out, "\n")
}

func formatStateLine(line string) string {
	if m := statePatterns.labelAsID.FindStringSubmatch(line); m != nil {
		return `state "` + strings.TrimSpace(m[1]) + `" as ` + m[2]
	}
	if m := statePatterns.idAsLabel.FindStringSubmatch(line); m != nil {
		return `state "` + strings.TrimSpace(m[2]) + `" as ` + m[1]
	}
	if m := statePatterns.transition.FindStringSubmatch(line); m != nil {
		label := strings.TrimSpace(strings.ReplaceAll(m[3], `"`, ""))
		if label == "" {
			return m[1] + " --> " + m[2]
		}
		if strings.ContainsAny(label, " \t") {
			label = `"` + label + `"`
		}
		return m[1] + " --> " + m[2] + " : " + label
	}
	if m := statePatterns.bare.FindStringSubmatch(line); m != nil {
		return m[1] + " --> " + m[2]
	}
	return line
}
