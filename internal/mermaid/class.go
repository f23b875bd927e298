package mermaid

import (
	"regexp"
	"strings"
)

var classPatterns = struct {
	open          *regexp.Regexp
	method        *regexp.Regexp
	attrColon     *regexp.Regexp
	attrTypeFirst *regexp.Regexp
}{
	open:          regexp.MustCompile(`^class\s+(\S+?)\s*\{$`),
	method:        regexp.MustCompile(`^([+\-#~]?)\s*(\w+)\s*\(([^)]*)\)\s*(?::\s*)?([\w<>\[\],~ ]*?)\s*([$*]?)$`),
	attrColon:     regexp.MustCompile(`^([+\-#~]?)\s*(\w+)\s*:\s*(.+?)\s*(\$?)$`),
	attrTypeFirst: regexp.MustCompile(`^([+\-#~]?)\s*([\w<>\[\],~]+)\s+(\w+)\s*(\$?)$`),
}

type classState struct {
	inDiagram bool
	inBody    bool
}

func (s classState) step(line string) (classState, []string) {
	trimmed := strings.TrimSpace(line)
	switch {
	case !s.inDiagram:
		if strings.Contains(trimmed, "classDiagram") {
			s.inDiagram = true
		}
		return s, []string{trimmed}
	case trimmed == "":
		return s, []string{""}
	case s.inBody && trimmed == "}":
		s.inBody = false
		return s, []string{indent(1) + "}"}
	case s.inBody:
		return s, []string{indent(2) + formatMember(trimmed)}
	}
	if m := classPatterns.open.FindStringSubmatch(trimmed); m != nil {
		s.inBody = true
		return s, []string{indent(1) + "class " + m[1] + " {"}
	}
	return s, []string{indent(1) + trimmed}
}

func repairClass(text string) string {
	var (
		st  classState
		out []string
	)
	for _, line := range strings.Split(text, "\n") {
		var emitted []string
		st, emitted = st.step(line)
		out = append(out, emitted...)
	}
	if st.inBody {
		out = append(out, indent(1)+"}")
	}
	return strings.Join(out, "\n")
}

// formatMember rewrites a class body line as a method signature or an
// attribute. Lines matching neither shape are returned unchanged.
func formatMember(line string) string {
	if m := classPatterns.method.FindStringSubmatch(line); m != nil {
		sig := m[1] + m[2] + "(" + normalizeArgs(m[3]) + ")"
		if ret := strings.TrimSpace(m[4]); ret != "" {
			sig += " : " + ret
		}
		return sig + m[5]
	}
	if m := classPatterns.attrColon.FindStringSubmatch(line); m != nil {
		return m[1] + m[2] + " : " + m[3] + m[4]
	}
	if m := classPatterns.attrTypeFirst.FindStringSubmatch(line); m != nil {
		return m[1] + m[3] + " : " + m[2] + m[4]
	}
	return line
}

func normalizeArgs(args string) string {
	parts := strings.Split(args, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
