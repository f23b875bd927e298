package mermaid

import (
	"regexp"
	"strings"
)

var flowPatterns = struct {
	header       *regexp.Regexp
	subgraph     *regexp.Regexp
	subgraphID   *regexp.Regexp
	subgraphQuot *regexp.Regexp
	end          *regexp.Regexp
	directive    *regexp.Regexp
	arrow        *regexp.Regexp
	statement    *regexp.Regexp
	nonIdent     *regexp.Regexp
}{
	header:       regexp.MustCompile(`^(graph|flowchart)\b[ \t]*(TB|TD|LR|RL|BT)?\b[ \t]*;?[ \t]*(.*)$`),
	subgraph:     regexp.MustCompile(`^subgraph\b\s*(.*)$`),
	subgraphID:   regexp.MustCompile(`^([\w-]+)\s*\[\s*"?(.*?)"?\s*\]$`),
	subgraphQuot: regexp.MustCompile(`^"([^"]*)"$`),
	end:          regexp.MustCompile(`^end$`),
	directive:    regexp.MustCompile(`^(%%|classDef\b|class\b|style\b|linkStyle\b|click\b|direction\b)`),
	arrow:        regexp.MustCompile(`[ \t]*((?:[ \t][ox]|<)?(?:-\.+->|={2,}>|-{2,}[>ox]|-{3,}|-\.+-|={3,}))(\|[^|]*\|)?[ \t]*`),
	statement:    regexp.MustCompile(`^(subgraph\b|end$|%%)`),
	nonIdent:     regexp.MustCompile(`[^A-Za-z0-9_]+`),
}

// flowState is the fold state of the flowchart repairer.
type flowState struct {
	inDiagram bool
	depth     int
}

func (s flowState) step(line string) (flowState, []string) {
	trimmed := strings.TrimSpace(line)

	if m := flowPatterns.header.FindStringSubmatch(trimmed); m != nil {
		out := closers(s.depth)
		s.inDiagram = true
		s.depth = 0
		out = append(out, joinNonEmpty(m[1], m[2]))
		if rest := strings.TrimSpace(m[3]); rest != "" {
			out = append(out, indent(1)+padArrows(rest))
		}
		return s, out
	}
	if !s.inDiagram {
		return s, []string{trimmed}
	}
	if trimmed == "" {
		return s, []string{""}
	}
	if m := flowPatterns.subgraph.FindStringSubmatch(trimmed); m != nil {
		out := indent(1+s.depth) + normalizeSubgraph(m[1])
		s.depth++
		return s, []string{out}
	}
	if flowPatterns.end.MatchString(trimmed) {
		if s.depth == 0 {
			return s, nil
		}
		s.depth--
		return s, []string{indent(1+s.depth) + "end"}
	}
	if flowPatterns.directive.MatchString(trimmed) {
		return s, []string{indent(1+s.depth) + trimmed}
	}
	return s, []string{indent(1+s.depth) + padArrows(trimmed)}
}

func repairFlowchart(text, lineBreak string) string {
	lines := mergeSplitLabels(strings.Split(text, "\n"), lineBreak)
	var (
		st  flowState
		out []string
	)
	for _, line := range lines {
		var emitted []string
		st, emitted = st.step(line)
		out = append(out, emitted...)
	}
	out = append(out, closers(st.depth)...)
	return strings.Join(out, "\n")
}

// mergeSplitLabels rejoins node labels that a model broke over several lines,
// e.g. `A["User` / `Service"]`, using lineBreak as the separator.
func mergeSplitLabels(lines []string, lineBreak string) []string {
	const maxContinuation = 3
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		for n := 0; n < maxContinuation && labelOpen(line) && i+1 < len(lines); n++ {
			next := strings.TrimSpace(lines[i+1])
			if next == "" || flowPatterns.statement.MatchString(next) {
				break
			}
			if hasArrow(next) && !strings.ContainsAny(next, `])}"`) {
				break
			}
			line = strings.TrimRight(line, " \t") + lineBreak + next
			i++
		}
		out = append(out, line)
	}
	return out
}

func labelOpen(line string) bool {
	return strings.Count(line, "[") > strings.Count(line, "]") ||
		strings.Count(line, "(") > strings.Count(line, ")") ||
		strings.Count(line, `"`)%2 == 1
}

func hasArrow(line string) bool {
	return flowPatterns.arrow.MatchString(line)
}

// normalizeSubgraph rewrites the part after the subgraph keyword into the
// canonical `ID ["Label"]` form.
func normalizeSubgraph(rest string) string {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "subgraph"
	}
	if m := flowPatterns.subgraphID.FindStringSubmatch(rest); m != nil {
		label := strings.TrimSpace(strings.ReplaceAll(m[2], `"`, ""))
		if label == "" {
			return "subgraph " + m[1]
		}
		return "subgraph " + m[1] + ` ["` + label + `"]`
	}
	label := rest
	if m := flowPatterns.subgraphQuot.FindStringSubmatch(rest); m != nil {
		label = strings.TrimSpace(m[1])
	} else if !strings.ContainsAny(rest, " \t") {
		return "subgraph " + rest
	}
	label = strings.ReplaceAll(label, `"`, "")
	id := strings.Trim(flowPatterns.nonIdent.ReplaceAllString(label, "_"), "_")
	if id == "" {
		return "subgraph"
	}
	return "subgraph " + id + ` ["` + label + `"]`
}

// padArrows puts exactly one space on each side of link operators, leaving
// quoted and bracketed label text untouched.
func padArrows(line string) string {
	var (
		b       strings.Builder
		plain   strings.Builder
		depth   int
		inQuote bool
	)
	flush := func() {
		b.WriteString(flowPatterns.arrow.ReplaceAllStringFunc(plain.String(), func(m string) string {
			sm := flowPatterns.arrow.FindStringSubmatch(m)
			return " " + strings.TrimSpace(sm[1]) + sm[2] + " "
		}))
		plain.Reset()
	}
	for _, r := range line {
		switch {
		case inQuote:
			b.WriteRune(r)
			if r == '"' {
				inQuote = false
			}
		case depth > 0:
			b.WriteRune(r)
			switch r {
			case '"':
				inQuote = true
			case '[', '(', '{':
				depth++
			case ']', ')', '}':
				depth--
			}
		case r == '"':
			flush()
			inQuote = true
			b.WriteRune(r)
		case r == '[' || r == '(' || r == '{':
			flush()
			depth++
			b.WriteRune(r)
		default:
			plain.WriteRune(r)
		}
	}
	flush()
	return strings.TrimSpace(b.String())
}
