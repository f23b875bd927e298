package mermaid

import (
	"regexp"
	"strings"
	"unicode"
)

var seqPatterns = struct {
	participant *regexp.Regexp
	note        *regexp.Regexp
	block       *regexp.Regexp
	branch      *regexp.Regexp
	end         *regexp.Regexp
	message     *regexp.Regexp
	bareMessage *regexp.Regexp
}{
	participant: regexp.MustCompile(`^(participant|actor)\s+(.+?)(?:\s+as\s+(.+))?$`),
	note:        regexp.MustCompile(`(?i)^note\s+(over|right of|left of)\s+([^:]+?)\s*:\s*(.*)$`),
	block:       regexp.MustCompile(`^(loop|alt|opt|par|rect|critical|break)\b\s*(.*)$`),
	branch:      regexp.MustCompile(`^(else|and|option)\b\s*(.*)$`),
	end:         regexp.MustCompile(`^end$`),
	message:     regexp.MustCompile(`^([^\s:>-][^:>]*?)\s*(-->>|->>|-->|->|--x|-x|--\)|-\))\s*([+-]?)\s*([^\s:+-][^:]*?)\s*:\s*(.*)$`),
	bareMessage: regexp.MustCompile(`^([^\s:>-][^:>]*?)\s*(-->>|->>|-->|->|--x|-x|--\)|-\))\s*([+-]?)\s*([^\s:+-][^:]*?)$`),
}

// seqState is the fold state of the sequence repairer.
type seqState struct {
	inDiagram bool
	depth     int
}

// step consumes one input line and returns the next state plus the lines to
// emit for it.
func (s seqState) step(line string, q messageQuoter) (seqState, []string) {
	trimmed := strings.TrimSpace(line)

	if !s.inDiagram {
		if strings.Contains(trimmed, "sequenceDiagram") {
			s.inDiagram = true
			return s, []string{"sequenceDiagram"}
		}
		return s, []string{trimmed}
	}

	if trimmed == "" {
		return s, []string{""}
	}
	if trimmed == "sequenceDiagram" {
		// A second header means two diagrams were glued together; close
		// whatever the first one left open.
		out := closers(s.depth)
		s.depth = 0
		return s, append(out, "sequenceDiagram")
	}
	if strings.HasPrefix(trimmed, "%%") {
		return s, []string{indent(1+s.depth) + trimmed}
	}

	if m := seqPatterns.participant.FindStringSubmatch(trimmed); m != nil {
		return s, []string{indent(1+s.depth) + formatParticipant(m[1], m[2], m[3])}
	}
	if m := seqPatterns.note.FindStringSubmatch(trimmed); m != nil {
		note := "Note " + strings.ToLower(m[1]) + " " + strings.TrimSpace(m[2]) + ": " + q.format(m[3])
		return s, []string{indent(1+s.depth) + strings.TrimRight(note, " ")}
	}
	if m := seqPatterns.block.FindStringSubmatch(trimmed); m != nil {
		out := indent(1+s.depth) + joinNonEmpty(m[1], m[2])
		s.depth++
		return s, []string{out}
	}
	if m := seqPatterns.branch.FindStringSubmatch(trimmed); m != nil {
		level := s.depth
		if level < 1 {
			level = 1
		}
		return s, []string{indent(level) + joinNonEmpty(m[1], m[2])}
	}
	if seqPatterns.end.MatchString(trimmed) {
		if s.depth == 0 {
			return s, nil
		}
		s.depth--
		return s, []string{indent(1+s.depth) + "end"}
	}
	if m := seqPatterns.message.FindStringSubmatch(trimmed); m != nil {
		msg := strings.TrimSpace(m[1]) + m[2] + m[3] + strings.TrimSpace(m[4])
		if text := q.format(m[5]); text != "" {
			msg += ": " + text
		}
		return s, []string{indent(1+s.depth) + msg}
	}
	if m := seqPatterns.bareMessage.FindStringSubmatch(trimmed); m != nil {
		return s, []string{indent(1+s.depth) + strings.TrimSpace(m[1]) + m[2] + m[3] + strings.TrimSpace(m[4])}
	}
	return s, []string{indent(1+s.depth) + trimmed}
}

func repairSequence(text string, keywords []string) string {
	q := messageQuoter{keywords: keywords}
	var (
		st  seqState
		out []string
	)
	for _, line := range strings.Split(text, "\n") {
		var emitted []string
		st, emitted = st.step(line, q)
		out = append(out, emitted...)
	}
	// Unclosed blocks are closed at the tail; where they should have ended
	// is not recoverable from the text.
	out = append(out, closers(st.depth)...)
	return strings.Join(out, "\n")
}

// closers returns the end lines that close depth open blocks, innermost first.
func closers(depth int) []string {
	out := make([]string, 0, depth)
	for d := depth - 1; d >= 0; d-- {
		out = append(out, indent(1+d)+"end")
	}
	return out
}

func formatParticipant(kind, id, alias string) string {
	id = strings.Trim(strings.TrimSpace(id), `"'`)
	alias = strings.Trim(strings.TrimSpace(alias), `"'`)
	if alias == "" && strings.ContainsAny(id, " \t") {
		alias = id
		id = strings.Join(strings.Fields(id), "_")
	}
	if alias == "" {
		return kind + " " + id
	}
	return kind + " " + id + ` as "` + alias + `"`
}

// messageQuoter decides whether message text needs quoting. Mermaid has no
// rule requiring this; the table reflects words that models tend to emit in
// messages that later failed to render.
type messageQuoter struct {
	keywords []string
}

func (q messageQuoter) format(msg string) string {
	msg = strings.TrimSpace(strings.ReplaceAll(msg, `"`, ""))
	if msg == "" {
		return ""
	}
	if q.needsQuotes(msg) {
		return `"` + msg + `"`
	}
	return msg
}

func (q messageQuoter) needsQuotes(msg string) bool {
	if strings.ContainsAny(msg, " \t[](){}") {
		return true
	}
	if unicode.IsDigit([]rune(msg)[0]) {
		return true
	}
	lower := strings.ToLower(msg)
	for _, kw := range q.keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func joinNonEmpty(a, b string) string {
	b = strings.TrimSpace(b)
	if b == "" {
		return a
	}
	return a + " " + b
}
