package mermaid

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var parsePatterns = struct {
	fence   *regexp.Regexp
	header  *regexp.Regexp
	comment *regexp.Regexp
}{
	// An unterminated final fence runs to the end of the content.
	fence:   regexp.MustCompile("(?s)```[ \\t]*mermaid[^\\n]*\\n(.*?)(?:```|$)"),
	header:  regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]+(.+?)[ \t#]*$`),
	comment: regexp.MustCompile(`%%[ \t]*(.+?)[ \t]*$`),
}

// ParseAndFix extracts every diagram from free-form content and repairs each
// one.
func ParseAndFix(content string) *DiagramMap {
	return DefaultRepairer().ParseAndFix(content)
}

// ParseAndFix extracts every diagram from free-form content and repairs each
// one. Fenced mermaid blocks take precedence; without fences the content is
// split on family keywords, then scanned for any header keyword, and finally
// treated as one diagram when it is long enough.
func (r *Repairer) ParseAndFix(content string) *DiagramMap {
	m := NewDiagramMap()
	if strings.TrimSpace(content) == "" {
		return m
	}

	if blocks := parsePatterns.fence.FindAllStringSubmatch(content, -1); len(blocks) > 0 {
		n := 0
		for _, blk := range blocks {
			body := blk[1]
			if len(strings.TrimSpace(body)) <= r.opts.MinBlockLength {
				continue
			}
			n++
			m.addUnique(fmt.Sprintf("diagram%d", n), r.Fix(body))
		}
		r.log.Debug("parsed fenced diagrams", zap.Int("blocks", len(blocks)), zap.Int("kept", n))
		return m
	}

	if split := r.Split(content); len(split.Candidates) > 1 {
		for i, c := range split.Candidates {
			m.addUnique(fmt.Sprintf("%s%d", c.Family.Key(), i+1), r.Fix(c.Text))
		}
		r.log.Debug("split concatenated diagrams",
			zap.Stringer("family", split.Family),
			zap.Int("candidates", len(split.Candidates)),
			zap.Int("ambiguous", len(split.Ambiguous)))
		return m
	}

	if occ := scanOccurrences(content); len(occ) > 0 {
		for i, o := range occ {
			end := len(content)
			if i+1 < len(occ) {
				end = occ[i+1].offset
			}
			floor := 0
			if i > 0 {
				floor = occ[i-1].offset
			}
			slice := trimTailNoise(content[o.offset:end])
			name := r.nameFor(content, floor, o.offset, slice)
			if name == "" {
				name = fmt.Sprintf("diagram%d", i+1)
			}
			m.addUnique(name, r.Fix(slice))
		}
		r.log.Debug("scanned diagram headers", zap.Int("diagrams", len(occ)))
		return m
	}

	if len(strings.TrimSpace(content)) > r.opts.MinBlockLength {
		m.Set("diagram1", r.Fix(content))
	}
	return m
}

// nameFor picks a name for the diagram starting at offset: the nearest
// markdown header within the lookback window, else a %% comment on the
// diagram's first two lines. The window never reaches back past floor, the
// start of the previous diagram.
func (r *Repairer) nameFor(content string, floor, offset int, slice string) string {
	from := max(floor, offset-r.opts.HeaderLookback)
	if hs := parsePatterns.header.FindAllStringSubmatch(content[from:offset], -1); len(hs) > 0 {
		if name := cleanName(hs[len(hs)-1][1]); name != "" {
			return name
		}
	}
	lines := strings.SplitN(slice, "\n", 3)
	for _, line := range lines[:min(2, len(lines))] {
		if sm := parsePatterns.comment.FindStringSubmatch(line); sm != nil {
			if name := cleanName(sm[1]); name != "" {
				return name
			}
		}
	}
	return ""
}

func cleanName(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "*_`"))
}

// RewriteMarkdown repairs every fenced mermaid block of a markdown document
// in place, leaving the prose around them untouched. An unterminated final
// fence is closed. It reports whether anything changed.
func (r *Repairer) RewriteMarkdown(md string) (string, bool) {
	locs := parsePatterns.fence.FindAllStringSubmatchIndex(md, -1)
	if len(locs) == 0 {
		return md, false
	}
	var b strings.Builder
	changed := false
	last := 0
	for _, loc := range locs {
		bodyStart, bodyEnd := loc[2], loc[3]
		body := md[bodyStart:bodyEnd]
		b.WriteString(md[last:bodyStart])
		last = bodyStart
		if strings.TrimSpace(body) == "" {
			continue
		}
		fixed := r.Fix(body)
		if fixed != body {
			changed = true
		}
		b.WriteString(fixed)
		last = bodyEnd
		if loc[1] == bodyEnd {
			b.WriteString("```\n")
			changed = true
		}
	}
	b.WriteString(md[last:])
	return b.String(), changed
}

// RewriteMarkdown repairs the fenced mermaid blocks of md with the default
// options.
func RewriteMarkdown(md string) (string, bool) {
	return DefaultRepairer().RewriteMarkdown(md)
}
