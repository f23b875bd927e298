package mermaid

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var erPatch = struct {
	bleedLabel   *regexp.Regexp
	quoteOpener  *regexp.Regexp
	loneQuote    *regexp.Regexp
	doubleQuotes *regexp.Regexp
	repeatQuotes *regexp.Regexp
	openLabel    *regexp.Regexp
	glued        *regexp.Regexp
	absorbed     *regexp.Regexp
	operator     *regexp.Regexp
	label        *regexp.Regexp
	entityOpen   *regexp.Regexp
	quotedLine   *regexp.Regexp
}{
	bleedLabel:   regexp.MustCompile(`:[ \t]*"([^"\n]*?)[ \t]*\n[ \t]*(` + identPattern + `)[ \t]*(` + opPattern + `)`),
	quoteOpener:  regexp.MustCompile(`(^|[\s}])(` + identPattern + `)[ \t]*\{[ \t]*"+[ \t]*`),
	loneQuote:    regexp.MustCompile(`(?m)^[ \t]*"+[ \t]*(?:\n|$)`),
	doubleQuotes: regexp.MustCompile(`"{2,}([^"\n]*?)"{2,}`),
	repeatQuotes: regexp.MustCompile(`(?m):[ \t]*"+([^"\n]*?)"+[ \t]*$`),
	openLabel:    regexp.MustCompile(`(?m):[ \t]*"([^"\n]*?)[ \t]*$`),
	glued:        regexp.MustCompile(`\}[ \t]*(` + identPattern + `)[ \t]*\{`),
	absorbed: regexp.MustCompile(`(` + identPattern + `[ \t]*` + opPattern + `[ \t]*` + identPattern + `[ \t]*:[ \t]*)"?([^"\n]*?)"?[ \t]+(` +
		identPattern + `)[ \t]*(` + opPattern + `)`),
	operator:   regexp.MustCompile(`(` + identPattern + `)[ \t]*(` + opPattern + `)[ \t]*(` + identPattern + `)`),
	label:      regexp.MustCompile(`(?m)^([ \t]*` + identPattern + `[ \t]*` + opPattern + `[ \t]*` + identPattern + `)[ \t]*:[ \t]*(.*)$`),
	entityOpen: regexp.MustCompile(`^` + identPattern + `[ \t]*\{$`),
	quotedLine: regexp.MustCompile(`^"[^"]*"$`),
}

// erPatches are the targeted fixes for known failure signatures of generated
// ER text. Order matters: later patches assume earlier ones have normalised
// the text.
var erPatches = []func(string) string{
	splitBledLabels,
	fixQuoteOpeners,
	collapseDoubledQuotes,
	closeOpenLabels,
	separateGluedEntities,
	splitAbsorbedRelationships,
	reformatEntityBlocks,
	normalizeOperators,
	normalizeLabels,
	indentER,
}

func (r *Repairer) repairER(text string) string {
	rebuilt, err := Reconstruct(text)
	if err == nil && strings.TrimSpace(rebuilt) != strings.TrimSpace(text) {
		r.log.Debug("er diagram reconstructed")
		return rebuilt
	}
	if err != nil {
		r.log.Debug("er reconstruction unavailable, patching", zap.Error(err))
	}
	return patchER(text)
}

func patchER(text string) string {
	for _, patch := range erPatches {
		text = patch(text)
	}
	return text
}

// splitBledLabels closes a label whose quote was left open and whose line
// continues with the next relationship.
func splitBledLabels(text string) string {
	return erPatch.bleedLabel.ReplaceAllString(text, ": \"${1}\"\n${2} ${3}")
}

// fixQuoteOpeners turns `NAME {"` into a clean opener on its own line and
// drops lines holding nothing but quotes.
func fixQuoteOpeners(text string) string {
	text = erPatch.quoteOpener.ReplaceAllStringFunc(text, func(m string) string {
		sm := erPatch.quoteOpener.FindStringSubmatch(m)
		if !isEntityName(sm[2]) {
			return m
		}
		return sm[1] + sm[2] + " {\n"
	})
	return erPatch.loneQuote.ReplaceAllString(text, "")
}

func collapseDoubledQuotes(text string) string {
	text = erPatch.doubleQuotes.ReplaceAllString(text, `"${1}"`)
	return erPatch.repeatQuotes.ReplaceAllString(text, `: "${1}"`)
}

func closeOpenLabels(text string) string {
	return erPatch.openLabel.ReplaceAllString(text, `: "${1}"`)
}

// separateGluedEntities splits `} NAME {` onto separate blocks.
func separateGluedEntities(text string) string {
	return erPatch.glued.ReplaceAllStringFunc(text, func(m string) string {
		sm := erPatch.glued.FindStringSubmatch(m)
		if !isEntityName(sm[1]) {
			return m
		}
		return "}\n\n" + indent(1) + sm[1] + " {"
	})
}

// splitAbsorbedRelationships re-splits relationship lines whose label ran
// into the next entity name and operator.
func splitAbsorbedRelationships(text string) string {
	for i := 0; i < 16; i++ {
		next := erPatch.absorbed.ReplaceAllString(text, "${1}\"${2}\"\n${3} ${4}")
		if next == text {
			break
		}
		text = next
	}
	return text
}

// reformatEntityBlocks rewrites every entity block with one attribute per
// line. Quoted-string lines are stray label fragments and are dropped.
func reformatEntityBlocks(text string) string {
	blocks := findEntityBlocks(text)
	if len(blocks) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, blk := range blocks {
		b.WriteString(text[last:blk.start])
		var attrs []string
		for _, line := range strings.Split(blk.body, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || erPatch.quotedLine.MatchString(line) {
				continue
			}
			attrs = append(attrs, indent(2)+line)
		}
		if len(attrs) == 0 {
			b.WriteString(blk.name + " { }")
		} else {
			b.WriteString(blk.name + " {\n" + strings.Join(attrs, "\n") + "\n}")
		}
		last = blk.end
	}
	b.WriteString(text[last:])
	return b.String()
}

func normalizeOperators(text string) string {
	return erPatch.operator.ReplaceAllStringFunc(text, func(m string) string {
		sm := erPatch.operator.FindStringSubmatch(m)
		op, ok := canonicalOperator(sm[2])
		if !ok {
			return m
		}
		return sm[1] + " " + op + " " + sm[3]
	})
}

// normalizeLabels strips duplicate and wrapping quotes from relationship
// labels, dropping the label clause when nothing is left.
func normalizeLabels(text string) string {
	return erPatch.label.ReplaceAllStringFunc(text, func(m string) string {
		sm := erPatch.label.FindStringSubmatch(m)
		label := cleanLabel(sm[2])
		if label == "" {
			return sm[1]
		}
		return sm[1] + ` : "` + label + `"`
	})
}

type erState struct {
	inDiagram bool
	inEntity  bool
}

func (s erState) step(line string) (erState, string) {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return s, ""
	case strings.HasPrefix(trimmed, "erDiagram"):
		s.inDiagram = true
		return s, trimmed
	case !s.inDiagram:
		return s, trimmed
	case erPatch.entityOpen.MatchString(trimmed):
		s.inEntity = true
		return s, indent(1) + trimmed
	case trimmed == "}":
		s.inEntity = false
		return s, indent(1) + trimmed
	case s.inEntity:
		return s, indent(2) + trimmed
	default:
		return s, indent(1) + trimmed
	}
}

// indentER is the final indentation pass: attributes inside an entity get
// two levels, every other line one.
func indentER(text string) string {
	var st erState
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines)+1)
	for _, line := range lines {
		var emitted string
		st, emitted = st.step(line)
		out = append(out, emitted)
	}
	if st.inEntity {
		out = append(out, indent(1)+"}")
	}
	return strings.Join(out, "\n")
}
