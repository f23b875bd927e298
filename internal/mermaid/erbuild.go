package mermaid

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNotER is returned by Reconstruct for text with no
	// entity-relationship signal.
	ErrNotER = errors.New("not an entity-relationship diagram")
	// ErrReconstructionFailed is returned when too little could be extracted
	// to rebuild a diagram.
	ErrReconstructionFailed = errors.New("entity-relationship reconstruction failed")
)

// Entity is an ER entity with its attribute lines ("type name [keys] [comment]").
type Entity struct {
	Name       string
	Attributes []string
}

// Relationship is an ER relationship line.
type Relationship struct {
	From     string
	To       string
	Operator string
	Label    string
}

// CardinalityOperators is the fixed operator vocabulary: a left cardinality,
// an identifying (--) or non-identifying (..) connector and a right
// cardinality.
var CardinalityOperators = func() []string {
	left := []string{"|o", "||", "}o", "}|"}
	conns := []string{"--", ".."}
	right := []string{"o|", "||", "o{", "|{"}
	ops := make([]string, 0, len(left)*len(conns)*len(right))
	for _, l := range left {
		for _, c := range conns {
			for _, r := range right {
				ops = append(ops, l+c+r)
			}
		}
	}
	return ops
}()

const identPattern = `[A-Za-z_][A-Za-z0-9_-]*`

// opPattern matches any cardinality operator, tolerating blanks between its
// characters ("|| --o {").
var opPattern = func() string {
	alts := make([]string, len(CardinalityOperators))
	for i, op := range CardinalityOperators {
		chars := make([]string, 0, len(op))
		for _, c := range op {
			chars = append(chars, regexp.QuoteMeta(string(c)))
		}
		alts[i] = strings.Join(chars, `[ \t]*`)
	}
	return `(?:` + strings.Join(alts, `|`) + `)`
}()

var erPatterns = struct {
	op           *regexp.Regexp
	entity       *regexp.Regexp
	relationship *regexp.Regexp
	labelRel     *regexp.Regexp
	ident        *regexp.Regexp
}{
	op:           regexp.MustCompile(opPattern),
	entity:       regexp.MustCompile(`(` + identPattern + `)[ \t]*\{([^{}]*)\}`),
	relationship: regexp.MustCompile(`(` + identPattern + `)[ \t]*(` + opPattern + `)[ \t]*(` + identPattern + `)(?:[ \t]*:[ \t]*([^\n]*))?`),
	labelRel:     regexp.MustCompile(`[ \t"](` + identPattern + `)[ \t]*` + opPattern),
	ident:        regexp.MustCompile(`^` + identPattern + `$`),
}

// canonicalOperator strips blanks from a matched operator and reports whether
// the result is in the vocabulary.
func canonicalOperator(raw string) (string, bool) {
	op := strings.Join(strings.Fields(raw), "")
	for _, known := range CardinalityOperators {
		if op == known {
			return op, true
		}
	}
	return "", false
}

// isEntityName rejects identifiers that are really pieces of an operator,
// such as the "o--o" in "}o--o{".
func isEntityName(name string) bool {
	return erPatterns.ident.MatchString(name) &&
		!strings.Contains(name, "--") &&
		!strings.Contains(name, "..")
}

// entityBlock is one `NAME { body }` match.
type entityBlock struct {
	start, end int
	name, body string
}

// findEntityBlocks returns the entity blocks of text in order. A name must
// start a line or follow whitespace or '}', which keeps "o{" of an operator
// from being read as an entity called "o". Bodies holding braces are not
// supported.
func findEntityBlocks(text string) []entityBlock {
	var blocks []entityBlock
	for pos := 0; pos < len(text); {
		loc := erPatterns.entity.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		name := text[pos+loc[2] : pos+loc[3]]
		if !validNameBoundary(text, start) || !isEntityName(name) {
			pos = start + 1
			continue
		}
		blocks = append(blocks, entityBlock{
			start: start,
			end:   end,
			name:  name,
			body:  text[pos+loc[4] : pos+loc[5]],
		})
		pos = end
	}
	return blocks
}

func validNameBoundary(text string, start int) bool {
	if start == 0 {
		return true
	}
	switch text[start-1] {
	case ' ', '\t', '\n', '}':
		return true
	}
	return false
}

// ExtractEntities returns the entities of text, first occurrence winning.
// Only lines with at least two tokens and no colon count as attributes;
// colon-bearing lines are stray relationship-label fragments. Entities left
// without attributes are dropped.
func ExtractEntities(text string) []Entity {
	seen := make(map[string]bool)
	var entities []Entity
	for _, b := range findEntityBlocks(text) {
		if seen[b.name] {
			continue
		}
		var attrs []string
		for _, line := range strings.Split(b.body, "\n") {
			fields := strings.Fields(line)
			if len(fields) < 2 || strings.Contains(line, ":") || erPatterns.op.MatchString(line) {
				continue
			}
			attrs = append(attrs, strings.Join(fields, " "))
		}
		if len(attrs) == 0 {
			continue
		}
		seen[b.name] = true
		entities = append(entities, Entity{Name: b.name, Attributes: attrs})
	}
	return entities
}

// ExtractRelationships returns the relationships of text in order of
// appearance, deduplicated on (From, To, Operator). A label that swallowed
// the next relationship is cut short and the swallowed one is scanned too.
func ExtractRelationships(text string) []Relationship {
	type key struct{ from, to, op string }
	seen := make(map[key]bool)
	var rels []Relationship
	for pos := 0; pos < len(text); {
		loc := erPatterns.relationship.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		next := pos + loc[1]
		from := text[pos+loc[2] : pos+loc[3]]
		rawOp := text[pos+loc[4] : pos+loc[5]]
		to := text[pos+loc[6] : pos+loc[7]]
		var label string
		if loc[8] >= 0 {
			label = text[pos+loc[8] : pos+loc[9]]
			if cut := erPatterns.labelRel.FindStringIndex(label); cut != nil {
				next = pos + loc[8] + cut[0] + 1
				label = label[:cut[0]]
			}
		}
		pos = next

		op, ok := canonicalOperator(rawOp)
		if !ok || from == to || !isEntityName(from) || !isEntityName(to) {
			continue
		}
		k := key{from, to, op}
		if seen[k] {
			continue
		}
		seen[k] = true
		rels = append(rels, Relationship{From: from, To: to, Operator: op, Label: cleanLabel(label)})
	}
	return rels
}

func cleanLabel(label string) string {
	return strings.TrimSpace(strings.ReplaceAll(label, `"`, ""))
}

// hasERSignal reports whether text looks like an ER diagram at all.
func hasERSignal(text string) bool {
	return strings.Contains(text, "erDiagram") || erPatterns.op.MatchString(text)
}

// Reconstruct rebuilds canonical ER source from whatever entities and
// relationships can be extracted from text, independent of line order.
// Relationships are emitted before entities.
func Reconstruct(text string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("reconstruct: %v: %w", r, ErrReconstructionFailed)
		}
	}()

	if !hasERSignal(text) {
		return "", ErrNotER
	}
	rels := ExtractRelationships(text)
	entities := ExtractEntities(text)

	lines := []string{"erDiagram"}
	for _, r := range rels {
		lines = append(lines, indent(1)+formatRelationship(r))
	}
	if len(rels) > 0 && len(entities) > 0 {
		lines = append(lines, "")
	}
	for _, e := range entities {
		lines = append(lines, indent(1)+e.Name+" {")
		for _, a := range e.Attributes {
			lines = append(lines, indent(2)+a)
		}
		lines = append(lines, indent(1)+"}")
	}
	if len(lines) < 3 {
		return "", fmt.Errorf("reconstruct: %d lines: %w", len(lines), ErrReconstructionFailed)
	}
	return strings.Join(lines, "\n"), nil
}

func formatRelationship(r Relationship) string {
	line := r.From + " " + r.Operator + " " + r.To
	if r.Label != "" {
		line += ` : "` + r.Label + `"`
	}
	return line
}
