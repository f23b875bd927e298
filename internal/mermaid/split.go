package mermaid

import (
	"regexp"
	"sort"
	"strings"
)

// Candidate is a substring believed to hold exactly one diagram.
type Candidate struct {
	Text   string
	Offset int // byte offset of Text in the original content
	Family Family
}

// SplitResult is the outcome of Split. Family is the family whose keyword
// drove the split; Ambiguous lists other families whose keywords also
// occur in the content and were therefore not used as split points.
type SplitResult struct {
	Candidates []Candidate
	Family     Family
	Ambiguous  []Family
}

// headerPatterns locate the header keyword of each repairable family. A
// header only counts at the start of a line; group 1 is the keyword. Flow
// headers also need an orientation or the end of the line, so prose such as
// "graph shows" is not a split point.
var headerPatterns = []struct {
	family Family
	re     *regexp.Regexp
}{
	{FamilyER, regexp.MustCompile(`(?m)^[ \t]*(erDiagram)\b`)},
	{FamilySequence, regexp.MustCompile(`(?m)^[ \t]*(sequenceDiagram)\b`)},
	{FamilyFlow, regexp.MustCompile(`(?m)^[ \t]*(graph|flowchart)(?:[ \t]+(?:TB|TD|LR|RL|BT)\b|[ \t]*;?[ \t\r]*$)`)},
	{FamilyClass, regexp.MustCompile(`(?m)^[ \t]*(classDiagram)\b`)},
	{FamilyState, regexp.MustCompile(`(?m)^[ \t]*(stateDiagram(?:-v2)?)\b`)},
}

// otherHeaderRe matches the remaining type keywords, which only count at the
// start of a line.
var otherHeaderRe = regexp.MustCompile(`(?m)^[ \t]*(gantt|pie|journey|gitGraph|requirementDiagram|mindmap|timeline|quadrantChart|sankey(?:-beta)?|C4Context|C4Container)\b`)

var tailNoiseRe = regexp.MustCompile(`^(#{1,6}[ \t].*|` + "```" + `.*)$`)

func headerPattern(f Family) *regexp.Regexp {
	for _, p := range headerPatterns {
		if p.family == f {
			return p.re
		}
	}
	return nil
}

// Split separates diagrams that were concatenated without separators.
func Split(content string) SplitResult {
	return DefaultRepairer().Split(content)
}

// Split tries each family of Options.SplitOrder in turn and cuts the content
// immediately before every occurrence of the first family keyword found.
func (r *Repairer) Split(content string) SplitResult {
	res := SplitResult{Family: FamilyUnknown}
	for _, fam := range r.opts.SplitOrder {
		re := headerPattern(fam)
		if re == nil {
			continue
		}
		locs := re.FindAllStringSubmatchIndex(content, -1)
		if len(locs) == 0 {
			continue
		}
		if res.Family != FamilyUnknown {
			res.Ambiguous = append(res.Ambiguous, fam)
			continue
		}
		res.Family = fam
		for i, loc := range locs {
			end := len(content)
			if i+1 < len(locs) {
				end = locs[i+1][2]
			}
			piece := trimTailNoise(content[loc[2]:end])
			if strings.TrimSpace(piece) == "" {
				continue
			}
			res.Candidates = append(res.Candidates, Candidate{Text: piece, Offset: loc[2], Family: fam})
		}
	}
	if res.Family == FamilyUnknown {
		res.Candidates = []Candidate{{Text: content, Offset: 0, Family: Classify(content)}}
	}
	if len(res.Ambiguous) > 0 {
		r.log.Debug("split content holds several diagram families")
	}
	return res
}

// occurrence is a header keyword found anywhere in the content.
type occurrence struct {
	offset  int
	keyword string
}

// scanOccurrences finds every diagram header keyword in content, sorted by
// offset.
func scanOccurrences(content string) []occurrence {
	var occ []occurrence
	seen := make(map[int]bool)
	add := func(offset int, kw string) {
		if seen[offset] {
			return
		}
		seen[offset] = true
		occ = append(occ, occurrence{offset: offset, keyword: kw})
	}
	for _, p := range headerPatterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(content, -1) {
			add(loc[2], content[loc[2]:loc[3]])
		}
	}
	for _, loc := range otherHeaderRe.FindAllStringSubmatchIndex(content, -1) {
		add(loc[2], content[loc[2]:loc[3]])
	}
	sort.Slice(occ, func(i, j int) bool { return occ[i].offset < occ[j].offset })
	return occ
}

// trimTailNoise drops trailing blank lines, markdown headers and code fences
// that belong to whatever follows a diagram rather than to the diagram.
func trimTailNoise(piece string) string {
	lines := strings.Split(piece, "\n")
	for len(lines) > 1 {
		last := strings.TrimSpace(lines[len(lines)-1])
		if last != "" && !tailNoiseRe.MatchString(last) {
			break
		}
		lines = lines[:len(lines)-1]
	}
	return strings.TrimRight(strings.Join(lines, "\n"), " \t\n")
}
