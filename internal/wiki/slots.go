package wiki

import (
	"regexp"
	"strings"

	"github.com/julianshen/mermaidfix/internal/mermaid"
)

// Slot is a canonical section of an assembled document set.
type Slot string

const (
	SlotArchitecture Slot = "architecture"
	SlotDatabase     Slot = "database"
	SlotUserFlow     Slot = "user-flow"
	SlotSequence     Slot = "sequence"
)

// Slots lists the canonical slots in page order.
var Slots = []Slot{SlotArchitecture, SlotDatabase, SlotUserFlow, SlotSequence}

// Title returns the page heading of the slot.
func (s Slot) Title() string {
	switch s {
	case SlotArchitecture:
		return "Architecture"
	case SlotDatabase:
		return "Database"
	case SlotUserFlow:
		return "User Flow"
	case SlotSequence:
		return "Sequence"
	}
	return string(s)
}

// slotSynonyms maps normalised diagram names onto slots.
var slotSynonyms = map[string]Slot{
	"architecture":        SlotArchitecture,
	"system architecture": SlotArchitecture,
	"system design":       SlotArchitecture,
	"system overview":     SlotArchitecture,
	"overview":            SlotArchitecture,
	"components":          SlotArchitecture,
	"component":           SlotArchitecture,
	"infrastructure":      SlotArchitecture,
	"deployment":          SlotArchitecture,
	"class":               SlotArchitecture,
	"classdiagram":        SlotArchitecture,
	"class diagram":       SlotArchitecture,
	"domain model":        SlotArchitecture,

	"database":            SlotDatabase,
	"db":                  SlotDatabase,
	"data model":          SlotDatabase,
	"schema":              SlotDatabase,
	"database schema":     SlotDatabase,
	"er":                  SlotDatabase,
	"erd":                 SlotDatabase,
	"erdiagram":           SlotDatabase,
	"er diagram":          SlotDatabase,
	"entity relationship": SlotDatabase,
	"entities":            SlotDatabase,

	"user flow":     SlotUserFlow,
	"userflow":      SlotUserFlow,
	"user journey":  SlotUserFlow,
	"flow":          SlotUserFlow,
	"flowchart":     SlotUserFlow,
	"workflow":      SlotUserFlow,
	"process":       SlotUserFlow,
	"process flow":  SlotUserFlow,
	"graph":         SlotUserFlow,
	"state":         SlotUserFlow,
	"statediagram":  SlotUserFlow,
	"state machine": SlotUserFlow,
	"lifecycle":     SlotUserFlow,

	"sequence":         SlotSequence,
	"sequencediagram":  SlotSequence,
	"sequence diagram": SlotSequence,
	"interaction":      SlotSequence,
	"interactions":     SlotSequence,
	"api flow":         SlotSequence,
	"request flow":     SlotSequence,
	"message flow":     SlotSequence,
}

var (
	nameSeparatorRe = regexp.MustCompile(`[\s_\-/:]+`)
	trailingIndexRe = regexp.MustCompile(`\s*\d+$`)
)

// normalizeName lowercases name, folds separators into single spaces and
// drops a trailing index such as the "2" of "erDiagram2".
func normalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = nameSeparatorRe.ReplaceAllString(n, " ")
	n = trailingIndexRe.ReplaceAllString(n, "")
	return strings.TrimSpace(n)
}

// SlotFor maps an arbitrary detected diagram name onto a canonical slot.
// Names ending in " diagram" also match without that word.
func SlotFor(name string) (Slot, bool) {
	n := normalizeName(name)
	if n == "" {
		return "", false
	}
	if s, ok := slotSynonyms[n]; ok {
		return s, true
	}
	if base, ok := strings.CutSuffix(n, " diagram"); ok {
		if s, ok := slotSynonyms[base]; ok {
			return s, true
		}
	}
	return "", false
}

// SlotForFamily is the fallback used when a name matches no synonym.
func SlotForFamily(f mermaid.Family) (Slot, bool) {
	switch f {
	case mermaid.FamilyER:
		return SlotDatabase, true
	case mermaid.FamilySequence:
		return SlotSequence, true
	case mermaid.FamilyFlow, mermaid.FamilyState:
		return SlotUserFlow, true
	case mermaid.FamilyClass:
		return SlotArchitecture, true
	}
	return "", false
}
