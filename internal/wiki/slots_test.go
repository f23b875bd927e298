package wiki

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianshen/mermaidfix/internal/mermaid"
)

func TestSlotFor(t *testing.T) {
	tests := []struct {
		name string
		want Slot
		ok   bool
	}{
		{"architecture", SlotArchitecture, true},
		{"System Architecture", SlotArchitecture, true},
		{"classDiagram1", SlotArchitecture, true},
		{"erDiagram1", SlotDatabase, true},
		{"ER Diagram", SlotDatabase, true},
		{"Data Model", SlotDatabase, true},
		{"user_flow", SlotUserFlow, true},
		{"User-Journey 2", SlotUserFlow, true},
		{"flowchart3", SlotUserFlow, true},
		{"Workflow Diagram", SlotUserFlow, true},
		{"Sequence Diagram", SlotSequence, true},
		{"sequenceDiagram2", SlotSequence, true},
		{"API Flow", SlotSequence, true},
		{"Payment Diagram", "", false},
		{"diagram1", "", false},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SlotFor(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotForFamily(t *testing.T) {
	tests := []struct {
		family mermaid.Family
		want   Slot
		ok     bool
	}{
		{mermaid.FamilyER, SlotDatabase, true},
		{mermaid.FamilySequence, SlotSequence, true},
		{mermaid.FamilyFlow, SlotUserFlow, true},
		{mermaid.FamilyState, SlotUserFlow, true},
		{mermaid.FamilyClass, SlotArchitecture, true},
		{mermaid.FamilyUnknown, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.family.String(), func(t *testing.T) {
			got, ok := SlotForFamily(tt.family)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotTitle(t *testing.T) {
	assert.Equal(t, "User Flow", SlotUserFlow.Title())
	assert.Equal(t, "Database", SlotDatabase.Title())
	assert.Equal(t, "custom", Slot("custom").Title())
}

func TestEverySlotHasSynonym(t *testing.T) {
	for _, s := range Slots {
		got, ok := SlotFor(string(s))
		assert.True(t, ok, "slot %s should map to itself", s)
		assert.Equal(t, s, got)
	}
}
