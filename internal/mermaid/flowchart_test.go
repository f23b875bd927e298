package mermaid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairFlowchart(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "pads arrows",
			in:   "graph TD\nA-->B\nB-->C",
			want: "graph TD\n    A --> B\n    B --> C\n",
		},
		{
			name: "statement on header line",
			in:   "graph TD; A-->B",
			want: "graph TD\n    A --> B\n",
		},
		{
			name: "link label",
			in:   "graph LR\nA-->|yes|B",
			want: "graph LR\n    A -->|yes| B\n",
		},
		{
			name: "labels keep their text",
			in:   "graph LR\nA[Start-->here]-->B{Is it?}",
			want: "graph LR\n    A[Start-->here] --> B{Is it?}\n",
		},
		{
			name: "closes open subgraph",
			in:   "flowchart LR\nsubgraph Backend Services\nA-->B",
			want: "flowchart LR\n    subgraph Backend_Services [\"Backend Services\"]\n        A --> B\n    end\n",
		},
		{
			name: "drops stray end",
			in:   "graph TD\nA-->B\nend",
			want: "graph TD\n    A --> B\n",
		},
		{
			name: "joins split label",
			in:   "graph TD\nA[\"User\nService\"] --> B",
			want: "graph TD\n    A[\"User<br/>Service\"] --> B\n",
		},
		{
			name: "directives untouched",
			in:   "graph TD\nA-->B\nclassDef red fill:#f00\nstyle A fill:#0f0",
			want: "graph TD\n    A --> B\n    classDef red fill:#f00\n    style A fill:#0f0\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RepairFlowchart(tt.in))
		})
	}
}

func TestNormalizeSubgraph(t *testing.T) {
	assert.Equal(t, "subgraph", normalizeSubgraph(""))
	assert.Equal(t, "subgraph api", normalizeSubgraph("api"))
	assert.Equal(t, `subgraph api ["Public API"]`, normalizeSubgraph(`api [Public API]`))
	assert.Equal(t, `subgraph api ["Public API"]`, normalizeSubgraph(`api["Public API"]`))
	assert.Equal(t, `subgraph Data_Layer ["Data Layer"]`, normalizeSubgraph(`"Data Layer"`))
}

func TestRepairFlowchartCustomLineBreak(t *testing.T) {
	r := NewRepairer(Options{LineBreakToken: " "})
	got := r.Fix("graph TD\nA[\"User\nService\"] --> B")
	assert.Equal(t, "graph TD\n    A[\"User Service\"] --> B\n", got)
}
