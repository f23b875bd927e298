package mermaid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFixIsFixedPoint(t *testing.T) {
	inputs := map[string]string{
		"sequence loops":   "sequenceDiagram\nloop Every minute\nA->>B: ping\nloop Retry\nB->>A: pong",
		"sequence mixed":   "sequenceDiagram\nparticipant Web Server\nA->>B: Login request\nnote over A,B: Hand shake\nalt ok\nA->>B: 200 OK\nelse\nA->>B: error\nend\nend",
		"flowchart":        "flowchart LR\nsubgraph Backend Services\nA[\"User\nService\"]-->B{Ok?}\nB-->|yes|C",
		"flowchart header": "graph TD; A-->B",
		"class":            "classDiagram\nclass User {\n+String name\n+getName() String",
		"state":            "stateDiagram-v2\n[*] --> Idle\nIdle --> Running : start job\nstate Running {\n[*] --> Busy",
		"er reconstruct":   userOrderER,
		"er stray quote":   "erDiagram\nEVENTS {\"\nstring id\n}",
		"er patched":       "erDiagram\nA ||--o{ B : \"\"owns\"\"",
		"er glued":         "erDiagram\nA ||--o{ B : owns C ||--|{ D : holds\nA {\nint id\n} B {\nint x\n}",
		"generic":          "pie title Pets\n“Dogs” : 386\nA[x",
		"numbered":         "1. graph TD\n2. A-->B\n3. B-->C",
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			once := Fix(in)
			assert.Equal(t, once, Fix(once))
		})
	}
}

func TestNewRepairerFillsDefaults(t *testing.T) {
	r := NewRepairer(Options{MinBlockLength: 3})
	opts := r.Options()
	assert.Equal(t, 3, opts.MinBlockLength)
	assert.Equal(t, DefaultOptions().SplitOrder, opts.SplitOrder)
	assert.Equal(t, DefaultOptions().QuoteKeywords, opts.QuoteKeywords)
	assert.Equal(t, 100, opts.HeaderLookback)
	assert.Equal(t, "<br/>", opts.LineBreakToken)

	// An explicitly empty keyword table disables keyword quoting.
	r = NewRepairer(Options{QuoteKeywords: []string{}})
	assert.Equal(t, "sequenceDiagram\n    A->>B: error\n", r.Fix("sequenceDiagram\nA->>B: error"))
}

func TestRepairerLogsDecisions(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewRepairer(DefaultOptions(), WithLogger(zap.New(core)))

	r.Fix("erDiagram\nA ||--o{ B : x")
	assert.Equal(t, 1, logs.FilterMessage("er reconstruction unavailable, patching").Len())

	r.ParseAndFix("```mermaid\ngraph TD\nA-->B\n```")
	assert.Equal(t, 1, logs.FilterMessage("parsed fenced diagrams").Len())
}

func TestWithLoggerIgnoresNil(t *testing.T) {
	r := NewRepairer(DefaultOptions(), WithLogger(nil))
	assert.NotNil(t, r.log)
}
