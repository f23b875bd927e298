package mermaid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairGeneric(t *testing.T) {
	assert.Equal(t, "pie title Pets\n\"Dogs\" : 386\n", RepairGeneric("pie title Pets\n“Dogs” : 386"))
	assert.Equal(t, "gantt\nsection A[x[]]\n", RepairGeneric("gantt\nsection A[x[\n\n"))
	assert.Equal(t, "journey\n", RepairGeneric("journey"))
}
