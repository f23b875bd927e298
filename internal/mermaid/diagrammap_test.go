package mermaid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagramMapOrder(t *testing.T) {
	m := NewDiagramMap()
	m.Set("b", "2")
	m.Set("a", "1")
	m.Set("b", "3")

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	assert.Equal(t, 2, m.Len())
	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
	_, ok = m.Get("c")
	assert.False(t, ok)

	var seen []string
	for k := range m.All() {
		seen = append(seen, k)
		break
	}
	assert.Equal(t, []string{"b"}, seen)
}

func TestDiagramMapAddUnique(t *testing.T) {
	m := NewDiagramMap()
	assert.Equal(t, "x", m.addUnique("x", "1"))
	assert.Equal(t, "x2", m.addUnique("x", "2"))
	assert.Equal(t, "x3", m.addUnique("x", "3"))
	assert.Equal(t, []string{"x", "x2", "x3"}, m.Keys())
}

func TestDiagramMapJSON(t *testing.T) {
	m := NewDiagramMap()
	m.Set("zeta", "graph TD\n")
	m.Set("alpha", "say \"hi\"")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"graph TD\n","alpha":"say \"hi\""}`, string(data))

	var back DiagramMap
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []string{"zeta", "alpha"}, back.Keys())
	v, _ := back.Get("alpha")
	assert.Equal(t, `say "hi"`, v)
}

func TestDiagramMapEmptyJSON(t *testing.T) {
	data, err := json.Marshal(NewDiagramMap())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}
