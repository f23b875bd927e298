package wiki

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/mermaidfix/internal/mermaid"
)

func shopDiagrams() *mermaid.DiagramMap {
	m := mermaid.NewDiagramMap()
	m.Set("System Architecture", "graph TD\n    A --> B")
	m.Set("erDiagram1", "erDiagram\n    A ||--o{ B")
	m.Set("Checkout", "sequenceDiagram\n    A->>B: pay")
	m.Set("diagram4", "pie\n    \"a\" : 1")
	return m
}

func TestAssembleSlotPages(t *testing.T) {
	docs := Assemble("Shop", shopDiagrams())

	paths := make([]string, len(docs))
	for i, d := range docs {
		paths[i] = d.Path
	}
	assert.Equal(t, []string{"_index.md", "architecture.md", "database.md", "sequence.md", "other.md"}, paths)

	assert.Equal(t, "Database", docs[2].Title)
	assert.Equal(t, "# Database\n\n## erDiagram1\n\n```mermaid\nerDiagram\n    A ||--o{ B\n```\n\n", docs[2].Content)
	assert.Equal(t, "Other Diagrams", docs[4].Title)
	assert.Contains(t, docs[4].Content, "pie")
}

func TestAssembleIndexPage(t *testing.T) {
	docs := Assemble("Shop", shopDiagrams())
	require.NotEmpty(t, docs)

	index := docs[0]
	assert.Equal(t, "Shop", index.Title)
	assert.Equal(t, "# Shop\n\n"+
		"- [Architecture](architecture.md)\n"+
		"  - [System Architecture](architecture.md#system-architecture)\n"+
		"- [Database](database.md)\n"+
		"  - [erDiagram1](database.md#erdiagram1)\n"+
		"- [Sequence](sequence.md)\n"+
		"  - [Checkout](sequence.md#checkout)\n"+
		"- [Other Diagrams](other.md)\n"+
		"  - [diagram4](other.md#diagram4)\n", index.Content)
}

func TestAssembleNameBeatsFamily(t *testing.T) {
	m := mermaid.NewDiagramMap()
	m.Set("Database", "graph TD\n    A --> B")

	docs := Assemble("", m)
	require.Len(t, docs, 2)
	assert.Equal(t, "database.md", docs[1].Path)
	assert.Equal(t, "Diagrams", docs[0].Title)
}

func TestAssembleEmpty(t *testing.T) {
	docs := Assemble("Empty", mermaid.NewDiagramMap())
	require.Len(t, docs, 1)
	assert.Equal(t, "# Empty\n\nNo diagrams found.\n", docs[0].Content)
}

func TestAssembleEscapesNames(t *testing.T) {
	m := mermaid.NewDiagramMap()
	m.Set("<script>", "sequenceDiagram\n    A->>B: hi")

	docs := Assemble("T", m)
	require.Len(t, docs, 2)
	assert.Contains(t, docs[1].Content, "## &lt;script&gt;")
	assert.NotContains(t, docs[0].Content, "<script>")
}

func TestTitleSlug(t *testing.T) {
	assert.Equal(t, "system-architecture", titleSlug("System Architecture"))
	assert.Equal(t, "user-flow", titleSlug("User -- Flow!"))
	assert.Equal(t, "", titleSlug("!!!"))
}
