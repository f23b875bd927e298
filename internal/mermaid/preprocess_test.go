package mermaid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocessStripsListMarkers(t *testing.T) {
	in := "1. graph TD\n2. A-->B\r\n- B-->C  \n  * C-->D"
	assert.Equal(t, "graph TD\nA-->B\nB-->C\n  C-->D", Preprocess(in))
}

func TestPreprocessKeepsArrowsAtLineStart(t *testing.T) {
	assert.Equal(t, "--> B", Preprocess("--> B"))
}

func TestPreprocessNormalizesUnicode(t *testing.T) {
	assert.Equal(t, "caf\u00e9", Preprocess("cafe\u0301"))
}

func TestPreprocessLineEndings(t *testing.T) {
	assert.Equal(t, "a\nb\nc", Preprocess("a\r\nb\rc"))
}

func TestPostprocess(t *testing.T) {
	assert.Equal(t, "a\n\nb\n", postprocess("\n\na  \n\n\n\n\nb\n\n"))
	assert.Equal(t, "", postprocess(" \n\t\n"))
}

func TestFixBlankInput(t *testing.T) {
	assert.Equal(t, "", Fix(""))
	assert.Equal(t, "", Fix("  \n\t "))
}

func TestPreprocessKeepsPrivateClassMembers(t *testing.T) {
	in := "classDiagram\n- class User {\n- String name\n  - getAge() int\n* +String email\n}\n- Animal <|-- Dog"
	want := "classDiagram\nclass User {\n- String name\n  - getAge() int\n+String email\n}\nAnimal <|-- Dog"
	assert.Equal(t, want, Preprocess(in))
}

func TestFixCommentBeforeHeader(t *testing.T) {
	assert.Equal(t, "%% Login\ngraph TD\n    A --> B\n", Fix("%% Login\ngraph TD\nA-->B"))
}
