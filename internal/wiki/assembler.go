package wiki

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/julianshen/mermaidfix/internal/mermaid"
)

const defaultTitle = "Diagrams"

// Assemble places every diagram of m into a canonical slot page. The name is
// matched against the synonym table first and the diagram family second;
// diagrams neither claims land on other.md. The first document is always the
// _index.md page.
func Assemble(title string, m *mermaid.DiagramMap) []Document {
	if strings.TrimSpace(title) == "" {
		title = defaultTitle
	}

	bySlot := make(map[Slot][]Diagram)
	var other []Diagram
	for name, content := range m.All() {
		fam := mermaid.Classify(content)
		d := Diagram{Name: name, Family: fam.String(), Content: content}
		slot, ok := SlotFor(name)
		if !ok {
			slot, ok = SlotForFamily(fam)
		}
		if !ok {
			other = append(other, d)
			continue
		}
		bySlot[slot] = append(bySlot[slot], d)
	}

	var pages []Document
	for _, s := range Slots {
		if len(bySlot[s]) == 0 {
			continue
		}
		pages = append(pages, buildDiagramPage(s.Title(), string(s)+".md", bySlot[s]))
	}
	if len(other) > 0 {
		pages = append(pages, buildDiagramPage("Other Diagrams", "other.md", other))
	}

	docs := []Document{buildIndexPage(title, pages, bySlot, other)}
	return append(docs, pages...)
}

// buildIndexPage lists every page with links to its diagrams.
func buildIndexPage(title string, pages []Document, bySlot map[Slot][]Diagram, other []Diagram) Document {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", sanitizeMarkdown(title))

	if len(pages) == 0 {
		b.WriteString("No diagrams found.\n")
	}
	for _, page := range pages {
		diagrams := other
		for _, s := range Slots {
			if page.Path == string(s)+".md" {
				diagrams = bySlot[s]
			}
		}
		fmt.Fprintf(&b, "- [%s](%s)\n", page.Title, page.Path)
		for _, d := range diagrams {
			fmt.Fprintf(&b, "  - [%s](%s#%s)\n", sanitizeMarkdown(d.Name), page.Path, titleSlug(d.Name))
		}
	}

	return Document{
		Path:    "_index.md",
		Title:   title,
		Content: b.String(),
	}
}

func buildDiagramPage(title, path string, diagrams []Diagram) Document {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	for _, d := range diagrams {
		writeMermaidBlock(&b, d)
	}
	return Document{
		Path:    path,
		Title:   title,
		Content: b.String(),
	}
}

// writeMermaidBlock appends a fenced mermaid code block for a diagram.
func writeMermaidBlock(b *strings.Builder, d Diagram) {
	fmt.Fprintf(b, "## %s\n\n", sanitizeMarkdown(d.Name))
	b.WriteString("```mermaid\n")
	b.WriteString(d.Content)
	if !strings.HasSuffix(d.Content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n\n")
}

var (
	nonAlphanumRe = regexp.MustCompile(`[^a-z0-9-]`)
	multiHyphenRe = regexp.MustCompile(`-{2,}`)
)

// sanitizeMarkdown escapes HTML-significant characters in names taken from
// generated text.
func sanitizeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// titleSlug converts a heading to the anchor most markdown renderers derive
// from it.
func titleSlug(title string) string {
	slug := strings.ReplaceAll(strings.ToLower(title), " ", "-")
	slug = nonAlphanumRe.ReplaceAllString(slug, "")
	slug = multiHyphenRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
