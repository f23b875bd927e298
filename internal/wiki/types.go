package wiki

// Diagram is one named diagram placed into a slot page.
type Diagram struct {
	Name    string
	Family  string
	Content string // Mermaid source
}

// Document represents a single output page.
type Document struct {
	Path    string
	Title   string
	Content string
}
