package asof

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	Convert(html string) (string, error)
}

// Renderer renders Markdown as HTML that is safe to embed in a page.
type Renderer interface {
	Render(markdown string) (string, error)
}
