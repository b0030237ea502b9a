package mock

import "github.com/fwojciec/asof"

var _ asof.Converter = (*Converter)(nil)

// Converter is a mock implementation of asof.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ asof.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of asof.Renderer.
type Renderer struct {
	RenderFn func(markdown string) (string, error)
}

func (r *Renderer) Render(markdown string) (string, error) {
	return r.RenderFn(markdown)
}
