// Package goldmark renders assistant replies from Markdown into sanitized HTML.
package goldmark

import (
	"bytes"
	"strings"

	"github.com/fwojciec/asof"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var _ asof.Renderer = (*Renderer)(nil)

// Renderer converts Markdown to HTML and strips anything unsafe.
// Model output is untrusted, so raw HTML in the input never survives.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a Renderer with GitHub-flavored Markdown enabled.
func NewRenderer() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowURLSchemes("http", "https", "mailto")
	policy.RequireParseableURLs(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: policy,
	}
}

// Render converts markdown into HTML safe to embed in a page.
func (r *Renderer) Render(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", asof.Errorf(asof.EINTERNAL, "render markdown: %v", err)
	}

	return strings.TrimSpace(r.policy.Sanitize(buf.String())), nil
}
