package bitacora

import (
	"strings"

	"github.com/russross/blackfriday/v2"
)

type renderer interface {
	render(in []byte) string
}

func newMarkdownRenderer() renderer {
	return &blackfridayRenderer{
		extensions: blackfriday.NoIntraEmphasis |
			blackfriday.Tables |
			blackfriday.FencedCode |
			blackfriday.Autolink |
			blackfriday.Strikethrough,
		flags: blackfriday.UseXHTML | blackfriday.Smartypants |
			blackfriday.SmartypantsFractions | blackfriday.SmartypantsLatexDashes,
	}
}

type blackfridayRenderer struct {
	extensions blackfriday.Extensions
	flags      blackfriday.HTMLFlags
}

func (b *blackfridayRenderer) render(in []byte) string {
	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: b.flags})
	out := blackfriday.Run(in, blackfriday.WithExtensions(b.extensions), blackfriday.WithRenderer(r))
	return strings.TrimSuffix(string(out), "\n")
}

// renderOriginHTML turns the origin document's body into its injectable form:
// each language rendered from markdown to HTML, null languages left null.
// Returns nil when origin carries no body object; the other origin fields
// (title, attribution, location) are metadata and are never rendered.
func renderOriginHTML(origin map[string]any, r renderer) map[string]any {
	body, ok := origin["body"].(map[string]any)
	if !ok {
		return nil
	}

	out := make(map[string]any, 2)
	for _, lang := range []string{"en", "es"} {
		if s, ok := body[lang].(string); ok {
			out[lang] = r.render([]byte(s))
		} else {
			out[lang] = nil
		}
	}
	return out
}
