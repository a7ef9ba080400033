package bitacora

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderOriginHTML(t *testing.T) {
	origin := map[string]any{
		"title":       "De donde venimos",
		"attribution": "abuela",
		"body":        map[string]any{"en": "a *quiet* start", "es": nil},
	}

	out := renderOriginHTML(origin, newMarkdownRenderer())

	require.Contains(t, out["en"], "<em>quiet</em>")
	require.Nil(t, out["es"])
	require.NotContains(t, out, "title", "metadata fields are not rendered")
}

func TestRenderOriginHTMLWithoutBody(t *testing.T) {
	require.Nil(t, renderOriginHTML(map[string]any{"title": "x"}, newMarkdownRenderer()))
}

func TestMarkdownRenderer(t *testing.T) {
	r := newMarkdownRenderer()

	out := r.render([]byte("hello **world**"))

	require.Contains(t, out, "<strong>world</strong>")
	require.True(t, len(out) > 0)
}
