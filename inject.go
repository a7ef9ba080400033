package bitacora

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// The placeholder tokens the templates may contain. They are literal sentinel
// substrings, not a template language: each is replaced at most once, and a
// token the template does not contain is simply not injected. The JSON ones
// sit inside script blocks, the email one inside plain markup.
const (
	tokenPosts            = "/*__POSTS_JSON__*/"
	tokenUnlinkedComments = "/*__UNLINKED_COMMENTS_JSON__*/"
	tokenAbout            = "/*__ABOUT_JSON__*/"
	tokenContactEmail     = "__CONTACT_EMAIL__"
	tokenOriginHTML       = "/*__ORIGIN_HTML__*/"
)

// injection is the data bundle substituted into one template.
type injection struct {
	Posts            []Post
	UnlinkedComments []any
	About            map[string]any
	ContactEmail     string

	// OriginHTML is the origin document's body with each language rendered
	// to HTML, or nil for sites without an origin document.
	OriginHTML map[string]any
}

// injectAll replaces the known tokens in tmpl with the serialized bundle and
// returns the new text. Replacement is first-occurrence-only; each template
// is expected to contain each token at most once.
func injectAll(tmpl string, data injection) (string, error) {
	out := tmpl

	for _, sub := range []struct {
		token string
		value any
	}{
		{tokenPosts, data.Posts},
		{tokenUnlinkedComments, data.UnlinkedComments},
		{tokenAbout, data.About},
		{tokenOriginHTML, data.OriginHTML},
	} {
		if sub.token == tokenOriginHTML && data.OriginHTML == nil {
			continue
		}
		serialized, err := marshalPretty(sub.value)
		if err != nil {
			return "", fmt.Errorf("serializing data for %v: %w", sub.token, err)
		}
		out = strings.Replace(out, sub.token, serialized, 1)
	}

	// The email is injected as a raw string, no quoting or escaping.
	out = strings.Replace(out, tokenContactEmail, data.ContactEmail, 1)

	return out, nil
}

// marshalPretty serializes v the way the client-side code expects to read it
// back: two-space indent, no HTML escaping, nulls preserved.
func marshalPretty(v any) (string, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	// Encode appends a newline the templates don't want.
	return strings.TrimSuffix(b.String(), "\n"), nil
}
