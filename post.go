// Package bitacora is a static site generator for a bilingual blog. It reads
// JSON content files, injects them into placeholder tokens inside HTML
// templates, and writes the result plus copied assets to an output directory
// consumed by the client-side app.
//
// Content is schema-less on purpose: posts and singleton documents are held
// as raw decoded JSON so that fields this tool knows nothing about survive
// the round trip into the template unchanged.
package bitacora

import (
	"slices"
	"strings"
)

// slotCount is the fixed number of tag slots on a post. Slot index 0..4 maps
// to display weight 5..1 on the client.
const slotCount = 5

// Post is one post record as decoded from posts/<file>.json. The accessors
// below read the handful of fields the build itself cares about; everything
// else is passed through to the template untouched.
type Post map[string]any

func (p Post) ID() string {
	s, _ := p["id"].(string)
	return s
}

// Date returns the post's ISO date string, or "" when missing or not a
// string. Lexicographic order on these equals chronological order.
func (p Post) Date() string {
	s, _ := p["date"].(string)
	return s
}

func (p Post) Archived() bool {
	b, _ := p["archived"].(bool)
	return b
}

// Title returns the post title in English, falling back to Spanish. Used for
// the feed; the client does its own language selection.
func (p Post) Title() string {
	return bilingualString(p["title"])
}

// Body returns the post body with the same language fallback as Title.
func (p Post) Body() string {
	return bilingualString(p["body"])
}

// Slots returns the post's slot list and whether it was present as a list.
func (p Post) Slots() ([]any, bool) {
	s, ok := p["slots"].([]any)
	return s, ok
}

// bilingualString picks en over es from a bilingual object, treating null and
// missing languages as absent.
func bilingualString(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	if s, ok := m["en"].(string); ok && s != "" {
		return s
	}
	s, _ := m["es"].(string)
	return s
}

// sortPosts orders posts by date, newest first. The sort is stable and
// compares the raw date strings, so posts without a date compare as "" and
// end up last.
func sortPosts(posts []Post) {
	slices.SortStableFunc(posts, func(a, b Post) int {
		return strings.Compare(b.Date(), a.Date())
	})
}
