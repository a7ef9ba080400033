package bitacora

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// findPostFiles walks dir and returns every .json file in it, in walk order
// (lexicographic), so a build over identical input always sees the same
// sequence.
func findPostFiles(dir string) ([]string, error) {
	files := make([]string, 0, 100)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// loadPosts reads every post file under <contentDir>/posts. A file that does
// not parse is logged as a warning and skipped; the build goes on without it.
// A missing posts directory is also just a warning: a brand-new site has no
// posts yet.
//
// Slot-count and duplicate-id violations are warned here too, but the post is
// kept either way.
func loadPosts(contentDir string) []Post {
	postsDir := filepath.Join(contentDir, "posts")

	files, err := findPostFiles(postsDir)
	if err != nil {
		log.Printf("Warning: cannot read posts directory %v: %v", postsDir, err)
		return []Post{}
	}

	posts := make([]Post, 0, len(files))
	seen := make(map[string]string, len(files))

	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			log.Printf("Warning: skipping post %v: %v", filepath.Base(f), err)
			continue
		}

		var p Post
		if err := json.Unmarshal(raw, &p); err != nil {
			log.Printf("Warning: skipping post %v: %v", filepath.Base(f), err)
			continue
		}

		if slots, ok := p.Slots(); !ok || len(slots) != slotCount {
			log.Printf("Warning: post %v does not have exactly %d slots", filepath.Base(f), slotCount)
		}
		if id := p.ID(); id != "" {
			if prev, dup := seen[id]; dup {
				log.Printf("Warning: duplicate post id %q in %v (already used by %v)", id, filepath.Base(f), prev)
			}
			seen[id] = filepath.Base(f)
		}

		posts = append(posts, p)
	}

	return posts
}

// readJSONOr reads path and decodes it into a value of def's type. A missing
// or malformed file yields def, silently: singleton documents are expected to
// be absent on young sites, unlike posts, where a parse failure means an
// authoring mistake worth flagging.
func readJSONOr[T any](path string, def T) T {
	raw, err := os.ReadFile(path)
	if err != nil {
		return def
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def
	}
	return v
}
