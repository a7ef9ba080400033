package bitacora

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureTemplate = `<!doctype html>
<html>
<head><title>Cuaderno</title></head>
<body>
<a href="mailto:__CONTACT_EMAIL__">contact</a>
<script>
var posts = /*__POSTS_JSON__*/;
var unlinked = /*__UNLINKED_COMMENTS_JSON__*/;
var about = /*__ABOUT_JSON__*/;
</script>
</body>
</html>
`

const postAlpha = `{
  "id": "alpha",
  "date": "2026-02-07",
  "title": {"en": "Alpha post", "es": "Entrada alfa"},
  "body": {"en": "First body", "es": null},
  "slots": [["go"], [], [], [], []],
  "archived": false
}`

const postBeta = `{
  "id": "beta",
  "date": "2026-01-01",
  "title": {"en": "Beta post", "es": null},
  "body": {"en": "Second body", "es": null},
  "slots": [[], [], [], [], []],
  "archived": false
}`

// fixtureConf lays out a complete site under a temp dir and returns a conf
// pointing at it.
func fixtureConf(t *testing.T) *SiteConf {
	t.Helper()
	root := t.TempDir()

	contentDir := filepath.Join(root, "content")
	writePost(t, contentDir, "alpha.json", postAlpha)
	writePost(t, contentDir, "beta.json", postBeta)
	writeFile(t, filepath.Join(contentDir, "site.json"), `{"contact_email": "ana@example.org"}`)
	writeFile(t, filepath.Join(contentDir, "about.json"), `{"en": "About me", "es": "Sobre mi"}`)
	writeFile(t, filepath.Join(contentDir, "unlinked_comments.json"), `[{"author": "lu", "date": "2025-12-01", "text": "hola"}]`)

	writeFile(t, filepath.Join(root, "templates", "index.html"), fixtureTemplate)
	writeFile(t, filepath.Join(root, "assets", "css", "main.css"), "body { margin: 0 }")
	writeFile(t, filepath.Join(root, "CNAME"), "cuaderno.example.org\n")

	return &SiteConf{
		SiteTitle:    "Cuaderno",
		Author:       "Ana",
		AuthorUri:    "https://cuaderno.example.org/",
		BaseUrl:      "https://cuaderno.example.org/",
		ContentDir:   contentDir,
		TemplatesDir: filepath.Join(root, "templates"),
		AssetsDir:    filepath.Join(root, "assets"),
		DomainFile:   filepath.Join(root, "CNAME"),
		OutDir:       filepath.Join(root, "out"),
		FeedFile:     "feed.xml",
		Pairs:        []RenderPair{{Template: "index.html", Output: "index.html"}},
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o775))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o664))
}

func build(t *testing.T, conf *SiteConf) {
	t.Helper()
	site, err := ReadSite(conf)
	require.NoError(t, err)
	require.NoError(t, site.BuildAll())
}

// snapshotDir reads every file under dir into a map keyed by relative path.
func snapshotDir(t *testing.T, dir string) map[string]string {
	t.Helper()
	snap := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		snap[rel] = string(raw)
		return nil
	})
	require.NoError(t, err)
	return snap
}

func TestBuildEndToEnd(t *testing.T) {
	captureLog(t)
	conf := fixtureConf(t)

	build(t, conf)

	html, err := os.ReadFile(filepath.Join(conf.OutDir, "index.html"))
	require.NoError(t, err)
	out := string(html)

	// Posts injected newest-first: alpha (2026-02-07) before beta (2026-01-01).
	require.Less(t, strings.Index(out, `"id": "alpha"`), strings.Index(out, `"id": "beta"`))
	require.Contains(t, out, `"id": "beta"`)
	require.Contains(t, out, `mailto:ana@example.org`)
	require.Contains(t, out, `"author": "lu"`)
	require.Contains(t, out, `"About me"`)
	require.NotContains(t, out, tokenPosts)

	css, err := os.ReadFile(filepath.Join(conf.OutDir, "assets", "css", "main.css"))
	require.NoError(t, err)
	require.Equal(t, "body { margin: 0 }", string(css))

	cname, err := os.ReadFile(filepath.Join(conf.OutDir, "CNAME"))
	require.NoError(t, err)
	require.Equal(t, "cuaderno.example.org\n", string(cname))

	feed, err := os.ReadFile(filepath.Join(conf.OutDir, "feed.xml"))
	require.NoError(t, err)
	require.Contains(t, string(feed), "Alpha post")
}

func TestBuildTwiceIsByteIdentical(t *testing.T) {
	captureLog(t)
	conf := fixtureConf(t)

	build(t, conf)
	first := snapshotDir(t, conf.OutDir)

	build(t, conf)
	second := snapshotDir(t, conf.OutDir)

	require.Equal(t, first, second)
}

func TestBuildMissingTemplateIsFatal(t *testing.T) {
	captureLog(t)
	conf := fixtureConf(t)
	conf.Pairs = []RenderPair{{Template: "missing.html", Output: "index.html"}}

	site, err := ReadSite(conf)
	require.NoError(t, err)

	err = site.BuildAll()

	require.Error(t, err)
	require.Contains(t, err.Error(), "missing.html")
	_, statErr := os.Stat(conf.OutDir)
	require.True(t, os.IsNotExist(statErr), "no output may be produced on the fatal precondition")
}

func TestBuildWithoutSiteConfigInjectsEmptyEmail(t *testing.T) {
	captureLog(t)
	conf := fixtureConf(t)
	require.NoError(t, os.Remove(filepath.Join(conf.ContentDir, "site.json")))

	build(t, conf)

	html, err := os.ReadFile(filepath.Join(conf.OutDir, "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(html), `<a href="mailto:">`)
}

func TestBuildMultiplePairs(t *testing.T) {
	captureLog(t)
	conf := fixtureConf(t)
	writeFile(t, filepath.Join(conf.TemplatesDir, "archive.html"),
		"<script>var posts = /*__POSTS_JSON__*/;</script>")
	conf.Pairs = append(conf.Pairs, RenderPair{Template: "archive.html", Output: "archive.html"})

	build(t, conf)

	archive, err := os.ReadFile(filepath.Join(conf.OutDir, "archive.html"))
	require.NoError(t, err)
	require.Contains(t, string(archive), `"id": "alpha"`)

	_, err = os.Stat(filepath.Join(conf.OutDir, "index.html"))
	require.NoError(t, err)
}

func TestBuildInjectsRenderedOrigin(t *testing.T) {
	captureLog(t)
	conf := fixtureConf(t)
	writeFile(t, filepath.Join(conf.ContentDir, "origin.json"),
		`{"title": "Origen", "date": "1998-05-01", "attribution": "abuela", "location": "Sevilla",
		  "body": {"en": null, "es": "Una historia *antigua*."}}`)
	writeFile(t, filepath.Join(conf.TemplatesDir, "origen.html"),
		"<script>var origin = /*__ORIGIN_HTML__*/;</script>")
	conf.Pairs = append(conf.Pairs, RenderPair{Template: "origen.html", Output: "origen.html"})

	build(t, conf)

	origen, err := os.ReadFile(filepath.Join(conf.OutDir, "origen.html"))
	require.NoError(t, err)
	require.Contains(t, string(origen), "<em>antigua</em>")
	require.Contains(t, string(origen), `"en": null`)
}

func TestFeedSkipsArchivedAndUndatedPosts(t *testing.T) {
	captureLog(t)
	conf := fixtureConf(t)
	writePost(t, conf.ContentDir, "old.json",
		`{"id": "old", "date": "2020-01-01", "title": {"en": "Buried", "es": null},
		  "slots": [[], [], [], [], []], "archived": true}`)
	writePost(t, conf.ContentDir, "undated.json",
		`{"id": "undated", "title": {"en": "No date", "es": null},
		  "slots": [[], [], [], [], []], "archived": false}`)

	build(t, conf)

	feed, err := os.ReadFile(filepath.Join(conf.OutDir, "feed.xml"))
	require.NoError(t, err)
	require.Contains(t, string(feed), "Alpha post")
	require.NotContains(t, string(feed), "Buried")
	require.NotContains(t, string(feed), "No date")
}

func TestBuildWithoutBaseUrlWritesNoFeed(t *testing.T) {
	captureLog(t)
	conf := fixtureConf(t)
	conf.BaseUrl = ""

	build(t, conf)

	_, err := os.Stat(filepath.Join(conf.OutDir, "feed.xml"))
	require.True(t, os.IsNotExist(err))
}
