package bitacora

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// RenderPair names one template file to inject and the output file it
// produces. Template is relative to TemplatesDir, Output to OutDir.
type RenderPair struct {
	Template, Output string
}

type SiteConf struct {
	SiteTitle         string
	Author, AuthorUri string
	// BaseUrl is the public address of the site. When empty, no feed is
	// generated.
	BaseUrl string

	ContentDir   string
	TemplatesDir string
	AssetsDir    string
	// DomainFile is an optional domain-pinning file (e.g. CNAME) copied
	// verbatim into the output when present.
	DomainFile string

	OutDir   string
	FeedFile string

	Pairs []RenderPair
}

// ReadConf reads the site configuration from fileName. A conf that cannot be
// read or parsed is fatal; there is nothing sensible to build without one.
func ReadConf(fileName string) *SiteConf {
	rawConf, err := os.ReadFile(fileName)
	if err != nil {
		log.Fatal(err)
	}

	conf := SiteConf{}

	if err = json.Unmarshal(rawConf, &conf); err != nil {
		log.Fatal(err)
	}

	// Populate with defaults
	if len(conf.ContentDir) == 0 {
		conf.ContentDir = "content"
	}
	if len(conf.TemplatesDir) == 0 {
		conf.TemplatesDir = "templates"
	}
	if len(conf.AssetsDir) == 0 {
		conf.AssetsDir = "assets"
	}
	if len(conf.OutDir) == 0 {
		conf.OutDir = "out"
	}
	if len(conf.FeedFile) == 0 {
		conf.FeedFile = "feed.xml"
	}
	if len(conf.Pairs) == 0 {
		conf.Pairs = []RenderPair{{Template: "index.html", Output: "index.html"}}
	}

	// Normalize relative paths because the executable can be called from anywhere
	baseDir := filepath.Dir(fileName)
	conf.ContentDir = normalizePath(conf.ContentDir, baseDir)
	conf.TemplatesDir = normalizePath(conf.TemplatesDir, baseDir)
	conf.AssetsDir = normalizePath(conf.AssetsDir, baseDir)
	conf.OutDir = normalizePath(conf.OutDir, baseDir)
	if len(conf.DomainFile) > 0 {
		conf.DomainFile = normalizePath(conf.DomainFile, baseDir)
	}

	return &conf
}

func normalizePath(path, baseDir string) string {
	if !filepath.IsAbs(path) {
		return filepath.Join(baseDir, path)
	}
	return path
}
