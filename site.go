package bitacora

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/otiai10/copy"
)

// Site holds everything loaded from one site's content root, ready to be
// injected into that site's templates. Each build loads a fresh Site; nothing
// is cached across invocations.
type Site struct {
	conf *SiteConf

	posts    []Post
	unlinked []any
	about    map[string]any
	settings map[string]any
	// origin is nil for sites without an origin document.
	origin map[string]any
}

// ReadSite loads all content for conf and sorts the posts newest-first.
func ReadSite(conf *SiteConf) (*Site, error) {
	s := &Site{
		conf:     conf,
		posts:    loadPosts(conf.ContentDir),
		unlinked: readJSONOr(filepath.Join(conf.ContentDir, "unlinked_comments.json"), []any{}),
		about:    readJSONOr(filepath.Join(conf.ContentDir, "about.json"), map[string]any{}),
		settings: readJSONOr(filepath.Join(conf.ContentDir, "site.json"), map[string]any{}),
		origin:   readJSONOr[map[string]any](filepath.Join(conf.ContentDir, "origin.json"), nil),
	}

	log.Printf("Found %d posts in %v", len(s.posts), conf.ContentDir)

	sortPosts(s.posts)

	return s, nil
}

// ContactEmail returns the configured contact address, or "" when site.json
// is absent or carries none.
func (s *Site) ContactEmail() string {
	email, _ := s.settings["contact_email"].(string)
	return email
}

// BuildAll runs the whole pipeline for every configured template/output pair:
// verify templates, clean the output directory, inject and write each pair,
// copy assets and the optional domain file, and write the feed.
//
// A missing template is the one fatal precondition and is checked before any
// output is touched, so a failed build leaves the previous output intact.
func (s *Site) BuildAll() error {
	start := time.Now()

	for _, pair := range s.conf.Pairs {
		tmplPath := filepath.Join(s.conf.TemplatesDir, pair.Template)
		if _, err := os.Stat(tmplPath); err != nil {
			return fmt.Errorf("template %v is missing: %w", tmplPath, err)
		}
	}

	if err := prepareOutDir(s.conf.OutDir); err != nil {
		return err
	}

	data := injection{
		Posts:            s.posts,
		UnlinkedComments: s.unlinked,
		About:            s.about,
		ContactEmail:     s.ContactEmail(),
	}
	if s.origin != nil {
		data.OriginHTML = renderOriginHTML(s.origin, newMarkdownRenderer())
	}

	for _, pair := range s.conf.Pairs {
		if err := s.renderPair(pair, data); err != nil {
			return err
		}
	}

	if err := s.copyAssets(); err != nil {
		return err
	}
	if err := s.copyDomainFile(); err != nil {
		return err
	}
	if err := s.writeFeed(); err != nil {
		return err
	}

	log.Printf("Build finished in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// prepareOutDir guarantees dir exists and is empty. This is the only
// destructive operation in the build.
func prepareOutDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("cleaning output directory %v: %w", dir, err)
	}
	if err := os.MkdirAll(dir, os.FileMode(0775)); err != nil {
		return fmt.Errorf("creating output directory %v: %w", dir, err)
	}
	return nil
}

func (s *Site) renderPair(pair RenderPair, data injection) error {
	tmplPath := filepath.Join(s.conf.TemplatesDir, pair.Template)
	tmpl, err := os.ReadFile(tmplPath)
	if err != nil {
		return fmt.Errorf("reading template %v: %w", tmplPath, err)
	}

	out, err := injectAll(string(tmpl), data)
	if err != nil {
		return err
	}

	outPath := filepath.Join(s.conf.OutDir, pair.Output)
	if err := os.WriteFile(outPath, []byte(out), os.FileMode(0664)); err != nil {
		return fmt.Errorf("writing %v: %w", outPath, err)
	}

	log.Printf("✓ wrote %v", outPath)
	return nil
}

// copyAssets recursively copies the assets tree into the output, preserving
// relative structure. A site without assets is fine; nothing to say about it.
func (s *Site) copyAssets() error {
	if _, err := os.Stat(s.conf.AssetsDir); os.IsNotExist(err) {
		return nil
	}

	dest := filepath.Join(s.conf.OutDir, filepath.Base(s.conf.AssetsDir))
	if err := copy.Copy(s.conf.AssetsDir, dest); err != nil {
		return fmt.Errorf("copying assets to %v: %w", dest, err)
	}

	log.Printf("✓ copied assets to %v", dest)
	return nil
}

// copyDomainFile copies the domain-pinning file verbatim, if configured and
// present.
func (s *Site) copyDomainFile() error {
	if len(s.conf.DomainFile) == 0 {
		return nil
	}

	raw, err := os.ReadFile(s.conf.DomainFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading domain file %v: %w", s.conf.DomainFile, err)
	}

	dest := filepath.Join(s.conf.OutDir, filepath.Base(s.conf.DomainFile))
	if err := os.WriteFile(dest, raw, os.FileMode(0664)); err != nil {
		return fmt.Errorf("writing domain file %v: %w", dest, err)
	}

	log.Printf("✓ copied %v", dest)
	return nil
}
