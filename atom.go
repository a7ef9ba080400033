package bitacora

import (
	"log"
	"os"
	"path/filepath"
	"time"

	atom "github.com/thomas11/atomgenerator"
)

// isoDateFormat is the date layout used by post records.
const isoDateFormat = "2006-01-02"

// writeFeed renders an Atom feed of the non-archived posts, newest first.
// Sites without a BaseUrl get no feed; neither do sites where no post carries
// a parseable date, since a feed needs publication dates.
//
// The feed's own PubDate is the newest post date rather than the build time,
// so rebuilding unchanged content produces identical bytes.
func (s *Site) writeFeed() error {
	if len(s.conf.BaseUrl) == 0 {
		return nil
	}

	feed := atom.Feed{
		Title: s.conf.SiteTitle,
		Link:  s.conf.BaseUrl,
	}
	feed.AddAuthor(atom.Author{
		Name: s.conf.Author,
		Uri:  s.conf.AuthorUri,
	})

	entries := 0
	for _, p := range s.posts {
		if p.Archived() {
			continue
		}
		date, err := time.Parse(isoDateFormat, p.Date())
		if err != nil {
			continue
		}
		if entries == 0 {
			// Posts are sorted newest-first, so the first dated entry
			// carries the feed's PubDate.
			feed.PubDate = date
		}
		feed.AddEntry(&atom.Entry{
			Title:   p.Title(),
			Link:    s.conf.BaseUrl + "#" + p.ID(),
			PubDate: date,
			Content: p.Body(),
		})
		entries++
	}

	if entries == 0 {
		return nil
	}

	if errs := feed.Validate(); len(errs) > 0 {
		log.Println("Atom feed is not valid!")
		for _, e := range errs {
			log.Println(e.Error())
		}
		return errs[0]
	}

	atomXml, err := feed.GenXml()
	if err != nil {
		return err
	}

	filePath := filepath.Join(s.conf.OutDir, s.conf.FeedFile)
	if err := os.WriteFile(filePath, atomXml, os.FileMode(0664)); err != nil {
		return err
	}

	log.Printf("✓ wrote %v", filePath)
	return nil
}
