// Build script for the cuaderno blog. Its sibling under cmd/relatos is a
// deliberate near-duplicate: the two sites are independent and do not share a
// build entry point.
package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/nvila/bitacora"
	"github.com/radovskyb/watcher"
)

var confPath = flag.String("conf", "cuaderno.json", "Path to the site configuration file")
var serve = flag.Bool("serve", false, "Start a localhost:9999 server for the built site")
var watch = flag.Bool("watch", false, "Keep running and rebuild the site on changes to content or templates.")

func main() {
	flag.Parse()

	conf := bitacora.ReadConf(*confPath)

	buildSite(conf)

	if *watch && *serve {
		// Run watcher in background while serving
		go rebuildOnChange(conf)
	}

	if *serve {
		serveSite(conf.OutDir)
	} else if *watch {
		// Watch mode without serve: block on the watcher
		rebuildOnChange(conf)
	}
}

func buildSite(conf *bitacora.SiteConf) {
	site, err := bitacora.ReadSite(conf)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Writing site to " + conf.OutDir)
	if err = site.BuildAll(); err != nil {
		log.Fatal(err)
	}
}

func serveSite(dir string) {
	port := ":9999"

	http.Handle("/", http.FileServer(http.Dir(dir)))
	log.Printf("Serving %v on %v.", dir, port)
	log.Fatal(http.ListenAndServe(port, nil))
}

func rebuildOnChange(conf *bitacora.SiteConf) {
	log.Println("Watching " + conf.ContentDir + " and " + conf.TemplatesDir + " for changes...")

	w := watcher.New()
	w.SetMaxEvents(1)

	go func() {
		for {
			select {
			case <-w.Event:
				buildSite(conf)
			case err := <-w.Error:
				log.Println(err)
			case <-w.Closed:
				return
			}
		}
	}()

	if err := w.AddRecursive(conf.ContentDir); err != nil {
		log.Fatalln(err)
	}
	if err := w.AddRecursive(conf.TemplatesDir); err != nil {
		log.Fatalln(err)
	}

	if err := w.Start(time.Millisecond * 200); err != nil {
		log.Fatalln(err)
	}
}
