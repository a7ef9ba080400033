// Build script for the relatos blog, the site variant that carries an origin
// document and renders more than one template/output pair. Kept as a
// near-duplicate of cmd/cuaderno on purpose: the two sites are independent
// and do not share a build entry point.
package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/nvila/bitacora"
	"github.com/radovskyb/watcher"
)

var confPath = flag.String("conf", "relatos.json", "Path to the site configuration file")
var serve = flag.Bool("serve", false, "Start a localhost:9998 server for the built site")
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
	port := ":9998"

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
