package main

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

//go:embed "ui"
var uiFS embed.FS

/*
frontendHandler serves the static front-end. Files that exist under the static root
are served as they are, every other path gets index.html so the page can handle its
own routes. -static-dir swaps the embedded page for a real build directory.
*/
func (app *application) frontendHandler() http.Handler {
	var root fs.FS
	if app.config.staticDir != "" {
		root = os.DirFS(app.config.staticDir)
	} else {
		sub, err := fs.Sub(uiFS, "ui")
		if err != nil {
			panic(err) // "ui" is embedded at build time, this cannot fail
		}
		root = sub
	}

	fileServer := http.FileServerFS(root)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")

		// FileServer redirects index.html to the directory, so that one is served below
		if name != "" && name != "index.html" {
			info, err := fs.Stat(root, name)
			if err == nil && !info.IsDir() {
				fileServer.ServeHTTP(w, r)
				return
			}
		}

		index, err := fs.ReadFile(root, "index.html")
		if err != nil {
			app.notFoundResponse(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(index)
	})
}
