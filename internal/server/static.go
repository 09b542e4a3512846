package server

import (
	"io/fs"
	"net/http"
	"strings"
)

// StaticHandler serves the site folder the way the hosting platform does:
// files as-is, with index.html standing in for the root and for unknown
// paths.
func StaticHandler(site fs.FS) http.Handler {
	fileServer := http.FileServer(http.FS(site))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upath := strings.TrimPrefix(r.URL.Path, "/")
		if upath == "" {
			upath = "index.html"
		}
		if _, err := fs.Stat(site, upath); err == nil {
			fileServer.ServeHTTP(w, r)
			return
		}
		r2 := *r
		r2.URL.Path = "/index.html"
		fileServer.ServeHTTP(w, &r2)
	})
}
