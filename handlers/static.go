package handlers

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
)

//go:embed static/*
var staticAssets embed.FS

// StaticHandler serves the embedded stylesheet, script and icons.
type StaticHandler struct {
	fileServer http.Handler
}

func NewStaticHandler() *StaticHandler {
	staticFS, err := fs.Sub(staticAssets, "static")
	if err != nil {
		panic("failed to get static subdirectory: " + err.Error())
	}

	return &StaticHandler{
		fileServer: http.FileServer(http.FS(staticFS)),
	}
}

var staticContentTypes = map[string]string{
	".css": "text/css; charset=utf-8",
	".js":  "text/javascript; charset=utf-8",
	".svg": "image/svg+xml",
	".png": "image/png",
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Assets are embedded in the binary; they only change with a release.
	w.Header().Set("Cache-Control", "public, max-age=31536000")

	if ct, ok := staticContentTypes[path.Ext(r.URL.Path)]; ok {
		w.Header().Set("Content-Type", ct)
	}

	h.fileServer.ServeHTTP(w, r)
}
