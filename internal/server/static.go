package server

import (
	"embed"
	"net/http"
)

//go:embed static/UploadForm.html
var staticFS embed.FS

func (s *Server) handleUploadForm(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, staticFS, "static/UploadForm.html")
}
