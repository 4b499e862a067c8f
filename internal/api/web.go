package api

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexPage []byte

// handleIndex serves the minimal landing page. The mux routes every
// unregistered path here, so anything other than the root is a 404.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexPage)
}
