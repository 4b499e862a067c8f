package api

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"reelsmith/internal/logging"
	"reelsmith/internal/mediastore"
)

// handleVideo streams a previously rendered video back by name.
func (s *Server) handleVideo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "video serving disabled in brief mode")
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/videos/")
	reader, size, err := s.store.Open(name)
	if err != nil {
		if errors.Is(err, mediastore.ErrInvalidName) || errors.Is(err, fs.ErrNotExist) {
			s.writeError(w, http.StatusNotFound, "video not found")
			return
		}
		s.logger.Error("failed to open video", logging.String("name", name), logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to open video")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Debug("video stream interrupted", logging.String("name", name), logging.Error(err))
	}
}
