package http_server

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
)

const indexFileName = "index.html"

// processStatic serves a file from the public directory.
func (s *HttpServer) processStatic(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]
	if len(name) == 0 {
		name = indexFileName
	}

	root, err := filepath.Abs(s.config.Http.PublicDir)
	if err != nil {
		s.writeError(w, fmt.Errorf("public dir: %w", err))
		return
	}
	fullPath := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		writeJSON(w, http.StatusForbidden, errorResponse{Success: false, Message: "Forbidden"})
		return
	}

	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeJSON(w, http.StatusNotFound, errorResponse{Success: false, Message: "File not found"})
			return
		}
		s.writeError(w, fmt.Errorf("open %s: %w", name, err))
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		s.writeError(w, fmt.Errorf("stat %s: %w", name, err))
		return
	}
	if fi.IsDir() {
		writeJSON(w, http.StatusNotFound, errorResponse{Success: false, Message: "File not found"})
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(fullPath))
	if len(contentType) == 0 {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
}
