package http_server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
)

// processGetLogs returns the access log as plain text.
func (s *HttpServer) processGetLogs(w http.ResponseWriter, _ *http.Request) {
	bs, err := os.ReadFile(s.accessLog.FilePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeJSON(w, http.StatusNotFound, errorResponse{Success: false, Message: "Log file not found"})
			return
		}
		s.writeError(w, fmt.Errorf("read access log: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(bs)
}
