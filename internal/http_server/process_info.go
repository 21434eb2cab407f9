package http_server

import (
	"encoding/json"
	"net/http"
)

func (s *HttpServer) processInfo(w http.ResponseWriter, _ *http.Request) {
	info := s.core.Info()

	bs, err := json.MarshalIndent(info, "", " ")
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(bs)
}
