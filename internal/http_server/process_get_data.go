package http_server

import (
	"net/http"
)

func (s *HttpServer) processGetData(w http.ResponseWriter, r *http.Request) {
	mapping, err := s.core.Get(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, getDataResponse{
		Success:    true,
		Key:        mapping.Key,
		Data:       mapping.Data,
		StoredDate: mapping.StoredDate,
	})
}
